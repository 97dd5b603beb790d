package dto

// CreateCourseRequest represents a course creation request (data entry)
type CreateCourseRequest struct {
	Code            string `json:"code" binding:"required" example:"CS101"`
	Name            string `json:"name" binding:"required" example:"Introduction to Programming"`
	Section         string `json:"section" example:"A"`
	Department      string `json:"department" example:"Computer Science"`
	InstructorName  string `json:"instructorName" example:"Dr. Ada Lovelace"`
	InstructorEmail string `json:"instructorEmail" binding:"omitempty,email" example:"ada@campus.edu"`
	Term            string `json:"term" example:"Fall 2025"`
}

// RecentActivityResponse maps course ids to their recent-question counts.
// Courses with no recent questions are absent.
type RecentActivityResponse struct {
	WindowHours int             `json:"windowHours" example:"24"`
	Counts      map[int64]int64 `json:"counts"`
}
