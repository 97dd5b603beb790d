package models

import "time"

// Course represents a course students enroll in.
type Course struct {
	ID              int64     `json:"id" db:"id"`
	Code            string    `json:"code" db:"code"`
	Name            string    `json:"name" db:"name"`
	Section         string    `json:"section" db:"section"`
	Department      string    `json:"department" db:"department"`
	InstructorName  string    `json:"instructorName" db:"instructor_name"`
	InstructorEmail string    `json:"instructorEmail" db:"instructor_email"`
	Term            string    `json:"term" db:"term"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	EnrolledStudentIDs []int64 `json:"enrolledStudentIds,omitempty"`
}
