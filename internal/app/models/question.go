package models

import "time"

// Question represents a question posted to a course's forum.
// A question is either open (is_resolved=false) or resolved; the poster can
// flip it either way at any time.
type Question struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	PosterID    int64     `json:"posterId" db:"poster_id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	IsAnonymous bool      `json:"isAnonymous" db:"is_anonymous"`
	IsResolved  bool      `json:"isResolved" db:"is_resolved"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
