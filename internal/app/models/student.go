package models

import (
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	FirstName    string    `json:"firstName" db:"first_name" example:"John"`
	LastName     string    `json:"lastName" db:"last_name" example:"Doe"`
	Email        string    `json:"email" db:"email" example:"john.doe@campus.edu"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Major        string    `json:"major" db:"major" example:"Computer Science"`
	Age          int       `json:"age" db:"age" example:"20"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	EnrolledCourses []*Course `json:"enrolledCourses,omitempty"`
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
