package services

import (
	"context"
	"fmt"

	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
	"github.com/coursetalk/coursetalk/internal/pkg/validation"
)

// StudentService defines the interface for student profile operations
type StudentService interface {
	GetProfile(ctx context.Context, studentID int64) (*dto.StudentResponse, error)
	UpdateProfile(ctx context.Context, studentID int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo StudentStore
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo StudentStore) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

// GetProfile retrieves a student's own profile
func (s *studentServiceImpl) GetProfile(ctx context.Context, studentID int64) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toStudentResponse(student), nil
}

// UpdateProfile applies the supplied profile fields. Email and credentials
// are not updatable here.
func (s *studentServiceImpl) UpdateProfile(ctx context.Context, studentID int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewInvalidInputError("no updatable field supplied")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Major != nil {
		student.Major = *req.Major
	}
	if req.Age != nil {
		if !validation.IsValidAge(*req.Age) {
			return nil, apperrors.NewInvalidInputError(
				fmt.Sprintf("age must be between %d and %d", validation.AgeMin, validation.AgeMax))
		}
		student.Age = *req.Age
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return toStudentResponse(student), nil
}
