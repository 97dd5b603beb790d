package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
	"github.com/coursetalk/coursetalk/internal/pkg/logger"
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListMyCourses(ctx context.Context, studentID int64) ([]*models.Course, error)
	Enroll(ctx context.Context, courseID, studentID int64) error
	Unenroll(ctx context.Context, courseID, studentID int64) error
	RecentActivity(ctx context.Context, studentID int64) (*dto.RecentActivityResponse, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo     CourseStore
	activityWindow time.Duration
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo CourseStore, activityWindow time.Duration) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		activityWindow: activityWindow,
	}
}

// CreateCourse creates a new course entry
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, apperrors.NewInvalidInputError("course code cannot be empty")
	}

	course := &models.Course{
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		Section:         req.Section,
		Department:      req.Department,
		InstructorName:  req.InstructorName,
		InstructorEmail: strings.ToLower(req.InstructorEmail),
		Term:            req.Term,
	}

	if _, err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrCourseCodeExists) {
			return nil, err
		}
		logger.Error().Err(err).Str("code", code).Msg("Error creating course")
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	return course, nil
}

// GetCourse retrieves a course with its enrolled student ids
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// ListMyCourses retrieves the courses a student is enrolled in
func (s *courseServiceImpl) ListMyCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	return s.courseRepo.ListForStudent(ctx, studentID)
}

// Enroll adds the student to a course. Enrolling twice is a no-op.
func (s *courseServiceImpl) Enroll(ctx context.Context, courseID, studentID int64) error {
	return s.courseRepo.Enroll(ctx, courseID, studentID)
}

// Unenroll removes the student from a course
func (s *courseServiceImpl) Unenroll(ctx context.Context, courseID, studentID int64) error {
	return s.courseRepo.Unenroll(ctx, courseID, studentID)
}

// RecentActivity returns, for each of the student's courses with recent
// questions, the number posted inside the configured window. All courses are
// counted in a single aggregate query; quiet courses are simply absent from
// the map.
func (s *courseServiceImpl) RecentActivity(ctx context.Context, studentID int64) (*dto.RecentActivityResponse, error) {
	courses, err := s.courseRepo.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses for activity: %w", err)
	}

	courseIDs := make([]int64, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	counts := make(map[int64]int64, len(courseIDs))
	if len(courseIDs) > 0 {
		counts, err = s.courseRepo.CountRecentQuestions(ctx, courseIDs, s.activityWindow)
		if err != nil {
			return nil, fmt.Errorf("error counting recent questions: %w", err)
		}
	}

	return &dto.RecentActivityResponse{
		WindowHours: int(s.activityWindow.Hours()),
		Counts:      counts,
	}, nil
}
