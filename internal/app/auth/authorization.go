package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursetalk/coursetalk/internal/app/repositories"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
	"github.com/coursetalk/coursetalk/internal/pkg/logger"
)

// AuthorizationService handles ownership and permission checks for forum
// content. Checks live here rather than in the repositories so that every
// write path goes through the same policy.
type AuthorizationService struct {
	questionRepo *repositories.QuestionRepository
	responseRepo *repositories.ResponseRepository
	courseRepo   *repositories.CourseRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(questionRepo *repositories.QuestionRepository, responseRepo *repositories.ResponseRepository, courseRepo *repositories.CourseRepository) *AuthorizationService {
	return &AuthorizationService{
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		courseRepo:   courseRepo,
	}
}

// CanModifyQuestion checks if the student posted the question
func (s *AuthorizationService) CanModifyQuestion(ctx context.Context, questionID, studentID int64) (bool, error) {
	ownerID, err := s.questionRepo.GetOwnerID(ctx, questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuestionNotFound) {
			return false, err
		}
		logger.Error().Err(err).Int64("questionID", questionID).Int64("studentID", studentID).Msg("Error fetching question owner ID")
		return false, fmt.Errorf("failed to check question ownership: %w", err)
	}
	return ownerID == studentID, nil
}

// ValidateQuestionOwnership validates that the student owns the question or
// returns an error.
func (s *AuthorizationService) ValidateQuestionOwnership(ctx context.Context, questionID, studentID int64) error {
	canModify, err := s.CanModifyQuestion(ctx, questionID, studentID)
	if err != nil {
		return err
	}
	if !canModify {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CanModifyResponse checks if the student posted the response
func (s *AuthorizationService) CanModifyResponse(ctx context.Context, responseID, studentID int64) (bool, error) {
	ownerID, err := s.responseRepo.GetOwnerID(ctx, responseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResponseNotFound) {
			return false, err
		}
		logger.Error().Err(err).Int64("responseID", responseID).Int64("studentID", studentID).Msg("Error fetching response owner ID")
		return false, fmt.Errorf("failed to check response ownership: %w", err)
	}
	return ownerID == studentID, nil
}

// ValidateResponseOwnership validates that the student owns the response or
// returns an error.
func (s *AuthorizationService) ValidateResponseOwnership(ctx context.Context, responseID, studentID int64) error {
	canModify, err := s.CanModifyResponse(ctx, responseID, studentID)
	if err != nil {
		return err
	}
	if !canModify {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateHelpfulAuthority validates that the student may toggle a response's
// helpful flag. Only the poster of the owning question can do that.
func (s *AuthorizationService) ValidateHelpfulAuthority(ctx context.Context, questionID, studentID int64) error {
	questionOwnerID, err := s.questionRepo.GetOwnerID(ctx, questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrQuestionNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error fetching question owner ID for helpful check")
		return fmt.Errorf("failed to check helpful authority: %w", err)
	}

	if questionOwnerID != studentID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateEnrollment validates that the student is enrolled in the course
func (s *AuthorizationService) ValidateEnrollment(ctx context.Context, courseID, studentID int64) error {
	enrolled, err := s.courseRepo.IsEnrolled(ctx, courseID, studentID)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Int64("studentID", studentID).Msg("Error checking course enrollment")
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
