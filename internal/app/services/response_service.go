package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/app/repositories"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
	"github.com/coursetalk/coursetalk/internal/pkg/logger"
	"github.com/coursetalk/coursetalk/internal/pkg/validation"
)

// ResponseService defines the interface for response operations
type ResponseService interface {
	CreateResponse(ctx context.Context, posterID int64, req *dto.CreateResponseRequest) (*repositories.ResponseDetails, error)
	GetResponse(ctx context.Context, id int64) (*repositories.ResponseDetails, error)
	ListForQuestion(ctx context.Context, questionID int64, sort string) ([]*repositories.ResponseDetails, error)
	UpdateResponse(ctx context.Context, id, studentID int64, req *dto.UpdateResponseRequest) (*repositories.ResponseDetails, error)
	DeleteResponse(ctx context.Context, id, studentID int64) (*dto.DeleteResult, error)
}

// responseServiceImpl implements ResponseService
type responseServiceImpl struct {
	responseRepo     ResponseStore
	questionRepo     QuestionStore
	notificationRepo NotificationStore
	authzService     Authorizer
}

// NewResponseService creates a new ResponseService
func NewResponseService(
	responseRepo ResponseStore,
	questionRepo QuestionStore,
	notificationRepo NotificationStore,
	authzService Authorizer,
) ResponseService {
	return &responseServiceImpl{
		responseRepo:     responseRepo,
		questionRepo:     questionRepo,
		notificationRepo: notificationRepo,
		authzService:     authzService,
	}
}

func validateResponseContent(content string) error {
	if !validation.NewStringValidation(content).WithMaxLength(validation.ResponseContentMaxLength).Validate() {
		return apperrors.NewInvalidInputError(
			fmt.Sprintf("content is required and may not exceed %d characters", validation.ResponseContentMaxLength))
	}
	return nil
}

// CreateResponse posts a response to a question and notifies the question's
// poster. The notification is best effort; its failure never fails the post.
func (s *responseServiceImpl) CreateResponse(ctx context.Context, posterID int64, req *dto.CreateResponseRequest) (*repositories.ResponseDetails, error) {
	content := strings.TrimSpace(req.Content)
	if err := validateResponseContent(content); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByID(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}

	response := &models.Response{
		QuestionID:  question.ID,
		PosterID:    posterID,
		Content:     content,
		IsAnonymous: req.IsAnonymous,
	}

	id, err := s.responseRepo.Create(ctx, response)
	if err != nil {
		return nil, fmt.Errorf("error creating response: %w", err)
	}

	if question.PosterID != posterID {
		s.notify(ctx, &models.Notification{
			RecipientID: question.PosterID,
			QuestionID:  question.ID,
			SenderID:    posterID,
			Type:        models.NotificationNewResponse,
			Message:     fmt.Sprintf("Your question %q has a new response", question.Title),
		})
	}

	return s.responseRepo.GetDetailsByID(ctx, id)
}

// GetResponse retrieves a response with its derived poster name
func (s *responseServiceImpl) GetResponse(ctx context.Context, id int64) (*repositories.ResponseDetails, error) {
	return s.responseRepo.GetDetailsByID(ctx, id)
}

// ListForQuestion retrieves a question's responses. Unknown sort values fall
// back to newest.
func (s *responseServiceImpl) ListForQuestion(ctx context.Context, questionID int64, sort string) ([]*repositories.ResponseDetails, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.responseRepo.ListForQuestion(ctx, questionID, models.NormalizeResponseSort(sort))
}

// UpdateResponse applies the supplied fields. Content edits require the
// response's poster; the helpful flag requires the owning question's poster.
// Newly marking a response helpful notifies its poster, best effort.
func (s *responseServiceImpl) UpdateResponse(ctx context.Context, id, studentID int64, req *dto.UpdateResponseRequest) (*repositories.ResponseDetails, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewInvalidInputError("no updatable field supplied")
	}

	response, err := s.responseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		if err := s.authzService.ValidateResponseOwnership(ctx, id, studentID); err != nil {
			return nil, err
		}
		content := strings.TrimSpace(*req.Content)
		if err := validateResponseContent(content); err != nil {
			return nil, err
		}
		response.Content = content
	}

	newlyHelpful := false
	if req.IsHelpful != nil {
		if err := s.authzService.ValidateHelpfulAuthority(ctx, response.QuestionID, studentID); err != nil {
			return nil, err
		}
		newlyHelpful = *req.IsHelpful && !response.IsHelpful
		response.IsHelpful = *req.IsHelpful
	}

	if err := s.responseRepo.Update(ctx, response); err != nil {
		return nil, fmt.Errorf("error updating response: %w", err)
	}

	if newlyHelpful && response.PosterID != studentID {
		s.notify(ctx, &models.Notification{
			RecipientID: response.PosterID,
			QuestionID:  response.QuestionID,
			SenderID:    studentID,
			Type:        models.NotificationHelpfulMark,
			Message:     "Your response was marked as helpful",
		})
	}

	return s.responseRepo.GetDetailsByID(ctx, id)
}

// DeleteResponse removes a response after verifying the acting student
// posted it. Notifications about the question are left alone; they only go
// away with the question itself.
func (s *responseServiceImpl) DeleteResponse(ctx context.Context, id, studentID int64) (*dto.DeleteResult, error) {
	if err := s.authzService.ValidateResponseOwnership(ctx, id, studentID); err != nil {
		return nil, err
	}

	deleted, err := s.responseRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.DeleteResult{DeletedCount: deleted}, nil
}

// notify records a notification, logging failures instead of returning them.
// The triggering write has already committed and must stay successful.
func (s *responseServiceImpl) notify(ctx context.Context, notification *models.Notification) {
	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error().Err(err).
			Int64("recipientID", notification.RecipientID).
			Int64("questionID", notification.QuestionID).
			Str("type", string(notification.Type)).
			Msg("Notification delivery failed")
	}
}
