package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/app/repositories"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
	"github.com/coursetalk/coursetalk/internal/pkg/logger"
	"github.com/coursetalk/coursetalk/internal/pkg/validation"
)

// QuestionService defines the interface for question operations
type QuestionService interface {
	CreateQuestion(ctx context.Context, posterID int64, req *dto.CreateQuestionRequest) (*repositories.QuestionDetails, error)
	GetQuestion(ctx context.Context, id int64) (*repositories.QuestionDetails, error)
	ListForCourse(ctx context.Context, courseID int64, sort string) ([]*repositories.QuestionDetails, error)
	UpdateQuestion(ctx context.Context, id, studentID int64, req *dto.UpdateQuestionRequest) (*repositories.QuestionDetails, error)
	DeleteQuestion(ctx context.Context, id, studentID int64) (*dto.DeleteResult, error)
}

// questionServiceImpl implements QuestionService
type questionServiceImpl struct {
	questionRepo     QuestionStore
	responseRepo     ResponseStore
	notificationRepo NotificationStore
	authzService     Authorizer
	txRunner         TxRunner
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	questionRepo QuestionStore,
	responseRepo ResponseStore,
	notificationRepo NotificationStore,
	authzService Authorizer,
	txRunner TxRunner,
) QuestionService {
	return &questionServiceImpl{
		questionRepo:     questionRepo,
		responseRepo:     responseRepo,
		notificationRepo: notificationRepo,
		authzService:     authzService,
		txRunner:         txRunner,
	}
}

func validateQuestionContent(title, content string) error {
	if !validation.NewStringValidation(title).WithMaxLength(validation.TitleMaxLength).Validate() {
		return apperrors.NewInvalidInputError(
			fmt.Sprintf("title is required and may not exceed %d characters", validation.TitleMaxLength))
	}
	if !validation.NewStringValidation(content).WithMaxLength(validation.QuestionContentMaxLength).Validate() {
		return apperrors.NewInvalidInputError(
			fmt.Sprintf("content is required and may not exceed %d characters", validation.QuestionContentMaxLength))
	}
	return nil
}

// CreateQuestion creates a new question in a course. New questions always
// start unresolved.
func (s *questionServiceImpl) CreateQuestion(ctx context.Context, posterID int64, req *dto.CreateQuestionRequest) (*repositories.QuestionDetails, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if err := validateQuestionContent(title, content); err != nil {
		return nil, err
	}

	question := &models.Question{
		CourseID:    req.CourseID,
		PosterID:    posterID,
		Title:       title,
		Content:     content,
		IsAnonymous: req.IsAnonymous,
	}

	id, err := s.questionRepo.Create(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("error creating question: %w", err)
	}

	return s.questionRepo.GetDetailsByID(ctx, id)
}

// GetQuestion retrieves a question with its derived poster name
func (s *questionServiceImpl) GetQuestion(ctx context.Context, id int64) (*repositories.QuestionDetails, error) {
	return s.questionRepo.GetDetailsByID(ctx, id)
}

// ListForCourse retrieves a course's questions. Unknown sort values fall
// back to newest.
func (s *questionServiceImpl) ListForCourse(ctx context.Context, courseID int64, sort string) ([]*repositories.QuestionDetails, error) {
	return s.questionRepo.ListForCourse(ctx, courseID, models.NormalizeQuestionSort(sort))
}

// UpdateQuestion applies the supplied fields after verifying the acting
// student posted the question.
func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, id, studentID int64, req *dto.UpdateQuestionRequest) (*repositories.QuestionDetails, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewInvalidInputError("no updatable field supplied")
	}

	if err := s.authzService.ValidateQuestionOwnership(ctx, id, studentID); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		question.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		question.Content = strings.TrimSpace(*req.Content)
	}
	if err := validateQuestionContent(question.Title, question.Content); err != nil {
		return nil, err
	}
	if req.IsResolved != nil {
		question.IsResolved = *req.IsResolved
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("error updating question: %w", err)
	}

	return s.questionRepo.GetDetailsByID(ctx, id)
}

// DeleteQuestion removes a question together with its responses and every
// notification that references it, in one transaction. Dependents go first
// so a retried partial cascade stays safe.
func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, id, studentID int64) (*dto.DeleteResult, error) {
	if err := s.authzService.ValidateQuestionOwnership(ctx, id, studentID); err != nil {
		return nil, err
	}

	var deleted int64
	err := s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		responsesDeleted, err := s.responseRepo.DeleteByQuestion(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("error deleting question responses: %w", err)
		}

		notificationsDeleted, err := s.notificationRepo.DeleteByQuestion(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("error deleting question notifications: %w", err)
		}

		questionDeleted, err := s.questionRepo.Delete(ctx, tx, id)
		if err != nil {
			return err
		}

		deleted = questionDeleted
		logger.Info().
			Int64("questionID", id).
			Int64("responsesDeleted", responsesDeleted).
			Int64("notificationsDeleted", notificationsDeleted).
			Msg("Question cascade delete completed")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.DeleteResult{DeletedCount: deleted}, nil
}
