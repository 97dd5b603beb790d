package services

import (
	"context"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
)

// NotificationService defines the interface for notification feed operations
type NotificationService interface {
	ListNotifications(ctx context.Context, recipientID int64, unreadOnly bool) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, recipientID int64) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, id, recipientID int64) (*models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64) (*dto.ModifyResult, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo NotificationStore
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo NotificationStore) NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo}
}

// ListNotifications retrieves a student's notifications, newest first
func (s *notificationServiceImpl) ListNotifications(ctx context.Context, recipientID int64, unreadOnly bool) ([]*models.Notification, error) {
	return s.notificationRepo.ListForRecipient(ctx, recipientID, unreadOnly)
}

// UnreadCount returns the number of unread notifications
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, recipientID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

// MarkRead marks one notification as read. Students can only touch their own
// feed; repeating the call is harmless.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, id, recipientID int64) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification.RecipientID != recipientID {
		return nil, apperrors.ErrPermissionDenied
	}

	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead marks every unread notification of the student as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, recipientID int64) (*dto.ModifyResult, error) {
	modified, err := s.notificationRepo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &dto.ModifyResult{ModifiedCount: modified}, nil
}
