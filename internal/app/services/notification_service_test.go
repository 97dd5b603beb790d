package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
)

func seedNotification(t *testing.T, store *fakeNotificationStore, recipientID int64) *models.Notification {
	t.Helper()
	n := &models.Notification{
		RecipientID: recipientID,
		QuestionID:  1,
		SenderID:    99,
		Type:        models.NotificationNewResponse,
		Message:     "new response",
	}
	_, err := store.Create(context.Background(), n)
	require.NoError(t, err)
	return n
}

func TestMarkReadIsIdempotent(t *testing.T) {
	store := newFakeNotificationStore(newFakeClock())
	service := NewNotificationService(store)
	ctx := context.Background()

	n := seedNotification(t, store, 5)

	first, err := service.MarkRead(ctx, n.ID, 5)
	require.NoError(t, err)
	assert.True(t, first.IsRead)

	second, err := service.MarkRead(ctx, n.ID, 5)
	require.NoError(t, err)
	assert.True(t, second.IsRead)
}

func TestMarkReadChecksRecipient(t *testing.T) {
	store := newFakeNotificationStore(newFakeClock())
	service := NewNotificationService(store)
	ctx := context.Background()

	n := seedNotification(t, store, 5)

	_, err := service.MarkRead(ctx, n.ID, 6)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = service.MarkRead(ctx, 404, 5)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestMarkAllRead(t *testing.T) {
	store := newFakeNotificationStore(newFakeClock())
	service := NewNotificationService(store)
	ctx := context.Background()

	seedNotification(t, store, 5)
	seedNotification(t, store, 5)
	seedNotification(t, store, 6)

	result, err := service.MarkAllRead(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.ModifiedCount)

	// A second pass has nothing left to modify.
	result, err = service.MarkAllRead(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.ModifiedCount)

	count, err := service.UnreadCount(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)
}

func TestListNotificationsUnreadFilter(t *testing.T) {
	store := newFakeNotificationStore(newFakeClock())
	service := NewNotificationService(store)
	ctx := context.Background()

	first := seedNotification(t, store, 5)
	second := seedNotification(t, store, 5)

	_, err := service.MarkRead(ctx, first.ID, 5)
	require.NoError(t, err)

	all, err := service.ListNotifications(ctx, 5, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, second.ID, all[0].ID)

	unread, err := service.ListNotifications(ctx, 5, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, second.ID, unread[0].ID)
}
