package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
	"github.com/coursetalk/coursetalk/internal/pkg/dberrors"
	"github.com/coursetalk/coursetalk/internal/pkg/logger"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

var notificationColumns = []string{
	"id", "recipient_id", "question_id", "sender_id",
	"type", "message", "is_read", "created_at",
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID, &n.RecipientID, &n.QuestionID, &n.SenderID,
		&n.Type, &n.Message, &n.IsRead, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

// Create inserts a new notification. New notifications always start unread.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) (int64, error) {
	sql, args, err := squirrel.Insert("notifications").
		Columns("recipient_id", "question_id", "sender_id", "type", "message", "is_read").
		Values(notification.RecipientID, notification.QuestionID, notification.SenderID,
			notification.Type, notification.Message, false).
		Suffix("RETURNING id, is_read, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create notification SQL")
		return 0, err
	}

	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.NewInvalidInputError("recipient, sender or question does not exist")
		}
		logger.Error().Err(err).Msg("Error executing create notification query")
		return 0, err
	}

	return notification.ID, nil
}

// ListForRecipient retrieves a student's notifications, newest first.
// When unreadOnly is set, read notifications are excluded.
func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID int64, unreadOnly bool) ([]*models.Notification, error) {
	sqlBuilder := squirrel.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if unreadOnly {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"is_read": false})
	}

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notifications SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notifications query")
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning notification row")
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// GetByID retrieves a single notification
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	sqlStr, args, err := squirrel.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return scanNotification(r.db.QueryRow(ctx, sqlStr, args...))
}

// MarkRead marks a notification as read and returns the updated row.
// Marking an already-read notification is a no-op, not an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) (*models.Notification, error) {
	sqlStr, args, err := squirrel.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, recipient_id, question_id, sender_id, type, message, is_read, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark notification read SQL")
		return nil, err
	}

	return scanNotification(r.db.QueryRow(ctx, sqlStr, args...))
}

// MarkAllRead marks every unread notification of a recipient as read and
// returns how many rows changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	sqlStr, args, err := squirrel.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"recipient_id": recipientID, "is_read": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	cmdTag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("recipientID", recipientID).Msg("Error executing mark all notifications read query")
		return 0, err
	}

	return cmdTag.RowsAffected(), nil
}

// CountUnread returns the number of unread notifications for a recipient
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE",
		recipientID,
	).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Int64("recipientID", recipientID).Msg("Error executing count unread notifications query")
		return 0, err
	}
	return count, nil
}

// DeleteByQuestion removes all notifications that reference a question,
// read or not, using the given querier. Part of the question cascade.
func (r *NotificationRepository) DeleteByQuestion(ctx context.Context, q Querier, questionID int64) (int64, error) {
	sqlStr, args, err := squirrel.Delete("notifications").
		Where(squirrel.Eq{"question_id": questionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	cmdTag, err := q.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", questionID).Msg("Error executing cascade delete notifications query")
		return 0, err
	}

	return cmdTag.RowsAffected(), nil
}
