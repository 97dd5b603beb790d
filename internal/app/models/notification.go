package models

import "time"

// Notification records an activity event addressed to a student. Immutable
// except for the is_read flip; removed only when the owning question is deleted.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"recipientId" db:"recipient_id"`
	QuestionID  int64            `json:"questionId" db:"question_id"`
	SenderID    int64            `json:"senderId" db:"sender_id"`
	Type        NotificationType `json:"type" db:"type"`
	Message     string           `json:"message" db:"message"`
	IsRead      bool             `json:"isRead" db:"is_read"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}
