package models

import "time"

// Response represents an answer posted under a question. The helpful flag is
// toggled by the question's poster, not the response's poster.
type Response struct {
	ID          int64     `json:"id" db:"id"`
	QuestionID  int64     `json:"questionId" db:"question_id"`
	PosterID    int64     `json:"posterId" db:"poster_id"`
	Content     string    `json:"content" db:"content"`
	IsAnonymous bool      `json:"isAnonymous" db:"is_anonymous"`
	IsHelpful   bool      `json:"isHelpful" db:"is_helpful"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
