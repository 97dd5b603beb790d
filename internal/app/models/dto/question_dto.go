package dto

// CreateQuestionRequest represents a question creation request
type CreateQuestionRequest struct {
	CourseID    int64  `json:"courseId" binding:"required" example:"1"`
	Title       string `json:"title" binding:"required" validate:"min=1,max=200" example:"How do I invert a binary tree?"`
	Content     string `json:"content" binding:"required" validate:"min=1,max=2000"`
	IsAnonymous bool   `json:"isAnonymous" example:"false"`
}

// UpdateQuestionRequest carries the fields a question's poster may change.
// posterId and courseId are immutable after creation; payloads naming them
// fail strict decoding.
type UpdateQuestionRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content    *string `json:"content,omitempty" validate:"omitempty,min=1,max=2000"`
	IsResolved *bool   `json:"isResolved,omitempty"`
}

// IsEmpty reports whether no updatable field was supplied
func (r *UpdateQuestionRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.IsResolved == nil
}

// QuestionFilterRequest holds listing parameters for course questions
type QuestionFilterRequest struct {
	Sort string `form:"sort" example:"newest"`
}
