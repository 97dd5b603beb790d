package dto

// CreateResponseRequest represents a response creation request
type CreateResponseRequest struct {
	QuestionID  int64  `json:"questionId" binding:"required" example:"1"`
	Content     string `json:"content" binding:"required" validate:"min=1,max=1500"`
	IsAnonymous bool   `json:"isAnonymous" example:"false"`
}

// UpdateResponseRequest carries the fields that may change on a response.
// Content edits require the response's poster; the helpful flag is the
// question poster's to toggle.
type UpdateResponseRequest struct {
	Content   *string `json:"content,omitempty" validate:"omitempty,min=1,max=1500"`
	IsHelpful *bool   `json:"isHelpful,omitempty"`
}

// IsEmpty reports whether no updatable field was supplied
func (r *UpdateResponseRequest) IsEmpty() bool {
	return r.Content == nil && r.IsHelpful == nil
}
