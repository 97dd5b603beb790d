package dto

import "time"

// APIResponse provides the standard API response envelope
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse creates a success response wrapping data
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// DeleteResult reports how many rows a delete removed
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ModifyResult reports how many rows a bulk update changed
type ModifyResult struct {
	ModifiedCount int64 `json:"modifiedCount"`
}
