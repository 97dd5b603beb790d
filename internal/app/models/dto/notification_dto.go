package dto

// UnreadCountResponse carries a recipient's unread notification count
type UnreadCountResponse struct {
	Count int64 `json:"count" example:"3"`
}

// NotificationFilterRequest holds listing parameters for notifications
type NotificationFilterRequest struct {
	UnreadOnly *bool `form:"unreadOnly"`
}
