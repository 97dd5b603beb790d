package dto

// RegisterRequest represents a student registration request
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required" validate:"min=2,max=100" example:"John"`
	LastName  string `json:"lastName" binding:"required" validate:"min=2,max=100" example:"Doe"`
	Email     string `json:"email" binding:"required,email" example:"john.doe@campus.edu"`
	Password  string `json:"password" binding:"required" validate:"min=8" example:"s3cret-pass"`
	Major     string `json:"major" binding:"required" example:"Computer Science"`
	Age       int    `json:"age" binding:"required" validate:"gte=17,lte=25" example:"20"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john.doe@campus.edu"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// AuthResponse carries the issued token and the authenticated student
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn" example:"3600"`
	Student   interface{} `json:"student"`
}
