package dto

type RegisterRequest struct {
	Email       string `json:"email" binding:"required" validate:"required,email"`
	Password    string `json:"password" binding:"required" validate:"required,min=8"`
	Name        string `json:"name" binding:"required" validate:"required,max=100"`
	Role        string `json:"role" binding:"required" validate:"required,oneof=customer artist"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"` // artists only
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}
