package handler

import "github.com/devcamper/bootcamp-api/internal/core/domain"

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=user publisher"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type updateDetailsRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required"`
}

// --- Response types ---

// tokenResponse is returned whenever a session token is issued; the same
// token also travels in the session cookie.
type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Data    *domain.User `json:"data"`
}

type dataResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
