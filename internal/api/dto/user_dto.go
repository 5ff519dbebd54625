package dto

import (
	"time"

	"github.com/spec-kit/erp-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the identity baked into it.
type LoginResponse struct {
	Token     string      `json:"token"`
	Role      domain.Role `json:"role"`
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// CreateUserRequest payload for admin user creation.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest payload. An empty password preserves the stored digest.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UserResponse never carries the password digest.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
