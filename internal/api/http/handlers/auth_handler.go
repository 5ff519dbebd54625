package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/erp-service/internal/api/dto"
	"github.com/spec-kit/erp-service/internal/service"
	apperrors "github.com/spec-kit/erp-service/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Token:     token,
		Role:      user.Role,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: exp,
	})
}
