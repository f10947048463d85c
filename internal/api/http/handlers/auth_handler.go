package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/techhelpdesk/helpdesk-service/internal/api/dto"
	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	"github.com/techhelpdesk/helpdesk-service/internal/service"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

// AuthHandler manages registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := apperrors.ValidateStruct(req); err != nil {
		return err
	}

	user, token, expiresAt, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password, domain.UserRole(req.Role))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.AuthResponse{
		User:        dto.NewUserResponse(user),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := apperrors.ValidateStruct(req); err != nil {
		return err
	}

	user, token, expiresAt, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		User:        dto.NewUserResponse(user),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}})
}
