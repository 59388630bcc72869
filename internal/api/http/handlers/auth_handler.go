package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-ti/chamados-service/internal/api/dto"
	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/service"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// AuthHandler manages login, logout and token refresh.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}

	result, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      userResponse(result.User),
	}})
}

// Logout POST /api/auth/logout. Tokens are stateless, so the server has
// nothing to revoke; the endpoint exists so clients have a uniform flow.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "logout efetuado"}})
}

// Refresh POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}

	result, err := h.service.Refresh(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      userResponse(result.User),
	}})
}
