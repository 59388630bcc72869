package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-ti/chamados-service/internal/api/dto"
	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
	"github.com/helpdesk-ti/chamados-service/internal/service"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// UsersHandler manages account endpoints plus the self-service profile.
type UsersHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, authService *service.AuthService) *UsersHandler {
	return &UsersHandler{users: userService, auth: authService}
}

// List GET /api/usuarios.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{}
	if roleStr := c.Query("tipo_usuario"); roleStr != "" {
		role := domain.UserRole(roleStr)
		filter.Role = &role
	}
	if activeStr := c.Query("ativo"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err == nil {
			filter.Active = &active
		}
	}
	if search := strings.TrimSpace(c.Query("busca")); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	users, err := h.users.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListTechnicians GET /api/usuarios/tecnicos.
func (h *UsersHandler) ListTechnicians(c *fiber.Ctx) error {
	technicians, err := h.users.ListTechnicians(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserSummary, 0, len(technicians))
	for i := range technicians {
		items = append(items, userSummary(&technicians[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /api/usuarios.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}

	user, err := h.users.Create(c.UserContext(), service.UserCreateInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Role:       req.Role,
		Department: req.Department,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// Get GET /api/usuarios/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Update PUT /api/usuarios/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}

	user, err := h.users.Update(c.UserContext(), c.Params("id"), service.UserUpdateInput{
		Email:      req.Email,
		FullName:   req.FullName,
		Role:       req.Role,
		Department: req.Department,
		Phone:      req.Phone,
		Active:     req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete DELETE /api/usuarios/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	if err := h.users.Delete(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Profile GET /api/usuarios/perfil.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	return c.JSON(fiber.Map{"data": userResponse(principal.User)})
}

// UpdateProfile PUT /api/usuarios/perfil.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}

	user, err := h.users.UpdateProfile(c.UserContext(), principal.User, service.ProfileUpdateInput{
		Email:      req.Email,
		FullName:   req.FullName,
		Department: req.Department,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// ChangePassword POST /api/usuarios/alterar-senha.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.NewPassword != req.NewPasswordConfirmed {
		return apperrors.NewValidationError("a confirmação não confere com a nova senha", nil)
	}

	if err := h.auth.ChangePassword(c.UserContext(), principal.User, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "senha alterada com sucesso"}})
}
