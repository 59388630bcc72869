package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-ti/chamados-service/internal/api/dto"
	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/service"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// ServiceTypesHandler manages the service-type catalog endpoints.
type ServiceTypesHandler struct {
	service *service.ServiceTypeService
}

// NewServiceTypesHandler constructs handler.
func NewServiceTypesHandler(serviceTypeService *service.ServiceTypeService) *ServiceTypesHandler {
	return &ServiceTypesHandler{service: serviceTypeService}
}

// List GET /api/tipos-servico.
func (h *ServiceTypesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	types, err := h.service.List(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.ServiceTypeResponse, 0, len(types))
	for i := range types {
		items = append(items, serviceTypeResponse(&types[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/tipos-servico/:id.
func (h *ServiceTypesHandler) Get(c *fiber.Ctx) error {
	st, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceTypeResponse(st)})
}

// Create POST /api/tipos-servico.
func (h *ServiceTypesHandler) Create(c *fiber.Ctx) error {
	var req dto.ServiceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	st, err := h.service.Create(c.UserContext(), service.ServiceTypeInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": serviceTypeResponse(st)})
}

// Update PUT /api/tipos-servico/:id.
func (h *ServiceTypesHandler) Update(c *fiber.Ctx) error {
	var req dto.ServiceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	st, err := h.service.Update(c.UserContext(), c.Params("id"), service.ServiceTypeInput{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceTypeResponse(st)})
}

// Delete DELETE /api/tipos-servico/:id.
func (h *ServiceTypesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
