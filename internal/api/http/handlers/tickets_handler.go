package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-ti/chamados-service/internal/api/dto"
	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/domain"
	"github.com/helpdesk-ti/chamados-service/internal/service"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /api/chamados.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}

	detail, err := h.service.Create(c.UserContext(), principal.User, service.TicketCreateInput{
		Title:         req.Title,
		Description:   req.Description,
		ServiceTypeID: req.ServiceTypeID,
		Priority:      req.Priority,
		Equipment:     req.Equipment,
		Location:      req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketDetail(detail)})
}

// List GET /api/chamados. Requesters only see their own tickets;
// technicians and admins see everything.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}

	filter := parseTicketQuery(c)
	if principal.User.Role == domain.RoleRequester {
		filter.RequesterID = &principal.User.ID
	}

	rows, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(rows))
	for i := range rows {
		items = append(items, ticketSummary(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListMine GET /api/chamados/meus-chamados.
func (h *TicketsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	rows, err := h.service.ListMine(c.UserContext(), principal.User, parseStatuses(c.Query("status")))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(rows))
	for i := range rows {
		items = append(items, ticketSummary(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListAssigned GET /api/chamados/chamados-tecnico.
func (h *TicketsHandler) ListAssigned(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	rows, err := h.service.ListAssigned(c.UserContext(), principal.User, parseStatuses(c.Query("status")))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(rows))
	for i := range rows {
		items = append(items, ticketSummary(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/chamados/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := ensureTicketVisible(principal.User, &detail.Ticket); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(detail)})
}

// Update PUT /api/chamados/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}

	input := service.TicketUpdateInput{
		Title:           req.Title,
		Description:     req.Description,
		ServiceTypeID:   req.ServiceTypeID,
		Status:          req.Status,
		Priority:        req.Priority,
		Equipment:       req.Equipment,
		Location:        req.Location,
		TechnicianNotes: req.TechnicianNotes,
	}
	if req.TechnicianID != nil {
		if strings.TrimSpace(*req.TechnicianID) == "" {
			input.RemoveTechnician = true
		} else {
			input.TechnicianID = req.TechnicianID
		}
	}

	detail, err := h.service.Update(c.UserContext(), principal.User, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(detail)})
}

// UpdateStatus PATCH /api/chamados/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status é obrigatório", nil)
	}

	detail, err := h.service.UpdateStatus(c.UserContext(), principal.User, c.Params("id"), req.Status, req.TechnicianNotes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(detail)})
}

// Delete DELETE /api/chamados/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	if err := h.service.Delete(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// History GET /api/chamados/:id/historico.
func (h *TicketsHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := ensureTicketVisible(principal.User, &detail.Ticket); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": historyResponses(detail.History)})
}

// ensureTicketVisible hides other users' tickets from requesters.
func ensureTicketVisible(user *domain.User, ticket *domain.Ticket) error {
	if user.Role == domain.RoleRequester && ticket.RequesterID != user.ID {
		return apperrors.NewNotFound("chamado", nil)
	}
	return nil
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	filter.Statuses = parseStatuses(c.Query("status"))
	if priorityStr := c.Query("prioridade"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	if serviceType := c.Query("tipo_servico"); serviceType != "" {
		filter.ServiceTypeID = &serviceType
	}
	if technician := c.Query("tecnico_responsavel"); technician != "" {
		filter.TechnicianID = &technician
	}
	if search := strings.TrimSpace(c.Query("busca")); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("criado_de")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("criado_ate")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseStatuses(raw string) []domain.TicketStatus {
	if raw == "" {
		return nil
	}
	var statuses []domain.TicketStatus
	for _, part := range strings.Split(raw, ",") {
		statuses = append(statuses, domain.TicketStatus(strings.TrimSpace(part)))
	}
	return statuses
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
