package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-ti/chamados-service/internal/api/dto"
	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/service"
	apperrors "github.com/helpdesk-ti/chamados-service/pkg/util/errorutil"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// Dashboard GET /api/dashboard/stats.
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("autenticação necessária")
	}

	counts, err := h.service.Dashboard(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		Total:       counts.Total,
		Open:        counts.Open,
		InProgress:  counts.InProgress,
		Closed:      counts.Closed,
		Urgent:      counts.Urgent,
		Mine:        counts.Mine,
		PendingMine: counts.PendingMine,
	}})
}
