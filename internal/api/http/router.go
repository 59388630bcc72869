package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-ti/chamados-service/internal/api/http/handlers"
	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Attachments    *handlers.AttachmentsHandler
	ServiceTypes   *handlers.ServiceTypesHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/auth/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/auth/logout", cfg.Auth.Logout)
	protected.Post("/auth/refresh", cfg.Auth.Refresh)

	usuarios := protected.Group("/usuarios")
	usuarios.Get("/perfil", cfg.Users.Profile)
	usuarios.Put("/perfil", cfg.Users.UpdateProfile)
	usuarios.Post("/alterar-senha", cfg.Users.ChangePassword)
	usuarios.Get("/tecnicos",
		auth.RequireRole(domain.RoleTechnician, domain.RoleAdmin), cfg.Users.ListTechnicians)
	usuarios.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	usuarios.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.Create)
	usuarios.Get("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Get)
	usuarios.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Update)
	usuarios.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Delete)

	chamados := protected.Group("/chamados")
	chamados.Get("/", cfg.Tickets.List)
	chamados.Post("/", cfg.Tickets.Create)
	chamados.Get("/meus-chamados", cfg.Tickets.ListMine)
	chamados.Get("/chamados-tecnico",
		auth.RequireRole(domain.RoleTechnician), cfg.Tickets.ListAssigned)
	chamados.Get("/:id", cfg.Tickets.Get)
	chamados.Put("/:id", cfg.Tickets.Update)
	chamados.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	chamados.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.Delete)
	chamados.Get("/:id/historico", cfg.Tickets.History)
	chamados.Post("/:id/anexos", cfg.Attachments.Upload)

	anexos := protected.Group("/anexos")
	anexos.Get("/:id/download", cfg.Attachments.Download)
	anexos.Delete("/:id", cfg.Attachments.Delete)

	tipos := protected.Group("/tipos-servico")
	tipos.Get("/", cfg.ServiceTypes.List)
	tipos.Get("/:id", cfg.ServiceTypes.Get)
	tipos.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.ServiceTypes.Create)
	tipos.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.ServiceTypes.Update)
	tipos.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.ServiceTypes.Delete)

	protected.Get("/dashboard/stats", cfg.Stats.Dashboard)
}
