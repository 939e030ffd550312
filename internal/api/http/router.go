package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/riding-hub/internal/api/http/handlers"
	"github.com/spec-kit/riding-hub/internal/auth"
	"github.com/spec-kit/riding-hub/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Site           *handlers.SiteHandler
	Users          *handlers.UsersHandler
	SignOffs       *handlers.SignOffsHandler
	Advisors       *handlers.AdvisorsHandler
	Shifts         *handlers.ShiftsHandler
	Messages       *handlers.MessagesHandler
	Curriculum     *handlers.CurriculumHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	SiteGate       *auth.SiteGate
}

// RegisterRoutes wires HTTP routes. Everything except health probes
// and the unlock endpoint sits behind the site gate; member endpoints
// additionally require a logged-in user.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/site/unlock", cfg.Site.Unlock)

	gated := app.Group("", cfg.SiteGate.Middleware())

	authGroup := gated.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	protected := gated.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	protected.Get("/users/me", cfg.Users.Me)
	protected.Post("/users/me/password", cfg.Users.ChangePassword)
	protected.Put("/users/:id/photo", cfg.Users.UpdateProfilePhoto)

	protected.Get("/curriculum", cfg.Curriculum.Sections)
	protected.Get("/curriculum/overview", cfg.Curriculum.Overview)

	protected.Post("/explorers/:id/signoffs", cfg.SignOffs.Request)
	protected.Get("/explorers/:id/progress", cfg.SignOffs.Progress)
	protected.Get("/explorers/:id/advisors", cfg.Advisors.Search)
	protected.Post("/explorers/:id/shifts", cfg.Shifts.Log)
	protected.Get("/explorers/:id/shifts", cfg.Shifts.List)
	protected.Get("/explorers/:id/shifts/monthly", cfg.Shifts.MonthlyHours)
	protected.Delete("/shifts/:id", cfg.Shifts.Delete)

	protected.Post("/signoffs/:id/sign", cfg.SignOffs.Sign)
	protected.Delete("/signoffs/:id", cfg.SignOffs.Cancel)

	advisorGroup := protected.Group("/advisors", auth.RequireRole(domain.RoleAdvisor, domain.RoleAdmin))
	advisorGroup.Get("/me/pending", cfg.SignOffs.Pending)
	advisorGroup.Get("/leaderboard", cfg.Advisors.Leaderboard)
	advisorGroup.Get("/:name/activity", cfg.Advisors.Activity)

	protected.Post("/messages", cfg.Messages.Send)
	protected.Get("/messages", cfg.Messages.Conversation)

	adminGroup := protected.Group("/admin", auth.RequireAdmin())
	adminGroup.Get("/users", cfg.Admin.ListUsers)
	adminGroup.Post("/users", cfg.Admin.AddUser)
	adminGroup.Delete("/users/:id", cfg.Admin.DeleteUser)
	adminGroup.Post("/users/:id/password", cfg.Admin.ResetPassword)
	adminGroup.Get("/leaderboard", cfg.Admin.Leaderboard)
	adminGroup.Get("/export", cfg.Admin.Export)
	adminGroup.Get("/messages", cfg.Messages.Log)
	adminGroup.Post("/site-password", cfg.Admin.RotateSitePassword)
	adminGroup.Get("/app-version", cfg.Admin.AppVersion)
	adminGroup.Put("/app-version", cfg.Admin.SetAppVersion)
}
