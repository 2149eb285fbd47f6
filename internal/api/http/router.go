package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/assetflow/asset-service/internal/api/http/handlers"
	"github.com/assetflow/asset-service/internal/auth"
	"github.com/assetflow/asset-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Assets         *handlers.AssetsHandler
	Requests       *handlers.RequestsHandler
	Assignments    *handlers.AssignmentsHandler
	Affiliations   *handlers.AffiliationsHandler
	Payments       *handlers.PaymentsHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/users", cfg.Users.Register)
	app.Post("/login", cfg.Users.Login)
	app.Get("/packages", cfg.Payments.Packages)
	app.Post("/payments/webhook", cfg.Payments.Webhook)

	authed := app.Group("", cfg.AuthMiddleware.Handle)
	hrOnly := auth.RequireHR()

	authed.Get("/users/:email", cfg.Users.Get)
	authed.Put("/users/:email", cfg.Users.Update)

	authed.Get("/assets", cfg.Assets.List)
	authed.Get("/assets/:id", cfg.Assets.Get)
	authed.Post("/assets", hrOnly, cfg.Assets.Create)
	authed.Put("/assets/:id", hrOnly, cfg.Assets.Update)
	authed.Delete("/assets/:id", hrOnly, cfg.Assets.Delete)

	authed.Post("/requests", cfg.Requests.Submit)
	authed.Get("/requests", cfg.Requests.List)
	authed.Put("/requests/:id", hrOnly, cfg.Requests.Transition)

	authed.Get("/assigned-assets", cfg.Assignments.List)
	authed.Put("/assigned-assets/:id", cfg.Assignments.Return)

	authed.Get("/employee-affiliations", cfg.Affiliations.ListMine)
	authed.Get("/company-employees", hrOnly, cfg.Affiliations.CompanyEmployees)
	authed.Delete("/employee-affiliation", hrOnly, cfg.Affiliations.Remove)

	authed.Get("/payments", hrOnly, cfg.Payments.List)
}
