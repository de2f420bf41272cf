package routes

import (
	"skill-insight/internal/delivery/http/handler"
	v1 "skill-insight/internal/delivery/http/routes/v1"
	"skill-insight/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Health      *handler.HealthHandler
	WS          *ws.Handler
	V1          v1.Handlers
	RequireAuth fiber.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerMetrics(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS != nil {
		app.Get("/ws/analytics", r.WS.HandleAnalyticsWS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	requireAuth := r.RequireAuth
	if requireAuth == nil {
		requireAuth = func(c fiber.Ctx) error { return fiber.ErrUnauthorized }
	}
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.V1, requireAuth)
}
