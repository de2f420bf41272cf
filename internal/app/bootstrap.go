package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"skill-insight/internal/config"
	"skill-insight/internal/delivery/http/handler"
	"skill-insight/internal/delivery/http/middleware"
	"skill-insight/internal/delivery/http/routes"
	v1 "skill-insight/internal/delivery/http/routes/v1"
	"skill-insight/internal/platform/logger"
	"skill-insight/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ErrorHandler: middleware.ErrorHandler,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the
// app together with a cleanup that stops the hub and releases connections.
func Bootstrap(cfg config.Config, log *slog.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("container: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *slog.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.Metrics())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	var cachePinger handler.Pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}

	registry := &routes.Registry{
		Health:      handler.NewHealthHandler(c.DB, cachePinger),
		WS:          ws.NewHandler(c.Hub, c.JWT, logger.StdLogger(c.Logger, "ws")),
		RequireAuth: middleware.NewAuthMiddleware(c.JWT).Middleware(),
		V1: v1.Handlers{
			Auth:         handler.NewAuthHandler(c.AuthUC),
			Profile:      handler.NewProfileHandler(c.LearnerUC),
			Catalog:      handler.NewCatalogHandler(c.CatalogUC),
			SkillRecords: handler.NewSkillRecordHandler(c.SkillRecordUC),
			Academic:     handler.NewAcademicHandler(c.AcademicUC),
			Analytics:    handler.NewAnalyticsHandler(c.AnalyticsUC),
		},
	}
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
