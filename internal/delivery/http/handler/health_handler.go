package handler

import (
	"context"
	"time"

	"skill-insight/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness. The database is required; the cache is
// optional and only reported.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"database": "ok", "cache": "ok"}
	code := fiber.StatusOK

	if h.db == nil {
		status["database"] = "unconfigured"
		code = fiber.StatusServiceUnavailable
	} else if err := h.db.Ping(ctx); err != nil {
		status["database"] = "down"
		code = fiber.StatusServiceUnavailable
	}

	if h.cache == nil {
		status["cache"] = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		status["cache"] = "bypass"
	}

	return response.Success(c, code, "", status)
}
