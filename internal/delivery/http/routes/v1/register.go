package v1

import (
	"skill-insight/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Catalog      *handler.CatalogHandler
	SkillRecords *handler.SkillRecordHandler
	Academic     *handler.AcademicHandler
	Analytics    *handler.AnalyticsHandler
}

// Register mounts the v1 API. Public routes are registered before the auth
// middleware so it never runs for them.
func Register(r fiber.Router, h Handlers, requireAuth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Catalog != nil {
		h.Catalog.RegisterPublicRoutes(r.Group("/catalog"))
	}

	protected := r.Group("", requireAuth)

	if h.Catalog != nil {
		h.Catalog.RegisterProtectedRoutes(protected.Group("/catalog"))
	}
	RegisterLearners(protected, h.Profile, h.SkillRecords, h.Academic)
	RegisterAnalytics(protected, h.Analytics)
}
