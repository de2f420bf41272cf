package v1

import (
	"skill-insight/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterAnalytics(r fiber.Router, analyticsHandler *handler.AnalyticsHandler) {
	if r == nil {
		return
	}
	if analyticsHandler == nil {
		return
	}

	analyticsHandler.RegisterRoutes(r)
}
