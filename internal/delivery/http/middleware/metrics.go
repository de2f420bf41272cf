package middleware

import (
	"strconv"

	"skill-insight/internal/platform/metrics"

	"github.com/gofiber/fiber/v3"
)

// Metrics counts requests by method, route pattern and status. Route
// patterns keep label cardinality bounded.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _, _ = normalizeError(err)
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		metrics.ObserveHTTP(c.Method(), route, strconv.Itoa(status))
		return err
	}
}
