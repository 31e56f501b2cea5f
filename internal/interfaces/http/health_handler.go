package http

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck verifica una dependencia (store, redis).
type HealthCheck func(ctx context.Context) error

// Health GET /health. Responde 503 si alguna dependencia falla; nunca expone el error.
func Health(checks map[string]HealthCheck) fiber.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		body := fiber.Map{}
		ok := true
		for _, name := range names {
			status := "connected"
			if err := checks[name](ctx); err != nil {
				status = "error"
				ok = false
			}
			body[name] = status
		}
		body["ok"] = ok

		code := fiber.StatusOK
		if !ok {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(body)
	}
}
