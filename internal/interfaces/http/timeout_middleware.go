package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestTimeout acota cada petición: los handlers pasan c.UserContext() a los casos de uso,
// así las consultas al store se cancelan al vencer el plazo.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
