package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	corsAllowMethods = "GET, POST, PATCH, OPTIONS"
	corsAllowHeaders = "Content-Type, dev-password, " + traceIDHeader
)

// CORSConfig holds CORS configuration (suffix + dev password).
type CORSConfig struct {
	AllowedSuffix string
	DevPassword   string
}

// CORS admits origins ending with AllowedSuffix, local development origins
// and requests carrying the dev-password header. Preflights from admitted
// origins are answered here with 204.
func CORS(cfg CORSConfig) fiber.Handler {
	suffix := strings.ToLower(cfg.AllowedSuffix)
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin == "" {
			return c.Next()
		}
		if !corsAllowed(c, origin, suffix, cfg.DevPassword) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error": fiber.Map{
					"message":    "Not allowed by CORS",
					"statusCode": fiber.StatusForbidden,
					"details":    fiber.Map{},
				},
			})
		}
		c.Set("Access-Control-Allow-Origin", origin)
		c.Set("Access-Control-Allow-Credentials", "true")
		c.Set("Access-Control-Expose-Headers", traceIDHeader)
		c.Vary("Origin")
		if c.Method() == fiber.MethodOptions {
			c.Set("Access-Control-Allow-Methods", corsAllowMethods)
			c.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func corsAllowed(c *fiber.Ctx, origin, suffix, devPassword string) bool {
	lower := strings.ToLower(origin)
	switch {
	case strings.HasPrefix(lower, "http://localhost:"), strings.HasPrefix(lower, "http://127.0.0.1:"):
		return true
	case suffix != "" && strings.HasSuffix(lower, suffix):
		return true
	case devPassword != "" && c.Get("dev-password") == devPassword:
		return true
	}
	return false
}
