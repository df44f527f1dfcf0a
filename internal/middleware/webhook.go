package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// POSAuthMiddleware guards the POS purchase webhook with a shared
// secret in the x-auth-token header.
func POSAuthMiddleware(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "webhook token not configured")
		}
		supplied := c.Get("x-auth-token")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid webhook token")
		}
		return c.Next()
	}
}

// CronAuthMiddleware guards the decay trigger. The scheduler may send
// the secret as a Bearer header or a token query parameter.
func CronAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}

		supplied := c.Query("token")
		if auth := c.Get("Authorization"); auth != "" {
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				supplied = parts[1]
			}
		}

		if subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid cron token")
		}
		return c.Next()
	}
}
