package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/fatales/internal/utils"
)

const adminContextKey = "currentAdmin"

// AdminAuth validates the bearer token and stores the admin name in context.
func AdminAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		subject, err := utils.ParseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(adminContextKey, subject)
		return c.Next()
	}
}

// CurrentAdmin returns the authenticated admin name.
func CurrentAdmin(c *fiber.Ctx) (string, bool) {
	name, ok := c.Locals(adminContextKey).(string)
	return name, ok && name != ""
}
