// middleware/auth.go
package middleware

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the Telegram user ID resolved by the
// Gateway from X-User-ID and stores it as an int64 in c.Locals("user_id").
// Routes behind this middleware reject requests without a user identity.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-User-ID")
		if raw == "" {
			log.Printf("❌ [USER_CTX] X-User-ID missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID == 0 {
			log.Printf("❌ [USER_CTX] X-User-ID is not a valid user id: %q", raw)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "X-User-ID must be a numeric Telegram user id",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
