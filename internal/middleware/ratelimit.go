package middleware

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/fatales/internal/cache"
)

// RateLimit allows limit requests per client IP inside window for the named
// scope. Counter failures let the request through.
func RateLimit(counter cache.Counter, scope string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if counter == nil || limit <= 0 {
			return c.Next()
		}

		key := "rate_limit:" + scope + ":" + c.IP()
		count, err := counter.Hit(c.UserContext(), key, window)
		if err != nil {
			log.Printf("[RateLimit] %s: %v", key, err)
			return c.Next()
		}

		if count > int64(limit) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests")
		}
		return c.Next()
	}
}
