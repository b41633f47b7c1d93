package middlewares

import (
	"time"

	helper "amanah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter for regular endpoints.
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(120, time.Minute, "too many requests, please try again later")
}

func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, time.Minute, "too many login attempts, please wait a moment")
}

func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "too many sign-up attempts, please wait a few minutes")
}

// Public form posts (contact, volunteer, newsletter, testimonial).
func FormRateLimiter() fiber.Handler {
	return newLimiter(10, 10*time.Minute, "too many submissions, please try again later")
}
