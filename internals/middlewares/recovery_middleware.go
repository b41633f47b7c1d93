package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// RecoveryMiddleware turns panics into 500 and logs them with the stack.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error().
				Str("path", c.Path()).
				Str("method", c.Method()).
				Str("panic", fmt.Sprint(e)).
				Msg("recovered from panic")
		},
	})
}
