package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "amanah_backend/internals/helpers"
	helperAuth "amanah_backend/internals/helpers/auth"
)

// OnlyRoles must run after AuthMiddleware.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	if customMessage == "" {
		customMessage = "forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role := helperAuth.GetRole(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized: missing role information")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}
