package helper

import (
	"strings"

	"amanah_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys filled by the JWT middleware.
const (
	LocUserID   = "user_id"
	LocRole     = "userRole"
	LocUserName = "user_name"
	LocRawToken = "raw_token"
)

// GetUserID returns the authenticated user or 401.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := GetOptionalUserID(c); ok {
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
}

func GetOptionalUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func GetRole(c *fiber.Ctx) string {
	r, _ := c.Locals(LocRole).(string)
	return strings.ToLower(strings.TrimSpace(r))
}

func IsAdmin(c *fiber.Ctx) bool {
	switch GetRole(c) {
	case constants.RoleAdmin, constants.RoleSuperAdmin:
		return true
	}
	return false
}

// GetRawAccessToken: Locals (set by middleware), then Bearer header, then cookie.
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	fields := strings.Fields(c.Get("Authorization"))
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return strings.Trim(fields[1], "\"'")
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}
