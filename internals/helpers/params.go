package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" is not a valid uuid")
	}
	return id, nil
}

// ParseDateQuery accepts RFC3339 or YYYY-MM-DD. Empty input returns nil.
func ParseDateQuery(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid date: "+raw)
	}
	return &t, nil
}

func Ptr[T any](v T) *T { return &v }

// StrPtrOrNil returns nil for blank strings.
func StrPtrOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func NowUTC() time.Time { return time.Now().UTC() }
