// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	helperAuth "amanah_backend/internals/helpers/auth"
)

// AuthMiddleware requires a valid, non-blacklisted JWT of an active user.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authenticate(c, db); err != nil {
			return err
		}
		return c.Next()
	}
}

// OptionalAuth fills the user locals when a valid token is present and
// continues anonymously otherwise.
func OptionalAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.GetRawAccessToken(c) == "" {
			return c.Next()
		}
		if err := authenticate(c, db); err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("optional auth: continuing as anonymous")
			c.Locals(helperAuth.LocUserID, nil)
			c.Locals(helperAuth.LocRole, nil)
		}
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, db *gorm.DB) error {
	tokenString := helperAuth.GetRawAccessToken(c)
	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized: no token provided")
	}

	secret := configs.JWTSecret
	if secret == "" {
		log.Error().Msg("JWT_SECRET is empty")
		return fiber.NewError(fiber.StatusInternalServerError, "missing jwt secret")
	}

	blacklisted, err := helperAuth.IsBlacklisted(c.UserContext(), db, tokenString, secret)
	if err != nil {
		log.Error().Err(err).Msg("blacklist lookup failed")
		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
	if blacklisted {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized: token has been revoked")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}); err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized: token expired")
		}
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized: invalid token")
	}

	userID, err := extractUserID(claims)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized: invalid or missing user id")
	}

	var user struct {
		IsActive bool
		Role     string
		FullName string
	}
	if err := db.WithContext(c.UserContext()).
		Table("users").
		Select("is_active, role, full_name").
		Where("id = ?", userID).
		Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized: user not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
	if !user.IsActive {
		return fiber.NewError(fiber.StatusForbidden, "your account has been deactivated")
	}

	// Role comes from the row so that demotions apply immediately.
	c.Locals(helperAuth.LocUserID, userID.String())
	c.Locals(helperAuth.LocRole, strings.ToLower(user.Role))
	c.Locals(helperAuth.LocUserName, user.FullName)
	c.Locals(helperAuth.LocRawToken, tokenString)
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("no user id")
	}
	return uuid.Parse(strings.TrimSpace(raw))
}
