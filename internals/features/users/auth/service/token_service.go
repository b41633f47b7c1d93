// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"amanah_backend/internals/configs"
	authModel "amanah_backend/internals/features/users/auth/model"
)

const accessTTLDefault = 24 * time.Hour

func accessTTL() time.Duration {
	return configs.GetEnvDuration("JWT_ACCESS_TTL", accessTTLDefault)
}

// IssueAccessToken signs an HS256 token with id, role and user_name claims.
func IssueAccessToken(u authModel.UserModel, now time.Time) (string, time.Time, error) {
	if configs.JWTSecret == "" {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	exp := now.Add(accessTTL())
	claims := jwt.MapClaims{
		"id":        u.ID.String(),
		"role":      u.Role,
		"user_name": u.FullName,
		"email":     u.Email,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// TokenExpiry reads exp from a token signed with our secret; zero when unreadable.
func TokenExpiry(raw string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err != nil {
		return time.Time{}
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0).UTC()
	}
	return time.Time{}
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func RandomToken(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
