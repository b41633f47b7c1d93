// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the configured frontends. A "*" entry disables
// credentials since browsers reject that combination.
func CorsMiddleware(origins []string) fiber.Handler {
	allowCreds := true
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			allowCreds = false
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Stripe-Signature, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, Content-Disposition",
		AllowCredentials: allowCreds,
	})
}

// ParseOrigins splits CORS_ORIGINS and always includes the frontend URL.
func ParseOrigins(raw, frontendURL string) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, o := range append(strings.Split(raw, ","), frontendURL) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}
