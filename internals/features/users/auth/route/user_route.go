package route

import (
	"amanah_backend/internals/features/users/auth/controller"
	"amanah_backend/internals/helpers/mailer"
	rateLimiter "amanah_backend/internals/middlewares"
	authMiddleware "amanah_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes mounts /auth under the given API root.
func AuthRoutes(api fiber.Router, db *gorm.DB, m mailer.Mailer) {
	ctrl := controller.NewAuthController(db, m)

	auth := api.Group("/auth")
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), ctrl.Register)
	auth.Get("/verify-email", ctrl.VerifyEmail)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login-google", rateLimiter.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/logout", authMiddleware.OptionalAuth(db), ctrl.Logout)

	protected := auth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Get("/me", ctrl.Me)
	protected.Post("/change-password", ctrl.ChangePassword)
}

// AdminUserRoutes expects admin to already carry auth + role checks.
func AdminUserRoutes(admin fiber.Router, db *gorm.DB, m mailer.Mailer) {
	ctrl := controller.NewAuthController(db, m)

	users := admin.Group("/users")
	users.Get("/", ctrl.ListUsers)
	users.Post("/", ctrl.CreateUser)
	users.Patch("/:id", ctrl.UpdateUser)
	users.Delete("/:id", ctrl.DeleteUser)
}
