package details

import (
	authRoute "amanah_backend/internals/features/users/auth/route"
	"amanah_backend/internals/helpers/mailer"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(api, admin fiber.Router, db *gorm.DB, m mailer.Mailer) {
	authRoute.AuthRoutes(api, db, m)
	authRoute.AdminUserRoutes(admin, db, m)
}
