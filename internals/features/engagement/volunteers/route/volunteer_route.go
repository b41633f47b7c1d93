package route

import (
	"amanah_backend/internals/features/engagement/volunteers/controller"
	"amanah_backend/internals/helpers/mailer"
	rateLimiter "amanah_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func VolunteerRoutes(api fiber.Router, db *gorm.DB, m mailer.Mailer) {
	ctrl := controller.NewVolunteerController(db, m)
	api.Post("/volunteers", rateLimiter.FormRateLimiter(), ctrl.Apply)
}

func AdminVolunteerRoutes(admin fiber.Router, db *gorm.DB, m mailer.Mailer) {
	ctrl := controller.NewVolunteerController(db, m)

	volunteers := admin.Group("/volunteers")
	volunteers.Get("/", ctrl.List)
	volunteers.Patch("/:id/status", ctrl.UpdateStatus)
	volunteers.Delete("/:id", ctrl.Delete)
}
