package route

import (
	"amanah_backend/internals/features/engagement/newsletter/controller"
	"amanah_backend/internals/helpers/mailer"
	rateLimiter "amanah_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NewsletterRoutes(api fiber.Router, db *gorm.DB, m mailer.Mailer) {
	ctrl := controller.NewNewsletterController(db, m)

	newsletter := api.Group("/newsletter")
	newsletter.Post("/subscribe", rateLimiter.FormRateLimiter(), ctrl.Subscribe)
	newsletter.Get("/unsubscribe", ctrl.Unsubscribe)
	newsletter.Post("/unsubscribe", ctrl.Unsubscribe)
}

func AdminNewsletterRoutes(admin fiber.Router, db *gorm.DB, m mailer.Mailer) {
	ctrl := controller.NewNewsletterController(db, m)

	newsletter := admin.Group("/newsletter")
	newsletter.Get("/", ctrl.List)
	newsletter.Delete("/:id", ctrl.Delete)
}
