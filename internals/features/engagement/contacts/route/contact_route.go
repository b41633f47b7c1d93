package route

import (
	"amanah_backend/internals/features/engagement/contacts/controller"
	"amanah_backend/internals/helpers/mailer"
	rateLimiter "amanah_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ContactRoutes(api fiber.Router, db *gorm.DB, m mailer.Mailer, notifyAddress string) {
	ctrl := controller.NewContactController(db, m, notifyAddress)
	api.Post("/contact", rateLimiter.FormRateLimiter(), ctrl.Submit)
}

func AdminContactRoutes(admin fiber.Router, db *gorm.DB, m mailer.Mailer) {
	ctrl := controller.NewContactController(db, m, "")

	contacts := admin.Group("/contacts")
	contacts.Get("/", ctrl.List)
	contacts.Get("/:id", ctrl.Get)
	contacts.Patch("/:id/resolve", ctrl.Resolve)
	contacts.Post("/:id/reply", ctrl.Reply)
	contacts.Delete("/:id", ctrl.Delete)
}
