package route

import (
	"amanah_backend/internals/features/content/events/controller"
	"amanah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EventRoutes(api fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewEventController(db, media)

	events := api.Group("/events")
	events.Get("/", ctrl.List)
	events.Get("/upcoming", ctrl.Upcoming)
	events.Get("/past", ctrl.Past)
	events.Get("/:slug", ctrl.GetBySlug)
}

// AdminEventRoutes expects admin to already carry auth + role checks.
func AdminEventRoutes(admin fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewEventController(db, media)

	events := admin.Group("/events")
	events.Get("/", ctrl.AdminList)
	events.Get("/:id", ctrl.AdminGet)
	events.Post("/", ctrl.Create)
	events.Patch("/:id", ctrl.Update)
	events.Delete("/:id", ctrl.Delete)
}
