package route

import (
	"amanah_backend/internals/features/content/urgent_needs/controller"
	"amanah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UrgentNeedRoutes(api fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewUrgentNeedController(db, media)

	needs := api.Group("/urgent-needs")
	needs.Get("/", ctrl.List)
	needs.Get("/:id", ctrl.Get)
}

func AdminUrgentNeedRoutes(admin fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewUrgentNeedController(db, media)

	needs := admin.Group("/urgent-needs")
	needs.Get("/", ctrl.AdminList)
	needs.Post("/", ctrl.Create)
	needs.Get("/:id", ctrl.AdminGet)
	needs.Patch("/:id", ctrl.Update)
	needs.Delete("/:id", ctrl.Delete)
}
