package route

import (
	"amanah_backend/internals/features/content/slideshow/controller"
	"amanah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SlideRoutes(api fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewSlideController(db, media)
	api.Get("/slides", ctrl.List)
}

func AdminSlideRoutes(admin fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewSlideController(db, media)

	slides := admin.Group("/slides")
	slides.Get("/", ctrl.AdminList)
	slides.Post("/", ctrl.Create)
	// registered before /:id so "reorder" is not parsed as an id
	slides.Put("/reorder", ctrl.Reorder)
	slides.Patch("/:id", ctrl.Update)
	slides.Delete("/:id", ctrl.Delete)
}
