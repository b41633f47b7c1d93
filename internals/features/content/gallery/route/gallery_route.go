package route

import (
	"amanah_backend/internals/features/content/gallery/controller"
	"amanah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GalleryRoutes(api fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewGalleryController(db, media)
	api.Get("/gallery", ctrl.List)
}

func AdminGalleryRoutes(admin fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewGalleryController(db, media)

	gallery := admin.Group("/gallery")
	gallery.Get("/", ctrl.AdminList)
	gallery.Post("/", ctrl.Create)
	gallery.Get("/:id", ctrl.AdminGet)
	gallery.Patch("/:id", ctrl.Update)
	gallery.Delete("/:id", ctrl.Delete)
}
