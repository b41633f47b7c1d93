package route

import (
	"amanah_backend/internals/features/content/stories/controller"
	"amanah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StoryRoutes(api fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewStoryController(db, media)

	stories := api.Group("/stories")
	stories.Get("/", ctrl.List)
	stories.Get("/:slug", ctrl.GetBySlug)
}

// AdminStoryRoutes expects admin to already carry auth + role checks.
func AdminStoryRoutes(admin fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewStoryController(db, media)

	stories := admin.Group("/stories")
	stories.Get("/", ctrl.AdminList)
	stories.Get("/:id", ctrl.AdminGet)
	stories.Post("/", ctrl.Create)
	stories.Patch("/:id", ctrl.Update)
	stories.Delete("/:id", ctrl.Delete)
}
