package route

import (
	"amanah_backend/internals/features/settings/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SettingRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSettingController(db)
	api.Get("/settings", ctrl.Public)
}

func AdminSettingRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSettingController(db)

	settings := admin.Group("/settings")
	settings.Get("/", ctrl.List)
	settings.Put("/:key", ctrl.Upsert)
	settings.Delete("/:key", ctrl.Delete)
}
