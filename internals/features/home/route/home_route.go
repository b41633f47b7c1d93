package route

import (
	"amanah_backend/internals/features/home/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func HomeRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewHomeController(db)
	api.Get("/home", ctrl.Home)
}

func AdminDashboardRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewHomeController(db)
	admin.Get("/dashboard", ctrl.Dashboard)
}
