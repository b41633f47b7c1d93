package details

import (
	homeRoute "amanah_backend/internals/features/home/route"
	mediaRoute "amanah_backend/internals/features/media/route"
	mediaService "amanah_backend/internals/features/media/service"
	settingRoute "amanah_backend/internals/features/settings/route"
	"amanah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SiteRoutes mounts the landing page, settings, the admin dashboard and media management.
func SiteRoutes(api, admin fiber.Router, db *gorm.DB, media *storage.Processor, mediaSvc *mediaService.MediaService) {
	homeRoute.HomeRoutes(api, db)
	homeRoute.AdminDashboardRoutes(admin, db)

	settingRoute.SettingRoutes(api, db)
	settingRoute.AdminSettingRoutes(admin, db)

	mediaRoute.AdminMediaRoutes(admin, media, mediaSvc)
}
