package route

import (
	"amanah_backend/internals/features/media/controller"
	"amanah_backend/internals/features/media/service"
	"amanah_backend/internals/helpers/storage"

	"github.com/gofiber/fiber/v2"
)

// AdminMediaRoutes expects admin to already carry auth + role checks.
func AdminMediaRoutes(admin fiber.Router, media *storage.Processor, svc *service.MediaService) {
	ctrl := controller.NewMediaController(media, svc)

	g := admin.Group("/media")
	g.Get("/", ctrl.List)
	g.Get("/usage", ctrl.Usage)
	g.Post("/upload", ctrl.Upload)
	g.Post("/cleanup", ctrl.Cleanup)
	g.Delete("/", ctrl.Delete)
}
