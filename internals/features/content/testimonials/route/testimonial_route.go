package route

import (
	"amanah_backend/internals/features/content/testimonials/controller"
	"amanah_backend/internals/helpers/storage"
	rateLimiter "amanah_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TestimonialRoutes(api fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewTestimonialController(db, media)

	testimonials := api.Group("/testimonials")
	testimonials.Get("/", ctrl.List)
	testimonials.Post("/", rateLimiter.FormRateLimiter(), ctrl.Submit)
}

// AdminTestimonialRoutes expects admin to already carry auth + role checks.
func AdminTestimonialRoutes(admin fiber.Router, db *gorm.DB, media *storage.Processor) {
	ctrl := controller.NewTestimonialController(db, media)

	testimonials := admin.Group("/testimonials")
	testimonials.Get("/", ctrl.AdminList)
	testimonials.Post("/", ctrl.Create)
	testimonials.Patch("/:id", ctrl.Update)
	testimonials.Patch("/:id/approve", ctrl.Approve)
	testimonials.Delete("/:id", ctrl.Delete)
}
