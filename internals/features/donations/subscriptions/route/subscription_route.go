package route

import (
	"amanah_backend/internals/features/donations/subscriptions/controller"
	"amanah_backend/internals/features/donations/subscriptions/service"
	rateLimiter "amanah_backend/internals/middlewares"
	authMiddleware "amanah_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SubscriptionRoutes(api fiber.Router, db *gorm.DB, svc *service.SubscriptionService) {
	ctrl := controller.NewSubscriptionController(db, svc)

	subs := api.Group("/donations/subscriptions")
	subs.Post("/checkout", rateLimiter.FormRateLimiter(), authMiddleware.OptionalAuth(db), ctrl.Checkout)
}

// AdminSubscriptionRoutes expects admin to already carry auth + role checks.
func AdminSubscriptionRoutes(admin fiber.Router, db *gorm.DB, svc *service.SubscriptionService) {
	ctrl := controller.NewSubscriptionController(db, svc)

	subs := admin.Group("/subscriptions")
	subs.Get("/", ctrl.List)
	subs.Post("/:id/cancel", ctrl.Cancel)
}
