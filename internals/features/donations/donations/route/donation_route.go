package route

import (
	"amanah_backend/internals/features/donations/donations/controller"
	"amanah_backend/internals/features/donations/donations/service"
	rateLimiter "amanah_backend/internals/middlewares"
	authMiddleware "amanah_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DonationRoutes mounts the public donation endpoints and gateway webhooks.
func DonationRoutes(api fiber.Router, db *gorm.DB, svc *service.DonationService) {
	ctrl := controller.NewDonationController(db, svc)

	donations := api.Group("/donations")
	donations.Post("/", rateLimiter.FormRateLimiter(), authMiddleware.OptionalAuth(db), ctrl.CreateDonation)
	donations.Post("/checkout", rateLimiter.FormRateLimiter(), authMiddleware.OptionalAuth(db), ctrl.Checkout)
	donations.Get("/recent", ctrl.Recent)

	webhook := donations.Group("/webhook")
	webhook.Post("/stripe", ctrl.StripeWebhook)
	webhook.Post("/midtrans", ctrl.MidtransWebhook)

	requireAuth := authMiddleware.AuthMiddleware(db)
	donations.Get("/mine", requireAuth, ctrl.Mine)
	donations.Get("/:id/certificate", requireAuth, ctrl.Certificate)
}

// AdminDonationRoutes expects admin to already carry auth + role checks.
func AdminDonationRoutes(admin fiber.Router, db *gorm.DB, svc *service.DonationService) {
	ctrl := controller.NewDonationController(db, svc)

	donations := admin.Group("/donations")
	donations.Get("/", ctrl.AdminList)
	donations.Get("/stats", ctrl.Stats)
	donations.Get("/:id", ctrl.AdminGet)
	donations.Patch("/:id", ctrl.AdminUpdate)
	donations.Delete("/:id", ctrl.AdminDelete)
}
