package details

import (
	donationRoute "amanah_backend/internals/features/donations/donations/route"
	donationService "amanah_backend/internals/features/donations/donations/service"
	subscriptionRoute "amanah_backend/internals/features/donations/subscriptions/route"
	subscriptionService "amanah_backend/internals/features/donations/subscriptions/service"
	zakatRoute "amanah_backend/internals/features/donations/zakat/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DonationRoutes mounts one-time donations, recurring subscriptions and the zakat calculator.
func DonationRoutes(api, admin fiber.Router, db *gorm.DB, donations *donationService.DonationService, subs *subscriptionService.SubscriptionService) {
	// subscriptions first: /donations/subscriptions/* must win over /donations/:id/*
	subscriptionRoute.SubscriptionRoutes(api, db, subs)
	subscriptionRoute.AdminSubscriptionRoutes(admin, db, subs)

	donationRoute.DonationRoutes(api, db, donations)
	donationRoute.AdminDonationRoutes(admin, db, donations)

	zakatRoute.ZakatRoutes(api)
}
