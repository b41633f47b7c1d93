package details

import (
	contactRoute "amanah_backend/internals/features/engagement/contacts/route"
	newsletterRoute "amanah_backend/internals/features/engagement/newsletter/route"
	volunteerRoute "amanah_backend/internals/features/engagement/volunteers/route"
	"amanah_backend/internals/helpers/mailer"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EngagementRoutes(api, admin fiber.Router, db *gorm.DB, m mailer.Mailer, notifyAddress string) {
	volunteerRoute.VolunteerRoutes(api, db, m)
	volunteerRoute.AdminVolunteerRoutes(admin, db, m)

	contactRoute.ContactRoutes(api, db, m, notifyAddress)
	contactRoute.AdminContactRoutes(admin, db, m)

	newsletterRoute.NewsletterRoutes(api, db, m)
	newsletterRoute.AdminNewsletterRoutes(admin, db, m)
}
