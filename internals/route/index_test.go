package routes

import (
	"net/mail"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "amanah_backend/internals/databases"
	donationModel "amanah_backend/internals/features/donations/donations/model"
	donationService "amanah_backend/internals/features/donations/donations/service"
	subscriptionService "amanah_backend/internals/features/donations/subscriptions/service"
	mediaService "amanah_backend/internals/features/media/service"
	"amanah_backend/internals/helpers/mailer"
	"amanah_backend/internals/testutil"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db := testutil.NewDB(t, database.Models()...)
	media, store := testutil.NewMedia()
	outbox := mailer.NewConsoleMailer(mail.Address{Address: "no-reply@example.org"})
	donations := &donationService.DonationService{
		DB:       db,
		Mailer:   outbox,
		Gateways: donationService.NewGateways(donationModel.GatewayStripe),
		Currency: "usd",
	}
	deps := &Deps{
		Mailer:        outbox,
		Media:         media,
		MediaService:  mediaService.NewMediaService(db, store),
		Donations:     donations,
		Subscriptions: subscriptionService.NewSubscriptionService(db, donations),
		NotifyAddress: "staff@example.org",
	}

	app := testutil.NewApp()
	SetupRoutes(app, db, deps)
	return app
}

func TestHealthAndBanner(t *testing.T) {
	app := newTestApp(t)

	res := testutil.DoJSON(t, app, "GET", "/health", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "ok", res.Body["status"])
	assert.Equal(t, "connected", res.Body["database"])

	res = testutil.DoJSON(t, app, "GET", "/", nil, "")
	assert.Equal(t, fiber.StatusOK, res.Status)
	assert.Contains(t, string(res.Raw), "API is running")
}

func TestRoutesMountedUnderBothPrefixes(t *testing.T) {
	app := newTestApp(t)

	for _, prefix := range []string{"/api", "/api/v1"} {
		for _, path := range []string{"/home", "/programs", "/events/upcoming", "/settings", "/slides", "/gallery"} {
			res := testutil.DoJSON(t, app, "GET", prefix+path, nil, "")
			assert.Equal(t, fiber.StatusOK, res.Status, prefix+path)
		}
		for _, path := range []string{"/admin/dashboard", "/admin/media", "/admin/donations"} {
			res := testutil.DoJSON(t, app, "GET", prefix+path, nil, "")
			assert.Equal(t, fiber.StatusUnauthorized, res.Status, prefix+path)
		}
	}
}
