package route

import (
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/engagement/newsletter/model"
	"amanah_backend/internals/helpers/mailer"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func TestNewsletterSubscribeIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t, &model.NewsletterSubscriptionModel{})
	outbox := mailer.NewConsoleMailer(mail.Address{Address: "no-reply@example.org"})
	app := testutil.NewApp()
	api := app.Group("/api")
	NewsletterRoutes(api, db, outbox)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("newsletter"), constants.AdminAndAbove...),
	)
	AdminNewsletterRoutes(admin, db, outbox)
	tok := testutil.TokenFor(t, testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123"))

	res := testutil.DoJSON(t, app, "POST", "/api/newsletter/subscribe", map[string]any{"email": "Dewi@Example.org", "name": "Dewi"}, "")
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "dewi@example.org", res.Data()["email"])
	require.Eventually(t, func() bool { return len(outbox.Sent()) == 1 }, 2*time.Second, 10*time.Millisecond)

	var sub model.NewsletterSubscriptionModel
	require.NoError(t, db.First(&sub, "newsletter_email = ?", "dewi@example.org").Error)
	require.NotEmpty(t, sub.NewsletterUnsubscribeToken)
	assert.True(t, strings.Contains(outbox.Sent()[0].TextContent, sub.NewsletterUnsubscribeToken))

	res = testutil.DoJSON(t, app, "POST", "/api/newsletter/subscribe", map[string]any{"email": "dewi@example.org"}, "")
	assert.Equal(t, fiber.StatusOK, res.Status)
	var n int64
	db.Model(&model.NewsletterSubscriptionModel{}).Count(&n)
	assert.EqualValues(t, 1, n)

	res = testutil.DoJSON(t, app, "GET", "/api/newsletter/unsubscribe?token="+sub.NewsletterUnsubscribeToken, nil, "")
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	res = testutil.DoJSON(t, app, "GET", "/api/newsletter/unsubscribe?token="+sub.NewsletterUnsubscribeToken, nil, "")
	assert.Equal(t, fiber.StatusOK, res.Status)
	res = testutil.DoJSON(t, app, "POST", "/api/newsletter/unsubscribe", map[string]any{"token": "nope"}, "")
	assert.Equal(t, fiber.StatusNotFound, res.Status)

	res = testutil.DoJSON(t, app, "GET", "/api/admin/newsletter?active=true", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Empty(t, res.List())

	// subscribing again reactivates the same row
	res = testutil.DoJSON(t, app, "POST", "/api/newsletter/subscribe", map[string]any{"email": "dewi@example.org"}, "")
	require.Equal(t, fiber.StatusCreated, res.Status)
	assert.Equal(t, true, res.Data()["is_active"])
	assert.Equal(t, "Dewi", res.Data()["name"])
	assert.Equal(t, sub.NewsletterID.String(), res.Data()["id"])

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/newsletter/"+sub.NewsletterID.String(), nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/newsletter/"+sub.NewsletterID.String(), nil, tok)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}
