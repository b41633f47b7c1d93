package route

import (
	"net/mail"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/engagement/volunteers/model"
	"amanah_backend/internals/helpers/mailer"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func TestVolunteerApplyAndReview(t *testing.T) {
	db := testutil.NewDB(t, &model.VolunteerModel{})
	outbox := mailer.NewConsoleMailer(mail.Address{Address: "no-reply@example.org"})
	app := testutil.NewApp()
	api := app.Group("/api")
	VolunteerRoutes(api, db, outbox)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("volunteers"), constants.AdminAndAbove...),
	)
	AdminVolunteerRoutes(admin, db, outbox)
	tok := testutil.TokenFor(t, testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123"))

	res := testutil.DoJSON(t, app, "POST", "/api/volunteers", map[string]any{
		"full_name":    "Siti Aminah",
		"email":        "Siti@Example.org",
		"interests":    "teaching, logistics",
		"availability": "weekends",
	}, "")
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "pending", res.Data()["status"])
	assert.Equal(t, "siti@example.org", res.Data()["email"])
	id := res.Data()["id"].(string)

	require.Eventually(t, func() bool { return len(outbox.Sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "siti@example.org", outbox.Sent()[0].To[0].Address)

	res = testutil.DoJSON(t, app, "POST", "/api/volunteers", map[string]any{"full_name": "No Email"}, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, res.Status)

	res = testutil.DoJSON(t, app, "GET", "/api/admin/volunteers", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = testutil.DoJSON(t, app, "PATCH", "/api/admin/volunteers/"+id+"/status", map[string]any{"status": "hired"}, tok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, res.Status)

	res = testutil.DoJSON(t, app, "PATCH", "/api/admin/volunteers/"+id+"/status", map[string]any{"status": "approved"}, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))

	res = testutil.DoJSON(t, app, "GET", "/api/admin/volunteers?status=approved", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/volunteers/"+id, nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/volunteers/"+id, nil, tok)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}
