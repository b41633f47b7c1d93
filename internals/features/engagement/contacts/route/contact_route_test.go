package route

import (
	"errors"
	"net/mail"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/engagement/contacts/model"
	"amanah_backend/internals/helpers/mailer"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func TestContactResolveAndReply(t *testing.T) {
	db := testutil.NewDB(t, &model.ContactSubmissionModel{})
	outbox := mailer.NewConsoleMailer(mail.Address{Address: "no-reply@example.org"})
	app := testutil.NewApp()
	api := app.Group("/api")
	ContactRoutes(api, db, outbox, "office@example.org")
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("contacts"), constants.AdminAndAbove...),
	)
	AdminContactRoutes(admin, db, outbox)
	tok := testutil.TokenFor(t, testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123"))

	res := testutil.DoJSON(t, app, "POST", "/api/contact", map[string]any{
		"name": "Rahmat", "email": "rahmat@example.org", "subject": "Zakat question", "message": "Is gold jewellery zakatable?",
	}, "")
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)
	require.Eventually(t, func() bool { return len(outbox.Sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	notice := outbox.Sent()[0]
	assert.Equal(t, "office@example.org", notice.To[0].Address)
	assert.Equal(t, "rahmat@example.org", notice.ReplyTo)

	path := "/api/admin/contacts/" + id
	res = testutil.DoJSON(t, app, "PATCH", path+"/resolve", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, true, res.Data()["is_resolved"])
	assert.NotNil(t, res.Data()["resolved_at"])

	res = testutil.DoJSON(t, app, "PATCH", path+"/resolve", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, false, res.Data()["is_resolved"])
	assert.Nil(t, res.Data()["resolved_at"])

	res = testutil.DoJSON(t, app, "GET", "/api/admin/contacts?resolved=false", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	outbox.FailWith = errors.New("smtp down")
	res = testutil.DoJSON(t, app, "POST", path+"/reply", map[string]any{"message": "Yes, above nisab."}, tok)
	assert.Equal(t, fiber.StatusBadGateway, res.Status)
	var stored model.ContactSubmissionModel
	require.NoError(t, db.First(&stored, "contact_id = ?", id).Error)
	assert.Empty(t, stored.ContactReplyMessage)

	outbox.FailWith = nil
	res = testutil.DoJSON(t, app, "POST", path+"/reply", map[string]any{"message": "Yes, above nisab."}, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Yes, above nisab.", res.Data()["reply_message"])
	assert.Equal(t, true, res.Data()["is_resolved"])
	sent := outbox.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "Re: Zakat question", sent[1].Subject)
	assert.Equal(t, "rahmat@example.org", sent[1].To[0].Address)

	res = testutil.DoJSON(t, app, "DELETE", path, nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
}
