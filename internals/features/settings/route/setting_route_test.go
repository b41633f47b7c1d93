package route

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/settings/model"
	"amanah_backend/internals/features/settings/service"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func TestSettingsUpsertAndPublicMap(t *testing.T) {
	db := testutil.NewDB(t, &model.SettingModel{})
	app := testutil.NewApp()
	api := app.Group("/api")
	SettingRoutes(api, db)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("settings"), constants.AdminAndAbove...),
	)
	AdminSettingRoutes(admin, db)
	tok := testutil.TokenFor(t, testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123"))

	require.NoError(t, service.EnsureDefaults(context.Background(), db, []service.Default{
		{Key: "site_name", Value: "Amanah", IsPublic: true},
		{Key: "bank_account", Value: map[string]string{"number": "123"}},
	}))
	// second run keeps existing rows
	require.NoError(t, service.EnsureDefaults(context.Background(), db, []service.Default{
		{Key: "site_name", Value: "Other", IsPublic: true},
	}))

	res := testutil.DoJSON(t, app, "GET", "/api/settings", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, map[string]any{"site_name": "Amanah"}, res.Data())

	res = testutil.DoJSON(t, app, "PUT", "/api/admin/settings/contact_info", map[string]any{
		"value":     map[string]any{"phone": "+62 21 555", "email": "hello@example.org"},
		"is_public": true,
	}, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))

	res = testutil.DoJSON(t, app, "PUT", "/api/admin/settings/site_name", map[string]any{"value": "Amanah Foundation"}, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, true, res.Data()["is_public"])

	res = testutil.DoJSON(t, app, "GET", "/api/settings", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "Amanah Foundation", res.Data()["site_name"])
	assert.Equal(t, "+62 21 555", res.Data()["contact_info"].(map[string]any)["phone"])
	assert.NotContains(t, res.Data(), "bank_account")

	res = testutil.DoJSON(t, app, "PUT", "/api/admin/settings/Bad%20Key", map[string]any{"value": 1}, tok)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/settings/contact_info", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/settings/contact_info", nil, tok)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}
