package route

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/urgent_needs/model"
	donationModel "amanah_backend/internals/features/donations/donations/model"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func TestUrgentNeedsLifecycle(t *testing.T) {
	db := testutil.NewDB(t, &model.UrgentNeedModel{}, &donationModel.Donation{})
	media, _ := testutil.NewMedia()
	app := testutil.NewApp()
	api := app.Group("/api")
	UrgentNeedRoutes(api, db, media)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("urgent needs"), constants.AdminAndAbove...),
	)
	AdminUrgentNeedRoutes(admin, db, media)
	tok := testutil.TokenFor(t, testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123"))

	soon := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	later := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	expired := time.Now().UTC().AddDate(0, 0, -3).Format("2006-01-02")

	create := func(title, deadline string) string {
		body := map[string]any{"title": title, "goal_amount": 500}
		if deadline != "" {
			body["deadline"] = deadline
		}
		res := testutil.DoJSON(t, app, "POST", "/api/admin/urgent-needs", body, tok)
		require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
		return res.Data()["id"].(string)
	}
	create("Open ended", "")
	create("Later", later)
	floodID := create("Flood relief", soon)
	create("Too late", expired)

	res := testutil.DoJSON(t, app, "GET", "/api/urgent-needs", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	var got []string
	for _, item := range res.List() {
		got = append(got, item.(map[string]any)["title"].(string))
	}
	assert.Equal(t, []string{"Flood relief", "Later", "Open ended"}, got)

	res = testutil.DoJSON(t, app, "POST", "/api/admin/urgent-needs", map[string]any{"title": "Bad", "deadline": "soon"}, tok)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	require.NoError(t, db.Model(&model.UrgentNeedModel{}).Where("urgent_need_id = ?", floodID).
		Update("urgent_need_raised_amount", 120).Error)
	res = testutil.DoJSON(t, app, "PATCH", "/api/admin/urgent-needs/"+floodID, map[string]any{"deadline": ""}, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Nil(t, res.Data()["deadline"])
	assert.EqualValues(t, 120, res.Data()["raised_amount"])
	assert.EqualValues(t, 380, res.Data()["remaining"])

	res = testutil.DoJSON(t, app, "PATCH", "/api/admin/urgent-needs/"+floodID, map[string]any{"is_active": false}, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	res = testutil.DoJSON(t, app, "GET", "/api/urgent-needs/"+floodID, nil, "")
	assert.Equal(t, fiber.StatusNotFound, res.Status)

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/urgent-needs/"+floodID, nil, tok)
	assert.Equal(t, fiber.StatusOK, res.Status)
}
