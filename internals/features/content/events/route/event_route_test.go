package route

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/events/model"
	"amanah_backend/internals/helpers/storage"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, *storage.MemoryStore, string) {
	t.Helper()
	db := testutil.NewDB(t, &model.EventModel{})
	media, store := testutil.NewMedia()

	app := testutil.NewApp()
	api := app.Group("/api")
	EventRoutes(api, db, media)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("events"), constants.AdminAndAbove...),
	)
	AdminEventRoutes(admin, db, media)

	u := testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123")
	return app, db, store, testutil.TokenFor(t, u)
}

func TestEventCRUDWithImage(t *testing.T) {
	app, db, store, tok := setup(t)
	start := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)

	res := testutil.DoMultipart(t, app, "POST", "/api/admin/events", map[string]string{
		"title":    "Ramadan Food Drive",
		"location": "Central Mosque",
		"start_at": start,
	}, map[string]testutil.FilePart{"image": {Name: "poster.png", Content: testutil.PNG(t, 64, 48)}}, tok)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "ramadan-food-drive", res.Data()["slug"])
	assert.Equal(t, true, res.Data()["is_published"])
	imageURL, _ := res.Data()["image_url"].(string)
	require.NotEmpty(t, imageURL)
	assert.Equal(t, 2, store.Len(), "image and thumbnail")
	id := res.Data()["id"].(string)

	// same title gets a suffixed slug
	res = testutil.DoJSON(t, app, "POST", "/api/admin/events", map[string]any{
		"title":    "Ramadan Food Drive",
		"start_at": start,
	}, tok)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "ramadan-food-drive-2", res.Data()["slug"])

	res = testutil.DoMultipart(t, app, "PATCH", "/api/admin/events/"+id, map[string]string{
		"title": "Ramadan Food Drive 2024",
	}, map[string]testutil.FilePart{"image": {Name: "new.png", Content: testutil.PNG(t, 32, 32)}}, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.NotEqual(t, imageURL, res.Data()["image_url"])
	assert.Equal(t, 2, store.Len(), "old image replaced")

	res = testutil.DoJSON(t, app, "GET", "/api/events/ramadan-food-drive", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "Ramadan Food Drive 2024", res.Data()["title"])

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/events/"+id, nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, 0, store.Len())
	var n int64
	db.Model(&model.EventModel{}).Where("event_id = ?", id).Count(&n)
	assert.Zero(t, n)
}

func TestEventValidation(t *testing.T) {
	app, _, _, tok := setup(t)

	res := testutil.DoJSON(t, app, "POST", "/api/admin/events", map[string]any{"title": "No start"}, tok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, res.Status)

	res = testutil.DoJSON(t, app, "POST", "/api/admin/events", map[string]any{
		"title":    "Backwards",
		"start_at": "2024-05-02",
		"end_at":   "2024-05-01",
	}, tok)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.DoJSON(t, app, "POST", "/api/admin/events", map[string]any{}, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
}

func TestPublicEventLists(t *testing.T) {
	app, db, _, _ := setup(t)
	now := time.Now().UTC()
	past := now.Add(-72 * time.Hour)
	pastEnd := now.Add(-70 * time.Hour)
	rows := []model.EventModel{
		{EventTitle: "Soon", EventSlug: "soon", EventStartAt: now.Add(24 * time.Hour), EventIsPublished: true},
		{EventTitle: "Ongoing", EventSlug: "ongoing", EventStartAt: now.Add(-time.Hour), EventEndAt: ptr(now.Add(time.Hour)), EventIsPublished: true},
		{EventTitle: "Done", EventSlug: "done", EventStartAt: past, EventEndAt: &pastEnd, EventIsPublished: true},
		{EventTitle: "Draft", EventSlug: "draft", EventStartAt: now.Add(24 * time.Hour)},
	}
	require.NoError(t, db.Create(&rows).Error)

	res := testutil.DoJSON(t, app, "GET", "/api/events/upcoming", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, []string{"ongoing", "soon"}, slugs(res.List()))

	res = testutil.DoJSON(t, app, "GET", "/api/events/past", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, []string{"done"}, slugs(res.List()))

	res = testutil.DoJSON(t, app, "GET", "/api/events/draft", nil, "")
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func ptr(t time.Time) *time.Time { return &t }

func slugs(list []any) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.(map[string]any)["slug"].(string))
	}
	return out
}
