package route

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/gallery/model"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func TestGalleryUploadAndTypeFilter(t *testing.T) {
	db := testutil.NewDB(t, &model.GalleryItemModel{})
	media, store := testutil.NewMedia()
	app := testutil.NewApp()
	api := app.Group("/api")
	GalleryRoutes(api, db, media)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("gallery"), constants.AdminAndAbove...),
	)
	AdminGalleryRoutes(admin, db, media)
	tok := testutil.TokenFor(t, testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123"))

	res := testutil.DoMultipart(t, app, "POST", "/api/admin/gallery", map[string]string{"title": "Well opening"},
		map[string]testutil.FilePart{"file": {Name: "well.png", Content: testutil.PNG(t, 40, 30)}}, tok)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "image", res.Data()["media_type"])
	assert.NotEmpty(t, res.Data()["thumbnail_url"])
	imageID := res.Data()["id"].(string)

	res = testutil.DoMultipart(t, app, "POST", "/api/admin/gallery", map[string]string{"title": "Walkthrough", "sort_order": "1"},
		map[string]testutil.FilePart{"file": {Name: "tour.mp4", Content: []byte("not really a video")}}, tok)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "video", res.Data()["media_type"])
	assert.Equal(t, 3, store.Len())

	res = testutil.DoJSON(t, app, "POST", "/api/admin/gallery", map[string]any{"title": "Missing media"}, tok)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.DoJSON(t, app, "POST", "/api/admin/gallery", map[string]any{
		"title": "Hidden", "media_url": "https://cdn.example.org/x.webp", "media_type": "image", "is_published": false,
	}, tok)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))

	res = testutil.DoJSON(t, app, "GET", "/api/gallery", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 2)

	res = testutil.DoJSON(t, app, "GET", "/api/gallery?type=video", nil, "")
	require.Len(t, res.List(), 1)
	assert.Equal(t, "Walkthrough", res.List()[0].(map[string]any)["title"])

	res = testutil.DoJSON(t, app, "GET", "/api/gallery?type=audio", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/gallery/"+imageID, nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, 1, store.Len())
}
