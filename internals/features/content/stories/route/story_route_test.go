package route

import (
	"context"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/stories/model"
	mediaService "amanah_backend/internals/features/media/service"
	"amanah_backend/internals/helpers/storage"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, *storage.MemoryStore, string) {
	t.Helper()
	db := testutil.NewDB(t, &model.StoryModel{})
	media, store := testutil.NewMedia()
	media.Guard = mediaService.NewMediaService(db, store)

	app := testutil.NewApp()
	api := app.Group("/api")
	StoryRoutes(api, db, media)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("stories"), constants.AdminAndAbove...),
	)
	AdminStoryRoutes(admin, db, media)

	u := testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123")
	return app, db, store, testutil.TokenFor(t, u)
}

func TestDeleteStoryRemovesRowAndMedia(t *testing.T) {
	app, db, store, tok := setup(t)

	res := testutil.DoMultipart(t, app, "POST", "/api/admin/stories", map[string]string{
		"title":   "A Well for Sukamaju",
		"summary": "Clean water reached 300 families.",
		"content": "Long form story",
	}, map[string]testutil.FilePart{
		"image": {Name: "well.png", Content: testutil.PNG(t, 80, 60)},
		"video": {Name: "well.mp4", Content: []byte("not really an mp4")},
	}, tok)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)
	assert.Equal(t, "a-well-for-sukamaju", res.Data()["slug"])
	assert.NotEmpty(t, res.Data()["published_at"])
	assert.Equal(t, 3, store.Len(), "image, thumbnail and video")

	res = testutil.DoJSON(t, app, "GET", "/api/stories", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	require.Len(t, res.List(), 1)
	assert.NotContains(t, res.List()[0].(map[string]any), "content")

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/stories/"+id, nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))

	var n int64
	db.Model(&model.StoryModel{}).Where("story_id = ?", id).Count(&n)
	assert.Zero(t, n)
	assert.Zero(t, store.Len())

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/stories/"+id, nil, tok)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestDeleteStoryKeepsSharedMedia(t *testing.T) {
	app, db, store, tok := setup(t)
	ctx := context.Background()
	for _, k := range []string{"images/shared.webp", "images/thumbs/shared.webp"} {
		require.NoError(t, store.Put(ctx, k, strings.NewReader("webp"), 4, "image/webp"))
	}
	url := store.PublicURL("images/shared.webp")
	first := model.StoryModel{StoryTitle: "First", StorySlug: "first", StoryImageURL: url}
	second := model.StoryModel{StoryTitle: "Second", StorySlug: "second", StoryImageURL: url, StoryVideoURL: "https://videos.example.org/clip.mp4"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	res := testutil.DoJSON(t, app, "DELETE", "/api/admin/stories/"+first.StoryID.String(), nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, 2, store.Len(), "second story still shows the image")

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/stories/"+second.StoryID.String(), nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Zero(t, store.Len())
}

func TestUnpublishedStoryHiddenFromPublic(t *testing.T) {
	app, _, _, tok := setup(t)

	res := testutil.DoJSON(t, app, "POST", "/api/admin/stories", map[string]any{
		"title":        "Draft story",
		"is_published": false,
	}, tok)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)
	assert.Nil(t, res.Data()["published_at"])

	res = testutil.DoJSON(t, app, "GET", "/api/stories/draft-story", nil, "")
	assert.Equal(t, fiber.StatusNotFound, res.Status)

	res = testutil.DoJSON(t, app, "PATCH", "/api/admin/stories/"+id, map[string]any{"is_published": true}, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.NotNil(t, res.Data()["published_at"])

	res = testutil.DoJSON(t, app, "GET", "/api/stories/draft-story", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "Draft story", res.Data()["title"])
}
