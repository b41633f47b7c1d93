package route

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amanah_backend/internals/constants"
	eventModel "amanah_backend/internals/features/content/events/model"
	galleryModel "amanah_backend/internals/features/content/gallery/model"
	programModel "amanah_backend/internals/features/content/programs/model"
	slideModel "amanah_backend/internals/features/content/slideshow/model"
	storyModel "amanah_backend/internals/features/content/stories/model"
	testimonialModel "amanah_backend/internals/features/content/testimonials/model"
	urgentModel "amanah_backend/internals/features/content/urgent_needs/model"
	"amanah_backend/internals/features/media/service"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

func TestMediaUsageAndCleanup(t *testing.T) {
	db := testutil.NewDB(t,
		&eventModel.EventModel{}, &storyModel.StoryModel{}, &testimonialModel.TestimonialModel{},
		&galleryModel.GalleryItemModel{}, &slideModel.SlideModel{},
		&programModel.ProgramCategoryModel{}, &programModel.ProgramModel{}, &urgentModel.UrgentNeedModel{},
	)
	media, store := testutil.NewMedia()
	svc := service.NewMediaService(db, store)
	app := testutil.NewApp()
	admin := app.Group("/api/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("media"), constants.AdminAndAbove...),
	)
	AdminMediaRoutes(admin, media, svc)
	tok := testutil.TokenFor(t, testutil.CreateUser(t, db, constants.RoleAdmin, "admin@example.org", "password123"))
	ctx := context.Background()

	saved, err := media.SaveBytes(ctx, constants.MediaImage, "poster.png", "image/png", testutil.PNG(t, 30, 30))
	require.NoError(t, err)
	require.NoError(t, db.Create(&eventModel.EventModel{
		EventTitle: "Kept", EventSlug: "kept", EventStartAt: time.Now().UTC(), EventImageURL: saved.URL,
	}).Error)

	broken := storyModel.StoryModel{
		StoryTitle:    "Broken",
		StorySlug:     "broken",
		StoryImageURL: "https://cdn.test/images/gone.webp",
		StoryVideoURL: "https://video.example.org/watch/1",
	}
	require.NoError(t, db.Create(&broken).Error)
	require.NoError(t, store.Put(ctx, "images/orphan.webp", bytes.NewReader([]byte("x")), 1, "image/webp"))
	require.Equal(t, 3, store.Len())

	res := testutil.DoJSON(t, app, "GET", "/api/admin/media", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	used := map[string]float64{}
	for _, item := range res.List() {
		o := item.(map[string]any)
		used[o["key"].(string)] = o["used_by"].(float64)
	}
	assert.EqualValues(t, 1, used[saved.Key])
	assert.EqualValues(t, 1, used[saved.ThumbKey])
	assert.EqualValues(t, 0, used["images/orphan.webp"])

	res = testutil.DoJSON(t, app, "GET", "/api/admin/media/usage?ref="+saved.URL, nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.Data()["used_by"], 1)

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/media?key="+saved.Key, nil, tok)
	assert.Equal(t, fiber.StatusConflict, res.Status)

	// dry run reports without touching anything
	res = testutil.DoJSON(t, app, "POST", "/api/admin/media/cleanup?orphans=true", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, true, res.Data()["dry_run"])
	assert.Len(t, res.Data()["missing"], 1)
	assert.Equal(t, []any{"images/orphan.webp"}, res.Data()["orphans"])
	assert.Equal(t, 3, store.Len())

	res = testutil.DoJSON(t, app, "POST", "/api/admin/media/cleanup?dry_run=false&mode=clear", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 1, res.Data()["cleared"])
	var reloaded storyModel.StoryModel
	require.NoError(t, db.First(&reloaded, "story_id = ?", broken.StoryID).Error)
	assert.Empty(t, reloaded.StoryImageURL)
	assert.Equal(t, "https://video.example.org/watch/1", reloaded.StoryVideoURL)

	require.NoError(t, db.Model(&reloaded).Update("story_image_url", "images/gone-again.webp").Error)
	res = testutil.DoJSON(t, app, "POST", "/api/admin/media/cleanup?dry_run=false&mode=delete&orphans=true", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 1, res.Data()["deleted_rows"])
	assert.EqualValues(t, 1, res.Data()["deleted_objects"])
	assert.Equal(t, 2, store.Len())
	var n int64
	db.Model(&storyModel.StoryModel{}).Where("story_id = ?", broken.StoryID).Count(&n)
	assert.Zero(t, n)

	res = testutil.DoJSON(t, app, "POST", "/api/admin/media/cleanup?mode=purge", nil, tok)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.DoJSON(t, app, "DELETE", "/api/admin/media?key="+saved.Key+"&force=true", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Zero(t, store.Len())
}
