package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/stories/dto"
	"amanah_backend/internals/features/content/stories/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/storage"
)

type StoryController struct {
	DB    *gorm.DB
	Media *storage.Processor
}

func NewStoryController(db *gorm.DB, media *storage.Processor) *StoryController {
	return &StoryController{DB: db, Media: media}
}

func (ctrl *StoryController) uniqueSlug(c *fiber.Ctx, source string, exclude any) (string, error) {
	return helper.EnsureUniqueSlug(c.UserContext(), ctrl.DB, "stories", "story_slug", "story_id", helper.Slugify(source, 200), exclude, 220)
}

// GET /stories?featured=true&q=
func (ctrl *StoryController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 9, 100)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.StoryModel{}).Where("story_is_published = ?", true)
	if v, ok := helper.QueryBool(c, "featured"); ok {
		q = q.Where("story_is_featured = ?", v)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		q = q.Where("(LOWER(story_title) LIKE ? OR LOWER(story_summary) LIKE ?)", "%"+kw+"%", "%"+kw+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count stories")
	}
	var rows []model.StoryModel
	if err := paging.Apply(q.Order("story_published_at DESC").Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch stories")
	}
	return helper.JsonList(c, "ok", dto.ToStorySummaries(rows), helper.BuildPagination(total, paging))
}

// GET /stories/:slug
func (ctrl *StoryController) GetBySlug(c *fiber.Ctx) error {
	var m model.StoryModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("story_slug = ? AND story_is_published = ?", strings.ToLower(c.Params("slug")), true).
		Take(&m).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "story not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load story")
	}
	return helper.JsonOK(c, "ok", dto.ToStoryResponse(m))
}

// GET /admin/stories?published=
func (ctrl *StoryController) AdminList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.StoryModel{})
	if v, ok := helper.QueryBool(c, "published"); ok {
		q = q.Where("story_is_published = ?", v)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count stories")
	}
	var rows []model.StoryModel
	if err := paging.Apply(q.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch stories")
	}
	return helper.JsonList(c, "ok", dto.ToStorySummaries(rows), helper.BuildPagination(total, paging))
}

func (ctrl *StoryController) find(c *fiber.Ctx) (model.StoryModel, error) {
	var m model.StoryModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "story_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "story not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load story")
	}
	return m, nil
}

func (ctrl *StoryController) AdminGet(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToStoryResponse(m))
}

// uploads stores the optional image and video files of a request.
func (ctrl *StoryController) uploads(c *fiber.Ctx, m *model.StoryModel) ([]string, error) {
	var stored []string
	if fh := storage.FormFile(c, "image"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return stored, err
		}
		m.StoryImageURL = saved.URL
		stored = append(stored, saved.URL)
	}
	if fh := storage.FormFile(c, "video"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaVideo)
		if err != nil {
			ctrl.Media.Remove(c.UserContext(), stored...)
			return nil, err
		}
		m.StoryVideoURL = saved.URL
		stored = append(stored, saved.URL)
	}
	return stored, nil
}

// POST /admin/stories
func (ctrl *StoryController) Create(c *fiber.Ctx) error {
	var req dto.CreateStoryRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	source := req.Slug
	if strings.TrimSpace(source) == "" {
		source = req.Title
	}
	slug, err := ctrl.uniqueSlug(c, source, nil)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
	}

	m := model.StoryModel{
		StoryTitle:       strings.TrimSpace(req.Title),
		StorySlug:        slug,
		StorySummary:     strings.TrimSpace(req.Summary),
		StoryContent:     req.Content,
		StoryImageURL:    strings.TrimSpace(req.ImageURL),
		StoryVideoURL:    strings.TrimSpace(req.VideoURL),
		StoryIsPublished: req.IsPublished == nil || *req.IsPublished,
		StoryIsFeatured:  req.IsFeatured,
	}
	if m.StoryIsPublished {
		now := helper.NowUTC()
		m.StoryPublishedAt = &now
	}
	stored, err := ctrl.uploads(c, &m)
	if err != nil {
		return err
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		ctrl.Media.Remove(c.UserContext(), stored...)
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "slug already in use")
		}
		log.Error().Err(err).Msg("create story")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create story")
	}
	return helper.JsonCreated(c, "story created", dto.ToStoryResponse(m))
}

// PATCH /admin/stories/:id
func (ctrl *StoryController) Update(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStoryRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}

	if req.Title != nil {
		m.StoryTitle = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		if m.StorySlug, err = ctrl.uniqueSlug(c, *req.Slug, m.StoryID); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
		}
	}
	if req.Summary != nil {
		m.StorySummary = strings.TrimSpace(*req.Summary)
	}
	if req.Content != nil {
		m.StoryContent = *req.Content
	}
	if req.IsFeatured != nil {
		m.StoryIsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		m.StoryIsPublished = *req.IsPublished
		if m.StoryIsPublished && m.StoryPublishedAt == nil {
			now := helper.NowUTC()
			m.StoryPublishedAt = &now
		}
	}

	prevImage, prevVideo := m.StoryImageURL, m.StoryVideoURL
	if req.ImageURL != nil {
		m.StoryImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.VideoURL != nil {
		m.StoryVideoURL = strings.TrimSpace(*req.VideoURL)
	}
	stored, err := ctrl.uploads(c, &m)
	if err != nil {
		return err
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		ctrl.Media.Remove(c.UserContext(), stored...)
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "slug already in use")
		}
		log.Error().Err(err).Str("story_id", m.StoryID.String()).Msg("update story")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update story")
	}
	ctrl.Media.Swap(c.UserContext(), prevImage, m.StoryImageURL)
	ctrl.Media.Swap(c.UserContext(), prevVideo, m.StoryVideoURL)
	return helper.JsonUpdated(c, "story updated", dto.ToStoryResponse(m))
}

// DELETE /admin/stories/:id : removes the row and its media objects
func (ctrl *StoryController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&model.StoryModel{}, "story_id = ?", m.StoryID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete story")
	}
	ctrl.Media.Remove(c.UserContext(), m.StoryImageURL, m.StoryVideoURL)
	return helper.JsonDeleted(c, "story deleted", fiber.Map{"id": m.StoryID})
}
