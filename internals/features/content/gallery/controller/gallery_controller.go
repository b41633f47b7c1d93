package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/gallery/dto"
	"amanah_backend/internals/features/content/gallery/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/storage"
)

type GalleryController struct {
	DB    *gorm.DB
	Media *storage.Processor
}

func NewGalleryController(db *gorm.DB, media *storage.Processor) *GalleryController {
	return &GalleryController{DB: db, Media: media}
}

func (ctrl *GalleryController) list(c *fiber.Ctx, q *gorm.DB) error {
	paging := helper.ResolvePaging(c, 24, 200)
	switch t := strings.ToLower(strings.TrimSpace(c.Query("type"))); t {
	case "":
	case model.MediaTypeImage, model.MediaTypeVideo:
		q = q.Where("gallery_item_media_type = ?", t)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "type must be image or video")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count gallery items")
	}
	var rows []model.GalleryItemModel
	if err := paging.Apply(q.Order("gallery_item_sort_order ASC").Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch gallery items")
	}
	return helper.JsonList(c, "ok", dto.ToGalleryItemResponses(rows), helper.BuildPagination(total, paging))
}

// GET /gallery?type=image|video
func (ctrl *GalleryController) List(c *fiber.Ctx) error {
	return ctrl.list(c, ctrl.DB.WithContext(c.UserContext()).Model(&model.GalleryItemModel{}).
		Where("gallery_item_is_published = ?", true))
}

// GET /admin/gallery?type=&published=
func (ctrl *GalleryController) AdminList(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.GalleryItemModel{})
	if v, ok := helper.QueryBool(c, "published"); ok {
		q = q.Where("gallery_item_is_published = ?", v)
	}
	return ctrl.list(c, q)
}

func (ctrl *GalleryController) find(c *fiber.Ctx) (model.GalleryItemModel, error) {
	var m model.GalleryItemModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "gallery_item_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "gallery item not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load gallery item")
	}
	return m, nil
}

func (ctrl *GalleryController) AdminGet(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToGalleryItemResponse(m))
}

// POST /admin/gallery : multipart "file" (image or video) or JSON media_url + media_type
func (ctrl *GalleryController) Create(c *fiber.Ctx) error {
	var req dto.CreateGalleryItemRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	m := model.GalleryItemModel{
		GalleryItemTitle:        strings.TrimSpace(req.Title),
		GalleryItemDescription:  strings.TrimSpace(req.Description),
		GalleryItemMediaURL:     strings.TrimSpace(req.MediaURL),
		GalleryItemMediaType:    req.MediaType,
		GalleryItemThumbnailURL: strings.TrimSpace(req.ThumbnailURL),
		GalleryItemSortOrder:    req.SortOrder,
		GalleryItemIsPublished:  req.IsPublished == nil || *req.IsPublished,
	}

	fh := storage.FormFile(c, "file", "media")
	switch {
	case fh != nil:
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaUnknown)
		if err != nil {
			return err
		}
		m.GalleryItemMediaURL = saved.URL
		m.GalleryItemMediaType = string(saved.Kind)
		if saved.ThumbURL != "" {
			m.GalleryItemThumbnailURL = saved.ThumbURL
		}
	case m.GalleryItemMediaURL == "":
		return helper.JsonError(c, fiber.StatusBadRequest, "a file or media_url is required")
	case m.GalleryItemMediaType == "":
		return helper.JsonError(c, fiber.StatusBadRequest, "media_type is required with media_url")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if fh != nil {
			ctrl.Media.Remove(c.UserContext(), m.GalleryItemMediaURL)
		}
		log.Error().Err(err).Msg("create gallery item")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create gallery item")
	}
	return helper.JsonCreated(c, "gallery item created", dto.ToGalleryItemResponse(m))
}

// PATCH /admin/gallery/:id : a new "file" replaces the media and its thumbnail
func (ctrl *GalleryController) Update(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateGalleryItemRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if req.Title != nil {
		m.GalleryItemTitle = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		m.GalleryItemDescription = strings.TrimSpace(*req.Description)
	}
	if req.ThumbnailURL != nil {
		m.GalleryItemThumbnailURL = strings.TrimSpace(*req.ThumbnailURL)
	}
	if req.SortOrder != nil {
		m.GalleryItemSortOrder = *req.SortOrder
	}
	if req.IsPublished != nil {
		m.GalleryItemIsPublished = *req.IsPublished
	}

	previous := m.GalleryItemMediaURL
	if fh := storage.FormFile(c, "file", "media"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaUnknown)
		if err != nil {
			return err
		}
		m.GalleryItemMediaURL = saved.URL
		m.GalleryItemMediaType = string(saved.Kind)
		m.GalleryItemThumbnailURL = saved.ThumbURL
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		if m.GalleryItemMediaURL != previous {
			ctrl.Media.Remove(c.UserContext(), m.GalleryItemMediaURL)
		}
		log.Error().Err(err).Str("gallery_item_id", m.GalleryItemID.String()).Msg("update gallery item")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update gallery item")
	}
	ctrl.Media.Swap(c.UserContext(), previous, m.GalleryItemMediaURL)
	return helper.JsonUpdated(c, "gallery item updated", dto.ToGalleryItemResponse(m))
}

// DELETE /admin/gallery/:id
func (ctrl *GalleryController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&model.GalleryItemModel{}, "gallery_item_id = ?", m.GalleryItemID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete gallery item")
	}
	ctrl.Media.Remove(c.UserContext(), m.GalleryItemMediaURL, m.GalleryItemThumbnailURL)
	return helper.JsonDeleted(c, "gallery item deleted", fiber.Map{"id": m.GalleryItemID})
}
