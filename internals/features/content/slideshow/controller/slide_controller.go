package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/slideshow/dto"
	"amanah_backend/internals/features/content/slideshow/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/storage"
)

type SlideController struct {
	DB    *gorm.DB
	Media *storage.Processor
}

func NewSlideController(db *gorm.DB, media *storage.Processor) *SlideController {
	return &SlideController{DB: db, Media: media}
}

func (ctrl *SlideController) fetch(c *fiber.Ctx, activeOnly bool) ([]model.SlideModel, error) {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.SlideModel{})
	if activeOnly {
		q = q.Where("slide_is_active = ?", true)
	}
	var rows []model.SlideModel
	err := q.Order("slide_sort_order ASC").Order("created_at ASC").Find(&rows).Error
	return rows, err
}

// GET /slides
func (ctrl *SlideController) List(c *fiber.Ctx) error {
	rows, err := ctrl.fetch(c, true)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch slides")
	}
	return helper.JsonOK(c, "ok", dto.ToSlideResponses(rows))
}

// GET /admin/slides
func (ctrl *SlideController) AdminList(c *fiber.Ctx) error {
	rows, err := ctrl.fetch(c, false)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch slides")
	}
	return helper.JsonOK(c, "ok", dto.ToSlideResponses(rows))
}

func (ctrl *SlideController) find(c *fiber.Ctx) (model.SlideModel, error) {
	var m model.SlideModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "slide_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "slide not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load slide")
	}
	return m, nil
}

// POST /admin/slides : new slides go last unless sort_order is given
func (ctrl *SlideController) Create(c *fiber.Ctx) error {
	var req dto.CreateSlideRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	m := model.SlideModel{
		SlideTitle:    strings.TrimSpace(req.Title),
		SlideSubtitle: strings.TrimSpace(req.Subtitle),
		SlideImageURL: strings.TrimSpace(req.ImageURL),
		SlideLinkURL:  strings.TrimSpace(req.LinkURL),
		SlideIsActive: req.IsActive == nil || *req.IsActive,
	}
	if req.SortOrder != nil {
		m.SlideSortOrder = *req.SortOrder
	} else {
		var last struct{ Max *int }
		if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.SlideModel{}).
			Select("MAX(slide_sort_order) AS max").Scan(&last).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to read slide order")
		}
		if last.Max != nil {
			m.SlideSortOrder = *last.Max + 1
		}
	}

	fh := storage.FormFile(c, "image", "file")
	if fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.SlideImageURL = saved.URL
	}
	if m.SlideImageURL == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "an image or image_url is required")
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if fh != nil {
			ctrl.Media.Remove(c.UserContext(), m.SlideImageURL)
		}
		log.Error().Err(err).Msg("create slide")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create slide")
	}
	return helper.JsonCreated(c, "slide created", dto.ToSlideResponse(m))
}

// PATCH /admin/slides/:id
func (ctrl *SlideController) Update(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSlideRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if req.Title != nil {
		m.SlideTitle = strings.TrimSpace(*req.Title)
	}
	if req.Subtitle != nil {
		m.SlideSubtitle = strings.TrimSpace(*req.Subtitle)
	}
	if req.LinkURL != nil {
		m.SlideLinkURL = strings.TrimSpace(*req.LinkURL)
	}
	if req.SortOrder != nil {
		m.SlideSortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		m.SlideIsActive = *req.IsActive
	}
	previous := m.SlideImageURL
	if req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) != "" {
		m.SlideImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if fh := storage.FormFile(c, "image", "file"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.SlideImageURL = saved.URL
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		if m.SlideImageURL != previous {
			ctrl.Media.Remove(c.UserContext(), m.SlideImageURL)
		}
		log.Error().Err(err).Str("slide_id", m.SlideID.String()).Msg("update slide")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update slide")
	}
	ctrl.Media.Swap(c.UserContext(), previous, m.SlideImageURL)
	return helper.JsonUpdated(c, "slide updated", dto.ToSlideResponse(m))
}

// PUT /admin/slides/reorder {"ids": [...]} : position in the list becomes sort_order
func (ctrl *SlideController) Reorder(c *fiber.Ctx) error {
	var req dto.ReorderRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	seen := make(map[uuid.UUID]struct{}, len(req.IDs))
	for _, id := range req.IDs {
		if _, dup := seen[id]; dup {
			return helper.JsonError(c, fiber.StatusBadRequest, "duplicate slide id "+id.String())
		}
		seen[id] = struct{}{}
	}

	err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.SlideModel{}).Where("slide_id IN ?", req.IDs).Count(&n).Error; err != nil {
			return err
		}
		if int(n) != len(req.IDs) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown slide id in list")
		}
		for i, id := range req.IDs {
			if err := tx.Model(&model.SlideModel{}).Where("slide_id = ?", id).
				Update("slide_sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		log.Error().Err(err).Msg("reorder slides")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to reorder slides")
	}
	return ctrl.AdminList(c)
}

// DELETE /admin/slides/:id
func (ctrl *SlideController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&model.SlideModel{}, "slide_id = ?", m.SlideID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete slide")
	}
	ctrl.Media.Remove(c.UserContext(), m.SlideImageURL)
	return helper.JsonDeleted(c, "slide deleted", fiber.Map{"id": m.SlideID})
}
