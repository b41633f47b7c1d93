package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/programs/dto"
	"amanah_backend/internals/features/content/programs/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/storage"
)

var errUnknownCategory = fiber.NewError(fiber.StatusBadRequest, "category_id does not exist")

type ProgramController struct {
	DB    *gorm.DB
	Media *storage.Processor
}

func NewProgramController(db *gorm.DB, media *storage.Processor) *ProgramController {
	return &ProgramController{DB: db, Media: media}
}

func (ctrl *ProgramController) uniqueSlug(c *fiber.Ctx, source string, exclude any) (string, error) {
	return helper.EnsureUniqueSlug(c.UserContext(), ctrl.DB, "programs", "program_slug", "program_id", helper.Slugify(source, 200), exclude, 220)
}

func (ctrl *ProgramController) checkCategory(c *fiber.Ctx, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.ProgramCategoryModel{}).
		Where("program_category_id = ?", *id).Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check category")
	}
	if n == 0 {
		return errUnknownCategory
	}
	return nil
}

func (ctrl *ProgramController) list(c *fiber.Ctx, q *gorm.DB) error {
	paging := helper.ResolvePaging(c, 12, 100)
	if slug := strings.ToLower(strings.TrimSpace(c.Query("category"))); slug != "" {
		q = q.Where("program_category_id IN (?)", ctrl.DB.Model(&model.ProgramCategoryModel{}).
			Select("program_category_id").Where("program_category_slug = ?", slug))
	}
	if v, ok := helper.QueryBool(c, "featured"); ok {
		q = q.Where("program_is_featured = ?", v)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count programs")
	}
	var rows []model.ProgramModel
	if err := paging.Apply(q.Preload("Category").
		Order("program_is_featured DESC").Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch programs")
	}
	return helper.JsonList(c, "ok", dto.ToProgramResponses(rows), helper.BuildPagination(total, paging))
}

// GET /programs?category=<slug>&featured=
func (ctrl *ProgramController) List(c *fiber.Ctx) error {
	return ctrl.list(c, ctrl.DB.WithContext(c.UserContext()).Model(&model.ProgramModel{}).
		Where("program_is_active = ?", true))
}

// GET /programs/:slug
func (ctrl *ProgramController) GetBySlug(c *fiber.Ctx) error {
	var m model.ProgramModel
	err := ctrl.DB.WithContext(c.UserContext()).Preload("Category").
		Where("program_slug = ? AND program_is_active = ?", strings.ToLower(c.Params("slug")), true).
		Take(&m).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "program not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load program")
	}
	return helper.JsonOK(c, "ok", dto.ToProgramResponse(m))
}

// GET /admin/programs?active=&category=
func (ctrl *ProgramController) AdminList(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ProgramModel{})
	if v, ok := helper.QueryBool(c, "active"); ok {
		q = q.Where("program_is_active = ?", v)
	}
	return ctrl.list(c, q)
}

func (ctrl *ProgramController) find(c *fiber.Ctx) (model.ProgramModel, error) {
	var m model.ProgramModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "program_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "program not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load program")
	}
	return m, nil
}

func (ctrl *ProgramController) AdminGet(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToProgramResponse(m))
}

// POST /admin/programs : JSON or multipart with "image"
func (ctrl *ProgramController) Create(c *fiber.Ctx) error {
	var req dto.CreateProgramRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if err := ctrl.checkCategory(c, req.CategoryID); err != nil {
		return err
	}
	slug, err := ctrl.uniqueSlug(c, req.Name, nil)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
	}
	m := model.ProgramModel{
		ProgramName:        strings.TrimSpace(req.Name),
		ProgramSlug:        slug,
		ProgramDescription: strings.TrimSpace(req.Description),
		ProgramImageURL:    strings.TrimSpace(req.ImageURL),
		ProgramGoalAmount:  req.GoalAmount,
		ProgramCategoryID:  req.CategoryID,
		ProgramIsActive:    req.IsActive == nil || *req.IsActive,
		ProgramIsFeatured:  req.IsFeatured,
	}
	if fh := storage.FormFile(c, "image", "file"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.ProgramImageURL = saved.URL
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		ctrl.Media.Remove(c.UserContext(), m.ProgramImageURL)
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "slug already in use")
		}
		log.Error().Err(err).Msg("create program")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create program")
	}
	return helper.JsonCreated(c, "program created", dto.ToProgramResponse(m))
}

// PATCH /admin/programs/:id
func (ctrl *ProgramController) Update(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProgramRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if req.Name != nil {
		m.ProgramName = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		m.ProgramDescription = strings.TrimSpace(*req.Description)
	}
	if req.GoalAmount != nil {
		m.ProgramGoalAmount = *req.GoalAmount
	}
	if req.IsActive != nil {
		m.ProgramIsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		m.ProgramIsFeatured = *req.IsFeatured
	}
	switch {
	case req.ClearCategory:
		m.ProgramCategoryID = nil
	case req.CategoryID != nil:
		if err := ctrl.checkCategory(c, req.CategoryID); err != nil {
			return err
		}
		m.ProgramCategoryID = req.CategoryID
	}

	previous := m.ProgramImageURL
	if req.ImageURL != nil {
		m.ProgramImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if fh := storage.FormFile(c, "image", "file"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.ProgramImageURL = saved.URL
	}

	// raised amount belongs to the donation flow
	err = ctrl.DB.WithContext(c.UserContext()).Model(&model.ProgramModel{}).
		Where("program_id = ?", m.ProgramID).
		Select("program_name", "program_description", "program_image_url", "program_goal_amount",
			"program_category_id", "program_is_active", "program_is_featured", "updated_at").
		Updates(map[string]any{
			"program_name":        m.ProgramName,
			"program_description": m.ProgramDescription,
			"program_image_url":   m.ProgramImageURL,
			"program_goal_amount": m.ProgramGoalAmount,
			"program_category_id": m.ProgramCategoryID,
			"program_is_active":   m.ProgramIsActive,
			"program_is_featured": m.ProgramIsFeatured,
			"updated_at":          helper.NowUTC(),
		}).Error
	if err != nil {
		if m.ProgramImageURL != previous {
			ctrl.Media.Remove(c.UserContext(), m.ProgramImageURL)
		}
		log.Error().Err(err).Str("program_id", m.ProgramID.String()).Msg("update program")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update program")
	}
	ctrl.Media.Swap(c.UserContext(), previous, m.ProgramImageURL)
	return helper.JsonUpdated(c, "program updated", dto.ToProgramResponse(m))
}

// DELETE /admin/programs/:id : donations keep their history, the reference is cleared
func (ctrl *ProgramController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("donations").Where("donation_program_id = ?", m.ProgramID).
			Update("donation_program_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ProgramModel{}, "program_id = ?", m.ProgramID).Error
	})
	if err != nil {
		log.Error().Err(err).Str("program_id", m.ProgramID.String()).Msg("delete program")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete program")
	}
	ctrl.Media.Remove(c.UserContext(), m.ProgramImageURL)
	return helper.JsonDeleted(c, "program deleted", fiber.Map{"id": m.ProgramID})
}
