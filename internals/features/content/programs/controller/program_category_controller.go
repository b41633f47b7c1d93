package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/features/content/programs/dto"
	"amanah_backend/internals/features/content/programs/model"
	helper "amanah_backend/internals/helpers"
)

type ProgramCategoryController struct {
	DB *gorm.DB
}

func NewProgramCategoryController(db *gorm.DB) *ProgramCategoryController {
	return &ProgramCategoryController{DB: db}
}

func (ctrl *ProgramCategoryController) uniqueSlug(c *fiber.Ctx, source string, exclude any) (string, error) {
	return helper.EnsureUniqueSlug(c.UserContext(), ctrl.DB, "program_categories", "program_category_slug", "program_category_id", helper.Slugify(source, 100), exclude, 120)
}

// GET /program-categories
func (ctrl *ProgramCategoryController) List(c *fiber.Ctx) error {
	var rows []model.ProgramCategoryModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("program_category_sort_order ASC").Order("program_category_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch categories")
	}
	return helper.JsonOK(c, "ok", dto.ToProgramCategoryResponses(rows))
}

func (ctrl *ProgramCategoryController) find(c *fiber.Ctx) (model.ProgramCategoryModel, error) {
	var m model.ProgramCategoryModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "program_category_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load category")
	}
	return m, nil
}

// POST /admin/program-categories
func (ctrl *ProgramCategoryController) Create(c *fiber.Ctx) error {
	var req dto.CreateProgramCategoryRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	source := req.Slug
	if strings.TrimSpace(source) == "" {
		source = req.Name
	}
	slug, err := ctrl.uniqueSlug(c, source, nil)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
	}
	m := model.ProgramCategoryModel{
		ProgramCategoryName:        strings.TrimSpace(req.Name),
		ProgramCategorySlug:        slug,
		ProgramCategoryDescription: strings.TrimSpace(req.Description),
		ProgramCategorySortOrder:   req.SortOrder,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "slug already in use")
		}
		log.Error().Err(err).Msg("create program category")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create category")
	}
	return helper.JsonCreated(c, "category created", dto.ToProgramCategoryResponse(m))
}

// PATCH /admin/program-categories/:id
func (ctrl *ProgramCategoryController) Update(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProgramCategoryRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if req.Name != nil {
		m.ProgramCategoryName = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		m.ProgramCategoryDescription = strings.TrimSpace(*req.Description)
	}
	if req.SortOrder != nil {
		m.ProgramCategorySortOrder = *req.SortOrder
	}
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		slug, err := ctrl.uniqueSlug(c, *req.Slug, m.ID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to generate slug")
		}
		m.ProgramCategorySlug = slug
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "slug already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update category")
	}
	return helper.JsonUpdated(c, "category updated", dto.ToProgramCategoryResponse(m))
}

// DELETE /admin/program-categories/:id : refused while programs reference it
func (ctrl *ProgramCategoryController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.UserContext())
	var inUse int64
	if err := db.Model(&model.ProgramModel{}).Where("program_category_id = ?", m.ID).Count(&inUse).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check category usage")
	}
	if inUse > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "category still has programs")
	}
	if err := db.Delete(&model.ProgramCategoryModel{}, "program_category_id = ?", m.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete category")
	}
	return helper.JsonDeleted(c, "category deleted", fiber.Map{"id": m.ID})
}
