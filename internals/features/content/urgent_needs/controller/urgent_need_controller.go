package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/urgent_needs/dto"
	"amanah_backend/internals/features/content/urgent_needs/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/storage"
)

type UrgentNeedController struct {
	DB    *gorm.DB
	Media *storage.Processor
}

func NewUrgentNeedController(db *gorm.DB, media *storage.Processor) *UrgentNeedController {
	return &UrgentNeedController{DB: db, Media: media}
}

// GET /urgent-needs : active needs, nearest deadline first
func (ctrl *UrgentNeedController) List(c *fiber.Ctx) error {
	var rows []model.UrgentNeedModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("urgent_need_is_active = ?", true).
		Where("(urgent_need_deadline IS NULL OR urgent_need_deadline >= ?)", helper.NowUTC()).
		Order("CASE WHEN urgent_need_deadline IS NULL THEN 1 ELSE 0 END").
		Order("urgent_need_deadline ASC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch urgent needs")
	}
	return helper.JsonOK(c, "ok", dto.ToUrgentNeedResponses(rows))
}

// GET /urgent-needs/:id
func (ctrl *UrgentNeedController) Get(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	if !m.UrgentNeedIsActive {
		return helper.JsonError(c, fiber.StatusNotFound, "urgent need not found")
	}
	return helper.JsonOK(c, "ok", dto.ToUrgentNeedResponse(m))
}

// GET /admin/urgent-needs?active=
func (ctrl *UrgentNeedController) AdminList(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.UrgentNeedModel{})
	if v, ok := helper.QueryBool(c, "active"); ok {
		q = q.Where("urgent_need_is_active = ?", v)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count urgent needs")
	}
	var rows []model.UrgentNeedModel
	if err := paging.Apply(q.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch urgent needs")
	}
	return helper.JsonList(c, "ok", dto.ToUrgentNeedResponses(rows), helper.BuildPagination(total, paging))
}

func (ctrl *UrgentNeedController) find(c *fiber.Ctx) (model.UrgentNeedModel, error) {
	var m model.UrgentNeedModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "urgent_need_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "urgent need not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load urgent need")
	}
	return m, nil
}

func (ctrl *UrgentNeedController) AdminGet(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToUrgentNeedResponse(m))
}

// POST /admin/urgent-needs
func (ctrl *UrgentNeedController) Create(c *fiber.Ctx) error {
	var req dto.CreateUrgentNeedRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	deadline, err := helper.ParseDateQuery(req.Deadline)
	if err != nil {
		return err
	}
	m := model.UrgentNeedModel{
		UrgentNeedTitle:       strings.TrimSpace(req.Title),
		UrgentNeedDescription: strings.TrimSpace(req.Description),
		UrgentNeedImageURL:    strings.TrimSpace(req.ImageURL),
		UrgentNeedGoalAmount:  req.GoalAmount,
		UrgentNeedDeadline:    deadline,
		UrgentNeedIsActive:    req.IsActive == nil || *req.IsActive,
	}
	if fh := storage.FormFile(c, "image", "file"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.UrgentNeedImageURL = saved.URL
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		ctrl.Media.Remove(c.UserContext(), m.UrgentNeedImageURL)
		log.Error().Err(err).Msg("create urgent need")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create urgent need")
	}
	return helper.JsonCreated(c, "urgent need created", dto.ToUrgentNeedResponse(m))
}

// PATCH /admin/urgent-needs/:id : raised amount is never written here
func (ctrl *UrgentNeedController) Update(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUrgentNeedRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if req.Title != nil {
		m.UrgentNeedTitle = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		m.UrgentNeedDescription = strings.TrimSpace(*req.Description)
	}
	if req.GoalAmount != nil {
		m.UrgentNeedGoalAmount = *req.GoalAmount
	}
	if req.IsActive != nil {
		m.UrgentNeedIsActive = *req.IsActive
	}
	if req.Deadline != nil {
		if m.UrgentNeedDeadline, err = helper.ParseDateQuery(*req.Deadline); err != nil {
			return err
		}
	}
	previous := m.UrgentNeedImageURL
	if req.ImageURL != nil {
		m.UrgentNeedImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if fh := storage.FormFile(c, "image", "file"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.UrgentNeedImageURL = saved.URL
	}
	err = ctrl.DB.WithContext(c.UserContext()).Model(&model.UrgentNeedModel{}).
		Where("urgent_need_id = ?", m.UrgentNeedID).
		Updates(map[string]any{
			"urgent_need_title":       m.UrgentNeedTitle,
			"urgent_need_description": m.UrgentNeedDescription,
			"urgent_need_image_url":   m.UrgentNeedImageURL,
			"urgent_need_goal_amount": m.UrgentNeedGoalAmount,
			"urgent_need_deadline":    m.UrgentNeedDeadline,
			"urgent_need_is_active":   m.UrgentNeedIsActive,
			"updated_at":              helper.NowUTC(),
		}).Error
	if err != nil {
		if m.UrgentNeedImageURL != previous {
			ctrl.Media.Remove(c.UserContext(), m.UrgentNeedImageURL)
		}
		log.Error().Err(err).Str("urgent_need_id", m.UrgentNeedID.String()).Msg("update urgent need")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update urgent need")
	}
	ctrl.Media.Swap(c.UserContext(), previous, m.UrgentNeedImageURL)
	return helper.JsonUpdated(c, "urgent need updated", dto.ToUrgentNeedResponse(m))
}

// DELETE /admin/urgent-needs/:id
func (ctrl *UrgentNeedController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("donations").Where("donation_urgent_need_id = ?", m.UrgentNeedID).
			Update("donation_urgent_need_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.UrgentNeedModel{}, "urgent_need_id = ?", m.UrgentNeedID).Error
	})
	if err != nil {
		log.Error().Err(err).Str("urgent_need_id", m.UrgentNeedID.String()).Msg("delete urgent need")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete urgent need")
	}
	ctrl.Media.Remove(c.UserContext(), m.UrgentNeedImageURL)
	return helper.JsonDeleted(c, "urgent need deleted", fiber.Map{"id": m.UrgentNeedID})
}
