package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/features/engagement/volunteers/dto"
	"amanah_backend/internals/features/engagement/volunteers/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/mailer"
)

type VolunteerController struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
}

func NewVolunteerController(db *gorm.DB, m mailer.Mailer) *VolunteerController {
	return &VolunteerController{DB: db, Mailer: m}
}

// POST /volunteers
func (ctrl *VolunteerController) Apply(c *fiber.Ctx) error {
	var req dto.ApplyVolunteerRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	m := model.VolunteerModel{
		VolunteerFullName:     strings.TrimSpace(req.FullName),
		VolunteerEmail:        strings.ToLower(strings.TrimSpace(req.Email)),
		VolunteerPhone:        strings.TrimSpace(req.Phone),
		VolunteerInterests:    strings.TrimSpace(req.Interests),
		VolunteerAvailability: strings.TrimSpace(req.Availability),
		VolunteerMessage:      strings.TrimSpace(req.Message),
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		log.Error().Err(err).Msg("volunteer apply")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save application")
	}

	msg, err := mailer.Build("volunteer", "We received your volunteer application", m.VolunteerFullName, m.VolunteerEmail,
		mailer.Data{Org: configs.OrgName, Name: m.VolunteerFullName})
	if err != nil {
		log.Error().Err(err).Msg("render volunteer email")
	} else {
		mailer.SendAsync(ctrl.Mailer, msg)
	}
	return helper.JsonCreated(c, "thank you for volunteering, we will be in touch", dto.ToVolunteerResponse(m))
}

// GET /admin/volunteers?status=&q=
func (ctrl *VolunteerController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.VolunteerModel{})
	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		q = q.Where("volunteer_status = ?", s)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("(LOWER(volunteer_full_name) LIKE ? OR LOWER(volunteer_email) LIKE ?)", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count volunteers")
	}
	var rows []model.VolunteerModel
	if err := paging.Apply(q.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch volunteers")
	}
	out := make([]dto.VolunteerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToVolunteerResponse(r))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

func (ctrl *VolunteerController) find(c *fiber.Ctx) (model.VolunteerModel, error) {
	var m model.VolunteerModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "volunteer_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "volunteer not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load volunteer")
	}
	return m, nil
}

// PATCH /admin/volunteers/:id/status
func (ctrl *VolunteerController) UpdateStatus(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateVolunteerStatusRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&m).Update("volunteer_status", req.Status).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update volunteer")
	}
	m.VolunteerStatus = req.Status
	return helper.JsonUpdated(c, "volunteer updated", dto.ToVolunteerResponse(m))
}

// DELETE /admin/volunteers/:id
func (ctrl *VolunteerController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&model.VolunteerModel{}, "volunteer_id = ?", m.VolunteerID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete volunteer")
	}
	return helper.JsonDeleted(c, "volunteer deleted", fiber.Map{"id": m.VolunteerID})
}
