package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	"amanah_backend/internals/features/content/testimonials/dto"
	"amanah_backend/internals/features/content/testimonials/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/storage"
)

type TestimonialController struct {
	DB    *gorm.DB
	Media *storage.Processor
}

func NewTestimonialController(db *gorm.DB, media *storage.Processor) *TestimonialController {
	return &TestimonialController{DB: db, Media: media}
}

func (ctrl *TestimonialController) list(c *fiber.Ctx, q *gorm.DB) error {
	paging := helper.ResolvePaging(c, 12, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count testimonials")
	}
	var rows []model.TestimonialModel
	if err := paging.Apply(q.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch testimonials")
	}
	return helper.JsonList(c, "ok", dto.ToTestimonialResponses(rows), helper.BuildPagination(total, paging))
}

// GET /testimonials : approved only
func (ctrl *TestimonialController) List(c *fiber.Ctx) error {
	return ctrl.list(c, ctrl.DB.WithContext(c.UserContext()).Model(&model.TestimonialModel{}).
		Where("testimonial_is_approved = ?", true))
}

// POST /testimonials : public submission, waits for approval
func (ctrl *TestimonialController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitTestimonialRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	m := model.TestimonialModel{
		TestimonialName:    strings.TrimSpace(req.Name),
		TestimonialRole:    strings.TrimSpace(req.Role),
		TestimonialContent: strings.TrimSpace(req.Content),
		TestimonialRating:  req.Rating,
	}
	if fh := storage.FormFile(c, "photo"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.TestimonialPhotoURL = saved.URL
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		ctrl.Media.Remove(c.UserContext(), m.TestimonialPhotoURL)
		log.Error().Err(err).Msg("submit testimonial")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save testimonial")
	}
	return helper.JsonCreated(c, "thank you, your testimonial will appear after review", dto.ToTestimonialResponse(m))
}

// GET /admin/testimonials?approved=
func (ctrl *TestimonialController) AdminList(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.TestimonialModel{})
	if v, ok := helper.QueryBool(c, "approved"); ok {
		q = q.Where("testimonial_is_approved = ?", v)
	}
	return ctrl.list(c, q)
}

func (ctrl *TestimonialController) find(c *fiber.Ctx) (model.TestimonialModel, error) {
	var m model.TestimonialModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "testimonial_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "testimonial not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load testimonial")
	}
	return m, nil
}

// POST /admin/testimonials
func (ctrl *TestimonialController) Create(c *fiber.Ctx) error {
	var req dto.CreateTestimonialRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	m := model.TestimonialModel{
		TestimonialName:       strings.TrimSpace(req.Name),
		TestimonialRole:       strings.TrimSpace(req.Role),
		TestimonialContent:    strings.TrimSpace(req.Content),
		TestimonialRating:     req.Rating,
		TestimonialPhotoURL:   strings.TrimSpace(req.PhotoURL),
		TestimonialIsApproved: req.IsApproved == nil || *req.IsApproved,
	}
	if fh := storage.FormFile(c, "photo"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.TestimonialPhotoURL = saved.URL
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		ctrl.Media.Remove(c.UserContext(), m.TestimonialPhotoURL)
		log.Error().Err(err).Msg("create testimonial")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create testimonial")
	}
	return helper.JsonCreated(c, "testimonial created", dto.ToTestimonialResponse(m))
}

// PATCH /admin/testimonials/:id
func (ctrl *TestimonialController) Update(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTestimonialRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if req.Name != nil {
		m.TestimonialName = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		m.TestimonialRole = strings.TrimSpace(*req.Role)
	}
	if req.Content != nil {
		m.TestimonialContent = strings.TrimSpace(*req.Content)
	}
	if req.Rating != nil {
		m.TestimonialRating = *req.Rating
	}
	if req.IsApproved != nil {
		m.TestimonialIsApproved = *req.IsApproved
	}
	previous := m.TestimonialPhotoURL
	if req.PhotoURL != nil {
		m.TestimonialPhotoURL = strings.TrimSpace(*req.PhotoURL)
	}
	if fh := storage.FormFile(c, "photo"); fh != nil {
		saved, err := ctrl.Media.SaveUpload(c.UserContext(), fh, constants.MediaImage)
		if err != nil {
			return err
		}
		m.TestimonialPhotoURL = saved.URL
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		if m.TestimonialPhotoURL != previous {
			ctrl.Media.Remove(c.UserContext(), m.TestimonialPhotoURL)
		}
		log.Error().Err(err).Str("testimonial_id", m.TestimonialID.String()).Msg("update testimonial")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update testimonial")
	}
	ctrl.Media.Swap(c.UserContext(), previous, m.TestimonialPhotoURL)
	return helper.JsonUpdated(c, "testimonial updated", dto.ToTestimonialResponse(m))
}

// PATCH /admin/testimonials/:id/approve : body {"is_approved": false} hides it again
func (ctrl *TestimonialController) Approve(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	approved := true
	if len(c.Body()) > 0 {
		var req dto.ApproveRequest
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.IsApproved != nil {
			approved = *req.IsApproved
		}
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&m).Update("testimonial_is_approved", approved).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update testimonial")
	}
	m.TestimonialIsApproved = approved
	return helper.JsonUpdated(c, "testimonial updated", dto.ToTestimonialResponse(m))
}

// DELETE /admin/testimonials/:id
func (ctrl *TestimonialController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&model.TestimonialModel{}, "testimonial_id = ?", m.TestimonialID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete testimonial")
	}
	ctrl.Media.Remove(c.UserContext(), m.TestimonialPhotoURL)
	return helper.JsonDeleted(c, "testimonial deleted", fiber.Map{"id": m.TestimonialID})
}
