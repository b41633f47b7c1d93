package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/features/engagement/contacts/dto"
	"amanah_backend/internals/features/engagement/contacts/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/mailer"
)

type ContactController struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
	// NotifyAddress receives a copy of each new submission when set.
	NotifyAddress string
}

func NewContactController(db *gorm.DB, m mailer.Mailer, notifyAddress string) *ContactController {
	return &ContactController{DB: db, Mailer: m, NotifyAddress: notifyAddress}
}

// POST /contact
func (ctrl *ContactController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitContactRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	m := model.ContactSubmissionModel{
		ContactName:    strings.TrimSpace(req.Name),
		ContactEmail:   strings.ToLower(strings.TrimSpace(req.Email)),
		ContactSubject: strings.TrimSpace(req.Subject),
		ContactMessage: strings.TrimSpace(req.Message),
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		log.Error().Err(err).Msg("contact submit")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to send message")
	}

	if ctrl.NotifyAddress != "" {
		subject := "New contact message"
		if m.ContactSubject != "" {
			subject += ": " + m.ContactSubject
		}
		msg, err := mailer.Build("contact_notify", subject, configs.OrgName, ctrl.NotifyAddress, mailer.Data{
			Org: configs.OrgName, Name: m.ContactName, Email: m.ContactEmail, Subject: m.ContactSubject, Body: m.ContactMessage,
		})
		if err == nil {
			msg.ReplyTo = m.ContactEmail
			mailer.SendAsync(ctrl.Mailer, msg)
		}
	}
	return helper.JsonCreated(c, "thank you, we will get back to you soon", fiber.Map{"id": m.ContactID})
}

// GET /admin/contacts?resolved=
func (ctrl *ContactController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ContactSubmissionModel{})
	if v, ok := helper.QueryBool(c, "resolved"); ok {
		q = q.Where("contact_is_resolved = ?", v)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count messages")
	}
	var rows []model.ContactSubmissionModel
	if err := paging.Apply(q.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch messages")
	}
	out := make([]dto.ContactResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToContactResponse(r))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

func (ctrl *ContactController) find(c *fiber.Ctx) (model.ContactSubmissionModel, error) {
	var m model.ContactSubmissionModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "contact_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return m, fiber.NewError(fiber.StatusNotFound, "message not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "failed to load message")
	}
	return m, nil
}

func (ctrl *ContactController) Get(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToContactResponse(m))
}

// PATCH /admin/contacts/:id/resolve : toggles the resolved flag
func (ctrl *ContactController) Resolve(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	m.ContactIsResolved = !m.ContactIsResolved
	m.ContactResolvedAt = nil
	if m.ContactIsResolved {
		now := helper.NowUTC()
		m.ContactResolvedAt = &now
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&m).Updates(map[string]any{
		"contact_is_resolved": m.ContactIsResolved,
		"contact_resolved_at": m.ContactResolvedAt,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update message")
	}
	return helper.JsonUpdated(c, "message updated", dto.ToContactResponse(m))
}

// POST /admin/contacts/:id/reply : the email is sent before anything is stored
func (ctrl *ContactController) Reply(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	var req dto.ReplyContactRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Re: " + m.ContactSubject
		if m.ContactSubject == "" {
			subject = "Re: your message to " + configs.OrgName
		}
	}
	body := strings.TrimSpace(req.Message)
	msg, err := mailer.Build("contact_reply", subject, m.ContactName, m.ContactEmail, mailer.Data{
		Org: configs.OrgName, Name: m.ContactName, Body: body, Original: m.ContactMessage,
	})
	if err != nil {
		log.Error().Err(err).Msg("render contact reply")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to render reply")
	}
	if ctrl.Mailer == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "mail is not configured")
	}
	if err := ctrl.Mailer.Send(c.UserContext(), msg); err != nil {
		log.Error().Err(err).Str("contact_id", m.ContactID.String()).Msg("send contact reply")
		return helper.JsonError(c, fiber.StatusBadGateway, "failed to send reply")
	}

	now := helper.NowUTC()
	updates := map[string]any{
		"contact_reply_message": body,
		"contact_replied_at":    now,
	}
	m.ContactReplyMessage, m.ContactRepliedAt = body, &now
	if req.Resolve == nil || *req.Resolve {
		updates["contact_is_resolved"] = true
		m.ContactIsResolved = true
		if m.ContactResolvedAt == nil {
			updates["contact_resolved_at"] = now
			m.ContactResolvedAt = &now
		}
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&m).Updates(updates).Error; err != nil {
		log.Error().Err(err).Str("contact_id", m.ContactID.String()).Msg("store contact reply")
		return helper.JsonError(c, fiber.StatusInternalServerError, "reply sent but could not be saved")
	}
	return helper.JsonUpdated(c, "reply sent", dto.ToContactResponse(m))
}

// DELETE /admin/contacts/:id
func (ctrl *ContactController) Delete(c *fiber.Ctx) error {
	m, err := ctrl.find(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&model.ContactSubmissionModel{}, "contact_id = ?", m.ContactID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete message")
	}
	return helper.JsonDeleted(c, "message deleted", fiber.Map{"id": m.ContactID})
}
