package controller

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/features/engagement/newsletter/dto"
	"amanah_backend/internals/features/engagement/newsletter/model"
	authService "amanah_backend/internals/features/users/auth/service"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/mailer"
)

type NewsletterController struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
}

func NewNewsletterController(db *gorm.DB, m mailer.Mailer) *NewsletterController {
	return &NewsletterController{DB: db, Mailer: m}
}

func unsubscribeLink(token string) string {
	return configs.FrontendURL + "/newsletter/unsubscribe?token=" + url.QueryEscape(token)
}

// POST /newsletter/subscribe : repeat calls are fine, an inactive row is reactivated
func (ctrl *NewsletterController) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	db := ctrl.DB.WithContext(c.UserContext())

	var m model.NewsletterSubscriptionModel
	err := db.Where("newsletter_email = ?", email).Take(&m).Error
	switch {
	case err == nil && m.NewsletterIsActive:
		return helper.JsonOK(c, "already subscribed", dto.ToSubscriberResponse(m))
	case err == nil:
		m.NewsletterIsActive = true
		m.NewsletterSubscribedAt = helper.NowUTC()
		m.NewsletterUnsubscribedAt = nil
		if name != "" {
			m.NewsletterName = name
		}
		if err := db.Model(&m).Updates(map[string]any{
			"newsletter_is_active":       true,
			"newsletter_subscribed_at":   m.NewsletterSubscribedAt,
			"newsletter_unsubscribed_at": nil,
			"newsletter_name":            m.NewsletterName,
		}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to subscribe")
		}
	case helper.IsNotFound(err):
		m = model.NewsletterSubscriptionModel{
			NewsletterEmail:            email,
			NewsletterName:             name,
			NewsletterIsActive:         true,
			NewsletterUnsubscribeToken: authService.RandomToken(24),
			NewsletterSubscribedAt:     helper.NowUTC(),
		}
		if err := db.Create(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				// concurrent subscribe for the same address
				return helper.JsonOK(c, "already subscribed", fiber.Map{"email": email})
			}
			log.Error().Err(err).Msg("newsletter subscribe")
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to subscribe")
		}
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to subscribe")
	}

	greeting := m.NewsletterName
	if greeting == "" {
		greeting = "friend"
	}
	msg, err := mailer.Build("newsletter", "You are subscribed to "+configs.OrgName, m.NewsletterName, m.NewsletterEmail,
		mailer.Data{Org: configs.OrgName, Name: greeting, Link: unsubscribeLink(m.NewsletterUnsubscribeToken)})
	if err != nil {
		log.Error().Err(err).Msg("render newsletter email")
	} else {
		mailer.SendAsync(ctrl.Mailer, msg)
	}
	return helper.JsonCreated(c, "subscribed", dto.ToSubscriberResponse(m))
}

// GET|POST /newsletter/unsubscribe?token=
func (ctrl *NewsletterController) Unsubscribe(c *fiber.Ctx) error {
	var req dto.UnsubscribeRequest
	if c.Method() == fiber.MethodGet {
		req.Token = c.Query("token")
	} else if err := c.BodyParser(&req); err != nil || req.Token == "" {
		req.Token = c.Query("token")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	now := helper.NowUTC()
	res := ctrl.DB.WithContext(c.UserContext()).Model(&model.NewsletterSubscriptionModel{}).
		Where("newsletter_unsubscribe_token = ?", strings.TrimSpace(req.Token)).
		Where("newsletter_is_active = ?", true).
		Updates(map[string]any{"newsletter_is_active": false, "newsletter_unsubscribed_at": now})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to unsubscribe")
	}
	if res.RowsAffected == 0 {
		var n int64
		ctrl.DB.WithContext(c.UserContext()).Model(&model.NewsletterSubscriptionModel{}).
			Where("newsletter_unsubscribe_token = ?", strings.TrimSpace(req.Token)).Count(&n)
		if n == 0 {
			return helper.JsonError(c, fiber.StatusNotFound, "unknown unsubscribe token")
		}
	}
	return helper.JsonOK(c, "you have been unsubscribed", nil)
}

// GET /admin/newsletter?active=&q=
func (ctrl *NewsletterController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 500)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.NewsletterSubscriptionModel{})
	if v, ok := helper.QueryBool(c, "active"); ok {
		q = q.Where("newsletter_is_active = ?", v)
	}
	if kw := strings.ToLower(strings.TrimSpace(c.Query("q"))); kw != "" {
		q = q.Where("newsletter_email LIKE ?", "%"+kw+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count subscribers")
	}
	var rows []model.NewsletterSubscriptionModel
	if err := paging.Apply(q.Order("newsletter_subscribed_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch subscribers")
	}
	out := make([]dto.SubscriberResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToSubscriberResponse(r))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// DELETE /admin/newsletter/:id
func (ctrl *NewsletterController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.NewsletterSubscriptionModel{}, "newsletter_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete subscriber")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "subscriber not found")
	}
	return helper.JsonDeleted(c, "subscriber deleted", fiber.Map{"id": id})
}
