package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	donationService "amanah_backend/internals/features/donations/donations/service"
	"amanah_backend/internals/features/donations/subscriptions/dto"
	"amanah_backend/internals/features/donations/subscriptions/model"
	"amanah_backend/internals/features/donations/subscriptions/service"
	helper "amanah_backend/internals/helpers"
	helperAuth "amanah_backend/internals/helpers/auth"
)

type SubscriptionController struct {
	DB      *gorm.DB
	Service *service.SubscriptionService
}

func NewSubscriptionController(db *gorm.DB, svc *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{DB: db, Service: svc}
}

// POST /donations/subscriptions/checkout
func (ctrl *SubscriptionController) Checkout(c *fiber.Ctx) error {
	var req dto.SubscriptionCheckoutRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if req.ProgramID != nil {
		var n int64
		if err := ctrl.DB.WithContext(c.UserContext()).Table("programs").Where("program_id = ?", *req.ProgramID).Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check program")
		}
		if n == 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "program not found")
		}
	}

	in := service.Checkout{
		DonorName:  strings.TrimSpace(req.DonorName),
		DonorEmail: strings.ToLower(strings.TrimSpace(req.DonorEmail)),
		Amount:     req.Amount,
		Currency:   req.Currency,
		Interval:   req.Interval,
		ProgramID:  req.ProgramID,
	}
	if id, ok := helperAuth.GetOptionalUserID(c); ok {
		in.UserID = &id
	}

	sess, err := ctrl.Service.Checkout(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, donationService.ErrGatewayUnavailable) {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "recurring donations are not available")
		}
		log.Error().Err(err).Msg("subscription checkout")
		return helper.JsonError(c, fiber.StatusBadGateway, "failed to create payment session")
	}
	return helper.JsonCreated(c, "checkout session created", sess)
}

// GET /admin/subscriptions?status=&email=
func (ctrl *SubscriptionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.DonationSubscription{})
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("donation_subscription_status = ?", strings.ToLower(s))
	}
	if e := strings.TrimSpace(c.Query("email")); e != "" {
		q = q.Where("donation_subscription_donor_email = ?", strings.ToLower(e))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count subscriptions")
	}
	var rows []model.DonationSubscription
	if err := paging.Apply(q.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch subscriptions")
	}
	out := make([]dto.SubscriptionResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.ToSubscriptionResponse(s))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// POST /admin/subscriptions/:id/cancel
func (ctrl *SubscriptionController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	sub, err := ctrl.Service.Cancel(c.UserContext(), id)
	switch {
	case err == nil:
		return helper.JsonUpdated(c, "subscription canceled", dto.ToSubscriptionResponse(sub))
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyCanceled):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, donationService.ErrGatewayUnavailable):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "payment gateway is not available")
	default:
		log.Error().Err(err).Str("subscription_id", id.String()).Msg("cancel subscription")
		return helper.JsonError(c, fiber.StatusBadGateway, "failed to cancel subscription at the gateway")
	}
}
