package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/features/donations/certificates"
	"amanah_backend/internals/features/donations/donations/dto"
	"amanah_backend/internals/features/donations/donations/model"
	"amanah_backend/internals/features/donations/donations/service"
	authModel "amanah_backend/internals/features/users/auth/model"
	helper "amanah_backend/internals/helpers"
	helperAuth "amanah_backend/internals/helpers/auth"
)

type DonationController struct {
	DB      *gorm.DB
	Service *service.DonationService
}

func NewDonationController(db *gorm.DB, svc *service.DonationService) *DonationController {
	return &DonationController{DB: db, Service: svc}
}

// checkTargets makes sure referenced program / urgent need rows exist.
func (ctrl *DonationController) checkTargets(c *fiber.Ctx, programID, urgentNeedID *uuid.UUID) error {
	if programID != nil {
		var n int64
		if err := ctrl.DB.WithContext(c.UserContext()).Table("programs").Where("program_id = ?", *programID).Count(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to check program")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "program not found")
		}
	}
	if urgentNeedID != nil {
		var n int64
		if err := ctrl.DB.WithContext(c.UserContext()).Table("urgent_needs").Where("urgent_need_id = ?", *urgentNeedID).Count(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to check urgent need")
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "urgent need not found")
		}
	}
	return nil
}

func optionalUserID(c *fiber.Ctx) *uuid.UUID {
	if id, ok := helperAuth.GetOptionalUserID(c); ok {
		return &id
	}
	return nil
}

// 🟢 POST /donations : record a donation form submission
func (ctrl *DonationController) CreateDonation(c *fiber.Ctx) error {
	var req dto.CreateDonationRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if err := ctrl.checkTargets(c, req.ProgramID, req.UrgentNeedID); err != nil {
		return err
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = strings.ToLower(ctrl.Service.Currency)
	}
	d := model.Donation{
		DonationUserID:        optionalUserID(c),
		DonationDonorName:     strings.TrimSpace(req.DonorName),
		DonationDonorEmail:    strings.ToLower(strings.TrimSpace(req.DonorEmail)),
		DonationAmount:        req.Amount,
		DonationCurrency:      currency,
		DonationMessage:       strings.TrimSpace(req.Message),
		DonationIsAnonymous:   req.IsAnonymous,
		DonationStatus:        model.StatusPending,
		DonationGateway:       model.GatewayManual,
		DonationOrderID:       service.NewOrderID("DON"),
		DonationPaymentMethod: req.PaymentMethod,
		DonationProgramID:     req.ProgramID,
		DonationUrgentNeedID:  req.UrgentNeedID,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&d).Error; err != nil {
		log.Error().Err(err).Msg("create donation")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save donation")
	}

	ctrl.Service.NotifyDonor(d)
	return helper.JsonCreated(c, "donation recorded", dto.ToDonationResponse(d))
}

// 🟢 POST /donations/checkout : open a hosted payment page
func (ctrl *DonationController) Checkout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if handled, err := helper.BindAndValidate(c, &req); handled {
		return err
	}
	if err := ctrl.checkTargets(c, req.ProgramID, req.UrgentNeedID); err != nil {
		return err
	}

	sess, err := ctrl.Service.CheckoutDonation(c.UserContext(), service.DonationCheckout{
		CheckoutInput: service.CheckoutInput{
			Amount:     req.Amount,
			Currency:   req.Currency,
			DonorName:  strings.TrimSpace(req.DonorName),
			DonorEmail: strings.ToLower(strings.TrimSpace(req.DonorEmail)),
		},
		Gateway:      req.Gateway,
		Message:      strings.TrimSpace(req.Message),
		IsAnonymous:  req.IsAnonymous,
		UserID:       optionalUserID(c),
		ProgramID:    req.ProgramID,
		UrgentNeedID: req.UrgentNeedID,
	})
	if err != nil {
		return gatewayError(c, err)
	}
	return helper.JsonCreated(c, "checkout session created", sess)
}

func gatewayError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrGatewayUnavailable) {
		log.Warn().Err(err).Msg("checkout gateway unavailable")
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "payment gateway is not available")
	}
	log.Error().Err(err).Msg("checkout failed")
	return helper.JsonError(c, fiber.StatusBadGateway, "failed to create payment session")
}

// 🟢 GET /donations/recent : public donor wall
func (ctrl *DonationController) Recent(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	q := ctrl.DB.WithContext(c.UserContext()).Where("donation_status = ?", model.StatusCompleted)
	if raw := c.Query("program_id"); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "program_id is not a valid uuid")
		}
		q = q.Where("donation_program_id = ?", pid)
	}

	var rows []model.Donation
	if err := q.Order("donation_paid_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch donations")
	}
	out := make([]dto.PublicDonation, 0, len(rows))
	for _, d := range rows {
		out = append(out, dto.ToPublicDonation(d))
	}
	return helper.JsonOK(c, "ok", out)
}

func (ctrl *DonationController) currentUser(c *fiber.Ctx) (authModel.UserModel, error) {
	var u authModel.UserModel
	uid, err := helperAuth.GetUserID(c)
	if err != nil {
		return u, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&u, "id = ?", uid).Error; err != nil {
		return u, fiber.NewError(fiber.StatusUnauthorized, "user not found")
	}
	return u, nil
}

// ownsDonation matches by email only once the account has proven it.
func ownsDonation(d model.Donation, u authModel.UserModel) bool {
	if d.DonationUserID != nil && *d.DonationUserID == u.ID {
		return true
	}
	return u.EmailVerified && strings.EqualFold(d.DonationDonorEmail, u.Email)
}

// 🟢 GET /donations/mine : donations linked to the account or its verified email
func (ctrl *DonationController) Mine(c *fiber.Ctx) error {
	u, err := ctrl.currentUser(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Donation{})
	if u.EmailVerified {
		q = q.Where("donation_user_id = ? OR LOWER(donation_donor_email) = LOWER(?)", u.ID, u.Email)
	} else {
		q = q.Where("donation_user_id = ?", u.ID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count donations")
	}
	var rows []model.Donation
	if err := paging.Apply(q.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch donations")
	}
	out := make([]dto.DonationResponse, 0, len(rows))
	for _, d := range rows {
		out = append(out, dto.ToDonationResponse(d))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// 🟢 GET /donations/:id/certificate : PDF for the owner or an admin
func (ctrl *DonationController) Certificate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	u, err := ctrl.currentUser(c)
	if err != nil {
		return err
	}
	var d model.Donation
	if err := ctrl.DB.WithContext(c.UserContext()).First(&d, "donation_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "donation not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load donation")
	}
	if !ownsDonation(d, u) && !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "you can only download your own certificates")
	}

	pdf, err := certificates.Render(d, configs.OrgName)
	if err != nil {
		if errors.Is(err, certificates.ErrNotCompleted) {
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		log.Error().Err(err).Str("donation_id", id.String()).Msg("render certificate")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to render certificate")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+certificates.FileName(d)+`"`)
	return c.Send(pdf)
}
