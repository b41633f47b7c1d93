package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/features/donations/donations/model"
	helper "amanah_backend/internals/helpers"
	"amanah_backend/internals/helpers/mailer"
)

// DonationService owns every state change of a donation row.
type DonationService struct {
	DB                  *gorm.DB
	Mailer              mailer.Mailer
	Gateways            *Gateways
	Currency            string
	StripeWebhookSecret string
	MidtransServerKey   string
}

func (s *DonationService) currency(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code != "" {
		return code
	}
	if s.Currency != "" {
		return strings.ToLower(s.Currency)
	}
	return "usd"
}

// RecomputeRaised resets raised totals of the program and urgent need a
// donation points at from the completed donations that reference them.
func RecomputeRaised(tx *gorm.DB, programID, urgentNeedID *uuid.UUID) error {
	if programID != nil {
		if err := tx.Exec(`UPDATE programs SET program_raised_amount = (
			SELECT COALESCE(SUM(donation_amount), 0) FROM donations
			WHERE donation_program_id = ? AND donation_status = ? AND deleted_at IS NULL
		) WHERE program_id = ?`, *programID, model.StatusCompleted, *programID).Error; err != nil {
			return err
		}
	}
	if urgentNeedID != nil {
		if err := tx.Exec(`UPDATE urgent_needs SET urgent_need_raised_amount = (
			SELECT COALESCE(SUM(donation_amount), 0) FROM donations
			WHERE donation_urgent_need_id = ? AND donation_status = ? AND deleted_at IS NULL
		) WHERE urgent_need_id = ?`, *urgentNeedID, model.StatusCompleted, *urgentNeedID).Error; err != nil {
			return err
		}
	}
	return nil
}

// NotifyDonor sends the thank-you email in the background.
func (s *DonationService) NotifyDonor(d model.Donation) {
	if s.Mailer == nil || d.DonationDonorEmail == "" {
		return
	}
	data := mailer.Data{
		Org:       configs.OrgName,
		Name:      d.DonationDonorName,
		Amount:    helper.FormatMoney(d.DonationAmount, d.DonationCurrency),
		Reference: d.DonationOrderID,
	}
	if d.DonationStatus == model.StatusCompleted && d.DonationUserID != nil {
		data.Link = configs.FrontendURL + "/account/donations"
	}
	msg, err := mailer.Build("donation", "Thank you for your donation", d.DonationDonorName, d.DonationDonorEmail, data)
	if err != nil {
		log.Error().Err(err).Str("order_id", d.DonationOrderID).Msg("render donation email")
		return
	}
	mailer.SendAsync(s.Mailer, msg)
}

// SetStatus moves a donation to status, stamping paid_at on completion and
// refreshing the raised totals it contributes to.
func (s *DonationService) SetStatus(ctx context.Context, tx *gorm.DB, d *model.Donation, status string) error {
	if d.DonationStatus == status {
		return nil
	}
	updates := map[string]any{"donation_status": status}
	if status == model.StatusCompleted && d.DonationPaidAt == nil {
		now := helper.NowUTC()
		updates["donation_paid_at"] = now
		d.DonationPaidAt = &now
	}
	if err := tx.WithContext(ctx).Model(d).Updates(updates).Error; err != nil {
		return err
	}
	wasCompleted := d.DonationStatus == model.StatusCompleted
	d.DonationStatus = status
	if wasCompleted || status == model.StatusCompleted {
		return RecomputeRaised(tx.WithContext(ctx), d.DonationProgramID, d.DonationUrgentNeedID)
	}
	return nil
}

// DonationCheckout is a one-off checkout request with its donation context.
type DonationCheckout struct {
	CheckoutInput
	Gateway      string
	Message      string
	IsAnonymous  bool
	UserID       *uuid.UUID
	ProgramID    *uuid.UUID
	UrgentNeedID *uuid.UUID
}

// CheckoutDonation opens a gateway session for a one-off donation. Midtrans
// needs the row beforehand to match notifications by order id; Stripe rows
// are written by the webhook.
func (s *DonationService) CheckoutDonation(ctx context.Context, req DonationCheckout) (*CheckoutSession, error) {
	gw, err := s.Gateways.Get(req.Gateway)
	if err != nil {
		return nil, err
	}
	in := req.CheckoutInput
	in.Mode = ModePayment
	in.Currency = s.currency(in.Currency)
	if in.OrderID == "" {
		in.OrderID = NewOrderID("DON")
	}
	in.Metadata = map[string]string{
		"donor_name":  in.DonorName,
		"donor_email": in.DonorEmail,
		"message":     truncate(req.Message, 450),
	}
	if req.IsAnonymous {
		in.Metadata["is_anonymous"] = "true"
	}
	if req.UserID != nil {
		in.Metadata["user_id"] = req.UserID.String()
	}
	if req.ProgramID != nil {
		in.Metadata["program_id"] = req.ProgramID.String()
	}
	if req.UrgentNeedID != nil {
		in.Metadata["urgent_need_id"] = req.UrgentNeedID.String()
	}

	var pending *model.Donation
	if gw.Name() == model.GatewayMidtrans {
		pending = &model.Donation{
			DonationUserID:       req.UserID,
			DonationDonorName:    in.DonorName,
			DonationDonorEmail:   strings.ToLower(in.DonorEmail),
			DonationAmount:       in.Amount,
			DonationCurrency:     in.Currency,
			DonationMessage:      req.Message,
			DonationIsAnonymous:  req.IsAnonymous,
			DonationStatus:       model.StatusPending,
			DonationGateway:      model.GatewayMidtrans,
			DonationOrderID:      in.OrderID,
			DonationProgramID:    req.ProgramID,
			DonationUrgentNeedID: req.UrgentNeedID,
		}
		if err := s.DB.WithContext(ctx).Create(pending).Error; err != nil {
			return nil, err
		}
	}

	sess, err := gw.CreateCheckout(ctx, in)
	if err != nil {
		if pending != nil {
			if uerr := s.DB.WithContext(ctx).Model(pending).Update("donation_status", model.StatusFailed).Error; uerr != nil {
				log.Error().Err(uerr).Str("order_id", in.OrderID).Msg("mark failed checkout")
			}
		}
		return nil, err
	}
	if pending != nil && sess.Token != "" {
		if err := s.DB.WithContext(ctx).Model(pending).Update("donation_payment_token", sess.Token).Error; err != nil {
			log.Warn().Err(err).Str("order_id", in.OrderID).Msg("store snap token")
		}
	}
	return sess, nil
}

// Stripe caps metadata values at 500 characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
