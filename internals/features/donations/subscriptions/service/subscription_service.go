package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	donationModel "amanah_backend/internals/features/donations/donations/model"
	donationService "amanah_backend/internals/features/donations/donations/service"
	"amanah_backend/internals/features/donations/subscriptions/model"
	helper "amanah_backend/internals/helpers"
)

var (
	ErrNotFound        = errors.New("subscription not found")
	ErrAlreadyCanceled = errors.New("subscription is already canceled")
)

// SubscriptionService opens recurring checkouts and cancels them. Rows are
// created by the Stripe webhook once the first checkout completes.
type SubscriptionService struct {
	DB        *gorm.DB
	Donations *donationService.DonationService
}

func NewSubscriptionService(db *gorm.DB, donations *donationService.DonationService) *SubscriptionService {
	return &SubscriptionService{DB: db, Donations: donations}
}

type Checkout struct {
	DonorName  string
	DonorEmail string
	Amount     float64
	Currency   string
	Interval   string
	UserID     *uuid.UUID
	ProgramID  *uuid.UUID
}

func (s *SubscriptionService) Checkout(ctx context.Context, req Checkout) (*donationService.CheckoutSession, error) {
	gw, err := s.Donations.Gateways.Get(donationModel.GatewayStripe)
	if err != nil {
		return nil, err
	}
	interval := strings.ToLower(req.Interval)
	if interval != model.IntervalYear {
		interval = model.IntervalMonth
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = strings.ToLower(s.Donations.Currency)
	}
	in := donationService.CheckoutInput{
		OrderID:     donationService.NewOrderID("REC"),
		Mode:        donationService.ModeSubscription,
		Amount:      req.Amount,
		Currency:    currency,
		Interval:    interval,
		DonorName:   req.DonorName,
		DonorEmail:  req.DonorEmail,
		Description: "Recurring donation (" + interval + "ly)",
		Metadata: map[string]string{
			"donor_name":  req.DonorName,
			"donor_email": req.DonorEmail,
			"interval":    interval,
		},
	}
	if req.UserID != nil {
		in.Metadata["user_id"] = req.UserID.String()
	}
	if req.ProgramID != nil {
		in.Metadata["program_id"] = req.ProgramID.String()
	}
	return gw.CreateCheckout(ctx, in)
}

// Cancel stops billing at Stripe first, then marks the row canceled.
func (s *SubscriptionService) Cancel(ctx context.Context, id uuid.UUID) (model.DonationSubscription, error) {
	var sub model.DonationSubscription
	if err := s.DB.WithContext(ctx).First(&sub, "donation_subscription_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return sub, ErrNotFound
		}
		return sub, err
	}
	if sub.DonationSubscriptionStatus == model.SubscriptionCanceled {
		return sub, ErrAlreadyCanceled
	}

	canceler, err := s.Donations.Gateways.Canceler(donationModel.GatewayStripe)
	if err != nil {
		return sub, err
	}
	if err := canceler.CancelSubscription(ctx, sub.DonationSubscriptionStripeSubscriptionID); err != nil {
		return sub, err
	}

	now := helper.NowUTC()
	if err := s.DB.WithContext(ctx).Model(&sub).Updates(map[string]any{
		"donation_subscription_status":      model.SubscriptionCanceled,
		"donation_subscription_canceled_at": now,
	}).Error; err != nil {
		return sub, err
	}
	sub.DonationSubscriptionStatus = model.SubscriptionCanceled
	sub.DonationSubscriptionCanceledAt = &now
	return sub, nil
}
