package dto

import (
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/donations/subscriptions/model"
)

type SubscriptionCheckoutRequest struct {
	DonorName  string     `json:"donor_name" validate:"required,min=2,max=100"`
	DonorEmail string     `json:"donor_email" validate:"required,email"`
	Amount     float64    `json:"amount" validate:"required,gte=0.01"`
	Currency   string     `json:"currency" validate:"omitempty,len=3"`
	Interval   string     `json:"interval" validate:"omitempty,oneof=month year"`
	ProgramID  *uuid.UUID `json:"program_id"`
}

type SubscriptionResponse struct {
	ID                   uuid.UUID  `json:"id"`
	DonorName            string     `json:"donor_name"`
	DonorEmail           string     `json:"donor_email"`
	Amount               float64    `json:"amount"`
	Currency             string     `json:"currency"`
	Interval             string     `json:"interval"`
	ProgramID            *uuid.UUID `json:"program_id,omitempty"`
	UserID               *uuid.UUID `json:"user_id,omitempty"`
	StripeSubscriptionID string     `json:"stripe_subscription_id"`
	StripeCustomerID     string     `json:"stripe_customer_id,omitempty"`
	Status               string     `json:"status"`
	CanceledAt           *time.Time `json:"canceled_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

func ToSubscriptionResponse(s model.DonationSubscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                   s.DonationSubscriptionID,
		DonorName:            s.DonationSubscriptionDonorName,
		DonorEmail:           s.DonationSubscriptionDonorEmail,
		Amount:               s.DonationSubscriptionAmount,
		Currency:             s.DonationSubscriptionCurrency,
		Interval:             s.DonationSubscriptionInterval,
		ProgramID:            s.DonationSubscriptionProgramID,
		UserID:               s.DonationSubscriptionUserID,
		StripeSubscriptionID: s.DonationSubscriptionStripeSubscriptionID,
		StripeCustomerID:     s.DonationSubscriptionStripeCustomerID,
		Status:               s.DonationSubscriptionStatus,
		CanceledAt:           s.DonationSubscriptionCanceledAt,
		CreatedAt:            s.CreatedAt,
	}
}
