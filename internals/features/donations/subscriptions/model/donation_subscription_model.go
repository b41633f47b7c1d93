package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"

	IntervalMonth = "month"
	IntervalYear  = "year"
)

// DonationSubscription mirrors a Stripe subscription created from a recurring checkout.
type DonationSubscription struct {
	DonationSubscriptionID uuid.UUID `gorm:"column:donation_subscription_id;type:uuid;primaryKey" json:"donation_subscription_id"`

	DonationSubscriptionUserID     *uuid.UUID `gorm:"column:donation_subscription_user_id;type:uuid;index" json:"donation_subscription_user_id,omitempty"`
	DonationSubscriptionDonorName  string     `gorm:"column:donation_subscription_donor_name;type:varchar(100);not null" json:"donation_subscription_donor_name"`
	DonationSubscriptionDonorEmail string     `gorm:"column:donation_subscription_donor_email;type:varchar(255);not null;index" json:"donation_subscription_donor_email"`
	DonationSubscriptionAmount     float64    `gorm:"column:donation_subscription_amount;type:numeric(14,2);not null" json:"donation_subscription_amount"`
	DonationSubscriptionCurrency   string     `gorm:"column:donation_subscription_currency;type:varchar(3);not null" json:"donation_subscription_currency"`
	DonationSubscriptionInterval   string     `gorm:"column:donation_subscription_interval;type:varchar(10);not null" json:"donation_subscription_interval"`
	DonationSubscriptionProgramID  *uuid.UUID `gorm:"column:donation_subscription_program_id;type:uuid" json:"donation_subscription_program_id,omitempty"`

	DonationSubscriptionStripeSubscriptionID string `gorm:"column:donation_subscription_stripe_subscription_id;type:varchar(255);not null;uniqueIndex" json:"donation_subscription_stripe_subscription_id"`
	DonationSubscriptionStripeCustomerID     string `gorm:"column:donation_subscription_stripe_customer_id;type:varchar(255)" json:"donation_subscription_stripe_customer_id,omitempty"`

	DonationSubscriptionStatus     string     `gorm:"column:donation_subscription_status;type:varchar(20);not null;index" json:"donation_subscription_status"`
	DonationSubscriptionCanceledAt *time.Time `gorm:"column:donation_subscription_canceled_at" json:"donation_subscription_canceled_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DonationSubscription) TableName() string {
	return "donation_subscriptions"
}

func (s *DonationSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.DonationSubscriptionID == uuid.Nil {
		s.DonationSubscriptionID = uuid.New()
	}
	if s.DonationSubscriptionStatus == "" {
		s.DonationSubscriptionStatus = SubscriptionActive
	}
	return nil
}
