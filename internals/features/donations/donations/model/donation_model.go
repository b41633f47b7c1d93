package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
	StatusExpired   = "expired"

	GatewayStripe   = "stripe"
	GatewayMidtrans = "midtrans"
	GatewayManual   = "manual"
)

var Statuses = []string{StatusPending, StatusCompleted, StatusFailed, StatusCanceled, StatusExpired}

type Donation struct {
	DonationID uuid.UUID `gorm:"column:donation_id;type:uuid;primaryKey" json:"donation_id"`

	DonationUserID *uuid.UUID `gorm:"column:donation_user_id;type:uuid;index" json:"donation_user_id,omitempty"`

	DonationDonorName   string  `gorm:"column:donation_donor_name;type:varchar(100);not null" json:"donation_donor_name"`
	DonationDonorEmail  string  `gorm:"column:donation_donor_email;type:varchar(255);not null;index" json:"donation_donor_email"`
	DonationAmount      float64 `gorm:"column:donation_amount;type:numeric(14,2);not null;check:donation_amount > 0" json:"donation_amount"`
	DonationCurrency    string  `gorm:"column:donation_currency;type:varchar(3);not null" json:"donation_currency"`
	DonationMessage     string  `gorm:"column:donation_message;type:text" json:"donation_message"`
	DonationIsAnonymous bool    `gorm:"column:donation_is_anonymous;not null" json:"donation_is_anonymous"`

	DonationStatus  string `gorm:"column:donation_status;type:varchar(20);not null;index" json:"donation_status"`
	DonationGateway string `gorm:"column:donation_gateway;type:varchar(20);not null" json:"donation_gateway"`
	DonationOrderID string `gorm:"column:donation_order_id;type:varchar(100);not null;uniqueIndex" json:"donation_order_id"`

	DonationStripeSessionID      *string `gorm:"column:donation_stripe_session_id;type:varchar(255);uniqueIndex" json:"donation_stripe_session_id,omitempty"`
	DonationStripeInvoiceID      *string `gorm:"column:donation_stripe_invoice_id;type:varchar(255);uniqueIndex" json:"donation_stripe_invoice_id,omitempty"`
	DonationStripeSubscriptionID *string `gorm:"column:donation_stripe_subscription_id;type:varchar(255);index" json:"donation_stripe_subscription_id,omitempty"`
	DonationPaymentIntentID      string  `gorm:"column:donation_payment_intent_id;type:varchar(255)" json:"donation_payment_intent_id,omitempty"`
	DonationPaymentToken         string  `gorm:"column:donation_payment_token;type:text" json:"-"`
	DonationPaymentMethod        string  `gorm:"column:donation_payment_method;type:varchar(50)" json:"donation_payment_method,omitempty"`

	DonationProgramID      *uuid.UUID `gorm:"column:donation_program_id;type:uuid;index" json:"donation_program_id,omitempty"`
	DonationUrgentNeedID   *uuid.UUID `gorm:"column:donation_urgent_need_id;type:uuid;index" json:"donation_urgent_need_id,omitempty"`
	DonationSubscriptionID *uuid.UUID `gorm:"column:donation_subscription_id;type:uuid;index" json:"donation_subscription_id,omitempty"`

	DonationNotes    string         `gorm:"column:donation_notes;type:text" json:"donation_notes,omitempty"`
	DonationMetadata datatypes.JSON `gorm:"column:donation_metadata" json:"donation_metadata,omitempty"`
	DonationPaidAt   *time.Time     `gorm:"column:donation_paid_at" json:"donation_paid_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.DonationID == uuid.Nil {
		d.DonationID = uuid.New()
	}
	if d.DonationStatus == "" {
		d.DonationStatus = StatusPending
	}
	if d.DonationGateway == "" {
		d.DonationGateway = GatewayManual
	}
	return nil
}
