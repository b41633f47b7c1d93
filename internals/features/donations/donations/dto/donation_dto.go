package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"amanah_backend/internals/features/donations/donations/model"
)

// ============================
// Requests
// ============================

// CreateDonationRequest is the plain donation form (recorded, paid offline).
type CreateDonationRequest struct {
	DonorName     string     `json:"donor_name" form:"donor_name" validate:"required,min=2,max=100"`
	DonorEmail    string     `json:"donor_email" form:"donor_email" validate:"required,email"`
	Amount        float64    `json:"amount" form:"amount" validate:"required,gte=0.01"`
	Currency      string     `json:"currency" form:"currency" validate:"omitempty,len=3"`
	Message       string     `json:"message" form:"message" validate:"max=1000"`
	IsAnonymous   bool       `json:"is_anonymous" form:"is_anonymous"`
	PaymentMethod string     `json:"payment_method" form:"payment_method" validate:"max=50"`
	ProgramID     *uuid.UUID `json:"program_id" form:"program_id"`
	UrgentNeedID  *uuid.UUID `json:"urgent_need_id" form:"urgent_need_id"`
}

type CheckoutRequest struct {
	DonorName    string     `json:"donor_name" validate:"required,min=2,max=100"`
	DonorEmail   string     `json:"donor_email" validate:"required,email"`
	Amount       float64    `json:"amount" validate:"required,gte=0.01"`
	Currency     string     `json:"currency" validate:"omitempty,len=3"`
	Message      string     `json:"message" validate:"max=1000"`
	IsAnonymous  bool       `json:"is_anonymous"`
	Gateway      string     `json:"gateway" validate:"omitempty,oneof=stripe midtrans"`
	ProgramID    *uuid.UUID `json:"program_id"`
	UrgentNeedID *uuid.UUID `json:"urgent_need_id"`
}

type UpdateDonationRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending completed failed canceled expired"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

// ============================
// Responses
// ============================

type DonationResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         string     `json:"order_id"`
	DonorName       string     `json:"donor_name"`
	DonorEmail      string     `json:"donor_email"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Message         string     `json:"message,omitempty"`
	IsAnonymous     bool       `json:"is_anonymous"`
	Status          string     `json:"status"`
	Gateway         string     `json:"gateway"`
	PaymentMethod   string     `json:"payment_method,omitempty"`
	StripeSessionID *string    `json:"stripe_session_id,omitempty"`
	ProgramID       *uuid.UUID `json:"program_id,omitempty"`
	UrgentNeedID    *uuid.UUID `json:"urgent_need_id,omitempty"`
	SubscriptionID  *uuid.UUID `json:"subscription_id,omitempty"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToDonationResponse(d model.Donation) DonationResponse {
	return DonationResponse{
		ID:              d.DonationID,
		OrderID:         d.DonationOrderID,
		DonorName:       d.DonationDonorName,
		DonorEmail:      d.DonationDonorEmail,
		Amount:          d.DonationAmount,
		Currency:        d.DonationCurrency,
		Message:         d.DonationMessage,
		IsAnonymous:     d.DonationIsAnonymous,
		Status:          d.DonationStatus,
		Gateway:         d.DonationGateway,
		PaymentMethod:   d.DonationPaymentMethod,
		StripeSessionID: d.DonationStripeSessionID,
		ProgramID:       d.DonationProgramID,
		UrgentNeedID:    d.DonationUrgentNeedID,
		SubscriptionID:  d.DonationSubscriptionID,
		UserID:          d.DonationUserID,
		Notes:           d.DonationNotes,
		PaidAt:          d.DonationPaidAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// PublicDonation is what the donor wall shows. No email, masked names.
type PublicDonation struct {
	DonorName string     `json:"donor_name"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Message   string     `json:"message,omitempty"`
	ProgramID *uuid.UUID `json:"program_id,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func ToPublicDonation(d model.Donation) PublicDonation {
	name := d.DonationDonorName
	if d.DonationIsAnonymous {
		name = "Anonymous"
	} else {
		name = MaskName(name)
	}
	return PublicDonation{
		DonorName: name,
		Amount:    d.DonationAmount,
		Currency:  d.DonationCurrency,
		Message:   d.DonationMessage,
		ProgramID: d.DonationProgramID,
		PaidAt:    d.DonationPaidAt,
	}
}

// MaskName keeps the first name and initials the rest: "Siti Nur Aminah" -> "Siti N. A."
func MaskName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "Anonymous"
	}
	out := []string{parts[0]}
	for _, p := range parts[1:] {
		r := []rune(p)
		out = append(out, strings.ToUpper(string(r[0]))+".")
	}
	return strings.Join(out, " ")
}

type StatusTotal struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type MonthTotal struct {
	Month  string  `json:"month"` // YYYY-MM
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type StatsResponse struct {
	TotalCompleted float64       `json:"total_completed"`
	CountCompleted int64         `json:"count_completed"`
	ByStatus       []StatusTotal `json:"by_status"`
	ByMonth        []MonthTotal  `json:"by_month"`
}
