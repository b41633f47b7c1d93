package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"amanah_backend/internals/features/donations/donations/model"
)

var (
	ErrInvalidSignature = errors.New("invalid notification signature")
	ErrGatewayMismatch  = errors.New("donation was not checked out through midtrans")
)

// HandleMidtransNotification updates the pending row created at checkout.
func (s *DonationService) HandleMidtransNotification(ctx context.Context, n MidtransNotification) error {
	if n.OrderID == "" || n.TransactionStatus == "" {
		return errors.New("incomplete midtrans notification")
	}
	if s.MidtransServerKey == "" {
		return fmt.Errorf("%w: MIDTRANS_SERVER_KEY is empty", ErrGatewayUnavailable)
	}
	want := MidtransSignature(n, s.MidtransServerKey)
	if subtle.ConstantTimeCompare([]byte(want), []byte(n.SignatureKey)) != 1 {
		return ErrInvalidSignature
	}

	status, ok := MapMidtransStatus(n.TransactionStatus, n.FraudStatus)
	if !ok {
		log.Info().Str("order_id", n.OrderID).Str("status", n.TransactionStatus).Msg("midtrans status not handled")
		return nil
	}

	var notify *model.Donation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d model.Donation
		if err := tx.Where("donation_order_id = ?", n.OrderID).Take(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("donation with order_id %s not found", n.OrderID)
			}
			return err
		}
		if d.DonationGateway != model.GatewayMidtrans {
			return fmt.Errorf("%w: order_id %s uses %q", ErrGatewayMismatch, n.OrderID, d.DonationGateway)
		}
		// A settled donation never moves back.
		if d.DonationStatus == model.StatusCompleted {
			return nil
		}
		if n.PaymentType != "" && d.DonationPaymentMethod != n.PaymentType {
			if err := tx.Model(&d).Updates(map[string]any{
				"donation_payment_method":    n.PaymentType,
				"donation_payment_intent_id": n.TransactionID,
			}).Error; err != nil {
				return err
			}
		}
		if err := s.SetStatus(ctx, tx, &d, status); err != nil {
			return err
		}
		if status == model.StatusCompleted {
			notify = &d
		}
		return nil
	})
	if err != nil {
		return err
	}
	if notify != nil {
		s.NotifyDonor(*notify)
	}
	return nil
}
