package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"amanah_backend/internals/features/donations/donations/model"
	subModel "amanah_backend/internals/features/donations/subscriptions/model"
	helper "amanah_backend/internals/helpers"
)

// HandleStripeEvent applies a verified webhook event. Unknown event types are
// ignored. Every branch is idempotent so Stripe may redeliver freely.
func (s *DonationService) HandleStripeEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded,
		stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return err
		}
		if sess.Mode == stripe.CheckoutSessionModeSubscription {
			return s.upsertSubscriptionFromSession(ctx, &sess)
		}
		status := model.StatusCompleted
		switch {
		case event.Type == stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
			status = model.StatusFailed
		case sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid:
			status = model.StatusPending
		}
		return s.recordSession(ctx, &sess, status)

	case stripe.EventTypeInvoicePaid:
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return err
		}
		return s.recordInvoice(ctx, &inv)

	case stripe.EventTypeCustomerSubscriptionDeleted, stripe.EventTypeCustomerSubscriptionUpdated:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.syncSubscriptionStatus(ctx, &sub)

	default:
		log.Debug().Str("type", string(event.Type)).Msg("stripe event ignored")
		return nil
	}
}

func sessionEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return strings.ToLower(sess.CustomerDetails.Email)
	}
	if sess.CustomerEmail != "" {
		return strings.ToLower(sess.CustomerEmail)
	}
	return strings.ToLower(sess.Metadata["donor_email"])
}

func sessionName(sess *stripe.CheckoutSession) string {
	if n := strings.TrimSpace(sess.Metadata["donor_name"]); n != "" {
		return n
	}
	if sess.CustomerDetails != nil && sess.CustomerDetails.Name != "" {
		return sess.CustomerDetails.Name
	}
	return "Anonymous"
}

func metaUUID(meta map[string]string, key string) *uuid.UUID {
	raw := strings.TrimSpace(meta[key])
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// recordSession writes (or advances) the single donation row of a one-off
// Checkout Session.
func (s *DonationService) recordSession(ctx context.Context, sess *stripe.CheckoutSession, status string) error {
	if sess.ID == "" {
		return errors.New("checkout session without id")
	}
	var created *model.Donation

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderID := sess.Metadata["order_id"]
		if orderID == "" {
			orderID = sess.ClientReferenceID
		}

		var existing model.Donation
		q := tx.Unscoped().Where("donation_stripe_session_id = ?", sess.ID)
		if orderID != "" {
			q = q.Or("donation_order_id = ?", orderID)
		}
		err := q.Take(&existing).Error
		switch {
		case err == nil:
			if existing.DonationStripeSessionID == nil {
				if err := tx.Model(&existing).Update("donation_stripe_session_id", sess.ID).Error; err != nil {
					return err
				}
			}
			if existing.DonationStatus == model.StatusCompleted || existing.DeletedAt.Valid {
				return nil
			}
			return s.SetStatus(ctx, tx, &existing, status)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if orderID == "" {
			orderID = NewOrderID("STR")
		}
		currency := s.currency(string(sess.Currency))
		meta, _ := json.Marshal(sess.Metadata)
		d := model.Donation{
			DonationUserID:          metaUUID(sess.Metadata, "user_id"),
			DonationDonorName:       sessionName(sess),
			DonationDonorEmail:      sessionEmail(sess),
			DonationAmount:          FromMinorUnits(sess.AmountTotal, currency),
			DonationCurrency:        currency,
			DonationMessage:         sess.Metadata["message"],
			DonationIsAnonymous:     sess.Metadata["is_anonymous"] == "true",
			DonationStatus:          status,
			DonationGateway:         model.GatewayStripe,
			DonationOrderID:         orderID,
			DonationStripeSessionID: &sess.ID,
			DonationPaymentMethod:   "card",
			DonationProgramID:       metaUUID(sess.Metadata, "program_id"),
			DonationUrgentNeedID:    metaUUID(sess.Metadata, "urgent_need_id"),
			DonationMetadata:        datatypes.JSON(meta),
		}
		if sess.PaymentIntent != nil {
			d.DonationPaymentIntentID = sess.PaymentIntent.ID
		}
		if status == model.StatusCompleted {
			now := helper.NowUTC()
			d.DonationPaidAt = &now
		}
		if err := tx.Create(&d).Error; err != nil {
			return err
		}
		created = &d
		if status == model.StatusCompleted {
			return RecomputeRaised(tx, d.DonationProgramID, d.DonationUrgentNeedID)
		}
		return nil
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			// A concurrent delivery won the insert.
			log.Info().Str("session_id", sess.ID).Msg("stripe session already recorded")
			return nil
		}
		return err
	}
	if created != nil && created.DonationStatus == model.StatusCompleted {
		s.NotifyDonor(*created)
	}
	return nil
}

func (s *DonationService) upsertSubscriptionFromSession(ctx context.Context, sess *stripe.CheckoutSession) error {
	if sess.Subscription == nil || sess.Subscription.ID == "" {
		return errors.New("subscription checkout session without subscription id")
	}
	subID := sess.Subscription.ID

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&subModel.DonationSubscription{}).
			Where("donation_subscription_stripe_subscription_id = ?", subID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		currency := s.currency(string(sess.Currency))
		interval := sess.Metadata["interval"]
		if interval != subModel.IntervalYear {
			interval = subModel.IntervalMonth
		}
		row := subModel.DonationSubscription{
			DonationSubscriptionUserID:               metaUUID(sess.Metadata, "user_id"),
			DonationSubscriptionDonorName:            sessionName(sess),
			DonationSubscriptionDonorEmail:           sessionEmail(sess),
			DonationSubscriptionAmount:               FromMinorUnits(sess.AmountTotal, currency),
			DonationSubscriptionCurrency:             currency,
			DonationSubscriptionInterval:             interval,
			DonationSubscriptionProgramID:            metaUUID(sess.Metadata, "program_id"),
			DonationSubscriptionStripeSubscriptionID: subID,
			DonationSubscriptionStatus:               subModel.SubscriptionActive,
		}
		if sess.Customer != nil {
			row.DonationSubscriptionStripeCustomerID = sess.Customer.ID
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		// invoice.paid may have landed first; link those donations now.
		return tx.Model(&model.Donation{}).
			Where("donation_stripe_subscription_id = ? AND donation_subscription_id IS NULL", subID).
			Updates(map[string]any{
				"donation_subscription_id": row.DonationSubscriptionID,
				"donation_program_id":      row.DonationSubscriptionProgramID,
			}).Error
	})
}

// recordInvoice books one completed donation per paid subscription invoice.
func (s *DonationService) recordInvoice(ctx context.Context, inv *stripe.Invoice) error {
	if inv.Subscription == nil || inv.Subscription.ID == "" || inv.AmountPaid <= 0 {
		return nil
	}
	subID := inv.Subscription.ID
	var created *model.Donation

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Unscoped().Model(&model.Donation{}).
			Where("donation_stripe_invoice_id = ?", inv.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		currency := s.currency(string(inv.Currency))
		now := helper.NowUTC()
		d := model.Donation{
			DonationDonorName:            strings.TrimSpace(inv.CustomerName),
			DonationDonorEmail:           strings.ToLower(inv.CustomerEmail),
			DonationAmount:               FromMinorUnits(inv.AmountPaid, currency),
			DonationCurrency:             currency,
			DonationStatus:               model.StatusCompleted,
			DonationGateway:              model.GatewayStripe,
			DonationOrderID:              NewOrderID("SUB"),
			DonationStripeInvoiceID:      &inv.ID,
			DonationStripeSubscriptionID: &subID,
			DonationPaymentMethod:        "card",
			DonationPaidAt:               &now,
		}
		if inv.PaymentIntent != nil {
			d.DonationPaymentIntentID = inv.PaymentIntent.ID
		}

		var sub subModel.DonationSubscription
		err := tx.Where("donation_subscription_stripe_subscription_id = ?", subID).Take(&sub).Error
		switch {
		case err == nil:
			d.DonationSubscriptionID = &sub.DonationSubscriptionID
			d.DonationProgramID = sub.DonationSubscriptionProgramID
			d.DonationUserID = sub.DonationSubscriptionUserID
			if d.DonationDonorName == "" {
				d.DonationDonorName = sub.DonationSubscriptionDonorName
			}
			if d.DonationDonorEmail == "" {
				d.DonationDonorEmail = sub.DonationSubscriptionDonorEmail
			}
			if sub.DonationSubscriptionStatus == subModel.SubscriptionPastDue {
				if err := tx.Model(&sub).Update("donation_subscription_status", subModel.SubscriptionActive).Error; err != nil {
					return err
				}
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if d.DonationDonorName == "" {
			d.DonationDonorName = "Anonymous"
		}

		if err := tx.Create(&d).Error; err != nil {
			return err
		}
		created = &d
		return RecomputeRaised(tx, d.DonationProgramID, nil)
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	if created != nil {
		s.NotifyDonor(*created)
	}
	return nil
}

func (s *DonationService) syncSubscriptionStatus(ctx context.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}
	updates := map[string]any{}
	switch sub.Status {
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		now := helper.NowUTC()
		updates["donation_subscription_status"] = subModel.SubscriptionCanceled
		updates["donation_subscription_canceled_at"] = now
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		updates["donation_subscription_status"] = subModel.SubscriptionPastDue
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		updates["donation_subscription_status"] = subModel.SubscriptionActive
	default:
		return nil
	}
	return s.DB.WithContext(ctx).
		Model(&subModel.DonationSubscription{}).
		Where("donation_subscription_stripe_subscription_id = ?", sub.ID).
		Updates(updates).Error
}
