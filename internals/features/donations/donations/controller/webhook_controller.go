package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"amanah_backend/internals/features/donations/donations/service"
	helper "amanah_backend/internals/helpers"
)

// StripeWebhook: POST /donations/webhook/stripe
// A bad signature is rejected; processing errors are logged and acknowledged.
func (ctrl *DonationController) StripeWebhook(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)
	event, err := service.VerifyStripeEvent(payload, c.Get("Stripe-Signature"), ctrl.Service.StripeWebhookSecret)
	if err != nil {
		log.Warn().Err(err).Msg("[WEBHOOK] stripe signature verification failed")
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid stripe signature")
	}

	if err := ctrl.Service.HandleStripeEvent(c.UserContext(), event); err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Str("type", string(event.Type)).Msg("[WEBHOOK] stripe event failed")
	} else {
		log.Info().Str("event_id", event.ID).Str("type", string(event.Type)).Msg("[WEBHOOK] stripe event processed")
	}
	return c.JSON(fiber.Map{"received": true})
}

// MidtransWebhook: POST /donations/webhook/midtrans. Answers 200 so Midtrans
// stops retrying, except 503 while no server key is configured.
func (ctrl *DonationController) MidtransWebhook(c *fiber.Ctx) error {
	var n service.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		log.Warn().Err(err).Msg("[WEBHOOK] midtrans payload unreadable")
		return c.JSON(fiber.Map{"received": false})
	}
	if err := ctrl.Service.HandleMidtransNotification(c.UserContext(), n); err != nil {
		log.Error().Err(err).Str("order_id", n.OrderID).Str("status", n.TransactionStatus).Msg("[WEBHOOK] midtrans notification failed")
		if errors.Is(err, service.ErrGatewayUnavailable) {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "midtrans is not configured")
		}
		return c.JSON(fiber.Map{"received": false})
	}
	return c.JSON(fiber.Map{"received": true})
}
