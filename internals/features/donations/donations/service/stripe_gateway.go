package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/features/donations/donations/model"
)

type StripeGateway struct {
	cfg configs.StripeConfig
	api *client.API
}

func NewStripeGateway(cfg configs.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{cfg: cfg, api: api}
}

func (g *StripeGateway) Name() string { return model.GatewayStripe }

// CreateCheckout opens a hosted Checkout Session. Donor details travel as
// metadata so the webhook can write the donation row on completion.
func (g *StripeGateway) CreateCheckout(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	if g.cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: STRIPE_SECRET_KEY is empty", ErrGatewayUnavailable)
	}
	currency := strings.ToLower(in.Currency)
	if currency == "" {
		currency = g.cfg.Currency
	}
	desc := in.Description
	if desc == "" {
		desc = "Donation to " + configs.OrgName
	}

	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency: stripe.String(currency),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(desc),
		},
		UnitAmount: stripe.Int64(ToMinorUnits(in.Amount, currency)),
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL:        stripe.String(g.cfg.SuccessURL),
		CancelURL:         stripe.String(g.cfg.CancelURL),
		ClientReferenceID: stripe.String(in.OrderID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: priceData,
			Quantity:  stripe.Int64(1),
		}},
	}
	if in.DonorEmail != "" {
		params.CustomerEmail = stripe.String(in.DonorEmail)
	}
	params.Context = ctx

	meta := map[string]string{"order_id": in.OrderID}
	for k, v := range in.Metadata {
		if v != "" {
			meta[k] = v
		}
	}
	for k, v := range meta {
		params.AddMetadata(k, v)
	}

	if in.Mode == ModeSubscription {
		params.Mode = stripe.String(string(stripe.CheckoutSessionModeSubscription))
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String(in.Interval),
		}
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{Metadata: meta}
	} else {
		params.Mode = stripe.String(string(stripe.CheckoutSessionModePayment))
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{Metadata: meta}
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{
		Gateway:     model.GatewayStripe,
		OrderID:     in.OrderID,
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

func (g *StripeGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx
	_, err := g.api.Subscriptions.Cancel(subscriptionID, params)
	return err
}

// VerifyStripeEvent checks the Stripe-Signature header and decodes the event.
// The API version pin is relaxed so dashboard-configured endpoints keep working.
func VerifyStripeEvent(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	if secret == "" {
		return stripe.Event{}, fmt.Errorf("%w: STRIPE_WEBHOOK_SECRET is empty", ErrGatewayUnavailable)
	}
	return webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}
