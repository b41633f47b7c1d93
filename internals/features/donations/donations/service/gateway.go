package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ModePayment      = "payment"
	ModeSubscription = "subscription"
)

var ErrGatewayUnavailable = errors.New("payment gateway not configured")

// CheckoutInput is what every gateway needs to open a hosted payment page.
type CheckoutInput struct {
	OrderID     string
	Mode        string
	Amount      float64
	Currency    string
	Interval    string
	DonorName   string
	DonorEmail  string
	Description string
	Metadata    map[string]string
}

type CheckoutSession struct {
	Gateway     string `json:"gateway"`
	OrderID     string `json:"order_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
	Token       string `json:"token,omitempty"`
}

type Gateway interface {
	Name() string
	CreateCheckout(ctx context.Context, in CheckoutInput) (*CheckoutSession, error)
}

// SubscriptionCanceler is implemented by gateways that manage recurring billing.
type SubscriptionCanceler interface {
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// Gateways resolves a gateway by name, falling back to the configured default.
type Gateways struct {
	Default string
	byName  map[string]Gateway
}

func NewGateways(defaultName string, gws ...Gateway) *Gateways {
	g := &Gateways{Default: strings.ToLower(defaultName), byName: map[string]Gateway{}}
	for _, gw := range gws {
		if gw != nil {
			g.byName[gw.Name()] = gw
		}
	}
	return g
}

func (g *Gateways) Get(name string) (Gateway, error) {
	if g == nil {
		return nil, ErrGatewayUnavailable
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = g.Default
	}
	gw, ok := g.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGatewayUnavailable, name)
	}
	return gw, nil
}

// Canceler returns the first registered gateway that can cancel subscriptions.
func (g *Gateways) Canceler(name string) (SubscriptionCanceler, error) {
	gw, err := g.Get(name)
	if err != nil {
		return nil, err
	}
	c, ok := gw.(SubscriptionCanceler)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot cancel subscriptions", ErrGatewayUnavailable, name)
	}
	return c, nil
}

var zeroDecimal = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// ToMinorUnits converts a major-unit amount into the integer Stripe expects.
func ToMinorUnits(amount float64, currency string) int64 {
	if zeroDecimal[strings.ToLower(currency)] {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}

func FromMinorUnits(minor int64, currency string) float64 {
	if zeroDecimal[strings.ToLower(currency)] {
		return float64(minor)
	}
	return float64(minor) / 100
}

// NewOrderID: DON-20240131-1a2b3c4d
func NewOrderID(prefix string) string {
	if prefix == "" {
		prefix = "DON"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102"), strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
