package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"amanah_backend/internals/configs"
	"amanah_backend/internals/features/donations/donations/model"
)

type MidtransGateway struct {
	serverKey string
	client    snap.Client
}

func NewMidtransGateway(cfg configs.MidtransConfig) *MidtransGateway {
	env := midtrans.Sandbox
	if cfg.UseProd {
		env = midtrans.Production
	}
	g := &MidtransGateway{serverKey: cfg.ServerKey}
	g.client.New(cfg.ServerKey, env)
	return g
}

func (g *MidtransGateway) Name() string { return model.GatewayMidtrans }

// CreateCheckout requests a Snap token. Midtrans only takes whole amounts.
func (g *MidtransGateway) CreateCheckout(_ context.Context, in CheckoutInput) (*CheckoutSession, error) {
	if g.serverKey == "" {
		return nil, fmt.Errorf("%w: MIDTRANS_SERVER_KEY is empty", ErrGatewayUnavailable)
	}
	if in.Mode == ModeSubscription {
		return nil, fmt.Errorf("%w: midtrans does not support recurring checkout", ErrGatewayUnavailable)
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  in.OrderID,
			GrossAmt: int64(math.Round(in.Amount)),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.DonorName,
			Email: in.DonorEmail,
		},
	}
	resp, mErr := g.client.CreateTransaction(req)
	if mErr != nil {
		return nil, mErr
	}
	return &CheckoutSession{
		Gateway:     model.GatewayMidtrans,
		OrderID:     in.OrderID,
		SessionID:   resp.Token,
		CheckoutURL: resp.RedirectURL,
		Token:       resp.Token,
	}, nil
}

// MidtransNotification is the HTTP notification body Midtrans posts.
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

// MidtransSignature = sha512(order_id + status_code + gross_amount + server_key).
func MidtransSignature(n MidtransNotification, serverKey string) string {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// MapMidtransStatus returns the donation status for a notification and
// whether the notification should change anything.
func MapMidtransStatus(transactionStatus, fraudStatus string) (string, bool) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return model.StatusPending, true
		}
		return model.StatusCompleted, true
	case "settlement":
		return model.StatusCompleted, true
	case "expire":
		return model.StatusExpired, true
	case "cancel", "deny":
		return model.StatusCanceled, true
	case "failure":
		return model.StatusFailed, true
	case "pending":
		return model.StatusPending, true
	default:
		return "", false
	}
}
