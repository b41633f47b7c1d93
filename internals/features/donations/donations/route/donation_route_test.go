package route

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"

	"amanah_backend/internals/constants"
	programModel "amanah_backend/internals/features/content/programs/model"
	urgentModel "amanah_backend/internals/features/content/urgent_needs/model"
	"amanah_backend/internals/features/donations/donations/model"
	"amanah_backend/internals/features/donations/donations/service"
	subModel "amanah_backend/internals/features/donations/subscriptions/model"
	"amanah_backend/internals/helpers/mailer"
	authMiddleware "amanah_backend/internals/middlewares/auth"
	"amanah_backend/internals/testutil"
)

const (
	webhookSecret = "whsec_test"
	midtransKey   = "SB-Mid-server-test"
)

type fakeGateway struct {
	name string
	err  error

	mu    sync.Mutex
	calls []service.CheckoutInput
}

func (f *fakeGateway) Name() string { return f.name }

func (f *fakeGateway) CreateCheckout(_ context.Context, in service.CheckoutInput) (*service.CheckoutSession, error) {
	f.mu.Lock()
	f.calls = append(f.calls, in)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &service.CheckoutSession{
		Gateway:     f.name,
		OrderID:     in.OrderID,
		SessionID:   "sess_" + in.OrderID,
		CheckoutURL: "https://pay.example.org/" + in.OrderID,
		Token:       "tok_" + in.OrderID,
	}, nil
}

type env struct {
	app      *fiber.App
	db       *gorm.DB
	svc      *service.DonationService
	mail     *mailer.ConsoleMailer
	stripe   *fakeGateway
	midtrans *fakeGateway
}

func setup(t *testing.T) env {
	t.Helper()
	db := testutil.NewDB(t,
		&model.Donation{},
		&subModel.DonationSubscription{},
		&programModel.ProgramCategoryModel{},
		&programModel.ProgramModel{},
		&urgentModel.UrgentNeedModel{},
	)
	m := mailer.NewConsoleMailer(mail.Address{Address: "no-reply@example.org"})
	stripeGw := &fakeGateway{name: model.GatewayStripe}
	midtransGw := &fakeGateway{name: model.GatewayMidtrans}
	svc := &service.DonationService{
		DB:                  db,
		Mailer:              m,
		Gateways:            service.NewGateways(model.GatewayStripe, stripeGw, midtransGw),
		Currency:            "usd",
		StripeWebhookSecret: webhookSecret,
		MidtransServerKey:   midtransKey,
	}

	app := testutil.NewApp()
	api := app.Group("/api")
	DonationRoutes(api, db, svc)
	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("donations"), constants.AdminAndAbove...),
	)
	AdminDonationRoutes(admin, db, svc)
	return env{app: app, db: db, svc: svc, mail: m, stripe: stripeGw, midtrans: midtransGw}
}

func createProgram(t *testing.T, db *gorm.DB) programModel.ProgramModel {
	t.Helper()
	p := programModel.ProgramModel{
		ProgramName:       "Clean Water",
		ProgramSlug:       "clean-water-" + uuid.NewString()[:8],
		ProgramGoalAmount: 1000,
		ProgramIsActive:   true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func raisedOf(t *testing.T, db *gorm.DB, id uuid.UUID) float64 {
	t.Helper()
	var p programModel.ProgramModel
	require.NoError(t, db.First(&p, "program_id = ?", id).Error)
	return p.ProgramRaisedAmount
}

func TestCreateDonationPersistsRow(t *testing.T) {
	e := setup(t)

	res := testutil.DoJSON(t, e.app, "POST", "/api/donations", map[string]any{
		"donor_name":  "Budi Santoso",
		"donor_email": "Budi@Example.org",
		"amount":      25.5,
		"message":     "Semoga bermanfaat",
	}, "")
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "budi@example.org", res.Data()["donor_email"])
	assert.Equal(t, 25.5, res.Data()["amount"])
	assert.Equal(t, model.StatusPending, res.Data()["status"])
	assert.Equal(t, "usd", res.Data()["currency"])

	var d model.Donation
	require.NoError(t, e.db.First(&d, "donation_id = ?", res.Data()["id"]).Error)
	assert.Equal(t, "Budi Santoso", d.DonationDonorName)
	assert.Equal(t, model.GatewayManual, d.DonationGateway)
	assert.True(t, strings.HasPrefix(d.DonationOrderID, "DON-"))

	assert.Eventually(t, func() bool { return len(e.mail.Sent()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestCreateDonationValidation(t *testing.T) {
	e := setup(t)

	res := testutil.DoJSON(t, e.app, "POST", "/api/donations", map[string]any{
		"donor_name":  "Budi",
		"donor_email": "budi@example.org",
		"amount":      0,
	}, "")
	require.Equal(t, fiber.StatusUnprocessableEntity, res.Status)
	errs, _ := res.Body["errors"].(map[string]any)
	assert.Contains(t, errs, "amount")

	// below one cent rounds to nothing
	res = testutil.DoJSON(t, e.app, "POST", "/api/donations", map[string]any{
		"donor_name":  "Budi",
		"donor_email": "budi@example.org",
		"amount":      0.001,
	}, "")
	require.Equal(t, fiber.StatusUnprocessableEntity, res.Status)
	errs, _ = res.Body["errors"].(map[string]any)
	assert.Contains(t, errs, "amount")

	res = testutil.DoJSON(t, e.app, "POST", "/api/donations", map[string]any{
		"donor_name":  "Budi",
		"donor_email": "budi@example.org",
		"amount":      10,
		"program_id":  uuid.NewString(),
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	var n int64
	e.db.Model(&model.Donation{}).Count(&n)
	assert.Zero(t, n)
}

func TestCheckoutStripeDoesNotWriteRow(t *testing.T) {
	e := setup(t)
	p := createProgram(t, e.db)

	res := testutil.DoJSON(t, e.app, "POST", "/api/donations/checkout", map[string]any{
		"donor_name":  "Budi",
		"donor_email": "budi@example.org",
		"amount":      40,
		"program_id":  p.ProgramID,
	}, "")
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, model.GatewayStripe, res.Data()["gateway"])
	assert.NotEmpty(t, res.Data()["checkout_url"])

	require.Len(t, e.stripe.calls, 1)
	in := e.stripe.calls[0]
	assert.Equal(t, service.ModePayment, in.Mode)
	assert.Equal(t, "usd", in.Currency)
	assert.Equal(t, p.ProgramID.String(), in.Metadata["program_id"])
	assert.Equal(t, res.Data()["order_id"], in.OrderID)

	var n int64
	e.db.Model(&model.Donation{}).Count(&n)
	assert.Zero(t, n)
}

func TestCheckoutMidtransCreatesPendingRow(t *testing.T) {
	e := setup(t)

	res := testutil.DoJSON(t, e.app, "POST", "/api/donations/checkout", map[string]any{
		"donor_name":  "Budi",
		"donor_email": "budi@example.org",
		"amount":      150000,
		"currency":    "IDR",
		"gateway":     "midtrans",
	}, "")
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))

	var d model.Donation
	require.NoError(t, e.db.First(&d, "donation_order_id = ?", res.Data()["order_id"]).Error)
	assert.Equal(t, model.StatusPending, d.DonationStatus)
	assert.Equal(t, model.GatewayMidtrans, d.DonationGateway)
	assert.Equal(t, "idr", d.DonationCurrency)
	assert.Equal(t, "tok_"+d.DonationOrderID, d.DonationPaymentToken)
}

func TestCheckoutGatewayErrors(t *testing.T) {
	e := setup(t)
	e.midtrans.err = errors.New("snap: 401")

	res := testutil.DoJSON(t, e.app, "POST", "/api/donations/checkout", map[string]any{
		"donor_name":  "Budi",
		"donor_email": "budi@example.org",
		"amount":      10,
		"gateway":     "midtrans",
	}, "")
	require.Equal(t, fiber.StatusBadGateway, res.Status)

	var d model.Donation
	require.NoError(t, e.db.First(&d).Error)
	assert.Equal(t, model.StatusFailed, d.DonationStatus)

	e.svc.Gateways = service.NewGateways(model.GatewayStripe)
	res = testutil.DoJSON(t, e.app, "POST", "/api/donations/checkout", map[string]any{
		"donor_name":  "Budi",
		"donor_email": "budi@example.org",
		"amount":      10,
	}, "")
	assert.Equal(t, fiber.StatusServiceUnavailable, res.Status)
}

func stripeEvent(eventID, sessionID, orderID string, programID uuid.UUID, amountMinor int64) []byte {
	return []byte(fmt.Sprintf(`{
  "id": %q,
  "object": "event",
  "api_version": "2023-10-16",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": %q,
      "object": "checkout.session",
      "mode": "payment",
      "amount_total": %d,
      "currency": "usd",
      "payment_status": "paid",
      "payment_intent": "pi_123",
      "customer_details": {"email": "Budi@Example.org", "name": "Budi S"},
      "metadata": {
        "order_id": %q,
        "donor_name": "Budi Santoso",
        "donor_email": "budi@example.org",
        "program_id": %q
      }
    }
  }
}`, eventID, sessionID, amountMinor, orderID, programID.String()))
}

func postStripe(t *testing.T, app *fiber.App, payload []byte, sig string) testutil.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/donations/webhook/stripe", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", sig)
	return testutil.Do(t, app, req, "")
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	e := setup(t)
	payload := stripeEvent("evt_1", "cs_test_1", "DON-1", uuid.New(), 1000)

	res := postStripe(t, e.app, payload, "t=123,v1=deadbeef")
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: "whsec_other"})
	res = postStripe(t, e.app, payload, signed.Header)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	var n int64
	e.db.Model(&model.Donation{}).Count(&n)
	assert.Zero(t, n)
}

func TestStripeWebhookRecordsOneRowPerSession(t *testing.T) {
	e := setup(t)
	p := createProgram(t, e.db)
	payload := stripeEvent("evt_1", "cs_test_1", "DON-20240101-abc", p.ProgramID, 2500)

	for i := 0; i < 3; i++ {
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: webhookSecret})
		res := postStripe(t, e.app, payload, signed.Header)
		require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	}

	var rows []model.Donation
	require.NoError(t, e.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	d := rows[0]
	assert.Equal(t, model.StatusCompleted, d.DonationStatus)
	assert.Equal(t, model.GatewayStripe, d.DonationGateway)
	assert.Equal(t, 25.0, d.DonationAmount)
	assert.Equal(t, "budi@example.org", d.DonationDonorEmail)
	assert.Equal(t, "Budi Santoso", d.DonationDonorName)
	assert.Equal(t, "DON-20240101-abc", d.DonationOrderID)
	assert.Equal(t, "pi_123", d.DonationPaymentIntentID)
	require.NotNil(t, d.DonationStripeSessionID)
	assert.Equal(t, "cs_test_1", *d.DonationStripeSessionID)
	assert.NotNil(t, d.DonationPaidAt)

	assert.Equal(t, 25.0, raisedOf(t, e.db, p.ProgramID))

	// a second session adds to the program total
	payload2 := stripeEvent("evt_2", "cs_test_2", "DON-20240101-def", p.ProgramID, 1000)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload2, Secret: webhookSecret})
	require.Equal(t, fiber.StatusOK, postStripe(t, e.app, payload2, signed.Header).Status)
	assert.Equal(t, 35.0, raisedOf(t, e.db, p.ProgramID))
}

func TestStripeWebhookSubscriptionLifecycle(t *testing.T) {
	e := setup(t)
	send := func(body string) {
		payload := []byte(body)
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: webhookSecret})
		res := postStripe(t, e.app, payload, signed.Header)
		require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	}

	send(`{"id":"evt_s1","object":"event","type":"checkout.session.completed","data":{"object":{
		"id":"cs_sub_1","object":"checkout.session","mode":"subscription","amount_total":1500,"currency":"usd",
		"payment_status":"paid","customer":"cus_1","subscription":"sub_1",
		"customer_details":{"email":"ani@example.org","name":"Ani"},
		"metadata":{"donor_name":"Ani Lestari","interval":"month"}}}}`)

	invoice := `{"id":"evt_i1","object":"event","type":"invoice.paid","data":{"object":{
		"id":"in_1","object":"invoice","amount_paid":1500,"currency":"usd","customer_email":"ani@example.org",
		"customer_name":"Ani Lestari","subscription":"sub_1"}}}`
	send(invoice)
	send(invoice)

	var sub subModel.DonationSubscription
	require.NoError(t, e.db.First(&sub, "donation_subscription_stripe_subscription_id = ?", "sub_1").Error)
	assert.Equal(t, subModel.SubscriptionActive, sub.DonationSubscriptionStatus)
	assert.Equal(t, 15.0, sub.DonationSubscriptionAmount)
	assert.Equal(t, "cus_1", sub.DonationSubscriptionStripeCustomerID)

	var rows []model.Donation
	require.NoError(t, e.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].DonationSubscriptionID)
	assert.Equal(t, sub.DonationSubscriptionID, *rows[0].DonationSubscriptionID)
	assert.Equal(t, model.StatusCompleted, rows[0].DonationStatus)

	send(`{"id":"evt_d1","object":"event","type":"customer.subscription.deleted","data":{"object":{
		"id":"sub_1","object":"subscription","status":"canceled"}}}`)
	require.NoError(t, e.db.First(&sub, "donation_subscription_id = ?", sub.DonationSubscriptionID).Error)
	assert.Equal(t, subModel.SubscriptionCanceled, sub.DonationSubscriptionStatus)
	assert.NotNil(t, sub.DonationSubscriptionCanceledAt)
}

func TestMidtransStatusMapping(t *testing.T) {
	cases := []struct {
		tx, fraud, want string
		ok              bool
	}{
		{"capture", "accept", model.StatusCompleted, true},
		{"capture", "challenge", model.StatusPending, true},
		{"settlement", "", model.StatusCompleted, true},
		{"pending", "", model.StatusPending, true},
		{"expire", "", model.StatusExpired, true},
		{"cancel", "", model.StatusCanceled, true},
		{"deny", "", model.StatusCanceled, true},
		{"failure", "", model.StatusFailed, true},
		{"refund", "", "", false},
	}
	for _, tc := range cases {
		got, ok := service.MapMidtransStatus(tc.tx, tc.fraud)
		assert.Equal(t, tc.ok, ok, tc.tx)
		assert.Equal(t, tc.want, got, tc.tx)
	}
}

func TestMidtransNotificationCompletesDonation(t *testing.T) {
	e := setup(t)
	p := createProgram(t, e.db)
	d := model.Donation{
		DonationDonorName:  "Budi",
		DonationDonorEmail: "budi@example.org",
		DonationAmount:     150000,
		DonationCurrency:   "idr",
		DonationGateway:    model.GatewayMidtrans,
		DonationOrderID:    "DON-20240101-mid",
		DonationProgramID:  &p.ProgramID,
	}
	require.NoError(t, e.db.Create(&d).Error)

	notify := func(status string, signed bool) testutil.Response {
		n := service.MidtransNotification{
			OrderID:           d.DonationOrderID,
			TransactionID:     "trx-1",
			TransactionStatus: status,
			PaymentType:       "bank_transfer",
			StatusCode:        "200",
			GrossAmount:       "150000.00",
		}
		if signed {
			n.SignatureKey = service.MidtransSignature(n, midtransKey)
		}
		return testutil.DoJSON(t, e.app, "POST", "/api/donations/webhook/midtrans", n, "")
	}

	// bad signature is acknowledged but ignored
	res := notify("settlement", false)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, false, res.Body["received"])
	require.NoError(t, e.db.First(&d, "donation_id = ?", d.DonationID).Error)
	assert.Equal(t, model.StatusPending, d.DonationStatus)

	res = notify("settlement", true)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, true, res.Body["received"])
	require.NoError(t, e.db.First(&d, "donation_id = ?", d.DonationID).Error)
	assert.Equal(t, model.StatusCompleted, d.DonationStatus)
	assert.Equal(t, "bank_transfer", d.DonationPaymentMethod)
	assert.NotNil(t, d.DonationPaidAt)
	assert.Equal(t, 150000.0, raisedOf(t, e.db, p.ProgramID))

	// a completed donation never moves back
	require.Equal(t, fiber.StatusOK, notify("expire", true).Status)
	require.NoError(t, e.db.First(&d, "donation_id = ?", d.DonationID).Error)
	assert.Equal(t, model.StatusCompleted, d.DonationStatus)
}

func TestMidtransNotificationRequiresKeyAndGateway(t *testing.T) {
	e := setup(t)
	manual := model.Donation{
		DonationDonorName:  "Offline",
		DonationDonorEmail: "offline@example.org",
		DonationAmount:     75000,
		DonationCurrency:   "idr",
		DonationGateway:    model.GatewayManual,
		DonationOrderID:    "DON-20240101-man",
	}
	require.NoError(t, e.db.Create(&manual).Error)

	n := service.MidtransNotification{
		OrderID:           manual.DonationOrderID,
		TransactionID:     "trx-2",
		TransactionStatus: "settlement",
		PaymentType:       "bank_transfer",
		StatusCode:        "200",
		GrossAmount:       "75000.00",
	}
	n.SignatureKey = service.MidtransSignature(n, midtransKey)

	// a valid signature cannot settle a row from another gateway
	res := testutil.DoJSON(t, e.app, "POST", "/api/donations/webhook/midtrans", n, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, false, res.Body["received"])
	require.NoError(t, e.db.First(&manual, "donation_id = ?", manual.DonationID).Error)
	assert.Equal(t, model.StatusPending, manual.DonationStatus)
	assert.Empty(t, manual.DonationPaymentMethod)

	// without a server key nothing is trusted
	mid := model.Donation{
		DonationDonorName:  "Budi",
		DonationDonorEmail: "budi@example.org",
		DonationAmount:     75000,
		DonationCurrency:   "idr",
		DonationGateway:    model.GatewayMidtrans,
		DonationOrderID:    "DON-20240101-nokey",
	}
	require.NoError(t, e.db.Create(&mid).Error)
	e.svc.MidtransServerKey = ""
	unsigned := n
	unsigned.OrderID = mid.DonationOrderID
	unsigned.SignatureKey = ""
	res = testutil.DoJSON(t, e.app, "POST", "/api/donations/webhook/midtrans", unsigned, "")
	assert.Equal(t, fiber.StatusServiceUnavailable, res.Status)
	require.NoError(t, e.db.First(&mid, "donation_id = ?", mid.DonationID).Error)
	assert.Equal(t, model.StatusPending, mid.DonationStatus)
}

func TestRecentMasksDonors(t *testing.T) {
	e := setup(t)
	now := time.Now().UTC()
	earlier := now.Add(-time.Hour)
	rows := []model.Donation{
		{DonationDonorName: "Siti Nur Aminah", DonationDonorEmail: "siti@example.org", DonationAmount: 10, DonationCurrency: "usd", DonationStatus: model.StatusCompleted, DonationOrderID: "A", DonationPaidAt: &now},
		{DonationDonorName: "Hidden Person", DonationDonorEmail: "h@example.org", DonationAmount: 20, DonationCurrency: "usd", DonationStatus: model.StatusCompleted, DonationOrderID: "B", DonationIsAnonymous: true, DonationPaidAt: &earlier},
		{DonationDonorName: "Pending Donor", DonationDonorEmail: "p@example.org", DonationAmount: 30, DonationCurrency: "usd", DonationStatus: model.StatusPending, DonationOrderID: "C"},
	}
	require.NoError(t, e.db.Create(&rows).Error)

	res := testutil.DoJSON(t, e.app, "GET", "/api/donations/recent", nil, "")
	require.Equal(t, fiber.StatusOK, res.Status)
	list := res.List()
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	second := list[1].(map[string]any)
	assert.Equal(t, "Siti N. A.", first["donor_name"])
	assert.Equal(t, "Anonymous", second["donor_name"])
	assert.NotContains(t, first, "donor_email")
}

func TestMineAndCertificate(t *testing.T) {
	e := setup(t)
	owner := testutil.CreateUser(t, e.db, constants.RoleUser, "owner@example.org", "password123")
	other := testutil.CreateUser(t, e.db, constants.RoleUser, "other@example.org", "password123")
	admin := testutil.CreateUser(t, e.db, constants.RoleAdmin, "admin@example.org", "password123")

	paid := time.Now().UTC()
	done := model.Donation{DonationDonorName: "Owner", DonationDonorEmail: "owner@example.org", DonationAmount: 50, DonationCurrency: "usd", DonationStatus: model.StatusCompleted, DonationOrderID: "DON-OWN-1", DonationPaidAt: &paid}
	pending := model.Donation{DonationUserID: &owner.ID, DonationDonorName: "Owner", DonationDonorEmail: "x@example.org", DonationAmount: 5, DonationCurrency: "usd", DonationStatus: model.StatusPending, DonationOrderID: "DON-OWN-2"}
	require.NoError(t, e.db.Create(&done).Error)
	require.NoError(t, e.db.Create(&pending).Error)

	res := testutil.DoJSON(t, e.app, "GET", "/api/donations/mine", nil, testutil.TokenFor(t, owner))
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 2)

	res = testutil.DoJSON(t, e.app, "GET", "/api/donations/mine", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	path := "/api/donations/" + done.DonationID.String() + "/certificate"
	res = testutil.DoJSON(t, e.app, "GET", path, nil, testutil.TokenFor(t, owner))
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(res.Raw), "%PDF-"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "DON-OWN-1")

	res = testutil.DoJSON(t, e.app, "GET", path, nil, testutil.TokenFor(t, other))
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.DoJSON(t, e.app, "GET", path, nil, testutil.TokenFor(t, admin))
	assert.Equal(t, fiber.StatusOK, res.Status)

	res = testutil.DoJSON(t, e.app, "GET", "/api/donations/"+pending.DonationID.String()+"/certificate", nil, testutil.TokenFor(t, owner))
	assert.Equal(t, fiber.StatusConflict, res.Status)
}

func TestAdminDonationManagement(t *testing.T) {
	e := setup(t)
	admin := testutil.CreateUser(t, e.db, constants.RoleAdmin, "admin@example.org", "password123")
	user := testutil.CreateUser(t, e.db, constants.RoleUser, "user@example.org", "password123")
	tok := testutil.TokenFor(t, admin)
	p := createProgram(t, e.db)

	d := model.Donation{DonationDonorName: "Budi", DonationDonorEmail: "budi@example.org", DonationAmount: 75, DonationCurrency: "usd", DonationOrderID: "DON-ADM-1", DonationProgramID: &p.ProgramID}
	other := model.Donation{DonationDonorName: "Ani", DonationDonorEmail: "ani@example.org", DonationAmount: 10, DonationCurrency: "usd", DonationOrderID: "DON-ADM-2", DonationGateway: model.GatewayMidtrans}
	require.NoError(t, e.db.Create(&d).Error)
	require.NoError(t, e.db.Create(&other).Error)

	res := testutil.DoJSON(t, e.app, "GET", "/api/admin/donations", nil, testutil.TokenFor(t, user))
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.DoJSON(t, e.app, "GET", "/api/admin/donations?gateway=midtrans", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	require.Len(t, res.List(), 1)
	assert.Equal(t, "DON-ADM-2", res.List()[0].(map[string]any)["order_id"])

	res = testutil.DoJSON(t, e.app, "GET", "/api/admin/donations?q=budi", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	res = testutil.DoJSON(t, e.app, "PATCH", "/api/admin/donations/"+d.DonationID.String(), map[string]any{
		"status": "completed",
		"notes":  "bank transfer confirmed",
	}, tok)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, model.StatusCompleted, res.Data()["status"])
	assert.Equal(t, "bank transfer confirmed", res.Data()["notes"])
	assert.NotNil(t, res.Data()["paid_at"])
	assert.Equal(t, 75.0, raisedOf(t, e.db, p.ProgramID))

	res = testutil.DoJSON(t, e.app, "PATCH", "/api/admin/donations/"+d.DonationID.String(), map[string]any{"status": "refunded"}, tok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, res.Status)

	res = testutil.DoJSON(t, e.app, "GET", "/api/admin/donations/stats", nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, 75.0, res.Data()["total_completed"])
	assert.EqualValues(t, 1, res.Data()["count_completed"])
	byStatus, _ := res.Data()["by_status"].([]any)
	assert.Len(t, byStatus, 2)

	res = testutil.DoJSON(t, e.app, "DELETE", "/api/admin/donations/"+d.DonationID.String(), nil, tok)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, 0.0, raisedOf(t, e.db, p.ProgramID))

	res = testutil.DoJSON(t, e.app, "GET", "/api/admin/donations/"+d.DonationID.String(), nil, tok)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestUnverifiedEmailDoesNotClaimDonations(t *testing.T) {
	e := setup(t)
	squatter := testutil.CreateUser(t, e.db, constants.RoleUser, "victim@example.org", "password123")
	require.NoError(t, e.db.Model(&squatter).Update("email_verified", false).Error)

	paid := time.Now().UTC()
	guest := model.Donation{DonationDonorName: "Victim", DonationDonorEmail: "victim@example.org", DonationAmount: 80, DonationCurrency: "usd", DonationStatus: model.StatusCompleted, DonationOrderID: "DON-GUEST-1", DonationPaidAt: &paid}
	linked := model.Donation{DonationUserID: &squatter.ID, DonationDonorName: "Own", DonationDonorEmail: "victim@example.org", DonationAmount: 5, DonationCurrency: "usd", DonationStatus: model.StatusCompleted, DonationOrderID: "DON-LINK-1", DonationPaidAt: &paid}
	require.NoError(t, e.db.Create(&guest).Error)
	require.NoError(t, e.db.Create(&linked).Error)

	token := testutil.TokenFor(t, squatter)
	res := testutil.DoJSON(t, e.app, "GET", "/api/donations/mine", nil, token)
	require.Equal(t, fiber.StatusOK, res.Status)
	list := res.List()
	require.Len(t, list, 1)
	assert.Equal(t, "DON-LINK-1", list[0].(map[string]any)["order_id"])

	res = testutil.DoJSON(t, e.app, "GET", "/api/donations/"+guest.DonationID.String()+"/certificate", nil, token)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	// once verified, the email match applies
	require.NoError(t, e.db.Model(&squatter).Update("email_verified", true).Error)
	res = testutil.DoJSON(t, e.app, "GET", "/api/donations/mine", nil, token)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 2)
}
