package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"huduma/models"
	"huduma/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	orders map[string]*models.Order
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}
func (f *fakeOrderRepo) GetByID(id string) (*models.Order, error) {
	if o, ok := f.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeOrderRepo) ListByCustomer(customerID string) ([]models.Order, error) { return nil, nil }
func (f *fakeOrderRepo) SetBookingIDs(id string, bookingIDs []string) error       { return nil }
func (f *fakeOrderRepo) Delete(id string) error                                   { return nil }
func (f *fakeOrderRepo) MarkPaid(id string, rec models.PaymentRecord) (bool, error) {
	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	for _, existing := range o.PaymentHistory {
		if existing.SessionID == rec.SessionID {
			return false, nil
		}
	}
	o.PaymentStatus = models.PaymentStatusPaid
	o.OrderStatus = models.OrderStatusProcessing
	o.PaymentHistory = append(o.PaymentHistory, rec)
	return true, nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}
func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeBookingRepo) GetByOrderID(orderID string) ([]models.Booking, error)      { return nil, nil }
func (f *fakeBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) { return nil, nil }
func (f *fakeBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) { return nil, nil }
func (f *fakeBookingRepo) List() ([]models.Booking, error)                            { return nil, nil }
func (f *fakeBookingRepo) Delete(id string) error                                     { return nil }
func (f *fakeBookingRepo) SetStatus(id, status string) error                          { return nil }
func (f *fakeBookingRepo) SetStatusIfNot(id, newStatus, guard string) (bool, error) {
	return false, nil
}
func (f *fakeBookingRepo) MarkPaid(id string, rec models.PaymentRecord) (bool, error) {
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	for _, existing := range b.PaymentHistory {
		if existing.SessionID == rec.SessionID {
			return false, nil
		}
	}
	b.PaymentStatus = models.PaymentStatusPaid
	b.PaymentHistory = append(b.PaymentHistory, rec)
	return true, nil
}

type fakeGateway struct {
	lastParams *stripe.CheckoutSessionParams
	fail       bool
}

func (f *fakeGateway) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if f.fail {
		return nil, errors.New("stripe is down")
	}
	f.lastParams = params
	return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.test/cs_test_123"}, nil
}

type paymentFixture struct {
	svc      *DefaultPaymentService
	orders   *fakeOrderRepo
	bookings *fakeBookingRepo
	gateway  *fakeGateway
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		orders:   &fakeOrderRepo{orders: map[string]*models.Order{}},
		bookings: &fakeBookingRepo{bookings: map[string]*models.Booking{}},
		gateway:  &fakeGateway{},
	}
	f.svc = NewDefaultPaymentService(f.gateway, f.orders, f.bookings, zap.NewNop(), "whsec_test", "https://app.test")
	return f
}

// verifierFor replaces signature verification with one that trusts the
// payload as a pre-built event.
func verifierFor(event stripe.Event) SignatureVerifier {
	return func(payload []byte, header, secret string) (stripe.Event, error) {
		return event, nil
	}
}

func failingVerifier(payload []byte, header, secret string) (stripe.Event, error) {
	return stripe.Event{}, errors.New("signature mismatch")
}

func checkoutCompletedEvent(t *testing.T, sessionID, paymentStatus string, amountCents int64, metadata map[string]string) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id":             sessionID,
		"payment_status": paymentStatus,
		"amount_total":   amountCents,
		"currency":       "usd",
		"metadata":       metadata,
	})
	require.NoError(t, err)
	return stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	f := newPaymentFixture()
	f.orders.Create(&models.Order{ID: "ord-1", TotalAmount: 88})
	f.svc.Verify = failingVerifier

	err := f.svc.HandleWebhook(context.Background(), []byte("payload"), "bad-sig")

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeInvalidArgument, de.Code)

	o, _ := f.orders.GetByID("ord-1")
	assert.Equal(t, "", o.PaymentStatus, "no state change on verification failure")
	assert.Empty(t, o.PaymentHistory)
}

func TestHandleWebhookMarksOrderPaid(t *testing.T) {
	f := newPaymentFixture()
	f.orders.Create(&models.Order{ID: "ord-1", TotalAmount: 88, PaymentStatus: models.PaymentStatusUnpaid})
	f.svc.Verify = verifierFor(checkoutCompletedEvent(t, "cs_1", "paid", 8800, map[string]string{"orderId": "ord-1"}))

	err := f.svc.HandleWebhook(context.Background(), nil, "sig")
	require.NoError(t, err)

	o, _ := f.orders.GetByID("ord-1")
	assert.Equal(t, models.PaymentStatusPaid, o.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, o.OrderStatus)
	require.Len(t, o.PaymentHistory, 1)
	assert.Equal(t, 88.0, o.PaymentHistory[0].Amount)
	assert.Equal(t, "cs_1", o.PaymentHistory[0].SessionID)
}

func TestHandleWebhookReplayIsIdempotent(t *testing.T) {
	f := newPaymentFixture()
	f.orders.Create(&models.Order{ID: "ord-1", TotalAmount: 88, PaymentStatus: models.PaymentStatusUnpaid})
	f.svc.Verify = verifierFor(checkoutCompletedEvent(t, "cs_1", "paid", 8800, map[string]string{"orderId": "ord-1"}))

	require.NoError(t, f.svc.HandleWebhook(context.Background(), nil, "sig"))
	require.NoError(t, f.svc.HandleWebhook(context.Background(), nil, "sig"))

	o, _ := f.orders.GetByID("ord-1")
	assert.Equal(t, models.PaymentStatusPaid, o.PaymentStatus)
	assert.Len(t, o.PaymentHistory, 1, "replayed session must not append a second record")
}

func TestHandleWebhookIgnoresUnpaidSession(t *testing.T) {
	f := newPaymentFixture()
	f.orders.Create(&models.Order{ID: "ord-1", TotalAmount: 88, PaymentStatus: models.PaymentStatusUnpaid})
	f.svc.Verify = verifierFor(checkoutCompletedEvent(t, "cs_1", "unpaid", 8800, map[string]string{"orderId": "ord-1"}))

	err := f.svc.HandleWebhook(context.Background(), nil, "sig")
	require.NoError(t, err, "unpaid sessions are acknowledged, not errored")

	o, _ := f.orders.GetByID("ord-1")
	assert.Equal(t, models.PaymentStatusUnpaid, o.PaymentStatus)
	assert.Empty(t, o.PaymentHistory)
}

func TestHandleWebhookIgnoresOtherEventTypes(t *testing.T) {
	f := newPaymentFixture()
	f.svc.Verify = verifierFor(stripe.Event{Type: "invoice.created", Data: &stripe.EventData{Raw: []byte(`{}`)}})

	assert.NoError(t, f.svc.HandleWebhook(context.Background(), nil, "sig"))
}

func TestHandleWebhookMarksStandaloneBookingPaid(t *testing.T) {
	f := newPaymentFixture()
	f.bookings.Create(&models.Booking{ID: "bk-1", TotalPrice: 50, PaymentStatus: models.PaymentStatusUnpaid})
	f.svc.Verify = verifierFor(checkoutCompletedEvent(t, "cs_2", "paid", 5000, map[string]string{"bookingId": "bk-1"}))

	require.NoError(t, f.svc.HandleWebhook(context.Background(), nil, "sig"))

	b, _ := f.bookings.GetByID("bk-1")
	assert.Equal(t, models.PaymentStatusPaid, b.PaymentStatus)
	require.Len(t, b.PaymentHistory, 1)
	assert.Equal(t, 50.0, b.PaymentHistory[0].Amount)
}

func TestCreateCheckoutSessionForOrderUsesStoredTotal(t *testing.T) {
	f := newPaymentFixture()
	f.orders.Create(&models.Order{ID: "ord-1", TotalAmount: 88, BookingIDs: []string{"bk-1", "bk-2"}})

	resp, err := f.svc.CreateCheckoutSession(context.Background(), models.CheckoutSessionRequest{OrderID: "ord-1"})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.Equal(t, "https://checkout.test/cs_test_123", resp.URL)

	require.NotNil(t, f.gateway.lastParams)
	require.Len(t, f.gateway.lastParams.LineItems, 1)
	assert.Equal(t, int64(8800), *f.gateway.lastParams.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "ord-1", f.gateway.lastParams.Metadata["orderId"])
	assert.Equal(t, fmt.Sprintf("https://app.test/payment-success?session_id=%s", "{CHECKOUT_SESSION_ID}"), *f.gateway.lastParams.SuccessURL)
}

func TestCreateCheckoutSessionRoundsFractionalCents(t *testing.T) {
	// Float dollar totals like 19.99 sit just below the exact cent value
	// (19.99*100 == 1998.999...); truncation would undercharge by a cent.
	cases := []struct {
		total float64
		cents int64
	}{
		{19.99, 1999},
		{4.35, 435},
		{8.20, 820},
		{88.0, 8800},
	}

	for _, tc := range cases {
		f := newPaymentFixture()
		f.orders.Create(&models.Order{ID: "ord-1", TotalAmount: tc.total})

		_, err := f.svc.CreateCheckoutSession(context.Background(), models.CheckoutSessionRequest{OrderID: "ord-1"})
		require.NoError(t, err)

		require.NotNil(t, f.gateway.lastParams)
		assert.Equal(t, tc.cents, *f.gateway.lastParams.LineItems[0].PriceData.UnitAmount,
			"total %.2f must charge %d cents", tc.total, tc.cents)
	}
}

func TestCreateCheckoutSessionRejectsAmbiguousTarget(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.CreateCheckoutSession(context.Background(), models.CheckoutSessionRequest{OrderID: "ord-1", BookingID: "bk-1"})

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeInvalidArgument, de.Code)
}

func TestCreateCheckoutSessionRejectsEmptyTarget(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.CreateCheckoutSession(context.Background(), models.CheckoutSessionRequest{})

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeInvalidArgument, de.Code)
}

func TestCreateCheckoutSessionOrderNotFound(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.CreateCheckoutSession(context.Background(), models.CheckoutSessionRequest{OrderID: "missing"})

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeNotFound, de.Code)
}

func TestCreateCheckoutSessionGatewayFailure(t *testing.T) {
	f := newPaymentFixture()
	f.orders.Create(&models.Order{ID: "ord-1", TotalAmount: 88})
	f.gateway.fail = true

	_, err := f.svc.CreateCheckoutSession(context.Background(), models.CheckoutSessionRequest{OrderID: "ord-1"})

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeExternal, de.Code)
}
