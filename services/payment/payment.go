package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	bookingRepo "huduma/database/repository/booking"
	orderRepo "huduma/database/repository/order"
	"huduma/models"
	"huduma/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// Metadata keys tagging checkout sessions with their target.
const (
	metadataOrderID   = "orderId"
	metadataBookingID = "bookingId"
)

// toCents converts a stored dollar amount to integer cents. Rounding, not
// truncation: 19.99*100 is 1998.999... in float64 and must charge 1999.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// SignatureVerifier verifies a webhook payload against its signature header
// and shared secret. Injectable for tests; defaults to webhook.ConstructEvent.
type SignatureVerifier func(payload []byte, header, secret string) (stripe.Event, error)

// DefaultPaymentService is the production implementation of PaymentService.
type DefaultPaymentService struct {
	Gateway       CheckoutGateway
	Orders        orderRepo.OrderRepository
	Bookings      bookingRepo.BookingRepository
	Logger        *zap.Logger
	WebhookSecret string
	FrontendURL   string
	Verify        SignatureVerifier
}

func NewDefaultPaymentService(
	gateway CheckoutGateway,
	orders orderRepo.OrderRepository,
	bookings bookingRepo.BookingRepository,
	logger *zap.Logger,
	webhookSecret, frontendURL string,
) *DefaultPaymentService {
	return &DefaultPaymentService{
		Gateway:       gateway,
		Orders:        orders,
		Bookings:      bookings,
		Logger:        logger,
		WebhookSecret: webhookSecret,
		FrontendURL:   frontendURL,
		Verify:        webhook.ConstructEvent,
	}
}

// CreateCheckoutSession resolves the target and creates an external payment
// session for its stored total, tagged with the target's id in metadata.
func (s *DefaultPaymentService) CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSessionResponse, error) {
	var (
		amount      float64
		name        string
		description string
		metaKey     string
		metaValue   string
	)

	switch {
	case req.OrderID != "" && req.BookingID != "":
		return nil, utils.InvalidArgumentError("specify either orderId or bookingId, not both")
	case req.OrderID != "":
		ord, err := s.Orders.GetByID(req.OrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch order: %w", err)
		}
		if ord == nil {
			return nil, utils.NotFoundError("order %s not found", req.OrderID)
		}
		amount = ord.TotalAmount
		name = fmt.Sprintf("Huduma order (%d bookings)", len(ord.BookingIDs))
		metaKey, metaValue = metadataOrderID, ord.ID
	case req.BookingID != "":
		b, err := s.Bookings.GetByID(req.BookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch booking: %w", err)
		}
		if b == nil {
			return nil, utils.NotFoundError("booking %s not found", req.BookingID)
		}
		if len(b.Services) == 0 {
			return nil, utils.NotFoundError("no services associated with booking %s", req.BookingID)
		}
		amount = b.TotalPrice
		name = strings.Join(b.ServiceNames(), ", ")
		description = b.Description
		metaKey, metaValue = metadataBookingID, b.ID
	default:
		return nil, utils.InvalidArgumentError("orderId or bookingId is required")
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(name),
	}
	if description != "" {
		productData.Description = stripe.String(description)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(string(stripe.CurrencyUSD)),
					ProductData: productData,
					UnitAmount:  stripe.Int64(toCents(amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.FrontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.FrontendURL + "/payment-cancel"),
	}
	params.AddMetadata(metaKey, metaValue)

	session, err := s.Gateway.CreateSession(params)
	if err != nil {
		return nil, utils.ExternalError("failed to create checkout session: %v", err)
	}

	return &models.CheckoutSessionResponse{SessionID: session.ID, URL: session.URL}, nil
}
