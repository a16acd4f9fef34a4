package payment

import (
	"context"

	"huduma/models"
)

// PaymentService creates external checkout sessions and reconciles the
// asynchronous webhook events that confirm them.
type PaymentService interface {
	// CreateCheckoutSession resolves the target order or booking, charges
	// its stored total (never recomputed from live prices) and returns the
	// redirect handle.
	CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSessionResponse, error)
	// HandleWebhook verifies and applies a payment provider event. A non-nil
	// error is returned only for signature verification failure; all domain
	// failures after verification are logged and acknowledged so the
	// provider does not retry-storm.
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}
