package payment

import (
	"context"
	"encoding/json"
	"time"

	"huduma/models"
	"huduma/utils"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// HandleWebhook verifies the event signature and reconciles completed
// checkouts. After verification succeeds, every failure path acknowledges
// the event (nil return): the payment provider retries on its own schedule
// and a domain-level error must not trigger a retry storm.
//
// Replays are safe: marking paid is an unconditional set, not an increment,
// and the payment-history append is keyed on the external session ID.
func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.Verify(payload, signatureHeader, s.WebhookSecret)
	if err != nil {
		s.Logger.Warn("webhook signature verification failed", zap.Error(err))
		return utils.InvalidArgumentError("webhook signature verification failed")
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.Logger.Error("failed to parse checkout session from webhook event",
			zap.String("eventID", event.ID), zap.Error(err))
		return nil
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		// Partial or pending payments are acknowledged without mutating state.
		s.Logger.Warn("payment not completed for session",
			zap.String("sessionID", session.ID),
			zap.String("paymentStatus", string(session.PaymentStatus)))
		return nil
	}

	rec := models.PaymentRecord{
		Amount:    float64(session.AmountTotal) / 100,
		Currency:  string(session.Currency),
		PaidAt:    time.Now(),
		SessionID: session.ID,
	}

	switch {
	case session.Metadata[metadataOrderID] != "":
		s.markOrderPaid(session.Metadata[metadataOrderID], rec)
	case session.Metadata[metadataBookingID] != "":
		s.markBookingPaid(session.Metadata[metadataBookingID], rec)
	default:
		s.Logger.Error("no target id found in session metadata", zap.String("sessionID", session.ID))
	}

	return nil
}

func (s *DefaultPaymentService) markOrderPaid(orderID string, rec models.PaymentRecord) {
	applied, err := s.Orders.MarkPaid(orderID, rec)
	if err != nil {
		s.Logger.Error("failed to mark order paid",
			zap.String("orderID", orderID), zap.String("sessionID", rec.SessionID), zap.Error(err))
		return
	}
	if !applied {
		s.Logger.Warn("order payment already recorded or order missing",
			zap.String("orderID", orderID), zap.String("sessionID", rec.SessionID))
		return
	}
	s.Logger.Info("order marked as paid",
		zap.String("orderID", orderID),
		zap.Float64("amount", rec.Amount),
		zap.String("sessionID", rec.SessionID))
}

func (s *DefaultPaymentService) markBookingPaid(bookingID string, rec models.PaymentRecord) {
	applied, err := s.Bookings.MarkPaid(bookingID, rec)
	if err != nil {
		s.Logger.Error("failed to mark booking paid",
			zap.String("bookingID", bookingID), zap.String("sessionID", rec.SessionID), zap.Error(err))
		return
	}
	if !applied {
		s.Logger.Warn("booking payment already recorded or booking missing",
			zap.String("bookingID", bookingID), zap.String("sessionID", rec.SessionID))
		return
	}
	s.Logger.Info("booking marked as paid",
		zap.String("bookingID", bookingID),
		zap.Float64("amount", rec.Amount),
		zap.String("sessionID", rec.SessionID))
}
