package models

// CheckoutSessionRequest targets exactly one of an order or a standalone booking.
type CheckoutSessionRequest struct {
	OrderID   string `json:"orderId,omitempty"`
	BookingID string `json:"bookingId,omitempty"`
}

// CheckoutSessionResponse is the redirect handle returned to the client.
type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
