package models

// ReminderPayload is the queued payload for an upcoming-booking reminder.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	CustomerID string `json:"customerId"`
	Message    string `json:"message"`
	FireDate   string `json:"fireDate"`
}

// ExpiryPayload is the queued payload for expiring a stale pending booking.
type ExpiryPayload struct {
	BookingID string `json:"bookingId"`
}
