package notification

import "context"

// Notification types.
const (
	TypeNewOrder        = "new_order"
	TypeBookingStatus   = "booking_status"
	TypeBookingReminder = "booking_reminder"
)

// NotificationService creates user-facing notification records. Dispatch is
// best-effort: failures are logged and contained, never surfaced to callers.
type NotificationService interface {
	Notify(ctx context.Context, userID, message, notifType string)
	NotifyAdmins(ctx context.Context, message, notifType string)
}
