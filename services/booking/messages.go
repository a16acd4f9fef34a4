package booking

import (
	"fmt"
	"strings"

	"huduma/models"
)

// StatusMessage builds the customer-facing copy for a status transition,
// parameterized by the booking's service names, date and time slot.
func StatusMessage(status string, b *models.Booking) string {
	names := strings.Join(b.ServiceNames(), ", ")
	when := b.Date
	if b.TimeSlot != "" {
		when = fmt.Sprintf("%s at %s", b.Date, b.TimeSlot)
	}

	switch status {
	case models.BookingStatusConfirmed:
		return fmt.Sprintf("Your booking for %s on %s has been confirmed.", names, when)
	case models.BookingStatusActive:
		return fmt.Sprintf("Your booking for %s on %s is now in progress.", names, when)
	case models.BookingStatusCompleted:
		return fmt.Sprintf("Your booking for %s on %s has been completed. You can now leave a review.", names, when)
	case models.BookingStatusCancelled:
		return fmt.Sprintf("Your booking for %s on %s has been cancelled.", names, when)
	case models.BookingStatusRejected:
		return fmt.Sprintf("Your booking for %s on %s was declined by the provider.", names, when)
	default:
		return fmt.Sprintf("Your booking for %s has been updated to %s.", names, status)
	}
}
