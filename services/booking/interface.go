package booking

import (
	"context"

	"huduma/models"
)

// BookingService owns the status lifecycle of individual bookings.
// Authorization (assigned provider or admin) is enforced by the HTTP layer.
type BookingService interface {
	// UpdateStatus transitions a booking to newStatus. Calling it with the
	// booking's current status is a successful no-op with no side effects.
	UpdateStatus(ctx context.Context, bookingID, newStatus string) (*models.Booking, error)
	// GetBooking retrieves a booking by ID.
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListForPrincipal retrieves the bookings visible to the given actor:
	// customers see their own, providers see assignments, admins see all.
	ListForPrincipal(ctx context.Context, userID, role string) ([]models.Booking, error)
}
