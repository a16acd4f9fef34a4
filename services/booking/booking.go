package booking

import (
	"context"
	"fmt"

	bookingRepo "huduma/database/repository/booking"
	userRepo "huduma/database/repository/user"
	"huduma/models"
	"huduma/services/notification"
	"huduma/utils"

	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Notifier notification.NotificationService
	Logger   *zap.Logger
}

// UpdateStatus transitions a booking through its status lattice.
//
// Transitions into completed are guarded by a conditional write ("set
// status=completed where status != completed"); only the caller whose write
// matched performs the provider earnings increment, so the increment happens
// exactly once per booking regardless of retries or concurrent requests.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, newStatus string) (*models.Booking, error) {
	if !models.IsValidBookingStatus(newStatus) {
		return nil, utils.InvalidArgumentError("unrecognized booking status %q", newStatus)
	}

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, utils.NotFoundError("booking %s not found", bookingID)
	}

	// Idempotent under retry: same target status is a success with no side effects.
	if b.Status == newStatus {
		return b, nil
	}

	if models.IsTerminalBookingStatus(b.Status) {
		return nil, utils.InvalidStateError("booking %s is already %s and cannot transition to %s",
			bookingID, b.Status, newStatus)
	}

	if newStatus == models.BookingStatusCompleted {
		won, err := s.Bookings.SetStatusIfNot(bookingID, models.BookingStatusCompleted, models.BookingStatusCompleted)
		if err != nil {
			return nil, fmt.Errorf("failed to complete booking %s: %w", bookingID, err)
		}
		if !won {
			// A concurrent request completed the booking between our read
			// and the conditional write. The winner credited the earnings
			// and notified the customer; this request just reports the
			// final state.
			return s.Bookings.GetByID(bookingID)
		}
		earnings := b.Subtotal()
		if err := s.Users.IncrementEarnings(b.ProviderID, earnings); err != nil {
			// The status write already committed; surface the problem
			// loudly rather than retrying and risking a double credit.
			s.Logger.Error("failed to credit provider earnings",
				zap.String("bookingID", bookingID),
				zap.String("providerID", b.ProviderID),
				zap.Float64("amount", earnings),
				zap.Error(err))
		}
	} else {
		if err := s.Bookings.SetStatus(bookingID, newStatus); err != nil {
			return nil, fmt.Errorf("failed to update booking %s status: %w", bookingID, err)
		}
	}

	s.Notifier.Notify(ctx, b.CustomerID, StatusMessage(newStatus, b), notification.TypeBookingStatus)

	updated, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking %s: %w", bookingID, err)
	}
	return updated, nil
}

// GetBooking retrieves a booking by ID.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, utils.NotFoundError("booking %s not found", bookingID)
	}
	return b, nil
}

// ListForPrincipal retrieves the bookings visible to the given actor.
func (s *DefaultBookingService) ListForPrincipal(ctx context.Context, userID, role string) ([]models.Booking, error) {
	switch role {
	case models.RoleCustomer:
		return s.Bookings.ListByCustomer(userID)
	case models.RoleProvider:
		return s.Bookings.ListByProvider(userID)
	case models.RoleAdmin:
		return s.Bookings.List()
	default:
		return nil, utils.ForbiddenError("role %q may not list bookings", role)
	}
}
