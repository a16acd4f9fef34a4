package bookingRepo

import "huduma/models"

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID, or nil if absent.
	GetByID(id string) (*models.Booking, error)
	// GetByOrderID retrieves all bookings belonging to an order.
	GetByOrderID(orderID string) ([]models.Booking, error)
	// ListByCustomer retrieves all bookings made by a customer.
	ListByCustomer(customerID string) ([]models.Booking, error)
	// ListByProvider retrieves all bookings assigned to a provider.
	ListByProvider(providerID string) ([]models.Booking, error)
	// List retrieves all bookings.
	List() ([]models.Booking, error)
	// Delete removes a booking record by its ID.
	Delete(id string) error
	// SetStatus unconditionally sets a booking's status.
	SetStatus(id, status string) error
	// SetStatusIfNot sets a booking's status only if the current status
	// differs from guard, in a single conditional write. Returns whether
	// this call performed the update.
	SetStatusIfNot(id, newStatus, guard string) (bool, error)
	// MarkPaid sets the booking's payment status to paid and appends the
	// payment record, unless a record with the same session ID already
	// exists. Returns whether this call applied the update.
	MarkPaid(id string, rec models.PaymentRecord) (bool, error)
}
