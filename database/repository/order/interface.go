package orderRepo

import "huduma/models"

// OrderRepository defines methods for order data access.
type OrderRepository interface {
	// Create inserts a new order record.
	Create(order *models.Order) error
	// GetByID retrieves an order by its unique ID, or nil if absent.
	GetByID(id string) (*models.Order, error)
	// ListByCustomer retrieves all orders placed by a customer.
	ListByCustomer(customerID string) ([]models.Order, error)
	// SetBookingIDs records the IDs of the bookings created under an order.
	SetBookingIDs(id string, bookingIDs []string) error
	// Delete removes an order record by its ID.
	Delete(id string) error
	// MarkPaid sets payment status to paid and order status to processing,
	// appending the payment record unless one with the same session ID
	// already exists. Returns whether this call applied the update.
	MarkPaid(id string, rec models.PaymentRecord) (bool, error)
}
