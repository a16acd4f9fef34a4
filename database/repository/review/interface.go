package reviewRepo

import "huduma/models"

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a new review record. Violating the (booking, service)
	// uniqueness constraint returns an error satisfying IsDuplicate.
	Create(review *models.Review) error
	// GetByID retrieves a review by its unique ID, or nil if absent.
	GetByID(id string) (*models.Review, error)
	// GetByBookingAndService retrieves the review for a (booking, service)
	// pair, or nil if none exists.
	GetByBookingAndService(bookingID, serviceID string) (*models.Review, error)
	// ListByProvider retrieves all reviews for a provider's services.
	ListByProvider(providerID string) ([]models.Review, error)
	// Update modifies an existing review record.
	Update(review *models.Review) error
	// Delete removes a review record by its ID.
	Delete(id string) error
	// AggregateByProvider recomputes the full rating aggregate for a
	// provider: the arithmetic mean over all current reviews and their
	// count. Returns (0, 0) when no reviews exist.
	AggregateByProvider(providerID string) (float64, int, error)
}
