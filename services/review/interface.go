package review

import (
	"context"

	"huduma/models"
)

// ReviewInput carries a review creation request.
type ReviewInput struct {
	BookingID string `json:"bookingId"`
	ServiceID string `json:"serviceId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ReviewService enforces the one-review-per-(booking, service) rule and
// keeps provider rating aggregates consistent with the review set.
type ReviewService interface {
	CreateReview(ctx context.Context, customerID string, in ReviewInput) (*models.Review, error)
	UpdateReview(ctx context.Context, customerID, reviewID string, rating int, comment string) (*models.Review, error)
	DeleteReview(ctx context.Context, customerID, reviewID string) error
	ListByProvider(ctx context.Context, providerID string) ([]models.Review, error)
}
