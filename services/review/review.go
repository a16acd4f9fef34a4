package review

import (
	"context"
	"fmt"

	bookingRepo "huduma/database/repository/booking"
	reviewRepo "huduma/database/repository/review"
	userRepo "huduma/database/repository/user"
	"huduma/models"
	"huduma/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReviewService is the production implementation of ReviewService.
type DefaultReviewService struct {
	Reviews  reviewRepo.ReviewRepository
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Logger   *zap.Logger
}

// CreateReview checks its preconditions in order, each a distinct failure:
// booking exists, booking belongs to the customer, booking is completed,
// the service is one of the booking's line items, and no review exists yet
// for the (booking, service) pair.
func (s *DefaultReviewService) CreateReview(ctx context.Context, customerID string, in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, utils.InvalidArgumentError("rating must be between 1 and 5")
	}

	b, err := s.Bookings.GetByID(in.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, utils.NotFoundError("booking %s not found", in.BookingID)
	}
	if b.CustomerID != customerID {
		return nil, utils.ForbiddenError("booking %s does not belong to this customer", in.BookingID)
	}
	if b.Status != models.BookingStatusCompleted {
		return nil, utils.InvalidStateError("booking %s is not completed; reviews are only accepted for completed bookings", in.BookingID)
	}
	if !b.HasService(in.ServiceID) {
		return nil, utils.InvalidArgumentError("service %s is not part of booking %s", in.ServiceID, in.BookingID)
	}

	existing, err := s.Reviews.GetByBookingAndService(in.BookingID, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing review: %w", err)
	}
	if existing != nil {
		return nil, utils.ConflictError("this service has already been reviewed for booking %s", in.BookingID)
	}

	rv := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  in.BookingID,
		ServiceID:  in.ServiceID,
		CustomerID: customerID,
		ProviderID: b.ProviderID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}
	if err := s.Reviews.Create(rv); err != nil {
		if reviewRepo.IsDuplicate(err) {
			// Lost the race against a concurrent insert on the unique index.
			return nil, utils.ConflictError("this service has already been reviewed for booking %s", in.BookingID)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.recomputeAggregates(b.ProviderID); err != nil {
		s.Logger.Error("failed to recompute provider rating aggregates",
			zap.String("providerID", b.ProviderID), zap.Error(err))
	}
	return rv, nil
}

// UpdateReview modifies an owned review and recomputes the aggregates.
func (s *DefaultReviewService) UpdateReview(ctx context.Context, customerID, reviewID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.InvalidArgumentError("rating must be between 1 and 5")
	}

	rv, err := s.Reviews.GetByID(reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}
	if rv == nil {
		return nil, utils.NotFoundError("review %s not found", reviewID)
	}
	if rv.CustomerID != customerID {
		return nil, utils.ForbiddenError("review %s does not belong to this customer", reviewID)
	}

	rv.Rating = rating
	rv.Comment = comment
	if err := s.Reviews.Update(rv); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	if err := s.recomputeAggregates(rv.ProviderID); err != nil {
		s.Logger.Error("failed to recompute provider rating aggregates",
			zap.String("providerID", rv.ProviderID), zap.Error(err))
	}
	return rv, nil
}

// DeleteReview removes an owned review and recomputes the aggregates.
// Deleting the last review resets the provider's average to 0.
func (s *DefaultReviewService) DeleteReview(ctx context.Context, customerID, reviewID string) error {
	rv, err := s.Reviews.GetByID(reviewID)
	if err != nil {
		return fmt.Errorf("failed to fetch review: %w", err)
	}
	if rv == nil {
		return utils.NotFoundError("review %s not found", reviewID)
	}
	if rv.CustomerID != customerID {
		return utils.ForbiddenError("review %s does not belong to this customer", reviewID)
	}

	if err := s.Reviews.Delete(reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if err := s.recomputeAggregates(rv.ProviderID); err != nil {
		s.Logger.Error("failed to recompute provider rating aggregates",
			zap.String("providerID", rv.ProviderID), zap.Error(err))
	}
	return nil
}

// ListByProvider retrieves all reviews for a provider's services.
func (s *DefaultReviewService) ListByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	reviews, err := s.Reviews.ListByProvider(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// recomputeAggregates writes the full aggregate, not an incremental running
// average, so edits and deletes are handled uniformly with no drift.
func (s *DefaultReviewService) recomputeAggregates(providerID string) error {
	average, count, err := s.Reviews.AggregateByProvider(providerID)
	if err != nil {
		return err
	}
	return s.Users.SetRatingAggregates(providerID, average, count)
}
