package userRepo

import (
	"huduma/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, or nil if absent.
	GetByEmail(email string) (*models.User, error)
	// GetAdmins retrieves all users holding the admin role.
	GetAdmins() ([]models.User, error)
	// Update modifies an existing user record.
	Update(user *models.User) error
	// UpdateSet applies a partial $set document to a user record.
	UpdateSet(id string, updateDoc bson.M) error
	// IncrementEarnings atomically adds amount to a provider's total earnings.
	IncrementEarnings(providerID string, amount float64) error
	// SetRatingAggregates overwrites a provider's review aggregates.
	SetRatingAggregates(providerID string, average float64, count int) error
}
