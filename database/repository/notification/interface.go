package notificationRepo

import "huduma/models"

// NotificationRepository defines methods for notification data access.
// Records are append-only; only the read flag is ever mutated.
type NotificationRepository interface {
	// Create inserts a new notification record.
	Create(notification *models.Notification) error
	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(userID string) ([]models.Notification, error)
	// MarkRead flips the read flag on a notification owned by userID.
	// Returns nil, nil when no such notification exists.
	MarkRead(id, userID string) (*models.Notification, error)
}
