package notification

import (
	"context"

	notificationRepo "huduma/database/repository/notification"
	userRepo "huduma/database/repository/user"
	"huduma/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the store-backed implementation.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	users userRepo.UserRepository,
	logger *zap.Logger,
) *DefaultNotificationService {
	return &DefaultNotificationService{Repo: repo, Users: users, Logger: logger}
}

// Notify appends one notification record for the user. Errors are swallowed
// so a side-channel failure can never fail the primary operation.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, message, notifType string) {
	n := &models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Message: message,
		Type:    notifType,
	}
	if err := s.Repo.Create(n); err != nil {
		s.Logger.Warn("failed to create notification",
			zap.String("userID", userID),
			zap.String("type", notifType),
			zap.Error(err))
	}
}

// NotifyAdmins appends one notification record for every admin user.
func (s *DefaultNotificationService) NotifyAdmins(ctx context.Context, message, notifType string) {
	admins, err := s.Users.GetAdmins()
	if err != nil {
		s.Logger.Warn("failed to resolve admin users for notification", zap.Error(err))
		return
	}
	for _, admin := range admins {
		s.Notify(ctx, admin.ID, message, notifType)
	}
}
