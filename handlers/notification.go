package handlers

import (
	"net/http"

	notificationRepo "huduma/database/repository/notification"
	"huduma/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes a user's notification inbox.
type NotificationHandler struct {
	Notifications notificationRepo.NotificationRepository
	Logger        *zap.Logger
}

func NewNotificationHandler(notifications notificationRepo.NotificationRepository, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications, Logger: logger}
}

// ListNotifications handles GET /api/notifications for the authenticated user.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.Notifications.ListByUser(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(notifications), "data": notifications})
}

// MarkRead handles PATCH /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.Notifications.MarkRead(c.Param("id"), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if n == nil {
		utils.RespondError(c, utils.NotFoundError("notification not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": n})
}
