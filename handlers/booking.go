package handlers

import (
	"net/http"

	"huduma/models"
	"huduma/services/booking"
	"huduma/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes booking reads and status transitions over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(service booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// ListBookings handles GET /api/bookings, scoped by the principal's role.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Service.ListForPrincipal(c.Request.Context(), c.GetString("userID"), c.GetString("role"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bookings), "data": bookings})
}

// GetBooking handles GET /api/bookings/:id with an ownership check.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	userID, role := c.GetString("userID"), c.GetString("role")
	if role == models.RoleCustomer && b.CustomerID != userID {
		utils.RespondError(c, utils.ForbiddenError("not authorized to view this booking"))
		return
	}
	if role == models.RoleProvider && b.ProviderID != userID {
		utils.RespondError(c, utils.ForbiddenError("not authorized to view this booking"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": b})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/bookings/:id. Only the assigned provider
// or an admin may transition a booking's status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidArgumentError("invalid input: %v", err))
		return
	}

	bookingID := c.Param("id")
	b, err := h.Service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	userID, role := c.GetString("userID"), c.GetString("role")
	if role != models.RoleAdmin && b.ProviderID != userID {
		utils.RespondError(c, utils.ForbiddenError("only the assigned provider or an admin may update this booking"))
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), bookingID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}
