package handlers

import (
	"net/http"

	"huduma/models"
	"huduma/services/order"
	"huduma/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler exposes the order engine over HTTP.
type OrderHandler struct {
	Service order.OrderService
	Logger  *zap.Logger
}

func NewOrderHandler(service order.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{Service: service, Logger: logger}
}

// CreateOrder handles POST /api/orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var in order.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, utils.InvalidArgumentError("invalid input: %v", err))
		return
	}

	customerID := c.GetString("userID")
	detail, err := h.Service.CreateOrder(c.Request.Context(), customerID, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": detail})
}

// GetOrder handles GET /api/orders/:id. Only the owner or an admin may read.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	detail, err := h.Service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if c.GetString("role") != models.RoleAdmin && detail.CustomerID != c.GetString("userID") {
		utils.RespondError(c, utils.ForbiddenError("not authorized to view this order"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": detail})
}

// ListOrders handles GET /api/orders for the authenticated customer.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.Service.ListOrders(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "data": orders})
}
