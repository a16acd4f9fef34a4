package handlers

import (
	"net/http"

	"huduma/models"
	"huduma/services/payment"
	"huduma/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes checkout-session creation and the webhook endpoint.
type PaymentHandler struct {
	Service payment.PaymentService
	Logger  *zap.Logger
}

func NewPaymentHandler(service payment.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: service, Logger: logger}
}

// CreateCheckoutSession handles POST /api/payments/create-checkout-session.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req models.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidArgumentError("invalid input: %v", err))
		return
	}

	resp, err := h.Service.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// Webhook handles POST /api/payments/webhook. The endpoint is unauthenticated
// but signature-verified; a non-400 response is always 200 so the payment
// provider does not retry domain-level failures.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read request body"})
		return
	}

	if err := h.Service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "webhook signature verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
