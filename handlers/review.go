package handlers

import (
	"net/http"

	"huduma/services/review"
	"huduma/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes the review gate over HTTP.
type ReviewHandler struct {
	Service review.ReviewService
	Logger  *zap.Logger
}

func NewReviewHandler(service review.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{Service: service, Logger: logger}
}

// CreateReview handles POST /api/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var in review.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, utils.InvalidArgumentError("invalid input: %v", err))
		return
	}

	rv, err := h.Service.CreateReview(c.Request.Context(), c.GetString("userID"), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": rv})
}

// ListReviews handles GET /api/reviews?providerId=...
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	providerID := c.Query("providerId")
	if providerID == "" {
		utils.RespondError(c, utils.InvalidArgumentError("providerId query parameter is required"))
		return
	}

	reviews, err := h.Service.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(reviews), "data": reviews})
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// UpdateReview handles PUT /api/reviews/:id.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidArgumentError("invalid input: %v", err))
		return
	}

	rv, err := h.Service.UpdateReview(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rv})
}

// DeleteReview handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.Service.DeleteReview(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
