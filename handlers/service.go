package handlers

import (
	"net/http"

	serviceRepo "huduma/database/repository/service"
	"huduma/models"
	"huduma/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceHandler exposes the provider catalog over HTTP. Catalog writes are
// thin enough that the handler talks to the repository directly.
type ServiceHandler struct {
	Services serviceRepo.ServiceRepository
	Logger   *zap.Logger
}

func NewServiceHandler(services serviceRepo.ServiceRepository, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{Services: services, Logger: logger}
}

type serviceRequest struct {
	Name              string  `json:"name" binding:"required"`
	Category          string  `json:"category" binding:"required"`
	Subcategory       string  `json:"subcategory"`
	YearsOfExperience int     `json:"yearsOfExperience"`
	Description       string  `json:"description"`
	Price             float64 `json:"price" binding:"required"`
	Image             string  `json:"image"`
}

// CreateService handles POST /api/services. Providers only.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidArgumentError("invalid input: %v", err))
		return
	}
	if req.Price <= 0 {
		utils.RespondError(c, utils.InvalidArgumentError("price must be positive"))
		return
	}

	svc := models.Service{
		ID:                uuid.New().String(),
		ProviderID:        c.GetString("userID"),
		Name:              req.Name,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		YearsOfExperience: req.YearsOfExperience,
		Description:       req.Description,
		Price:             req.Price,
		Image:             req.Image,
	}

	if err := h.Services.Create(&svc); err != nil {
		h.Logger.Error("Failed to create service", zap.Error(err))
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": svc})
}

// ListServices handles GET /api/services, optionally filtered by provider.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	var (
		services []models.Service
		err      error
	)
	if providerID := c.Query("providerId"); providerID != "" {
		services, err = h.Services.ListByProvider(providerID)
	} else {
		services, err = h.Services.List()
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(services), "data": services})
}

// GetService handles GET /api/services/:id.
func (h *ServiceHandler) GetService(c *gin.Context) {
	svc, err := h.Services.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if svc == nil {
		utils.RespondError(c, utils.NotFoundError("service not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": svc})
}

// UpdateService handles PUT /api/services/:id. Only the owning provider
// may edit; price edits never touch existing booking snapshots.
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidArgumentError("invalid input: %v", err))
		return
	}
	if req.Price <= 0 {
		utils.RespondError(c, utils.InvalidArgumentError("price must be positive"))
		return
	}

	existing, err := h.Services.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, utils.NotFoundError("service not found"))
		return
	}
	if existing.ProviderID != c.GetString("userID") {
		utils.RespondError(c, utils.ForbiddenError("not authorized to edit this service"))
		return
	}

	updated := models.Service{
		Name:              req.Name,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		YearsOfExperience: req.YearsOfExperience,
		Description:       req.Description,
		Price:             req.Price,
		Image:             req.Image,
	}
	if err := h.Services.Update(existing.ID, &updated); err != nil {
		h.Logger.Error("Failed to update service", zap.String("serviceID", existing.ID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}

	svc, err := h.Services.GetByID(existing.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": svc})
}

// DeleteService handles DELETE /api/services/:id.
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	existing, err := h.Services.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, utils.NotFoundError("service not found"))
		return
	}
	if existing.ProviderID != c.GetString("userID") && c.GetString("role") != models.RoleAdmin {
		utils.RespondError(c, utils.ForbiddenError("not authorized to delete this service"))
		return
	}

	if err := h.Services.Delete(existing.ID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
