package handlers

import (
	"net/http"
	"time"

	userRepo "huduma/database/repository/user"
	"huduma/models"
	"huduma/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// AuthHandler implements the peripheral register/login surface that mints
// the authenticated principals trusted by the core components.
type AuthHandler struct {
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

func NewAuthHandler(users userRepo.UserRepository, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

type registerRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName"`
	Email         string `json:"email" binding:"required,email"`
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password" binding:"required,min=8"`
	Role          string `json:"role"`
}

// Register creates a new user account and returns a signed token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidArgumentError("invalid input: %v", err))
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleProvider {
		utils.RespondError(c, utils.InvalidArgumentError("role must be customer or provider"))
		return
	}

	if existing, err := h.Users.GetByEmail(req.Email); err == nil && existing != nil {
		utils.RespondError(c, utils.ConflictError("an account with this email already exists"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	user := &models.User{
		ID:            uuid.New().String(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Password:      string(hashed),
		Role:          role,
		Status:        "active",
	}
	if role == models.RoleProvider {
		user.Provider = &models.ProviderProfile{ActiveStatus: true}
	}

	if err := h.Users.Create(user); err != nil {
		utils.RespondError(c, err)
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"user": user, "token": token}})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates by email and password and returns a signed token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidArgumentError("invalid input: %v", err))
		return
	}

	user, err := h.Users.GetByEmail(req.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		utils.RespondError(c, utils.ForbiddenError("invalid email or password"))
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": user, "token": token}})
}

// issueToken signs a JWT for the user and stores its hash for revocation checks.
func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, tokenTTL)
	if err != nil {
		return "", err
	}
	if err := h.Users.UpdateSet(user.ID, bson.M{"token_hash": utils.HashToken(token)}); err != nil {
		return "", err
	}
	return token, nil
}
