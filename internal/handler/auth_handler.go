package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nqd2/bluemoon-admin-api/internal/middleware"
	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/internal/service"
	"github.com/nqd2/bluemoon-admin-api/pkg/logger"
	"github.com/nqd2/bluemoon-admin-api/pkg/utils"
)

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest represents the account-creation payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin leader accountant"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(userService service.UserService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Login authenticates a staff account
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	token, user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, "Invalid email or password")
			return
		}
		h.logger.WithError(err).Error("Login failed")
		utils.InternalServerErrorResponse(c, "Failed to log in", err)
		return
	}

	utils.SuccessResponse(c, "Logged in successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// Register creates a staff account (admin only)
// @Summary Register a staff account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "New account"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	user, err := h.userService.Register(req.Email, req.Password, models.UserRole(req.Role))
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		h.logger.WithError(err).Error("Failed to register user")
		utils.InternalServerErrorResponse(c, "Failed to register user", err)
		return
	}

	utils.CreatedResponse(c, "User registered successfully", user)
}

// Me returns the authenticated caller's account
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	callerID := middleware.CallerID(c)
	if callerID == nil {
		utils.UnauthorizedResponse(c, "Missing caller identity")
		return
	}

	user, err := h.userService.GetUser(*callerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to load user", err)
		return
	}

	utils.SuccessResponse(c, "", user)
}
