package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khalidmt90/subnav/internal/api/middleware"
	"github.com/khalidmt90/subnav/internal/database/models"
	"github.com/khalidmt90/subnav/internal/services"
)

// LoginRequest carries the OAuth-verified profile from the mobile client.
// The provider has already authenticated the user; we only mint a session.
type LoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Provider    string `json:"provider"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt int64               `json:"expires_at"`
	IsNew     bool                `json:"is_new"`
	User      UserProfileResponse `json:"user"`
}

// AuthHandler handles authentication related requests
type AuthHandler struct {
	userService         *services.UserService
	subscriptionService *services.SubscriptionService
	jwtManager          *middleware.JWTManager
	logService          *services.LogService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(userService *services.UserService, subscriptionService *services.SubscriptionService, jwtManager *middleware.JWTManager, logService *services.LogService) *AuthHandler {
	return &AuthHandler{
		userService:         userService,
		subscriptionService: subscriptionService,
		jwtManager:          jwtManager,
		logService:          logService,
	}
}

// Login exchanges an OAuth profile for a session token
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, isNew, err := h.userService.GetOrCreateUser(services.LoginProfile{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Provider:    req.Provider,
	})
	if err != nil {
		h.logService.LogWarn(0, models.LogModuleAuth, "login_failed", "Login failed", map[string]interface{}{
			"email": req.Email,
			"ip":    c.ClientIP(),
			"error": err.Error(),
		})
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "Login failed")
		return
	}

	// First login: populate the account with sample data so the app has
	// something to show before the first inbox scan
	if isNew {
		if err := h.subscriptionService.SeedDemoData(user.ID); err != nil {
			h.logService.LogWarn(user.ID, models.LogModuleAuth, "seed_failed", "Failed to seed demo data", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate token")
		return
	}

	h.logService.LogInfo(user.ID, models.LogModuleAuth, "login", "User logged in", map[string]interface{}{
		"email":  user.Email,
		"ip":     c.ClientIP(),
		"is_new": isNew,
	})

	respondOK(c, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		IsNew:     isNew,
		User:      ToProfileResponse(user),
	})
}

// RefreshToken handles token refresh requests
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	email, _ := middleware.GetEmailFromContext(c)

	token, expiresAt, err := h.jwtManager.GenerateToken(userID, email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate token")
		return
	}

	h.logService.LogInfo(userID, models.LogModuleAuth, "token_refresh", "Token refreshed", nil)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token":      token,
			"expires_at": expiresAt,
		},
	})
}

// Logout handles user logout requests
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if exists {
		h.logService.LogInfo(userID, models.LogModuleAuth, "logout", "User logged out", nil)
	}

	// Stateless JWT: logout is handled client-side by discarding the token
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the current authenticated user info
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	respondOK(c, ToProfileResponse(user))
}

// UpdateProfileRequest represents the request to update the profile
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// UpdateProfile updates the current user's profile
// PUT /api/auth/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.UpdateProfileRequest{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		if err == services.ErrUserNotFound {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile")
		return
	}

	h.logService.LogInfo(userID, models.LogModuleUser, "profile_update", "User profile updated", nil)

	respondOK(c, ToProfileResponse(user))
}

// UserProfileResponse represents the user profile response
type UserProfileResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Provider    string `json:"provider"`
	CreatedAt   int64  `json:"created_at"`
}

// ToProfileResponse converts a User model to UserProfileResponse
func ToProfileResponse(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Provider:    user.Provider,
		CreatedAt:   user.CreatedAt.Unix(),
	}
}
