package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khalidmt90/subnav/internal/api/middleware"
	"github.com/khalidmt90/subnav/internal/database/models"
	"github.com/khalidmt90/subnav/internal/services"
)

// SettingsHandler handles user settings requests
type SettingsHandler struct {
	userService *services.UserService
	logService  *services.LogService
}

// NewSettingsHandler creates a new SettingsHandler instance
func NewSettingsHandler(userService *services.UserService, logService *services.LogService) *SettingsHandler {
	return &SettingsHandler{
		userService: userService,
		logService:  logService,
	}
}

// UpdateSettingsRequest holds the updatable settings fields
type UpdateSettingsRequest struct {
	Language             *string `json:"language"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	NotifyDaysBefore     *int    `json:"notify_days_before"`
}

// GetSettings returns the current user's settings
// GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	settings, err := h.userService.GetSettings(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load settings")
		return
	}

	respondOK(c, settings)
}

// UpdateSettings updates the current user's settings
// PUT /api/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if req.Language != nil && *req.Language != "ar" && *req.Language != "en" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "language must be 'ar' or 'en'")
		return
	}
	if req.NotifyDaysBefore != nil && (*req.NotifyDaysBefore < 0 || *req.NotifyDaysBefore > 30) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "notify_days_before must be between 0 and 30")
		return
	}

	settings, err := h.userService.UpdateSettings(userID, services.UpdateSettingsRequest{
		Language:             req.Language,
		NotificationsEnabled: req.NotificationsEnabled,
		NotifyDaysBefore:     req.NotifyDaysBefore,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update settings")
		return
	}

	h.logService.LogInfo(userID, models.LogModuleUser, "settings_update", "Settings updated", nil)

	respondOK(c, settings)
}
