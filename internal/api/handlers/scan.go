package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khalidmt90/subnav/internal/api/middleware"
	"github.com/khalidmt90/subnav/internal/services"
)

// ScanHandler handles inbox scan requests
type ScanHandler struct {
	scanService *services.ScanService
}

// NewScanHandler creates a new ScanHandler instance
func NewScanHandler(scanService *services.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// StartScanRequest carries the provider access token for the mailbox
type StartScanRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// StartScan launches a background inbox scan
// POST /api/scan
func (h *ScanHandler) StartScan(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	var req StartScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	scanID, err := h.scanService.StartScan(userID, req.AccessToken)
	if err != nil {
		if err == services.ErrScanInProgress {
			respondError(c, http.StatusConflict, "SCAN_IN_PROGRESS", "A scan is already running for this account")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start scan")
		return
	}

	// The scan runs in the background; clients poll progress
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"scan_id": scanID,
			"status":  services.SyncStatusSyncing,
		},
	})
}

// GetProgress returns the current scan progress for the user
// GET /api/scan/progress
func (h *ScanHandler) GetProgress(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	respondOK(c, h.scanService.Progress(userID))
}
