package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khalidmt90/subnav/internal/api/middleware"
	"github.com/khalidmt90/subnav/internal/services"
)

// NotificationHandler handles notification related requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the user's notifications, newest first
// GET /api/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	notifications, err := h.notificationService.ListNotifications(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list notifications")
		return
	}

	respondOK(c, notifications)
}

// MarkRead marks one notification as read
// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(id, userID); err != nil {
		if err == services.ErrNotificationNotFound {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notification as read")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
	})
}

// MarkAllRead marks all of the user's notifications as read
// PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	count, err := h.notificationService.MarkAllRead(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notifications as read")
		return
	}

	respondOK(c, gin.H{"updated": count})
}
