package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khalidmt90/subnav/internal/api/middleware"
	"github.com/khalidmt90/subnav/internal/database/models"
	"github.com/khalidmt90/subnav/internal/services"
)

// SubscriptionHandler handles subscription related requests
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	logService          *services.LogService
}

// NewSubscriptionHandler creates a new SubscriptionHandler instance
func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, logService *services.LogService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		logService:          logService,
	}
}

// CreateSubscriptionRequest represents a manually added subscription
type CreateSubscriptionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Merchant    string  `json:"merchant"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	RenewalDate string  `json:"renewal_date" binding:"required"` // RFC 3339
	Category    string  `json:"category"`
	LogoColor   string  `json:"logo_color"`
	IsTrial     bool    `json:"is_trial"`
}

// UpdateSubscriptionRequest holds the updatable subscription fields
type UpdateSubscriptionRequest struct {
	Name        *string  `json:"name"`
	Merchant    *string  `json:"merchant"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	RenewalDate *string  `json:"renewal_date"`
	Category    *string  `json:"category"`
	LogoColor   *string  `json:"logo_color"`
	IsTrial     *bool    `json:"is_trial"`
}

// ListSubscriptions returns the user's active subscriptions
// GET /api/subscriptions
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	subs, err := h.subscriptionService.ListSubscriptions(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list subscriptions")
		return
	}

	respondOK(c, subs)
}

// GetSubscription returns one subscription
// GET /api/subscriptions/:id
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetSubscription(id, userID)
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Subscription not found")
		return
	}

	respondOK(c, sub)
}

// CreateSubscription stores a manually added subscription
// POST /api/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	renewal, err := time.Parse(time.RFC3339, req.RenewalDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "renewal_date must be RFC 3339")
		return
	}
	if req.Amount < 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount must not be negative")
		return
	}

	sub := models.Subscription{
		UserID:      userID,
		Name:        req.Name,
		Merchant:    req.Merchant,
		Amount:      req.Amount,
		Currency:    req.Currency,
		RenewalDate: renewal,
		Category:    req.Category,
		LogoColor:   req.LogoColor,
		IsTrial:     req.IsTrial,
	}
	if err := h.subscriptionService.CreateSubscription(&sub); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create subscription")
		return
	}

	h.logService.LogInfo(userID, models.LogModuleSubscription, "subscription_created", "Subscription created", map[string]interface{}{
		"subscription_id": sub.ID,
		"name":            sub.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    sub,
	})
}

// UpdateSubscription applies partial updates to a subscription
// PUT /api/subscriptions/:id
func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Merchant != nil {
		updates["merchant"] = *req.Merchant
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount must not be negative")
			return
		}
		updates["amount"] = *req.Amount
	}
	if req.Currency != nil && *req.Currency != "" {
		updates["currency"] = *req.Currency
	}
	if req.RenewalDate != nil {
		renewal, err := time.Parse(time.RFC3339, *req.RenewalDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "renewal_date must be RFC 3339")
			return
		}
		updates["renewal_date"] = renewal
	}
	if req.Category != nil {
		if !models.Category(*req.Category).IsValid() {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown category")
			return
		}
		updates["category"] = *req.Category
	}
	if req.LogoColor != nil && *req.LogoColor != "" {
		updates["logo_color"] = *req.LogoColor
	}
	if req.IsTrial != nil {
		updates["is_trial"] = *req.IsTrial
	}

	sub, err := h.subscriptionService.UpdateSubscription(id, userID, updates)
	if err != nil {
		if err == services.ErrSubscriptionNotFound {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Subscription not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update subscription")
		return
	}

	respondOK(c, sub)
}

// DeleteSubscription marks a subscription inactive
// DELETE /api/subscriptions/:id
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.subscriptionService.DeleteSubscription(id, userID); err != nil {
		if err == services.ErrSubscriptionNotFound {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Subscription not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete subscription")
		return
	}

	h.logService.LogInfo(userID, models.LogModuleSubscription, "subscription_deleted", "Subscription deleted", map[string]interface{}{
		"subscription_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Subscription deleted",
	})
}

// MuteSubscription silences renewal reminders for a subscription
// PUT /api/subscriptions/:id/mute
func (h *SubscriptionHandler) MuteSubscription(c *gin.Context) {
	h.setMuted(c, true)
}

// UnmuteSubscription re-enables renewal reminders for a subscription
// PUT /api/subscriptions/:id/unmute
func (h *SubscriptionHandler) UnmuteSubscription(c *gin.Context) {
	h.setMuted(c, false)
}

func (h *SubscriptionHandler) setMuted(c *gin.Context, muted bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.SetMuted(id, userID, muted)
	if err != nil {
		if err == services.ErrSubscriptionNotFound {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Subscription not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update subscription")
		return
	}

	respondOK(c, sub)
}
