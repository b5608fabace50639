package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/khalidmt90/subnav/internal/database/models"
	"gorm.io/gorm"
)

// ErrNotificationNotFound indicates the notification does not exist or
// belongs to another user
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService handles renewal reminders
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// ListNotifications returns the user's notifications, newest first
func (s *NotificationService) ListNotifications(userID uint) ([]models.Notification, error) {
	var notifs []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifs).Error
	return notifs, err
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(id, userID uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of the user's notifications as read
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// CreateRenewalReminder creates a reminder for an upcoming renewal. At
// most one reminder per subscription per calendar day: re-running the
// scheduler never spams duplicates.
func (s *NotificationService) CreateRenewalReminder(sub *models.Subscription, daysUntil int) (bool, error) {
	dayStart := time.Now().Truncate(24 * time.Hour)

	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND subscription_id = ? AND created_at >= ?", sub.UserID, sub.ID, dayStart).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	notif := models.Notification{
		UserID:         sub.UserID,
		SubscriptionID: &sub.ID,
		Title:          sub.Name,
		Message:        renewalMessage(sub, daysUntil),
	}
	if err := s.db.Create(&notif).Error; err != nil {
		return false, err
	}
	return true, nil
}

// renewalMessage formats the reminder text shown in the notification list
func renewalMessage(sub *models.Subscription, daysUntil int) string {
	switch {
	case daysUntil <= 0:
		if sub.Amount > 0 {
			return fmt.Sprintf("%s renews today - %s %.2f", sub.Name, sub.Currency, sub.Amount)
		}
		return fmt.Sprintf("%s renews today", sub.Name)
	case daysUntil == 1:
		if sub.Amount > 0 {
			return fmt.Sprintf("%s renews tomorrow - %s %.2f", sub.Name, sub.Currency, sub.Amount)
		}
		return fmt.Sprintf("%s renews tomorrow", sub.Name)
	default:
		if sub.Amount > 0 {
			return fmt.Sprintf("%s renewal in %d days - %s %.2f", sub.Name, daysUntil, sub.Currency, sub.Amount)
		}
		return fmt.Sprintf("%s renewal in %d days", sub.Name, daysUntil)
	}
}
