package models

import (
	"time"
)

// Notification represents a renewal reminder shown to the user
type Notification struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	SubscriptionID *uint     `gorm:"index" json:"subscription_id,omitempty"`
	Title          string    `gorm:"size:200;not null" json:"title"`
	Message        string    `gorm:"size:500;not null" json:"message"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}
