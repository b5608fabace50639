package models

import (
	"time"
)

// User represents a signed-in user. Identity comes from the OAuth provider;
// we only store profile data, never credentials.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	AvatarURL   string    `gorm:"size:500" json:"avatar_url"`
	Provider    string    `gorm:"size:30;default:'google'" json:"provider"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Subscriptions []Subscription `gorm:"foreignKey:UserID" json:"subscriptions,omitempty"`
	Settings      *UserSettings  `gorm:"foreignKey:UserID" json:"settings,omitempty"`
}

// UserSettings stores user-specific settings
type UserSettings struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	UserID               uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Language             string `gorm:"size:10;default:'ar'" json:"language"`
	NotificationsEnabled bool   `gorm:"default:true" json:"notifications_enabled"`
	NotifyDaysBefore     int    `gorm:"default:3" json:"notify_days_before"`
}
