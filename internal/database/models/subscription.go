package models

import (
	"strings"
	"time"
)

// Subscription represents a recurring subscription extracted from a user's
// inbox (or created manually).
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Merchant     string    `gorm:"size:200" json:"merchant"`
	Amount       float64   `gorm:"not null" json:"amount"` // 0 means unknown
	Currency     string    `gorm:"size:10;default:'SAR'" json:"currency"`
	RenewalDate  time.Time `gorm:"index;not null" json:"renewal_date"`
	Category     string    `gorm:"size:30;default:'other'" json:"category"`
	LogoColor    string    `gorm:"size:10;default:'#5B6CF8'" json:"logo_color"`
	IsTrial      bool      `gorm:"default:false" json:"is_trial"`
	IsMuted      bool      `gorm:"default:false" json:"is_muted"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	EmailFrom    string    `gorm:"size:255" json:"email_from"`
	EmailSubject string    `gorm:"size:500" json:"email_subject"`
	EmailSnippet string    `gorm:"size:500" json:"email_snippet"`
	Confidence   int       `gorm:"default:90" json:"confidence"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MerchantKey returns the lowercase merchant name used for deduplication.
func (s *Subscription) MerchantKey() string {
	if s.Merchant != "" {
		return strings.ToLower(s.Merchant)
	}
	return strings.ToLower(s.Name)
}

// Category represents the category of a subscription service
type Category string

const (
	CategoryStreaming Category = "streaming"
	CategorySoftware  Category = "software"
	CategoryCloud     Category = "cloud"
	CategoryFinance   Category = "finance"
	CategoryTelecom   Category = "telecom"
	CategoryFood      Category = "food"
	CategoryOther     Category = "other"
)

// IsValid checks if the category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryStreaming, CategorySoftware, CategoryCloud,
		CategoryFinance, CategoryTelecom, CategoryFood, CategoryOther:
		return true
	}
	return false
}
