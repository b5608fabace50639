package services

import (
	"errors"
	"time"

	"github.com/khalidmt90/subnav/internal/database/models"
	"github.com/khalidmt90/subnav/internal/scanner"
	"gorm.io/gorm"
)

// ErrSubscriptionNotFound indicates the subscription does not exist or
// belongs to another user
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionService handles subscription persistence
type SubscriptionService struct {
	db         *gorm.DB
	logService *LogService
}

// NewSubscriptionService creates a new SubscriptionService instance
func NewSubscriptionService(db *gorm.DB, logService *LogService) *SubscriptionService {
	return &SubscriptionService{db: db, logService: logService}
}

// ListSubscriptions returns the user's active subscriptions ordered by
// next renewal
func (s *SubscriptionService) ListSubscriptions(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("renewal_date ASC").
		Find(&subs).Error
	return subs, err
}

// GetSubscription returns one subscription owned by the user
func (s *SubscriptionService) GetSubscription(id, userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubscription stores a manually added subscription
func (s *SubscriptionService) CreateSubscription(sub *models.Subscription) error {
	if sub.Currency == "" {
		sub.Currency = "SAR"
	}
	if sub.Category == "" || !models.Category(sub.Category).IsValid() {
		sub.Category = string(models.CategoryOther)
	}
	if sub.LogoColor == "" {
		sub.LogoColor = "#5B6CF8"
	}
	sub.IsActive = true
	return s.db.Create(sub).Error
}

// UpdateSubscription applies field updates to a subscription owned by the user
func (s *SubscriptionService) UpdateSubscription(id, userID uint, updates map[string]interface{}) (*models.Subscription, error) {
	sub, err := s.GetSubscription(id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(sub).Updates(updates).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubscription soft-deletes a subscription by marking it inactive
func (s *SubscriptionService) DeleteSubscription(id, userID uint) error {
	sub, err := s.GetSubscription(id, userID)
	if err != nil {
		return err
	}
	return s.db.Model(sub).Update("is_active", false).Error
}

// SetMuted mutes or unmutes renewal reminders for a subscription
func (s *SubscriptionService) SetMuted(id, userID uint, muted bool) (*models.Subscription, error) {
	sub, err := s.GetSubscription(id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(sub).Update("is_muted", muted).Error; err != nil {
		return nil, err
	}
	sub.IsMuted = muted
	return sub, nil
}

// SaveExtracted persists scan results. Rows are keyed by merchant: an
// existing row for the same merchant key is refreshed in place so repeat
// scans never duplicate, new merchants insert. Returns how many rows were
// created and how many updated.
func (s *SubscriptionService) SaveExtracted(userID uint, extracted []scanner.Subscription) (created, updated int, err error) {
	var existing []models.Subscription
	if err := s.db.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return 0, 0, err
	}

	byKey := make(map[string]*models.Subscription, len(existing))
	for i := range existing {
		byKey[existing[i].MerchantKey()] = &existing[i]
	}

	for _, e := range extracted {
		if row, ok := byKey[e.MerchantKey()]; ok {
			updates := map[string]interface{}{
				"name":          e.Name,
				"merchant":      e.Merchant,
				"renewal_date":  e.RenewalDate,
				"category":      string(e.Category),
				"logo_color":    e.LogoColor,
				"is_trial":      e.IsTrial,
				"is_active":     true,
				"email_from":    e.EmailFrom,
				"email_subject": e.EmailSubject,
				"email_snippet": e.EmailSnippet,
				"confidence":    e.Confidence,
			}
			// Never overwrite a known amount with "unknown"
			if e.Amount > 0 {
				updates["amount"] = e.Amount
			}
			if err := s.db.Model(row).Updates(updates).Error; err != nil {
				return created, updated, err
			}
			updated++
			continue
		}

		row := models.Subscription{
			UserID:       userID,
			Name:         e.Name,
			Merchant:     e.Merchant,
			Amount:       e.Amount,
			Currency:     "SAR",
			RenewalDate:  e.RenewalDate,
			Category:     string(e.Category),
			LogoColor:    e.LogoColor,
			IsTrial:      e.IsTrial,
			IsActive:     true,
			EmailFrom:    e.EmailFrom,
			EmailSubject: e.EmailSubject,
			EmailSnippet: e.EmailSnippet,
			Confidence:   e.Confidence,
		}
		if err := s.db.Create(&row).Error; err != nil {
			return created, updated, err
		}
		byKey[row.MerchantKey()] = &row
		created++
	}

	return created, updated, nil
}

// SeedDemoData inserts the starter subscriptions and notifications shown
// to a brand-new account
func (s *SubscriptionService) SeedDemoData(userID uint) error {
	now := time.Now()
	daysFromNow := func(d int) time.Time { return now.AddDate(0, 0, d) }

	subs := []models.Subscription{
		{UserID: userID, Name: "Netflix", Merchant: "Netflix", Amount: 49, Currency: "SAR", RenewalDate: daysFromNow(2), Category: string(models.CategoryStreaming), LogoColor: "#E50914", IsActive: true, EmailFrom: "info@mailer.netflix.com", EmailSubject: "Your membership details", EmailSnippet: "We hope you are enjoying your Netflix membership. Your plan details are included below...", Confidence: 98},
		{UserID: userID, Name: "Spotify", Merchant: "Spotify", Amount: 21.99, Currency: "SAR", RenewalDate: daysFromNow(5), Category: string(models.CategoryStreaming), LogoColor: "#1DB954", IsActive: true, EmailFrom: "no-reply@spotify.com", EmailSubject: "Your receipt for Spotify Premium", EmailSnippet: "Thanks for sticking with Premium. Here is your receipt for...", Confidence: 95},
		{UserID: userID, Name: "Adobe Creative Cloud", Merchant: "Adobe", Amount: 235, Currency: "SAR", RenewalDate: daysFromNow(12), Category: string(models.CategorySoftware), LogoColor: "#FF0000", IsActive: true, EmailFrom: "no-reply@adobe.com", EmailSubject: "Adobe Creative Cloud Invoice", EmailSnippet: "Your monthly subscription for Adobe Creative Cloud has been renewed...", Confidence: 97},
		{UserID: userID, Name: "ChatGPT Plus", Merchant: "OpenAI", Amount: 89, Currency: "SAR", RenewalDate: daysFromNow(18), Category: string(models.CategorySoftware), LogoColor: "#10A37F", IsActive: true, EmailFrom: "receipts@openai.com", EmailSubject: "Your ChatGPT Plus subscription", EmailSnippet: "Thank you for your ChatGPT Plus subscription. Your next billing date is...", Confidence: 92},
		{UserID: userID, Name: "Amazon Prime", Merchant: "Amazon", Amount: 16, Currency: "SAR", RenewalDate: daysFromNow(25), Category: string(models.CategoryStreaming), LogoColor: "#00A8E1", IsActive: true, IsTrial: true, EmailFrom: "auto-confirm@amazon.sa", EmailSubject: "Amazon Prime Membership", EmailSnippet: "Your Amazon Prime membership trial is active. You will be charged...", Confidence: 88},
	}

	for i := range subs {
		if err := s.db.Create(&subs[i]).Error; err != nil {
			return err
		}
	}

	notifications := []models.Notification{
		{UserID: userID, Title: "Netflix", Message: "Netflix renewal in 2 days - SAR 49", IsRead: false},
		{UserID: userID, Title: "Spotify", Message: "Spotify renews today", IsRead: true},
	}
	for i := range notifications {
		if err := s.db.Create(&notifications[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
