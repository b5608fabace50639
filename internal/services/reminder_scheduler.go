package services

import (
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/khalidmt90/subnav/internal/database/models"
)

// ReminderScheduler periodically creates renewal reminder notifications
type ReminderScheduler struct {
	db                  *gorm.DB
	notificationService *NotificationService
	logService          *LogService
	interval            time.Duration
	stopChan            chan struct{}
	running             bool
	mu                  sync.Mutex
	sweeping            sync.Mutex // prevents overlapping sweeps
}

// NewReminderScheduler creates a new reminder scheduler
func NewReminderScheduler(db *gorm.DB, notificationService *NotificationService, logService *LogService, interval time.Duration) *ReminderScheduler {
	return &ReminderScheduler{
		db:                  db,
		notificationService: notificationService,
		logService:          logService,
		interval:            interval,
		stopChan:            make(chan struct{}),
	}
}

// Start begins the periodic reminder sweeps
func (s *ReminderScheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	log.Printf("[ReminderScheduler] Starting with interval: %v", s.interval)

	go func() {
		// Let the service finish booting before the first sweep
		select {
		case <-time.After(10 * time.Second):
			s.sweepAllUsers()
		case <-s.stopChan:
			return
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweepAllUsers()
			case <-s.stopChan:
				log.Println("[ReminderScheduler] Stopping")
				return
			}
		}
	}()
}

// Stop stops the scheduler
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stopChan)
	s.running = false
}

// sweepAllUsers creates reminders for every user with notifications enabled
func (s *ReminderScheduler) sweepAllUsers() {
	// If the previous sweep is still running, skip this cycle
	if !s.sweeping.TryLock() {
		log.Println("[ReminderScheduler] Previous sweep still running, skipping this cycle")
		return
	}
	defer s.sweeping.Unlock()

	var settings []models.UserSettings
	if err := s.db.Where("notifications_enabled = ?", true).Find(&settings).Error; err != nil {
		log.Printf("[ReminderScheduler] Failed to load user settings: %v", err)
		return
	}

	for _, st := range settings {
		select {
		case <-s.stopChan:
			return
		default:
		}
		s.sweepUser(st)
	}
}

// sweepUser creates reminders for one user's upcoming renewals. Muted and
// inactive subscriptions are skipped; the notification service dedups
// per subscription per day.
func (s *ReminderScheduler) sweepUser(settings models.UserSettings) {
	now := time.Now()
	windowEnd := now.AddDate(0, 0, settings.NotifyDaysBefore).Add(24 * time.Hour)

	var subs []models.Subscription
	err := s.db.
		Where("user_id = ? AND is_active = ? AND is_muted = ?", settings.UserID, true, false).
		Where("renewal_date >= ? AND renewal_date < ?", startOfDay(now), windowEnd).
		Find(&subs).Error
	if err != nil {
		log.Printf("[ReminderScheduler] Failed to load subscriptions for user %d: %v", settings.UserID, err)
		return
	}

	created := 0
	for i := range subs {
		daysUntil := int(startOfDay(subs[i].RenewalDate).Sub(startOfDay(now)).Hours() / 24)
		if daysUntil < 0 {
			continue
		}
		ok, err := s.notificationService.CreateRenewalReminder(&subs[i], daysUntil)
		if err != nil {
			log.Printf("[ReminderScheduler] Failed to create reminder for subscription %d: %v", subs[i].ID, err)
			continue
		}
		if ok {
			created++
		}
	}

	if created > 0 {
		s.logService.LogInfo(settings.UserID, models.LogModuleNotification, "reminders_created", "Renewal reminders created", map[string]interface{}{
			"count": created,
		})
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
