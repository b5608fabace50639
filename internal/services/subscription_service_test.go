package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khalidmt90/subnav/internal/database/models"
	"github.com/khalidmt90/subnav/internal/scanner"
)

func newSubscriptionService(t *testing.T) (*SubscriptionService, uint) {
	t.Helper()
	db := setupTestDB(t)
	userID := createTestUser(t, db, "sub-test@example.com")
	return NewSubscriptionService(db, NewLogService(db)), userID
}

func extracted(merchant string, amount float64) scanner.Subscription {
	return scanner.Subscription{
		Name:        merchant,
		Merchant:    merchant,
		Amount:      amount,
		RenewalDate: time.Now().AddDate(0, 1, 0),
		Category:    models.CategoryStreaming,
		LogoColor:   "#E50914",
		Confidence:  95,
	}
}

func TestSaveExtracted_CreatesAndUpdates(t *testing.T) {
	svc, userID := newSubscriptionService(t)

	created, updated, err := svc.SaveExtracted(userID, []scanner.Subscription{
		extracted("Netflix", 49),
		extracted("Spotify", 21.99),
	})
	require.NoError(t, err)
	require.Equal(t, 2, created)
	require.Equal(t, 0, updated)

	// Second scan with a price change updates in place
	created, updated, err = svc.SaveExtracted(userID, []scanner.Subscription{
		extracted("Netflix", 55),
	})
	require.NoError(t, err)
	require.Equal(t, 0, created)
	require.Equal(t, 1, updated)

	subs, err := svc.ListSubscriptions(userID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	for _, s := range subs {
		if s.Merchant == "Netflix" {
			require.Equal(t, 55.0, s.Amount)
		}
	}
}

func TestSaveExtracted_UnknownAmountKeepsOldValue(t *testing.T) {
	svc, userID := newSubscriptionService(t)

	_, _, err := svc.SaveExtracted(userID, []scanner.Subscription{extracted("Netflix", 49)})
	require.NoError(t, err)

	// A rescan where the amount could not be parsed must not zero it out
	_, updated, err := svc.SaveExtracted(userID, []scanner.Subscription{extracted("Netflix", 0)})
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	subs, err := svc.ListSubscriptions(userID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, 49.0, subs[0].Amount)
}

func TestSaveExtracted_ReactivatesDeleted(t *testing.T) {
	svc, userID := newSubscriptionService(t)

	_, _, err := svc.SaveExtracted(userID, []scanner.Subscription{extracted("Netflix", 49)})
	require.NoError(t, err)

	subs, err := svc.ListSubscriptions(userID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteSubscription(subs[0].ID, userID))

	subs, err = svc.ListSubscriptions(userID)
	require.NoError(t, err)
	require.Empty(t, subs)

	// The merchant shows up again in a later scan
	_, _, err = svc.SaveExtracted(userID, []scanner.Subscription{extracted("Netflix", 49)})
	require.NoError(t, err)

	subs, err = svc.ListSubscriptions(userID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
}

func TestDeleteSubscription_WrongUser(t *testing.T) {
	svc, userID := newSubscriptionService(t)

	_, _, err := svc.SaveExtracted(userID, []scanner.Subscription{extracted("Netflix", 49)})
	require.NoError(t, err)
	subs, err := svc.ListSubscriptions(userID)
	require.NoError(t, err)

	err = svc.DeleteSubscription(subs[0].ID, userID+1)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestSetMuted(t *testing.T) {
	svc, userID := newSubscriptionService(t)

	_, _, err := svc.SaveExtracted(userID, []scanner.Subscription{extracted("Netflix", 49)})
	require.NoError(t, err)
	subs, err := svc.ListSubscriptions(userID)
	require.NoError(t, err)

	sub, err := svc.SetMuted(subs[0].ID, userID, true)
	require.NoError(t, err)
	require.True(t, sub.IsMuted)

	// Muted subscriptions still appear in the list
	subs, err = svc.ListSubscriptions(userID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
}

func TestCreateSubscription_Defaults(t *testing.T) {
	svc, userID := newSubscriptionService(t)

	sub := models.Subscription{
		UserID:      userID,
		Name:        "Local Gym",
		RenewalDate: time.Now().AddDate(0, 1, 0),
		Category:    "bogus",
	}
	require.NoError(t, svc.CreateSubscription(&sub))

	require.Equal(t, "SAR", sub.Currency)
	require.Equal(t, string(models.CategoryOther), sub.Category)
	require.Equal(t, "#5B6CF8", sub.LogoColor)
	require.True(t, sub.IsActive)
}

func TestSeedDemoData(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "seed@example.com")
	svc := NewSubscriptionService(db, NewLogService(db))

	require.NoError(t, svc.SeedDemoData(userID))

	subs, err := svc.ListSubscriptions(userID)
	require.NoError(t, err)
	require.Len(t, subs, 5)
	// Sorted by soonest renewal: Netflix renews first
	require.Equal(t, "Netflix", subs[0].Name)

	notifs, err := NewNotificationService(db).ListNotifications(userID)
	require.NoError(t, err)
	require.Len(t, notifs, 2)
}
