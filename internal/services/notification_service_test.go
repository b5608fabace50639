package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khalidmt90/subnav/internal/database/models"
)

func seedSubscription(t *testing.T, svc *SubscriptionService, userID uint, name string, amount float64) *models.Subscription {
	t.Helper()
	sub := models.Subscription{
		UserID:      userID,
		Name:        name,
		Merchant:    name,
		Amount:      amount,
		RenewalDate: time.Now().AddDate(0, 0, 3),
	}
	require.NoError(t, svc.CreateSubscription(&sub))
	return &sub
}

func TestCreateRenewalReminder_OncePerDay(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "notif@example.com")
	subSvc := NewSubscriptionService(db, NewLogService(db))
	svc := NewNotificationService(db)

	sub := seedSubscription(t, subSvc, userID, "Netflix", 49)

	created, err := svc.CreateRenewalReminder(sub, 3)
	require.NoError(t, err)
	require.True(t, created)

	// Same subscription, same day: no duplicate
	created, err = svc.CreateRenewalReminder(sub, 3)
	require.NoError(t, err)
	require.False(t, created)

	notifs, err := svc.ListNotifications(userID)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	require.Equal(t, "Netflix", notifs[0].Title)
	require.Equal(t, "Netflix renewal in 3 days - SAR 49.00", notifs[0].Message)
	require.NotNil(t, notifs[0].SubscriptionID)
}

func TestRenewalMessage_Wording(t *testing.T) {
	withAmount := &models.Subscription{Name: "Spotify", Currency: "SAR", Amount: 21.99}
	noAmount := &models.Subscription{Name: "Spotify", Currency: "SAR"}

	require.Equal(t, "Spotify renews today - SAR 21.99", renewalMessage(withAmount, 0))
	require.Equal(t, "Spotify renews tomorrow - SAR 21.99", renewalMessage(withAmount, 1))
	require.Equal(t, "Spotify renewal in 5 days - SAR 21.99", renewalMessage(withAmount, 5))
	require.Equal(t, "Spotify renews today", renewalMessage(noAmount, 0))
	require.Equal(t, "Spotify renewal in 2 days", renewalMessage(noAmount, 2))
}

func TestMarkRead(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "read@example.com")
	svc := NewNotificationService(db)

	notif := models.Notification{UserID: userID, Title: "Netflix", Message: "Netflix renews today"}
	require.NoError(t, db.Create(&notif).Error)

	// Another user cannot touch it
	require.ErrorIs(t, svc.MarkRead(notif.ID, userID+1), ErrNotificationNotFound)

	require.NoError(t, svc.MarkRead(notif.ID, userID))

	notifs, err := svc.ListNotifications(userID)
	require.NoError(t, err)
	require.True(t, notifs[0].IsRead)
}

func TestMarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "readall@example.com")
	svc := NewNotificationService(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Notification{UserID: userID, Title: "Netflix", Message: "reminder"}).Error)
	}
	require.NoError(t, db.Create(&models.Notification{UserID: userID, Title: "Spotify", Message: "reminder", IsRead: true}).Error)

	count, err := svc.MarkAllRead(userID)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	count, err = svc.MarkAllRead(userID)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}
