package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/khalidmt90/subnav/internal/database"
	"github.com/khalidmt90/subnav/internal/database/models"
)

// setupTestDB opens a throwaway sqlite database with migrations applied
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

// createTestUser inserts a user and returns its ID
func createTestUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	user := models.User{Email: email, DisplayName: "Test User", Provider: "google"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}
