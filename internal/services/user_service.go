package services

import (
	"errors"
	"strings"

	"github.com/khalidmt90/subnav/internal/database/models"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound indicates the user does not exist
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailRequired indicates login was attempted without an email
	ErrEmailRequired = errors.New("email is required")
)

// UserService handles user operations. There are no local credentials:
// identity is asserted by the OAuth provider before login reaches us.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// LoginProfile is the OAuth-derived profile presented at login
type LoginProfile struct {
	Email       string
	DisplayName string
	AvatarURL   string
	Provider    string
}

// GetOrCreateUser returns the user for the profile's email, creating the
// account with default settings on first login. The second return value
// reports whether the user was newly created.
func (s *UserService) GetOrCreateUser(profile LoginProfile) (*models.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		return nil, false, ErrEmailRequired
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	provider := profile.Provider
	if provider == "" {
		provider = "google"
	}

	user = models.User{
		Email:       email,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		Provider:    provider,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, false, err
	}

	settings := models.UserSettings{
		UserID:               user.ID,
		Language:             "ar",
		NotificationsEnabled: true,
		NotifyDaysBefore:     3,
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, false, err
	}
	user.Settings = &settings

	return &user, true, nil
}

// GetUserByID returns a user by ID
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Settings").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfileRequest holds updatable profile fields
type UpdateProfileRequest struct {
	DisplayName *string
	AvatarURL   *string
}

// UpdateProfile updates a user's profile fields
func (s *UserService) UpdateProfile(id uint, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetSettings returns the user's settings, creating defaults if missing
func (s *UserService) GetSettings(userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSettings{
			UserID:               userID,
			Language:             "ar",
			NotificationsEnabled: true,
			NotifyDaysBefore:     3,
		}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettingsRequest holds updatable settings fields
type UpdateSettingsRequest struct {
	Language             *string
	NotificationsEnabled *bool
	NotifyDaysBefore     *int
}

// UpdateSettings updates the user's settings
func (s *UserService) UpdateSettings(userID uint, req UpdateSettingsRequest) (*models.UserSettings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	if req.Language != nil {
		settings.Language = *req.Language
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.NotifyDaysBefore != nil && *req.NotifyDaysBefore >= 0 {
		settings.NotifyDaysBefore = *req.NotifyDaysBefore
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// ListUsers returns all users, oldest first
func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("id ASC").Find(&users).Error
	return users, err
}
