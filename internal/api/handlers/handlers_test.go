package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/khalidmt90/subnav/internal/api/middleware"
	"github.com/khalidmt90/subnav/internal/config"
	"github.com/khalidmt90/subnav/internal/database"
	"github.com/khalidmt90/subnav/internal/database/models"
	"github.com/khalidmt90/subnav/internal/mailbox"
	"github.com/khalidmt90/subnav/internal/registry"
	"github.com/khalidmt90/subnav/internal/scanner"
	"github.com/khalidmt90/subnav/internal/services"
)

type testEnv struct {
	db          *gorm.DB
	userService *services.UserService
	subService  *services.SubscriptionService
	logService  *services.LogService
	userID      uint
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	logService := services.NewLogService(db)
	userService := services.NewUserService(db)
	subService := services.NewSubscriptionService(db, logService)

	user := models.User{Email: "handler@example.com", Provider: "google"}
	require.NoError(t, db.Create(&user).Error)

	return &testEnv{
		db:          db,
		userService: userService,
		subService:  subService,
		logService:  logService,
		userID:      user.ID,
	}
}

// withUser injects the authenticated identity the way JWTMiddleware does
func withUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("email", "handler@example.com")
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	envelope := decodeEnvelope(t, w)
	require.Equal(t, false, envelope["success"])
	errObj, ok := envelope["error"].(map[string]interface{})
	require.True(t, ok, "missing error object: %s", w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

func TestLogin_NewUserGetsTokenAndDemoData(t *testing.T) {
	env := newTestEnv(t)
	jwtManager := middleware.NewJWTManager("handler-test-secret", time.Hour)
	handler := NewAuthHandler(env.userService, env.subService, jwtManager, env.logService)

	router := gin.New()
	router.POST("/api/auth/login", handler.Login)

	w := doJSON(t, router, "POST", "/api/auth/login", gin.H{
		"email":        "fresh@example.com",
		"display_name": "Fresh User",
	})
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	require.Equal(t, true, envelope["success"])
	data := envelope["data"].(map[string]interface{})
	require.NotEmpty(t, data["token"])
	require.Equal(t, true, data["is_new"])

	// The minted token is accepted by the same manager
	claims, err := jwtManager.ValidateToken(data["token"].(string))
	require.NoError(t, err)
	require.Equal(t, "fresh@example.com", claims.Email)

	// Demo subscriptions appear on first login
	subs, err := env.subService.ListSubscriptions(uint(claims.UserID))
	require.NoError(t, err)
	require.NotEmpty(t, subs)

	// Second login is not new and does not reseed
	w = doJSON(t, router, "POST", "/api/auth/login", gin.H{"email": "fresh@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, false, data["is_new"])

	again, err := env.subService.ListSubscriptions(uint(claims.UserID))
	require.NoError(t, err)
	require.Len(t, again, len(subs))
}

func TestLogin_RejectsInvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.userService, env.subService, middleware.NewJWTManager("s", time.Hour), env.logService)

	router := gin.New()
	router.POST("/api/auth/login", handler.Login)

	w := doJSON(t, router, "POST", "/api/auth/login", gin.H{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestCreateSubscription_Validation(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSubscriptionHandler(env.subService, env.logService)

	router := gin.New()
	router.Use(withUser(env.userID))
	router.POST("/api/subscriptions", handler.CreateSubscription)

	// Missing name fails binding
	w := doJSON(t, router, "POST", "/api/subscriptions", gin.H{
		"renewal_date": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	// Non RFC 3339 renewal date is rejected
	w = doJSON(t, router, "POST", "/api/subscriptions", gin.H{
		"name":         "Netflix",
		"renewal_date": "15/03/2025",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	// Valid request creates the subscription
	w = doJSON(t, router, "POST", "/api/subscriptions", gin.H{
		"name":         "Netflix",
		"amount":       49.0,
		"renewal_date": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	subs, err := env.subService.ListSubscriptions(env.userID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "Netflix", subs[0].Name)
}

func TestGetSubscription_NotFound(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSubscriptionHandler(env.subService, env.logService)

	router := gin.New()
	router.Use(withUser(env.userID))
	router.GET("/api/subscriptions/:id", handler.GetSubscription)

	w := doJSON(t, router, "GET", "/api/subscriptions/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestUpdateSettings_Validation(t *testing.T) {
	env := newTestEnv(t)
	handler := NewSettingsHandler(env.userService, env.logService)

	router := gin.New()
	router.Use(withUser(env.userID))
	router.PUT("/api/settings", handler.UpdateSettings)

	w := doJSON(t, router, "PUT", "/api/settings", gin.H{"language": "fr"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = doJSON(t, router, "PUT", "/api/settings", gin.H{"notify_days_before": 45})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = doJSON(t, router, "PUT", "/api/settings", gin.H{"language": "en", "notify_days_before": 7})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, "en", data["language"])
	require.Equal(t, float64(7), data["notify_days_before"])
}

func TestMarkNotificationRead_NotFound(t *testing.T) {
	env := newTestEnv(t)
	handler := NewNotificationHandler(services.NewNotificationService(env.db))

	router := gin.New()
	router.Use(withUser(env.userID))
	router.PUT("/api/notifications/:id/read", handler.MarkRead)

	w := doJSON(t, router, "PUT", "/api/notifications/999/read", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "NOT_FOUND", errorCode(t, w))
}

// blockingSource parks ListMessageIDs until released, keeping a scan
// in flight for as long as the test needs
type blockingSource struct {
	release chan struct{}
}

func (s *blockingSource) ListMessageIDs(ctx context.Context, query, pageToken string) (mailbox.Page, error) {
	<-s.release
	return mailbox.Page{}, nil
}

func (s *blockingSource) GetMessage(ctx context.Context, id string) (mailbox.RawMessage, error) {
	return mailbox.RawMessage{}, nil
}

func TestStartScan_ConflictWhileRunning(t *testing.T) {
	env := newTestEnv(t)

	cfg := &config.Config{ScanPageLimit: 10, ScanPageSize: 500, ScanBatchSize: 50, ScanWindowDays: 90}
	scanService := services.NewScanService(cfg, registry.Default(), scanner.DefaultRuleset(), env.subService, env.logService)

	src := &blockingSource{release: make(chan struct{})}
	scanService.SetSourceFactory(func(ctx context.Context, accessToken string) (mailbox.Source, error) {
		return src, nil
	})

	handler := NewScanHandler(scanService)
	router := gin.New()
	router.Use(withUser(env.userID))
	router.POST("/api/scan", handler.StartScan)
	router.GET("/api/scan/progress", handler.GetProgress)

	w := doJSON(t, router, "POST", "/api/scan", gin.H{"access_token": "tok"})
	require.Equal(t, http.StatusAccepted, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.NotEmpty(t, data["scan_id"])
	require.Equal(t, string(services.SyncStatusSyncing), data["status"])

	// A second scan for the same user is refused while the first runs
	w = doJSON(t, router, "POST", "/api/scan", gin.H{"access_token": "tok"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "SCAN_IN_PROGRESS", errorCode(t, w))

	// Progress polling reports the running scan
	w = doJSON(t, router, "GET", "/api/scan/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.Equal(t, string(services.SyncStatusSyncing), progress["status"])

	close(src.release)
}

func TestStartScan_RequiresAccessToken(t *testing.T) {
	env := newTestEnv(t)
	cfg := &config.Config{ScanPageLimit: 10, ScanPageSize: 500, ScanBatchSize: 50, ScanWindowDays: 90}
	scanService := services.NewScanService(cfg, registry.Default(), scanner.DefaultRuleset(), env.subService, env.logService)

	handler := NewScanHandler(scanService)
	router := gin.New()
	router.Use(withUser(env.userID))
	router.POST("/api/scan", handler.StartScan)

	w := doJSON(t, router, "POST", "/api/scan", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}
