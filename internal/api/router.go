package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/khalidmt90/subnav/internal/api/handlers"
	"github.com/khalidmt90/subnav/internal/api/middleware"
	"github.com/khalidmt90/subnav/internal/config"
	"github.com/khalidmt90/subnav/internal/registry"
	"github.com/khalidmt90/subnav/internal/scanner"
	"github.com/khalidmt90/subnav/internal/services"
	"gorm.io/gorm"
)

// SetupRouter initializes and returns the Gin router with all routes configured
func SetupRouter(db *gorm.DB, cfg *config.Config, reg *registry.Registry) (*gin.Engine, *middleware.AuthManager, error) {
	router := gin.Default()

	router.Use(cors.New(corsConfig(cfg)))

	// Initialize auth manager
	authManager, err := middleware.NewAuthManager(cfg.DataDir, cfg.JWTSecret, middleware.DefaultTokenExpiry)
	if err != nil {
		return nil, nil, err
	}

	// Initialize services
	logService := services.NewLogServiceWithLevel(db, cfg.LogLevel)
	userService := services.NewUserService(db)
	subscriptionService := services.NewSubscriptionService(db, logService)
	notificationService := services.NewNotificationService(db)
	scanService := services.NewScanService(cfg, reg, scanner.DefaultRuleset(), subscriptionService, logService)

	// Start the renewal reminder scheduler (sweeps hourly)
	reminderScheduler := services.NewReminderScheduler(db, notificationService, logService, time.Hour)
	reminderScheduler.Start()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, subscriptionService, authManager.JWTManager, logService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, logService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	scanHandler := handlers.NewScanHandler(scanService)
	settingsHandler := handlers.NewSettingsHandler(userService, logService)

	// Health check endpoint (no auth required)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	{
		// Apply API key middleware to all API routes
		api.Use(middleware.APIKeyMiddleware(authManager.APIKeyManager))

		// Auth routes (API key required, but no JWT required)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes (API key + JWT required)
		protected := api.Group("")
		protected.Use(middleware.JWTMiddleware(authManager.JWTManager))
		{
			protected.POST("/auth/refresh", authHandler.RefreshToken)
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/me", authHandler.GetCurrentUser)
			protected.PUT("/auth/me", authHandler.UpdateProfile)

			// Subscription routes
			subscriptions := protected.Group("/subscriptions")
			{
				subscriptions.GET("", subscriptionHandler.ListSubscriptions)
				subscriptions.POST("", subscriptionHandler.CreateSubscription)
				subscriptions.GET("/:id", subscriptionHandler.GetSubscription)
				subscriptions.PUT("/:id", subscriptionHandler.UpdateSubscription)
				subscriptions.DELETE("/:id", subscriptionHandler.DeleteSubscription)
				subscriptions.PUT("/:id/mute", subscriptionHandler.MuteSubscription)
				subscriptions.PUT("/:id/unmute", subscriptionHandler.UnmuteSubscription)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationHandler.ListNotifications)
				notifications.PUT("/read-all", notificationHandler.MarkAllRead)
				notifications.PUT("/:id/read", notificationHandler.MarkRead)
			}

			// Scan routes
			scan := protected.Group("/scan")
			{
				scan.POST("", scanHandler.StartScan)
				scan.GET("/progress", scanHandler.GetProgress)
			}

			// Settings routes
			settings := protected.Group("/settings")
			{
				settings.GET("", settingsHandler.GetSettings)
				settings.PUT("", settingsHandler.UpdateSettings)
			}
		}
	}

	return router, authManager, nil
}

// corsConfig builds the CORS policy from the configured origin list
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := strings.TrimSpace(cfg.CORSOrigins)
	if origins == "" || origins == "*" {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
		return c
	}

	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.AllowOrigins = append(c.AllowOrigins, o)
		}
	}
	return c
}
