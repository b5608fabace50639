package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/khalidmt90/subnav/internal/api"
	"github.com/khalidmt90/subnav/internal/cli"
	"github.com/khalidmt90/subnav/internal/config"
	"github.com/khalidmt90/subnav/internal/database"
	"github.com/khalidmt90/subnav/internal/registry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Load merchant registry, extended by an optional local catalog
	reg := registry.Default()
	merchantsFile := filepath.Join(cfg.DataDir, "merchants.json")
	if _, err := os.Stat(merchantsFile); err == nil {
		if err := reg.LoadFile(merchantsFile); err != nil {
			log.Fatalf("Failed to load merchant catalog %s: %v", merchantsFile, err)
		}
		log.Printf("Loaded merchant catalog from %s (%d entries total)", merchantsFile, reg.Len())
	}

	// Check if running CLI command
	if len(os.Args) > 1 {
		cli.Execute(db, cfg, reg)
		return
	}

	// Start API server
	router, authManager, err := api.SetupRouter(db, cfg, reg)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	log.Printf("Starting SubNav server on port %s", cfg.APIPort)
	log.Printf("Data directory: %s", cfg.DataDir)
	log.Printf("Database path: %s", cfg.DatabasePath)
	log.Printf("API Key: %s", authManager.APIKeyManager.GetCurrentKey())
	if err := router.Run(":" + cfg.APIPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
