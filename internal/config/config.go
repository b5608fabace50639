package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	DatabasePath string `json:"database_path"`
	APIPort      string `json:"api_port"`
	LogLevel     string `json:"log_level"`
	DataDir      string `json:"data_dir"`
	JWTSecret    string `json:"jwt_secret"`
	CORSOrigins  string `json:"cors_origins"` // comma-separated, * for all

	// Scan tuning. Zero values fall back to the defaults below.
	ScanPageLimit  int `json:"scan_page_limit"`  // max Gmail result pages per scan
	ScanPageSize   int `json:"scan_page_size"`   // message IDs per page
	ScanBatchSize  int `json:"scan_batch_size"`  // messages fetched concurrently
	ScanWindowDays int `json:"scan_window_days"` // how far back to search

	// Optional IMAP mailbox used instead of Gmail when configured.
	IMAP IMAPConfig `json:"imap"`
}

// IMAPConfig describes a plain IMAP mailbox to scan
type IMAPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	UseSSL   bool   `json:"use_ssl"`
}

// Enabled reports whether an IMAP mailbox is configured
func (c IMAPConfig) Enabled() bool {
	return c.Host != ""
}

// Default configuration values
const (
	DefaultDatabasePath   = "data/subnav.db"
	DefaultAPIPort        = "8080"
	DefaultLogLevel       = "INFO"
	DefaultDataDir        = "data"
	DefaultJWTSecret      = "subnav-default-secret-change-in-production"
	DefaultCORSOrigins    = "*"
	DefaultScanPageLimit  = 10
	DefaultScanPageSize   = 500
	DefaultScanBatchSize  = 50
	DefaultScanWindowDays = 90
)

// Load loads configuration from environment variables and config file
// Priority: Environment variables > Config file > Default values
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath:   DefaultDatabasePath,
		APIPort:        DefaultAPIPort,
		LogLevel:       DefaultLogLevel,
		DataDir:        DefaultDataDir,
		JWTSecret:      DefaultJWTSecret,
		CORSOrigins:    DefaultCORSOrigins,
		ScanPageLimit:  DefaultScanPageLimit,
		ScanPageSize:   DefaultScanPageSize,
		ScanBatchSize:  DefaultScanBatchSize,
		ScanWindowDays: DefaultScanWindowDays,
	}

	// Config file is optional
	if err := cfg.loadFromFile(); err != nil {
		return nil, err
	}

	cfg.loadFromEnv()
	cfg.applyScanDefaults()

	return cfg, nil
}

// loadFromFile loads configuration from config.json file
func (c *Config) loadFromFile() error {
	configPaths := []string{
		"config.json",
		filepath.Join(c.DataDir, "config.json"),
	}

	for _, path := range configPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return json.Unmarshal(data, c)
	}

	return nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if val := os.Getenv("SUBNAV_DATABASE_PATH"); val != "" {
		c.DatabasePath = val
	}
	if val := os.Getenv("SUBNAV_API_PORT"); val != "" {
		c.APIPort = val
	}
	if val := os.Getenv("SUBNAV_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("SUBNAV_DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("SUBNAV_JWT_SECRET"); val != "" {
		c.JWTSecret = val
	}
	if val := os.Getenv("SUBNAV_CORS_ORIGINS"); val != "" {
		c.CORSOrigins = val
	}
	if val := os.Getenv("SUBNAV_SCAN_PAGE_LIMIT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.ScanPageLimit = n
		}
	}
	if val := os.Getenv("SUBNAV_SCAN_BATCH_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.ScanBatchSize = n
		}
	}
	if val := os.Getenv("SUBNAV_IMAP_HOST"); val != "" {
		c.IMAP.Host = val
	}
	if val := os.Getenv("SUBNAV_IMAP_PORT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.IMAP.Port = n
		}
	}
	if val := os.Getenv("SUBNAV_IMAP_USERNAME"); val != "" {
		c.IMAP.Username = val
	}
	if val := os.Getenv("SUBNAV_IMAP_PASSWORD"); val != "" {
		c.IMAP.Password = val
	}
}

// applyScanDefaults restores scan defaults zeroed out by a partial config file
func (c *Config) applyScanDefaults() {
	if c.ScanPageLimit <= 0 {
		c.ScanPageLimit = DefaultScanPageLimit
	}
	if c.ScanPageSize <= 0 {
		c.ScanPageSize = DefaultScanPageSize
	}
	if c.ScanBatchSize <= 0 {
		c.ScanBatchSize = DefaultScanBatchSize
	}
	if c.ScanWindowDays <= 0 {
		c.ScanWindowDays = DefaultScanWindowDays
	}
	if c.IMAP.Port == 0 {
		c.IMAP.Port = 993
	}
}

// Save saves the current configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
