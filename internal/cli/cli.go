package cli

import (
	"fmt"
	"os"

	"github.com/khalidmt90/subnav/internal/api/middleware"
	"github.com/khalidmt90/subnav/internal/config"
	"github.com/khalidmt90/subnav/internal/registry"
	"github.com/khalidmt90/subnav/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	cfg           *config.Config
	reg           *registry.Registry
	apiKeyManager *middleware.APIKeyManager
	userService   *services.UserService
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "subnav",
	Short: "Subscription tracker backend service",
	Long: `SubNav is the backend service for a subscription tracking app.
It scans a user's inbox for subscription emails and keeps track of
renewals, amounts and reminders.

The command line tool provides:
  - Key management: show and reset the API key
  - User management: list and create users
  - Merchant registry: inspect the known merchant list

Examples:
  subnav key show           # print the current API key
  subnav key reset          # rotate the API key
  subnav user list          # list all users
  subnav merchants list     # list known merchants
  subnav merchants match    # test merchant matching against a string`,
}

// Execute runs the CLI with the provided database, config and merchant registry
func Execute(database *gorm.DB, config *config.Config, merchants *registry.Registry) {
	db = database
	cfg = config
	reg = merchants

	var err error
	apiKeyManager, err = middleware.NewAPIKeyManager(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize API key manager: %v\n", err)
		os.Exit(1)
	}

	userService = services.NewUserService(db)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(merchantsCmd)
}
