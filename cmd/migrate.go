package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cran/SNPfiltR/internal/contract"
	"github.com/cran/SNPfiltR/internal/runstore"
)

// migrateCmd runs database migrations for the run store.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run store.

Migrations allow:
- Upgrading to new schema versions when snpfiltr is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  snpfiltr migrate

  # Migrate to specific version
  snpfiltr migrate --target-version 1

  # Rollback all migrations
  snpfiltr migrate --target-version 0`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return sharedSetup(cmd, nil)
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
