package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/internal/iocache"
	"github.com/spf13/cobra"
)

// storeSetup opens only the state store.
func storeSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.StoreBackend, cfg.StoreDBConnect, "", ""); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

// storeCmd focused on the saved matrix.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage where the matrix is saved",
	Long: `Manage the store that keeps the matrix and its share link between runs.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (nothing is saved)

Subcommands:
  status - Show store statistics and connection info
  clear  - Remove the saved matrix

Examples:
  # Check store status
  decider store status

  # Use PostgreSQL (set connection string via env variable)
  DECIDER_STORE_BACKEND=postgresql DECIDER_STORE_DB_CONNECT="host=... dbname=..." decider store status`,
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved matrix",
	Long: `Delete the saved matrix and share link from the configured backend.
The next command starts from the default matrix.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the state table`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := sqlitePath(cfg.StoreDBConnect, contract.GetStateDBFilePath())
		if err := iocache.ClearStore(cfg.StoreBackend, dbFilePath, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend type, connection status, number of saved entries
and when the matrix was last saved.`,
	Args:    cobra.NoArgs,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetStateStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintStoreStatus(os.Stdout, status)
	},
}
