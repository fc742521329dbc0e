package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/internal/iocache"
	"github.com/huangsam/decider/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConfig validates config and requires a history backend.
func historyConfig() error {
	if err := loadConfig(); err != nil {
		return err
	}
	if cfg.HistoryBackend == "" || cfg.HistoryBackend == schema.NoneBackend {
		return errors.New("history tracking is not enabled. Set --history-backend or DECIDER_HISTORY_BACKEND")
	}
	return nil
}

// historySetup opens only the history store.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores("", "", cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historyConfigWrapper checks config without opening the store, so clear and
// migrate work on a database the store could not open.
func historyConfigWrapper(_ *cobra.Command, _ []string) error {
	return historyConfig()
}

// historyCmd focused on calculation history.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded calculation history and exports",
	Long: `Manage the history of calculated results.

When a history backend is set, every "decider results" run stores:
- Run metadata (timestamp, option and criterion counts, share fragment)
- Every ranked option with its score, percentage and label

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show history statistics
  export  - Export history to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Turn on tracking
  export DECIDER_HISTORY_BACKEND=sqlite

  # Export for analysis in pandas/DuckDB
  decider history export --output-file history`,
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded calculation history",
	Long: `Delete all stored calculation runs and option results.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history and migration tables`,
	Args:    cobra.NoArgs,
	PreRunE: historyConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := sqlitePath(cfg.HistoryDBConnect, contract.GetHistoryDBFilePath())
		if err := iocache.ClearHistory(cfg.HistoryBackend, dbFilePath, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export calculation history to Parquet files",
	Long: `Export calculation runs and option results as two Parquet files:

  <output-file>.calculation_runs.parquet
  <output-file>.option_results.parquet

The files can be joined on run_id in DuckDB, pandas or Spark.`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations for history tracking",
	Long: `Migrate the history tables to the latest schema version or to a specific one.

Tables are migrated automatically when history is first used; run this to
roll back or to prepare a database ahead of time.

Examples:
  # Migrate to latest version
  decider history migrate

  # Roll back all migrations
  decider history migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: historyConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
