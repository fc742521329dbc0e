// Package cmd defines the command-line interface for decider.
package cmd

import (
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(optionCmd)
	rootCmd.AddCommand(criterionCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	optionCmd.AddCommand(optionAddCmd)
	optionCmd.AddCommand(optionRemoveCmd)
	optionCmd.AddCommand(optionRenameCmd)

	criterionCmd.AddCommand(criterionAddCmd)
	criterionCmd.AddCommand(criterionRemoveCmd)
	criterionCmd.AddCommand(criterionRenameCmd)
	criterionCmd.AddCommand(criterionWeightCmd)

	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeStatusCmd)

	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", "", "History tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for history tracking (must differ from store-db-connect)")
	rootCmd.PersistentFlags().String("share-url", contract.DefaultShareURL, "Base URL of share links")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of resultsCmd to Viper
	resultsCmd.Flags().IntP("limit", "l", 0, "Number of options to display (0 = all)")
	if err := viper.BindPFlags(resultsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding results flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("format", string(schema.JSONExport), "Export format: json or csv or text")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of resetCmd to Viper
	resetCmd.Flags().Bool("yes", false, "Confirm discarding the current matrix")
	if err := viper.BindPFlags(resetCmd.Flags()); err != nil {
		contract.LogFatal("Error binding reset flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
