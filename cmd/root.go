package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/internal/iocache"
	"github.com/huangsam/decider/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "decider",
	Short: "Weigh options against criteria with a decision matrix.",
	Long: `Decider keeps a weighted decision matrix: options are rated against criteria,
each criterion carries a weight, and options are ranked by their weighted score.

The matrix is saved locally after every change and can be shared as a link.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".decider")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("DECIDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("share-url", contract.DefaultShareURL)
	viper.SetDefault("color", "yes")
	viper.SetDefault("limit", 0)
	viper.SetDefault("format", schema.JSONExport)
}

// loadConfig merges defaults, file, env and flags, then validates them into cfg.
func loadConfig() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return contract.ProcessAndValidate(cfg, input)
}

// sharedSetup validates config and opens both stores.
func sharedSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.StoreBackend, cfg.StoreDBConnect, cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

// sqlitePath returns the database file a SQLite backend uses.
func sqlitePath(connStr, defaultPath string) string {
	if connStr != "" {
		return connStr
	}
	return defaultPath
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}
