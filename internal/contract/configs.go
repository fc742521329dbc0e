package contract

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/decider/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxResultLimit   = 1000
	DefaultShareURL  = "https://mrmichel93.github.io/DecisionMatrix/"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a command.
// This struct is the "final, validated" config.
type Config struct {
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	ResultLimit int // 0 shows every option
	Format      schema.ExportFormat

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	ShareURL string

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Width            int    `mapstructure:"width"`
	StoreBackend     string `mapstructure:"store-backend"`
	StoreDBConnect   string `mapstructure:"store-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	ShareURL         string `mapstructure:"share-url"`
	Color            string `mapstructure:"color"`

	// --- Fields from resultsCmd.Flags() ---
	Limit int `mapstructure:"limit"`

	// --- Fields from exportCmd.Flags() ---
	Format string `mapstructure:"format"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return processShareURL(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates store and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Store Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history: %w", err)
	}

	// Validate that store and history use different databases
	if cfg.StoreBackend != cfg.HistoryBackend || cfg.StoreBackend == schema.NoneBackend {
		return nil
	}
	if cfg.StoreBackend == schema.SQLiteBackend {
		storePath := cfg.StoreDBConnect
		if storePath == "" {
			storePath = GetStateDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if storePath == historyPath {
			return fmt.Errorf("store and history must use different SQLite database files. Both resolve to %q", storePath)
		}
		return nil
	}
	if cfg.StoreDBConnect == cfg.HistoryDBConnect {
		return fmt.Errorf("store and history must use different %s databases", cfg.StoreBackend)
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit cannot be negative or exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	cfg.Format = schema.ExportFormat(strings.ToLower(input.Format))
	if cfg.Format == "" {
		cfg.Format = schema.JSONExport
	}
	if _, ok := schema.ValidExportFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid export format '%s'. must be json, csv, text", input.Format)
	}
	return nil
}

// processShareURL validates the base URL share links are built on.
func processShareURL(cfg *Config, input *ConfigRawInput) error {
	raw := strings.TrimSpace(input.ShareURL)
	if raw == "" {
		raw = DefaultShareURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid share-url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("share-url must be an http or https URL (received %q)", raw)
	}
	u.Fragment = ""
	cfg.ShareURL = u.String()
	return nil
}

// GetStateDBFilePath returns the path to the SQLite DB file for the state store.
func GetStateDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".decider_state.db"
	}
	return filepath.Join(homeDir, ".decider_state.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for calculation history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".decider_history.db"
	}
	return filepath.Join(homeDir, ".decider_history.db")
}
