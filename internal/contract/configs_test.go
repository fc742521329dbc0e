package contract

import (
	"testing"

	"github.com/huangsam/decider/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Precision:    1,
		Output:       "text",
		Color:        "yes",
		StoreBackend: "sqlite",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", modify: func(*ConfigRawInput) {}},
		{name: "precision too high", modify: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "invalid output", modify: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet output", modify: func(in *ConfigRawInput) { in.Output = "PARQUET" }},
		{name: "invalid color", modify: func(in *ConfigRawInput) { in.Color = "sometimes" }, expectError: true},
		{name: "negative limit", modify: func(in *ConfigRawInput) { in.Limit = -1 }, expectError: true},
		{name: "invalid export format", modify: func(in *ConfigRawInput) { in.Format = "xlsx" }, expectError: true},
		{name: "csv export format", modify: func(in *ConfigRawInput) { in.Format = "csv" }},
		{name: "invalid store backend", modify: func(in *ConfigRawInput) { in.StoreBackend = "redis" }, expectError: true},
		{
			name: "mysql store without connection",
			modify: func(in *ConfigRawInput) {
				in.StoreBackend = "mysql"
			},
			expectError: true,
		},
		{
			name: "mysql store with connection",
			modify: func(in *ConfigRawInput) {
				in.StoreBackend = "mysql"
				in.StoreDBConnect = "user:pass@tcp(localhost:3306)/decider"
			},
		},
		{
			name: "postgres history missing dbname",
			modify: func(in *ConfigRawInput) {
				in.HistoryBackend = "postgresql"
				in.HistoryDBConnect = "host=localhost user=u"
			},
			expectError: true,
		},
		{
			name: "sqlite store and history default to different files",
			modify: func(in *ConfigRawInput) {
				in.HistoryBackend = "sqlite"
			},
		},
		{
			name: "sqlite store and history share a file",
			modify: func(in *ConfigRawInput) {
				in.StoreDBConnect = "/tmp/same.db"
				in.HistoryBackend = "sqlite"
				in.HistoryDBConnect = "/tmp/same.db"
			},
			expectError: true,
		},
		{
			name: "mysql store and history share a database",
			modify: func(in *ConfigRawInput) {
				in.StoreBackend = "mysql"
				in.StoreDBConnect = "u:p@tcp(db:3306)/decider"
				in.HistoryBackend = "mysql"
				in.HistoryDBConnect = "u:p@tcp(db:3306)/decider"
			},
			expectError: true,
		},
		{name: "share url must be http", modify: func(in *ConfigRawInput) { in.ShareURL = "ftp://example.com/" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.modify(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := &ConfigRawInput{Precision: 2, Color: "no"}
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.JSONExport, cfg.Format)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.Empty(t, cfg.HistoryBackend)
	assert.Equal(t, DefaultShareURL, cfg.ShareURL)
	assert.False(t, cfg.UseColors)
	assert.Equal(t, 2, cfg.Precision)
}

func TestProcessShareURLDropsFragment(t *testing.T) {
	input := validInput()
	input.ShareURL = "https://example.com/matrix/#old"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "https://example.com/matrix/", cfg.ShareURL)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		conn    string
		valid   bool
	}{
		{schema.SQLiteBackend, "", true},
		{schema.NoneBackend, "", true},
		{schema.MySQLBackend, "u:p@tcp(h:3306)/db", true},
		{schema.MySQLBackend, "u:p@h/db", false},
		{schema.PostgreSQLBackend, "host=h dbname=d", true},
		{schema.PostgreSQLBackend, "host=h", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend)+"/"+tt.conn, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
