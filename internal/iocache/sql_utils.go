package iocache

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/decider/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName validates that the table name is a safe SQL identifier.
// It ensures the name consists only of alphanumeric characters and underscores,
// starting with a letter or underscore, to prevent SQL injection.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// driverName returns the database/sql driver registered for a backend.
func driverName(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	default:
		return "sqlite"
	}
}

// normalizeConnStr fills in backend defaults: the SQLite file path and
// parseTime for MySQL so DATETIME columns scan into time.Time.
func normalizeConnStr(backend schema.DatabaseBackend, connStr, defaultPath string) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			return defaultPath, nil
		}
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return "", fmt.Errorf("invalid MySQL connection string: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil
	}
	return connStr, nil
}

// openDB opens and pings a database for a non-none backend.
func openDB(backend schema.DatabaseBackend, connStr, defaultPath string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	dsn, err := normalizeConnStr(backend, connStr, defaultPath)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName(backend), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

// placeholder returns the n-th (1-based) parameter placeholder for the backend.
func placeholder(backend schema.DatabaseBackend, n int) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t.UTC()
	}
}
