package iocache

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// migrationsTable records the applied schema version of the history store.
const migrationsTable = "decider_schema_migrations"

// migrationDir returns the embedded directory holding a backend's migrations.
func migrationDir(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "migrations/mysql"
	case schema.PostgreSQLBackend:
		return "migrations/postgres"
	default:
		return "migrations/sqlite"
	}
}

// MigrateHistory runs database migrations for the history store and reports progress on stdout.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func MigrateHistory(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	return migrateHistory(backend, connStr, targetVersion, os.Stdout)
}

func migrateHistory(backend schema.DatabaseBackend, connStr string, targetVersion int, out io.Writer) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	db, err := openDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// Create a migrate driver instance
	var driver database.Driver
	switch backend {
	case schema.SQLiteBackend:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{MigrationsTable: migrationsTable})
	case schema.MySQLBackend:
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{MigrationsTable: migrationsTable})
	case schema.PostgreSQLBackend:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{MigrationsTable: migrationsTable})
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	migrationFS, err := fs.Sub(migrationsFS, migrationDir(backend))
	if err != nil {
		return fmt.Errorf("failed to access migrations directory: %w", err)
	}
	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "decider", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to migrate to latest version: %w", err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			_, _ = fmt.Fprintln(out, "No migration needed. Database is already at the latest version.")
		} else {
			newVersion, _, _ := m.Version()
			_, _ = fmt.Fprintf(out, "Successfully migrated from version %d to version %d\n", currentVersion, newVersion)
		}
	case targetVersion == 0:
		err = m.Down()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back to version 0: %w", err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			_, _ = fmt.Fprintln(out, "No migration needed. Database is already at version 0")
		} else {
			_, _ = fmt.Fprintf(out, "Successfully rolled back from version %d to version 0\n", currentVersion)
		}
	default:
		err = m.Migrate(uint(targetVersion))
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			_, _ = fmt.Fprintf(out, "No migration needed. Database is already at version %d\n", targetVersion)
		} else {
			_, _ = fmt.Fprintf(out, "Successfully migrated from version %d to version %d\n", currentVersion, targetVersion)
		}
	}

	return nil
}
