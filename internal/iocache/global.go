package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager with separate state and history stores.
// stateBackend can be empty to skip the state store.
// historyBackend can be empty to disable calculation history.
func InitStores(stateBackend schema.DatabaseBackend, stateConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var err error

		var stateStore contract.CacheStore
		if stateBackend != "" {
			stateStore, err = NewCacheStore(stateTable, stateBackend, stateConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize state store: %w", err)
				return
			}
		}

		var historyStore contract.HistoryStore
		if historyBackend != "" {
			historyStore, err = NewHistoryStore(historyBackend, historyConnStr)
			if err != nil {
				if stateStore != nil {
					_ = stateStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize history store: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.state = stateStore
		Manager.history = historyStore
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.state != nil {
			_ = Manager.state.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearStore clears the saved matrix for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the state table.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTables(backend, connStr, stateTable)
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// ClearHistory clears the calculation history for the specified backend.
// For SQL backends the migration bookkeeping table is dropped as well,
// so the next run migrates from scratch.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTables(backend, connStr, optionResultsTable, calculationRunsTable, migrationsTable)
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

func removeSQLiteFile(dbFilePath string) error {
	if dbFilePath == "" {
		return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
	}
	// Remove the file; ignore if it doesn't exist
	if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
	}
	return nil
}

// clearSQLTables connects to the SQL database and drops each table if it exists.
func clearSQLTables(backend schema.DatabaseBackend, connStr string, tables ...string) error {
	db, err := openDB(backend, connStr, "")
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
