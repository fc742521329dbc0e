package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
)

// stateTable is the name of the key-value table holding matrix state.
const stateTable = "decider_state"

// CacheStoreImpl handles durable key-value storage using various database backends.
type CacheStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.CacheStore = &CacheStoreImpl{} // Compile-time check

// NewCacheStore initializes and returns a new CacheStore based on the backend type.
func NewCacheStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	if backend == schema.NoneBackend {
		// Return a no-op store for disabled persistence
		return &CacheStoreImpl{tableName: tableName, backend: backend, connStr: connStr}, nil
	}

	db, err := openDB(backend, connStr, contract.GetStateDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("state store: %w", err)
	}

	query := getCreateTableQuery(tableName, backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &CacheStoreImpl{
		db:        db,
		tableName: tableName,
		backend:   backend,
		connStr:   connStr,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				state_key VARCHAR(255) PRIMARY KEY,
				state_value LONGBLOB NOT NULL,
				state_version INT NOT NULL,
				state_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				state_key TEXT PRIMARY KEY,
				state_value BYTEA NOT NULL,
				state_version INTEGER NOT NULL,
				state_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				state_key TEXT PRIMARY KEY,
				state_value BLOB NOT NULL,
				state_version INTEGER NOT NULL,
				state_timestamp INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// Get retrieves a value by key from the store.
// A missing key returns sql.ErrNoRows.
func (ps *CacheStoreImpl) Get(key string) ([]byte, int, int64, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil, 0, 0, sql.ErrNoRows
	}

	var value []byte
	var version int
	var ts int64

	query := fmt.Sprintf(`SELECT state_value, state_version, state_timestamp FROM %s WHERE state_key = %s`,
		quoteTableName(ps.tableName, ps.backend), placeholder(ps.backend, 1))
	if err := ps.db.QueryRow(query, key).Scan(&value, &version, &ts); err != nil {
		return nil, 0, 0, err
	}
	return value, version, ts, nil
}

// Set inserts or replaces a key/value pair in the store.
func (ps *CacheStoreImpl) Set(key string, value []byte, version int, timestamp int64) error {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}
	if value == nil {
		value = []byte{}
	}
	if _, err := ps.db.Exec(ps.getUpsertQuery(), key, value, version, timestamp); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (ps *CacheStoreImpl) Delete(key string) error {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE state_key = %s`,
		quoteTableName(ps.tableName, ps.backend), placeholder(ps.backend, 1))
	if _, err := ps.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ps *CacheStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(ps.tableName, ps.backend)
	switch ps.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (state_key, state_value, state_version, state_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE state_value = new.state_value, state_version = new.state_version, state_timestamp = new.state_timestamp`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (state_key, state_value, state_version, state_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (state_key) DO UPDATE SET state_value = EXCLUDED.state_value, state_version = EXCLUDED.state_version, state_timestamp = EXCLUDED.state_timestamp`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (state_key, state_value, state_version, state_timestamp) VALUES (?, ?, ?, ?)`, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (ps *CacheStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

// GetStatus returns status information about the state store.
func (ps *CacheStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ps.backend),
		Connected: ps.db != nil,
	}

	if ps.backend == schema.NoneBackend || ps.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(ps.tableName, ps.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ps.db.QueryRow(countQuery).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs, oldestTs int64
	rangeQuery := fmt.Sprintf("SELECT MAX(state_timestamp), MIN(state_timestamp) FROM %s", quotedTableName)
	if err := ps.db.QueryRow(rangeQuery).Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)

	// Fallback rough estimate when the backend cannot report a size
	status.TableSizeBytes = int64(status.TotalEntries) * 1000
	switch ps.backend {
	case schema.SQLiteBackend:
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := ps.db.QueryRow(sizeQuery).Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = 0
		}
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ps.connStr)
		if err != nil || cfg.DBName == "" {
			break
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		var size int64
		if err := ps.db.QueryRow(sizeQuery, cfg.DBName, ps.tableName).Scan(&size); err == nil {
			status.TableSizeBytes = size
		}
	case schema.PostgreSQLBackend:
		var size int64
		if err := ps.db.QueryRow("SELECT pg_total_relation_size($1)", ps.tableName).Scan(&size); err == nil {
			status.TableSizeBytes = size
		}
	}

	return status, nil
}
