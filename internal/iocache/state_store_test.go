package iocache

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/decider/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCacheStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	store, err := NewCacheStore(stateTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	impl, ok := store.(*CacheStoreImpl)
	require.True(t, ok)
	return impl
}

func TestCacheStore_NoneBackend(t *testing.T) {
	store, err := NewCacheStore("test_table", schema.NoneBackend, "")
	require.NoError(t, err, "Failed to create none backend store")

	_, _, _, err = store.Get("test_key")
	assert.ErrorIs(t, err, sql.ErrNoRows, "Get on none backend behaves like a missing key")

	assert.NoError(t, store.Set("test_key", []byte("test_value"), 1, 123456789))
	_, _, _, err = store.Get("test_key")
	assert.ErrorIs(t, err, sql.ErrNoRows, "Set is a no-op on none backend")

	assert.NoError(t, store.Delete("test_key"))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestCacheStore_SQLite(t *testing.T) {
	store := newTestCacheStore(t)

	t.Run("missing key", func(t *testing.T) {
		_, _, _, err := store.Get("absent")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.Set("k1", []byte(`{"options":[]}`), 1, 1000))
		value, version, ts, err := store.Get("k1")
		require.NoError(t, err)
		assert.Equal(t, `{"options":[]}`, string(value))
		assert.Equal(t, 1, version)
		assert.Equal(t, int64(1000), ts)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set("k1", []byte("second"), 2, 2000))
		value, version, ts, err := store.Get("k1")
		require.NoError(t, err)
		assert.Equal(t, "second", string(value))
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), ts)
	})

	t.Run("nil value stored as empty", func(t *testing.T) {
		require.NoError(t, store.Set("k2", nil, 1, 1500))
		value, _, _, err := store.Get("k2")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("status", func(t *testing.T) {
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 2, status.TotalEntries)
		assert.Equal(t, int64(2000), status.LastEntryTime.Unix())
		assert.Equal(t, int64(1500), status.OldestEntryTime.Unix())
		assert.Greater(t, status.TableSizeBytes, int64(0))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete("k1"))
		_, _, _, err := store.Get("k1")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, store.Delete("k1"), "deleting a missing key is not an error")
	})
}

func TestNewCacheStore_Errors(t *testing.T) {
	_, err := NewCacheStore("bad-name", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)

	_, err = NewCacheStore(stateTable, schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")

	_, err = NewCacheStore(stateTable, schema.MySQLBackend, "not a dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid MySQL connection string")
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple name", "test_table", false},
		{"valid name with numbers", "test_table_123", false},
		{"valid name starting with underscore", "_test_table", false},
		{"valid mixed case", "TestTable_123", false},
		{"empty name", "", true},
		{"starts with number", "123_table", true},
		{"contains dash", "test-table", true},
		{"contains space", "test table", true},
		{"sql injection attempt", "t; DROP TABLE users;--", true},
		{"contains quote", `t"x`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		expected string
	}{
		{schema.MySQLBackend, "`decider_state`"},
		{schema.PostgreSQLBackend, `"decider_state"`},
		{schema.SQLiteBackend, `"decider_state"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.expected, quoteTableName(stateTable, tt.backend))
		})
	}
}

func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		contains []string
	}{
		{schema.SQLiteBackend, []string{"INSERT OR REPLACE", `"decider_state"`, "?"}},
		{schema.MySQLBackend, []string{"ON DUPLICATE KEY UPDATE", "`decider_state`"}},
		{schema.PostgreSQLBackend, []string{"ON CONFLICT (state_key)", "$4", "EXCLUDED.state_value"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{tableName: stateTable, backend: tt.backend}
			query := store.getUpsertQuery()
			for _, part := range tt.contains {
				assert.Contains(t, query, part)
			}
		})
	}
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery(stateTable, schema.MySQLBackend), "LONGBLOB")
	assert.Contains(t, getCreateTableQuery(stateTable, schema.PostgreSQLBackend), "BYTEA")
	assert.Contains(t, getCreateTableQuery(stateTable, schema.SQLiteBackend), "BLOB")
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "$3", placeholder(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?", placeholder(schema.MySQLBackend, 3))
	assert.Equal(t, "?", placeholder(schema.SQLiteBackend, 1))
}

func TestNormalizeConnStr(t *testing.T) {
	dsn, err := normalizeConnStr(schema.SQLiteBackend, "", "/tmp/default.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/default.db", dsn)

	dsn, err = normalizeConnStr(schema.SQLiteBackend, "/tmp/custom.db", "/tmp/default.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", dsn)

	dsn, err = normalizeConnStr(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/decider", "")
	require.NoError(t, err)
	assert.True(t, strings.Contains(dsn, "parseTime=true"), "MySQL DSN should enable parseTime: %s", dsn)

	dsn, err = normalizeConnStr(schema.PostgreSQLBackend, "host=localhost dbname=decider", "")
	require.NoError(t, err)
	assert.Equal(t, "host=localhost dbname=decider", dsn)
}
