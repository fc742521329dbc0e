package iocache

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
)

// Table names for calculation history.
const (
	calculationRunsTable = "decider_calculation_runs"
	optionResultsTable   = "decider_option_results"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore migrates the history schema to the latest version and opens the store.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	if err := migrateHistory(backend, connStr, -1, io.Discard); err != nil {
		return nil, fmt.Errorf("failed to migrate history tables: %w", err)
	}

	db, err := openDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}
	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// BeginRun creates a new calculation run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(runTime time.Time, optionCount, criterionCount int, fragment string) (int64, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	var fragmentArg any
	if fragment != "" {
		fragmentArg = fragment
	}

	quotedTableName := quoteTableName(calculationRunsTable, hs.backend)
	var runID int64
	var err error
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_time, option_count, criterion_count, fragment) VALUES ($1, $2, $3, $4) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, formatTime(runTime, hs.backend), optionCount, criterionCount, fragmentArg).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_time, option_count, criterion_count, fragment) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, formatTime(runTime, hs.backend), optionCount, criterionCount, fragmentArg)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert calculation run: %w", err)
	}
	return runID, nil
}

// RecordResult stores one ranked option result for a run.
func (hs *HistoryStoreImpl) RecordResult(runID int64, result schema.RankedResult) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	ph := make([]any, 8)
	for i := range ph {
		ph[i] = placeholder(hs.backend, i+1)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, result_rank, option_id, option_name, total_score, max_possible_score, percentage, label)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s)
	`, append([]any{quoteTableName(optionResultsTable, hs.backend)}, ph...)...)

	_, err := hs.db.Exec(query, runID, result.Rank, result.OptionID, result.Name,
		result.TotalScore, result.MaxPossibleScore, result.Percentage, result.Label)
	if err != nil {
		return fmt.Errorf("failed to insert option result: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(calculationRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, run_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		lastRunTime, err := hs.scanRunTime(hs.db.QueryRow(lastRunQuery), &status.LastRunID)
		if err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = lastRunTime

		var oldestRunID int64
		oldestRunQuery := fmt.Sprintf("SELECT run_id, run_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)
		oldestRunTime, err := hs.scanRunTime(hs.db.QueryRow(oldestRunQuery), &oldestRunID)
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	}

	for _, table := range []string{calculationRunsTable, optionResultsTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all calculation runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.CalculationRunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, run_time, option_count, criterion_count, fragment FROM %s ORDER BY run_id",
		quoteTableName(calculationRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculation runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CalculationRunRecord
	for rows.Next() {
		var record schema.CalculationRunRecord
		switch hs.backend {
		case schema.SQLiteBackend:
			var runTimeStr string
			if err := rows.Scan(&record.RunID, &runTimeStr, &record.OptionCount, &record.CriterionCount, &record.Fragment); err != nil {
				return nil, fmt.Errorf("failed to scan calculation run: %w", err)
			}
			runTime, err := time.Parse(time.RFC3339Nano, runTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse run_time: %w", err)
			}
			record.RunTime = runTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&record.RunID, &record.RunTime, &record.OptionCount, &record.CriterionCount, &record.Fragment); err != nil {
				return nil, fmt.Errorf("failed to scan calculation run: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calculation runs: %w", err)
	}
	return results, nil
}

// GetAllResults retrieves all option results from the store.
func (hs *HistoryStoreImpl) GetAllResults() ([]schema.OptionResultRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, result_rank, option_id, option_name, total_score, max_possible_score, percentage, label
		FROM %s ORDER BY run_id, result_rank`, quoteTableName(optionResultsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query option results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.OptionResultRecord
	for rows.Next() {
		var record schema.OptionResultRecord
		if err := rows.Scan(&record.RunID, &record.Rank, &record.OptionID, &record.OptionName,
			&record.TotalScore, &record.MaxPossibleScore, &record.Percentage, &record.Label); err != nil {
			return nil, fmt.Errorf("failed to scan option result: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating option results: %w", err)
	}
	return results, nil
}

// scanRunTime scans a (run_id, run_time) row, handling the SQLite text format.
func (hs *HistoryStoreImpl) scanRunTime(row *sql.Row, runID *int64) (time.Time, error) {
	if hs.backend != schema.SQLiteBackend {
		var t time.Time
		err := row.Scan(runID, &t)
		return t, err
	}
	var s string
	if err := row.Scan(runID, &s); err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, s)
}
