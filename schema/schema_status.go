package schema

import "time"

// StoreStatus represents the status of the state store.
type StoreStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the calculation history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// CalculationRunRecord represents a row from the decider_calculation_runs table.
type CalculationRunRecord struct {
	RunID          int64
	RunTime        time.Time
	OptionCount    int32
	CriterionCount int32
	Fragment       *string
}

// OptionResultRecord represents a row from the decider_option_results table.
type OptionResultRecord struct {
	RunID            int64
	Rank             int32
	OptionID         string
	OptionName       string
	TotalScore       float64
	MaxPossibleScore float64
	Percentage       float64
	Label            string
}
