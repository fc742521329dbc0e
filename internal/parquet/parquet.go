// Package parquet provides data structures and functions for exporting decider
// results and calculation history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/decider/schema"
	"github.com/parquet-go/parquet-go"
)

// CalculationRun represents a single recorded calculation.
// This struct maps to the decider_calculation_runs database table.
type CalculationRun struct {
	// RunID is the unique identifier for this calculation run
	RunID int64 `parquet:"run_id,snappy"`

	// RunTime is when results were calculated (stored as TIMESTAMP with nanosecond precision)
	RunTime time.Time `parquet:"run_time,snappy"`

	OptionCount    int32 `parquet:"option_count,snappy"`
	CriterionCount int32 `parquet:"criterion_count,snappy"`

	// Fragment is the share fragment of the matrix at calculation time (nullable)
	Fragment *string `parquet:"fragment,optional,snappy"`
}

// OptionResult represents one ranked option within a calculation run.
// This struct maps to the decider_option_results database table.
type OptionResult struct {
	// RunID references the parent calculation run
	RunID int64 `parquet:"run_id,snappy"`

	// Rank is the 1-based position in the ranked results
	Rank int32 `parquet:"rank,snappy"`

	OptionID         string  `parquet:"option_id,snappy"`
	OptionName       string  `parquet:"option_name,snappy"`
	TotalScore       float64 `parquet:"total_score,snappy"`
	MaxPossibleScore float64 `parquet:"max_possible_score,snappy"`
	Percentage       float64 `parquet:"percentage,snappy"`
	Label            string  `parquet:"label,snappy"`
}

// RankedResultRow is a flat row of the current results, used by `results --output parquet`.
type RankedResultRow struct {
	Rank             int32   `parquet:"rank,snappy"`
	OptionID         string  `parquet:"option_id,snappy"`
	Name             string  `parquet:"name,snappy"`
	TotalScore       float64 `parquet:"total_score,snappy"`
	MaxPossibleScore float64 `parquet:"max_possible_score,snappy"`
	Percentage       float64 `parquet:"percentage,snappy"`
	Label            string  `parquet:"label,snappy"`
}

// writeParquet writes rows of any tagged struct type to path.
func writeParquet[T any](data []T, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteCalculationRunsParquet writes calculation runs to a Parquet file.
func WriteCalculationRunsParquet(data []CalculationRun, path string) error {
	return writeParquet(data, path)
}

// WriteOptionResultsParquet writes historical option results to a Parquet file.
func WriteOptionResultsParquet(data []OptionResult, path string) error {
	return writeParquet(data, path)
}

// WriteRankedResultsParquet writes the current ranked results to a Parquet file.
func WriteRankedResultsParquet(data []RankedResultRow, path string) error {
	return writeParquet(data, path)
}

// ConvertCalculationRunRecords converts schema.CalculationRunRecord to CalculationRun for Parquet export.
func ConvertCalculationRunRecords(records []schema.CalculationRunRecord) []CalculationRun {
	result := make([]CalculationRun, len(records))
	for i, record := range records {
		result[i] = CalculationRun{
			RunID:          record.RunID,
			RunTime:        record.RunTime,
			OptionCount:    record.OptionCount,
			CriterionCount: record.CriterionCount,
			Fragment:       record.Fragment,
		}
	}
	return result
}

// ConvertOptionResultRecords converts schema.OptionResultRecord to OptionResult for Parquet export.
func ConvertOptionResultRecords(records []schema.OptionResultRecord) []OptionResult {
	result := make([]OptionResult, len(records))
	for i, record := range records {
		result[i] = OptionResult{
			RunID:            record.RunID,
			Rank:             record.Rank,
			OptionID:         record.OptionID,
			OptionName:       record.OptionName,
			TotalScore:       record.TotalScore,
			MaxPossibleScore: record.MaxPossibleScore,
			Percentage:       record.Percentage,
			Label:            record.Label,
		}
	}
	return result
}

// ConvertRankedResults flattens ranked results into Parquet rows.
func ConvertRankedResults(results []schema.RankedResult) []RankedResultRow {
	rows := make([]RankedResultRow, len(results))
	for i, r := range results {
		rows[i] = RankedResultRow{
			Rank:             int32(r.Rank),
			OptionID:         r.OptionID,
			Name:             r.Name,
			TotalScore:       r.TotalScore,
			MaxPossibleScore: r.MaxPossibleScore,
			Percentage:       r.Percentage,
			Label:            r.Label,
		}
	}
	return rows
}
