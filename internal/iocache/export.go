package iocache

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/internal/parquet"
)

// ExecuteHistoryExport exports the calculation history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	return exportHistory(Manager.GetHistoryStore(), outputFile, os.Stdout)
}

func exportHistory(store contract.HistoryStore, outputFile string, out io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is not enabled. Set --history-backend to record calculations")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no calculation history found to export")
	}

	_, _ = fmt.Fprintf(out, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(out, "Total calculation runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(out, "Total option results: %d\n", status.TableSizes[optionResultsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve calculation runs: %w", err)
	}
	results, err := store.GetAllResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve option results: %w", err)
	}

	parquetRuns := parquet.ConvertCalculationRunRecords(runs)
	parquetResults := parquet.ConvertOptionResultRecords(results)

	runsFile := outputFile + ".calculation_runs.parquet"
	if err := parquet.WriteCalculationRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write calculation runs: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d calculation runs to: %s\n", len(parquetRuns), runsFile)

	resultsFile := outputFile + ".option_results.parquet"
	if err := parquet.WriteOptionResultsParquet(parquetResults, resultsFile); err != nil {
		return fmt.Errorf("failed to write option results: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d option results to: %s\n", len(parquetResults), resultsFile)

	return nil
}
