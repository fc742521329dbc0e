package iocache

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
)

// PrintStoreStatus prints state store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format(contract.DateTimeFormat))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintHistoryStatus prints calculation history status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format(contract.DateTimeFormat))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
