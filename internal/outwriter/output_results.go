package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/internal/parquet"
	"github.com/huangsam/decider/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteResults outputs ranked results, dispatching based on the output format configured.
func WriteResults(results []schema.RankedResult, cfg *contract.Config) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResults(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResults(w, results, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("--output-file is required for parquet output")
		}
		if err := parquet.WriteRankedResultsParquet(parquet.ConvertRankedResults(results), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		logWrote("Wrote Parquet", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultsTable(w, results, cfg, fmtFloat, fmtPercent)
		}, "Wrote table")
	}
	return nil
}

// writeResultsTable generates and writes the human-readable results table.
func writeResultsTable(w io.Writer, results []schema.RankedResult, cfg *contract.Config, fmtFloat, fmtPercent func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Option", "Score", "Max", "Percent", "Label"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg.Width, 5)
	data := make([][]string, 0, len(results))
	for _, r := range results {
		label := r.Label
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Percentage)
		}
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateName(r.Name, nameWidth),
			fmtFloat(r.TotalScore),
			fmtFloat(r.MaxPossibleScore),
			fmtPercent(r.Percentage),
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(results) > 0 {
		if _, err := fmt.Fprintf(w, "Showing %d options. Top choice: %s\n", len(results), results[0].Name); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVResults writes ranked results in CSV format.
func writeCSVResults(w io.Writer, results []schema.RankedResult, fmtFloat func(float64) string) error {
	header := []string{"rank", "option_id", "option", "total_score", "max_possible_score", "percentage", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.OptionID,
				r.Name,
				fmtFloat(r.TotalScore),
				fmtFloat(r.MaxPossibleScore),
				fmtFloat(r.Percentage),
				r.Label,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResults writes ranked results in JSON format.
func writeJSONResults(w io.Writer, results []schema.RankedResult) error {
	if results == nil {
		results = []schema.RankedResult{}
	}
	return writeJSON(w, results)
}
