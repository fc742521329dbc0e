package outwriter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/schema"
)

// Suggested download metadata per export format.
var (
	jsonExportMeta = schema.ExportMeta{Filename: "decision-matrix.json", MIMEType: "application/json"}
	csvExportMeta  = schema.ExportMeta{Filename: "decision-matrix.csv", MIMEType: "text/csv"}
	textExportMeta = schema.ExportMeta{Filename: "decision-matrix.txt", MIMEType: "text/plain"}
)

// emptyResultsMessage replaces the results section when nothing can be scored.
const emptyResultsMessage = "Add options and criteria first"

// Export renders the matrix in the requested format.
func Export(m *core.Matrix, format schema.ExportFormat) (string, schema.ExportMeta, error) {
	switch format {
	case schema.JSONExport:
		return ExportJSON(m)
	case schema.CSVExport:
		return ExportCSV(m)
	case schema.TextExport:
		return ExportText(m)
	default:
		return "", schema.ExportMeta{}, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportJSON dumps the full state with a 2-space indent.
func ExportJSON(m *core.Matrix) (string, schema.ExportMeta, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, m.Snapshot()); err != nil {
		return "", jsonExportMeta, err
	}
	return strings.TrimSuffix(buf.String(), "\n"), jsonExportMeta, nil
}

// ExportCSV writes one row per option in option order.
// The header is Option, one "<name> (Weight: <w>)" column per criterion, Total Score, Percentage.
func ExportCSV(m *core.Matrix) (string, schema.ExportMeta, error) {
	criteria := m.Criteria()

	header := make([]string, 0, len(criteria)+3)
	header = append(header, "Option")
	for _, c := range criteria {
		weight, _ := m.Weight(c.ID)
		header = append(header, fmt.Sprintf("%s (Weight: %s)", c.Name, formatNumber(weight)))
	}
	header = append(header, "Total Score", "Percentage")

	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, header, func(w *csv.Writer) error {
		for _, option := range m.Options() {
			result := core.ScoreOption(m, option)
			row := make([]string, 0, len(header))
			row = append(row, option.Name)
			for _, item := range result.Breakdown {
				row = append(row, formatNumber(item.Rating))
			}
			row = append(row,
				fmt.Sprintf("%.1f", result.TotalScore),
				fmt.Sprintf("%.1f%%", result.Percentage),
			)
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", csvExportMeta, err
	}
	return buf.String(), csvExportMeta, nil
}

// ExportText renders the fixed plain-text report: criteria, options, then ranked results.
func ExportText(m *core.Matrix) (string, schema.ExportMeta, error) {
	var b strings.Builder

	title := "Decision Matrix Report"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	criteria := m.Criteria()
	b.WriteString("Criteria:\n")
	for _, c := range criteria {
		weight, _ := m.Weight(c.ID)
		fmt.Fprintf(&b, "- %s (Weight: %s)\n", c.Name, formatNumber(weight))
	}

	b.WriteString("\nOptions:\n")
	for _, o := range m.Options() {
		fmt.Fprintf(&b, "- %s\n", o.Name)
		for _, c := range criteria {
			rating, _ := m.Rating(o.ID, c.ID)
			fmt.Fprintf(&b, "    %s: %s\n", c.Name, formatNumber(rating))
		}
	}

	b.WriteString("\nResults:\n")
	results, err := core.CalculateResults(m)
	switch {
	case errors.Is(err, core.ErrEmptyInput):
		b.WriteString(emptyResultsMessage + "\n")
	case err != nil:
		return "", textExportMeta, err
	default:
		for _, r := range schema.EnrichResults(results) {
			fmt.Fprintf(&b, "%d. %s: %.1f / %.1f (%.1f%%) %s\n",
				r.Rank, r.Name, r.TotalScore, r.MaxPossibleScore, r.Percentage, r.Label)
		}
	}

	return b.String(), textExportMeta, nil
}
