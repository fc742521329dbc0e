// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/schema"
)

// StdoutPath selects standard output for an export.
const StdoutPath = "-"

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteResults ranks, labels and limits results, then prints them in the configured format.
func (ow *OutWriter) WriteResults(results []schema.Result, cfg *contract.Config) error {
	return WriteResults(schema.EnrichResults(core.TopResults(results, cfg.ResultLimit)), cfg)
}

// WriteMatrix prints the matrix grid.
func (ow *OutWriter) WriteMatrix(view schema.MatrixView, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeMatrixTable(w, view, cfg.Width)
	}, "Wrote matrix")
}

// WriteExport renders an export and writes it to the configured output file,
// falling back to the export's suggested filename. It returns where the export went.
func (ow *OutWriter) WriteExport(m *core.Matrix, cfg *contract.Config) (string, error) {
	content, meta, err := Export(m, cfg.Format)
	if err != nil {
		return "", err
	}

	path := cfg.OutputFile
	if path == "" {
		path = meta.Filename
	}
	if path == StdoutPath {
		path = ""
	}

	err = writeWithFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	}, fmt.Sprintf("Wrote %s export", cfg.Format))
	if err != nil {
		return "", fmt.Errorf("error writing %s export: %w", cfg.Format, err)
	}
	if path == "" {
		return StdoutPath, nil
	}
	return path, nil
}
