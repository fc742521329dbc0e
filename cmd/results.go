package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/internal/codec"
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/internal/iocache"
	"github.com/huangsam/decider/internal/outwriter"
	"github.com/huangsam/decider/schema"
	"github.com/spf13/cobra"
)

// resultsCmd ranks the options.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Rank options by their weighted score",
	Long: `Calculate each option's weighted score and rank the options from best to worst.

The score of an option is the sum of rating times weight over all criteria.
The percentage compares it to the score of an option rated 10 everywhere.

When a history backend is configured, every run is recorded for later export.

Examples:
  decider results
  decider results --limit 3 --output json
  decider results --output parquet --output-file results.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		results, err := session.Results()
		if errors.Is(err, core.ErrEmptyInput) {
			return nil // the session already told the user
		}
		if err != nil {
			return err
		}
		if err := outwriter.NewOutWriter().WriteResults(results, cfg); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		recordHistory(iocache.Manager.GetHistoryStore(), results)
		return nil
	},
}

// recordHistory stores a calculation run with every ranked option.
// History is best-effort and never fails the command.
func recordHistory(store contract.HistoryStore, results []schema.Result) {
	if store == nil {
		return
	}
	fragment, err := session.Fragment()
	if err != nil {
		contract.LogWarn("Failed to encode matrix for history", err)
	}
	m := session.Matrix()
	runID, err := store.BeginRun(time.Now(), len(m.Options()), len(m.Criteria()), fragment)
	if err != nil {
		contract.LogWarn("Failed to record calculation run", err)
		return
	}
	for _, result := range schema.EnrichResults(results) {
		if err := store.RecordResult(runID, result); err != nil {
			contract.LogWarn("Failed to record option result", err)
			return
		}
	}
}

// exportCmd writes the matrix in an export format.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the matrix as JSON, CSV or a text report",
	Long: `Export the matrix with its ratings and results.

Formats:
  json - the saved matrix layout, loadable by the web app
  csv  - one row per option with ratings, total score and percentage
  text - a readable report of criteria, options and ranked results

The export is written to the suggested file name (decision-matrix.<ext>) unless
--output-file is given. Use --output-file - to print it instead.

Examples:
  decider export --format csv
  decider export --format text --output-file -`,
	Args:    cobra.NoArgs,
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := outwriter.NewOutWriter().WriteExport(session.Matrix(), cfg)
		return err
	},
}

// shareCmd prints the share link.
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print a link that opens this matrix",
	Long: `Print a link whose fragment carries the whole matrix. Anyone opening the link,
or running "decider load" with it, gets the same options, criteria and ratings.`,
	Args:    cobra.NoArgs,
	PreRunE: sessionSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		link, err := session.ShareLink()
		if err != nil {
			return fmt.Errorf("failed to build share link: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
		return err
	},
}

// loadCmd applies a share link.
var loadCmd = &cobra.Command{
	Use:   "load <link|fragment>",
	Short: "Load a matrix from a share link",
	Long: `Load a matrix from a share link or from just its fragment.

Fields present in the link replace the current ones; missing fields are kept.
A damaged link leaves the current matrix untouched.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		err := session.Load(args[0])
		if errors.Is(err, codec.ErrMalformedPersistedData) {
			return fmt.Errorf("matrix left unchanged: %w", err)
		}
		return err
	},
}
