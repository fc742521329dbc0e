package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build details of the decider binary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		writeVersion(cmd.OutOrStdout())
	},
}

// writeVersion prints one "key: value" line per build detail.
func writeVersion(w io.Writer) {
	details := [][2]string{
		{"version", version},
		{"commit", commit},
		{"built", date},
		{"go", runtime.Version()},
		{"platform", runtime.GOOS + "/" + runtime.GOARCH},
	}
	_, _ = fmt.Fprintln(w, "decider")
	for _, d := range details {
		_, _ = fmt.Fprintf(w, "  %-9s %s\n", d[0]+":", d[1])
	}
}
