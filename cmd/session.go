package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/internal/iocache"
	"github.com/huangsam/decider/internal/outwriter"
	"github.com/spf13/cobra"
)

// session is the matrix the current command works on.
var session *core.Session

// sessionSetup runs the shared setup and loads the saved matrix.
func sessionSetup(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(cmd, args); err != nil {
		return err
	}
	return openSession(os.Stdout, false)
}

// openSession builds the session on top of the state store and loads it.
// Loading falls back from the share link to the local copy to the defaults.
func openSession(out io.Writer, quiet bool) error {
	state := iocache.Manager.GetStateStore()
	if state == nil {
		return errors.New("state store is not initialized")
	}

	fragments := iocache.NewURLFragmentStore(state, cfg.ShareURL)
	// Silent while the saved matrix loads, so only changes made by the command print the grid.
	renderer := &outwriter.TableRenderer{Out: io.Discard, Width: cfg.Width}
	session = core.NewSession(
		core.WithFragmentStore(fragments),
		core.WithStateStore(iocache.NewLocalState(state)),
		core.WithRenderer(renderer),
		core.WithNotifier(&contract.ConsoleNotifier{Quiet: quiet}),
	)
	if err := session.Init(); err != nil {
		return fmt.Errorf("failed to load matrix: %w", err)
	}
	renderer.Out = out
	return nil
}
