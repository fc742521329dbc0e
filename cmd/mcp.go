package cmd

import (
	"io"

	"github.com/huangsam/decider/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the decider MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents read and edit the decision matrix via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(cmd, args); err != nil {
			return err
		}
		// Stdio carries the protocol, so the grid and notices must stay off it.
		return openSession(io.Discard, true)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, session)
	},
}
