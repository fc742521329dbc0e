// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the decider MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, session *core.Session) *server.MCPServer {
	s := server.NewMCPServer(
		"Decision Matrix Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		session: session,
	}

	// --- Read tools ---
	s.AddTool(mcp.NewTool("get_matrix",
		mcp.WithDescription("Return the current decision matrix: options, criteria with weights, and the rating grid."),
	), h.handleGetMatrix)

	s.AddTool(mcp.NewTool("calculate_results",
		mcp.WithDescription("Score every option as the weighted sum of its ratings and return them ranked best first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleCalculateResults)

	s.AddTool(mcp.NewTool("export_matrix",
		mcp.WithDescription("Export the matrix as JSON, CSV or a plain text report."),
		mcp.WithString("format", mcp.Description("Export format."), mcp.Enum("json", "csv", "text"), mcp.Required()),
	), h.handleExportMatrix)

	// --- Mutation tools ---
	s.AddTool(mcp.NewTool("add_option",
		mcp.WithDescription("Add an option to compare. Returns its id."),
		mcp.WithString("name", mcp.Description("Display name of the option.")),
	), h.handleAddOption)

	s.AddTool(mcp.NewTool("add_criterion",
		mcp.WithDescription("Add a weighted criterion. Every option gets the neutral rating 5 for it. Returns its id."),
		mcp.WithString("name", mcp.Description("Display name of the criterion.")),
		mcp.WithNumber("weight", mcp.Description("Weight of the criterion, usually 1-10. Defaults to 5.")),
	), h.handleAddCriterion)

	s.AddTool(mcp.NewTool("update_rating",
		mcp.WithDescription("Set the rating of an option for a criterion. Non-numeric values count as 0."),
		mcp.WithString("option", mcp.Description("Option id or 1-based position."), mcp.Required()),
		mcp.WithString("criterion", mcp.Description("Criterion id or 1-based position."), mcp.Required()),
		mcp.WithString("value", mcp.Description("New rating, usually 1-10."), mcp.Required()),
	), h.handleUpdateRating)

	s.AddTool(mcp.NewTool("update_weight",
		mcp.WithDescription("Set the weight of a criterion. Non-numeric values count as 0."),
		mcp.WithString("criterion", mcp.Description("Criterion id or 1-based position."), mcp.Required()),
		mcp.WithString("value", mcp.Description("New weight, usually 1-10."), mcp.Required()),
	), h.handleUpdateWeight)

	s.AddTool(mcp.NewTool("remove_option",
		mcp.WithDescription("Remove an option together with its ratings."),
		mcp.WithString("option", mcp.Description("Option id or 1-based position."), mcp.Required()),
	), h.handleRemoveOption)

	s.AddTool(mcp.NewTool("remove_criterion",
		mcp.WithDescription("Remove a criterion together with its weight and every rating for it."),
		mcp.WithString("criterion", mcp.Description("Criterion id or 1-based position."), mcp.Required()),
	), h.handleRemoveCriterion)

	s.AddTool(mcp.NewTool("rename_option",
		mcp.WithDescription("Change the display name of an option."),
		mcp.WithString("option", mcp.Description("Option id or 1-based position."), mcp.Required()),
		mcp.WithString("name", mcp.Description("New display name. May be empty.")),
	), h.handleRenameOption)

	s.AddTool(mcp.NewTool("rename_criterion",
		mcp.WithDescription("Change the display name of a criterion."),
		mcp.WithString("criterion", mcp.Description("Criterion id or 1-based position."), mcp.Required()),
		mcp.WithString("name", mcp.Description("New display name. May be empty.")),
	), h.handleRenameCriterion)

	s.AddTool(mcp.NewTool("reset_matrix",
		mcp.WithDescription("Discard the matrix and start over with the default options and criteria."),
		mcp.WithBoolean("confirm", mcp.Description("Must be true; the current matrix cannot be recovered."), mcp.Required()),
	), h.handleResetMatrix)

	s.AddTool(mcp.NewTool("load_fragment",
		mcp.WithDescription("Replace the matrix with one decoded from a share link or its fragment."),
		mcp.WithString("fragment", mcp.Description("Share link or the encoded text after '#'."), mcp.Required()),
	), h.handleLoadFragment)

	return s
}

// StartMCPServer starts the decider MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, session *core.Session) error {
	s := NewMCPServer(baseCfg, session)
	return server.ServeStdio(s)
}
