package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/internal/codec"
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/internal/outwriter"
	"github.com/huangsam/decider/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
// The session is not safe for concurrent use, so every handler holds mu.
type toolHandler struct {
	baseCfg *contract.Config
	session *core.Session
	mu      sync.Mutex
}

func (h *toolHandler) handleGetMatrix(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return jsonResult(h.session.View())
}

func (h *toolHandler) handleCalculateResults(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	limit := h.baseCfg.ResultLimit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = l
	}

	results, err := h.session.Results()
	if errors.Is(err, core.ErrEmptyInput) {
		return mcp.NewToolResultError(core.NoticeEmptyInput), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("calculation failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichResults(core.TopResults(results, limit)))
}

func (h *toolHandler) handleExportMatrix(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	format := schema.ExportFormat(request.GetString("format", ""))
	if _, ok := schema.ValidExportFormats[format]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid format %q (must be json, csv or text)", format)), nil
	}
	content, _, err := outwriter.Export(h.session.Matrix(), format)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (h *toolHandler) handleAddOption(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id, err := h.session.AddOption(request.GetString("name", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save option: %v", err)), nil
	}
	return jsonResult(map[string]string{"id": id})
}

func (h *toolHandler) handleAddCriterion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	weight := request.GetFloat("weight", schema.DefaultWeight)
	id, err := h.session.AddCriterion(request.GetString("name", ""), weight)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save criterion: %v", err)), nil
	}
	return jsonResult(map[string]string{"id": id})
}

func (h *toolHandler) handleUpdateRating(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m := h.session.Matrix()
	optionID, err := resolveOption(m, request.GetString("option", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	criterionID, err := resolveCriterion(m, request.GetString("criterion", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, ok := rawValue(request, "value")
	if !ok {
		return mcp.NewToolResultError("value is required"), nil
	}

	if err := h.session.UpdateRating(optionID, criterionID, value); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save rating: %v", err)), nil
	}
	rating, _ := m.Rating(optionID, criterionID)
	return jsonResult(map[string]any{"option_id": optionID, "criterion_id": criterionID, "rating": rating})
}

func (h *toolHandler) handleUpdateWeight(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m := h.session.Matrix()
	criterionID, err := resolveCriterion(m, request.GetString("criterion", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, ok := rawValue(request, "value")
	if !ok {
		return mcp.NewToolResultError("value is required"), nil
	}

	if err := h.session.UpdateWeight(criterionID, value); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save weight: %v", err)), nil
	}
	weight, _ := m.Weight(criterionID)
	return jsonResult(map[string]any{"criterion_id": criterionID, "weight": weight})
}

func (h *toolHandler) handleRemoveOption(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	optionID, err := resolveOption(h.session.Matrix(), request.GetString("option", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.session.RemoveOption(optionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save removal: %v", err)), nil
	}
	return jsonResult(map[string]string{"removed": optionID})
}

func (h *toolHandler) handleRemoveCriterion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	criterionID, err := resolveCriterion(h.session.Matrix(), request.GetString("criterion", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.session.RemoveCriterion(criterionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save removal: %v", err)), nil
	}
	return jsonResult(map[string]string{"removed": criterionID})
}

func (h *toolHandler) handleRenameOption(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	optionID, err := resolveOption(h.session.Matrix(), request.GetString("option", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := request.GetString("name", "")
	if _, err := h.session.UpdateOptionName(optionID, name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save name: %v", err)), nil
	}
	return jsonResult(map[string]string{"id": optionID, "name": name})
}

func (h *toolHandler) handleRenameCriterion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	criterionID, err := resolveCriterion(h.session.Matrix(), request.GetString("criterion", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := request.GetString("name", "")
	if _, err := h.session.UpdateCriterionName(criterionID, name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save name: %v", err)), nil
	}
	return jsonResult(map[string]string{"id": criterionID, "name": name})
}

func (h *toolHandler) handleResetMatrix(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !request.GetBool("confirm", false) {
		return mcp.NewToolResultError("refusing to reset without confirm=true"), nil
	}
	if err := h.session.Reset(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save reset matrix: %v", err)), nil
	}
	return jsonResult(h.session.View())
}

func (h *toolHandler) handleLoadFragment(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	fragment := strings.TrimSpace(request.GetString("fragment", ""))
	if fragment == "" {
		return mcp.NewToolResultError("fragment is required"), nil
	}

	err := h.session.Load(fragment)
	if errors.Is(err, codec.ErrMalformedPersistedData) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", core.NoticeFragmentFailed, err)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save loaded matrix: %v", err)), nil
	}
	return jsonResult(h.session.View())
}

// resolveOption maps an option id or 1-based position to its id.
func resolveOption(m *core.Matrix, ref string) (string, error) {
	idx, ok := m.OptionIndex(ref)
	if !ok {
		return "", fmt.Errorf("unknown option %q", ref)
	}
	return m.Options()[idx].ID, nil
}

// resolveCriterion maps a criterion id or 1-based position to its id.
func resolveCriterion(m *core.Matrix, ref string) (string, error) {
	idx, ok := m.CriterionIndex(ref)
	if !ok {
		return "", fmt.Errorf("unknown criterion %q", ref)
	}
	return m.Criteria()[idx].ID, nil
}

// rawValue returns an argument as text so numeric coercion stays in the core.
// Clients may send either a JSON number or a string.
func rawValue(request mcp.CallToolRequest, key string) (string, bool) {
	v, ok := request.GetArguments()[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return "", true // coerces to 0
	default:
		return fmt.Sprint(t), true
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
