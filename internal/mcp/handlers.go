package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
	"github.com/maxepunk/ALN-Ecosystem/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	deps ops.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps ops.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// Request types for each tool

// SyncRequest represents the arguments for sync.
type SyncRequest struct {
	OutputPath   string `json:"output_path,omitempty"`
	FilterStatus string `json:"filter_status,omitempty"`
	Render       bool   `json:"render,omitempty"`
}

// GraphRequest represents the arguments for graph.
type GraphRequest struct {
	CacheDir string `json:"cache_dir,omitempty"`
}

// GapsRequest represents the arguments for gaps.
type GapsRequest struct {
	OutputPath string `json:"output_path,omitempty"`
	HTML       bool   `json:"html,omitempty"`
	JSONPath   string `json:"json_path,omitempty"`
}

// RenderRequest represents the arguments for render.
type RenderRequest struct {
	RFID        string `json:"rfid,omitempty"`
	Text        string `json:"text,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// ArchiveLogsRequest represents the arguments for archive_logs.
type ArchiveLogsRequest struct {
	LogsDir    string `json:"logs_dir,omitempty"`
	CutoffDays int    `json:"cutoff_days,omitempty"`
}

// Handler implementations

// HandleSync handles the sync tool call.
func (h *Handlers) HandleSync(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SyncRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Sync(ctx, h.deps, ops.SyncInput{
		OutputPath:   input.OutputPath,
		FilterStatus: input.FilterStatus,
		Render:       input.Render,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGraph handles the graph tool call.
func (h *Handlers) HandleGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GraphRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Graph(ctx, h.deps, ops.GraphInput{CacheDir: input.CacheDir})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGaps handles the gaps tool call.
func (h *Handlers) HandleGaps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GapsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Gaps(ctx, h.deps, ops.GapsInput{
		OutputPath: input.OutputPath,
		HTML:       input.HTML,
		JSONPath:   input.JSONPath,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleVerify handles the verify tool call.
func (h *Handlers) HandleVerify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Verify(ctx, h.deps, ops.VerifyInput{})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRender handles the render tool call.
func (h *Handlers) HandleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RenderRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Render(ctx, h.deps, ops.RenderInput{
		RFID:        input.RFID,
		Text:        input.Text,
		Placeholder: input.Placeholder,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleArchiveLogs handles the archive_logs tool call.
func (h *Handlers) HandleArchiveLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ArchiveLogsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ArchiveLogs(ctx, h.deps, ops.ArchiveLogsInput{
		LogsDir:    input.LogsDir,
		CutoffDays: input.CutoffDays,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult converts an error into an MCP error result.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if pErr, ok := err.(*errors.PipelineError); ok {
		errorObj := map[string]any{
			"code":    pErr.Code,
			"message": pErr.Message,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if pErr.Code != errors.ErrInternal && pErr.Details != nil {
			errorObj["details"] = pErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult converts data into an MCP success result.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
