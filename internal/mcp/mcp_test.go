package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/config"
	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
	"github.com/maxepunk/ALN-Ecosystem/internal/ops"
)

// testDeps wires ops.Deps against a stub API that returns empty query
// results for every database.
func testDeps(t *testing.T) ops.Deps {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results":     []any{},
			"has_more":    false,
			"next_cursor": nil,
		})
	}))
	t.Cleanup(srv.Close)

	return ops.Deps{
		Client:  notion.NewClient("secret-token", notion.WithBaseURL(srv.URL)),
		Config:  config.DefaultConfig(),
		Logger:  zap.NewNop(),
		BaseDir: t.TempDir(),
	}
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	sort.Strings(names)
	want := []string{
		"aln_archive_logs", "aln_gaps", "aln_graph",
		"aln_render", "aln_sync", "aln_verify",
	}
	require.Equal(t, want, names)
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"aln_sync", "aln_push", "bogus"})
	require.Equal(t, []string{"aln_push", "bogus"}, unknown)
}

func TestNewServer_Constructs(t *testing.T) {
	deps := testDeps(t)
	s := NewServer(deps, "test")
	require.NotNil(t, s)

	deps.Config.DisabledTools = []string{"aln_sync"}
	s = NewServer(deps, "test")
	require.NotNil(t, s)
}

func TestHandleVerify_EmptyDatabase(t *testing.T) {
	h := NewHandlers(testDeps(t))

	res, err := h.HandleVerify(context.Background(), makeRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)
}

func TestHandleSync_WritesFile(t *testing.T) {
	deps := testDeps(t)
	h := NewHandlers(deps)

	res, err := h.HandleSync(context.Background(), makeRequest(map[string]any{
		"output_path": "out/tokens.json",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	var out ops.SyncOutput
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	require.Equal(t, 0, out.TokenCount)
}

func TestHandleRender_InvalidArgsIsErrorResult(t *testing.T) {
	h := NewHandlers(testDeps(t))

	res, err := h.HandleRender(context.Background(), makeRequest(map[string]any{
		"text": "no rfid supplied",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	require.Contains(t, text, "INVALID_REQUEST")
}
