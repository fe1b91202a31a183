package ops

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/config"
	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
)

// fakeAPI serves canned query results per database id and records every
// page-create request.
type fakeAPI struct {
	t       *testing.T
	pages   map[string][]map[string]any // database id -> result pages
	created []map[string]any
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/databases/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		dbID := parts[1]
		resp := map[string]any{
			"results":     f.pages[dbID],
			"has_more":    false,
			"next_cursor": nil,
		}
		if resp["results"] == nil {
			resp["results"] = []any{}
		}
		json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("/pages", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			f.t.Errorf("bad create payload: %v", err)
		}
		f.created = append(f.created, req)
		json.NewEncoder(w).Encode(map[string]any{
			"id": fmt.Sprintf("created-%d", len(f.created)),
		})
	})

	return mux
}

// testDeps wires Deps against the fake API with a fresh temp root.
func testDeps(t *testing.T, api *fakeAPI) Deps {
	t.Helper()

	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	return Deps{
		Client:  notion.NewClient("secret-token", notion.WithBaseURL(srv.URL)),
		Config:  config.DefaultConfig(),
		Logger:  zap.NewNop(),
		BaseDir: t.TempDir(),
	}
}

// elementPage builds a raw element page the way the query API returns it.
func elementPage(id, name, basicType, description string, notionFiles ...string) map[string]any {
	props := map[string]any{
		"Name": map[string]any{
			"title": []any{map[string]any{"text": map[string]any{"content": name}}},
		},
		"Basic Type": map[string]any{
			"select": map[string]any{"name": basicType},
		},
		"Description/Text": map[string]any{
			"rich_text": []any{map[string]any{"text": map[string]any{"content": description}}},
		},
	}
	if len(notionFiles) > 0 {
		files := make([]any, len(notionFiles))
		for i, f := range notionFiles {
			files[i] = map[string]any{"name": f}
		}
		props["Files & media"] = map[string]any{"files": files}
	}
	return map[string]any{"id": id, "properties": props}
}

func touchFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}
