package ops

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func characterPage(id, name, tier string, ownedIDs ...string) map[string]any {
	owned := make([]any, len(ownedIDs))
	for i, oid := range ownedIDs {
		owned[i] = map[string]any{"id": oid}
	}
	return map[string]any{
		"id": id,
		"properties": map[string]any{
			"Name": map[string]any{
				"title": []any{map[string]any{"text": map[string]any{"content": name}}},
			},
			"Tier":           map[string]any{"select": map[string]any{"name": tier}},
			"Type":           map[string]any{"select": map[string]any{"name": "Player"}},
			"Owned Elements": map[string]any{"relation": owned},
		},
	}
}

func timelinePage(id, title, date string, evidenceIDs ...string) map[string]any {
	evidence := make([]any, len(evidenceIDs))
	for i, eid := range evidenceIDs {
		evidence[i] = map[string]any{"id": eid}
	}
	return map[string]any{
		"id": id,
		"properties": map[string]any{
			"Description": map[string]any{
				"title": []any{map[string]any{"text": map[string]any{"content": title}}},
			},
			"Date":            map[string]any{"date": map[string]any{"start": date}},
			"Memory/Evidence": map[string]any{"relation": evidence},
		},
	}
}

func TestGraph_WritesCacheTree(t *testing.T) {
	api := &fakeAPI{t: t}
	deps := testDeps(t, api)

	api.pages = map[string][]map[string]any{
		deps.Config.CharactersDatabaseID: {
			characterPage("char-1", "Marcus Blackwood", "Primary", "elem-1"),
		},
		deps.Config.ElementsDatabaseID: {
			elementPage("elem-1", "Threatening Voicemail", "Memory Token Audio",
				"Marcus threatens the board.\n\nSF_RFID: [mab001]\nSF_ValueRating: [3]\nSF_MemoryType: [Business]"),
		},
		deps.Config.TimelineDatabaseID: {
			timelinePage("event-1", "Board meeting collapses", "2024-03-13", "elem-1"),
		},
	}

	out, err := Graph(context.Background(), deps, GraphInput{})
	require.NoError(t, err)
	require.Equal(t, 1, out.CharacterCount)
	require.Equal(t, 1, out.EventCount)
	require.Equal(t, 1, out.TokenCount)
	require.Equal(t, 3000, out.TotalPoints)

	for _, rel := range []string{
		"graph/characters.json",
		"graph/timeline.json",
		"graph/narrative-threads.json",
		"graph/correspondences.json",
		"current-state/all-tokens.json",
		"analysis/scoring-distribution.json",
		"index.json",
	} {
		_, err := os.Stat(filepath.Join(out.CacheDir, rel))
		require.NoError(t, err, "missing %s", rel)
	}

	raw, err := os.ReadFile(filepath.Join(out.CacheDir, "graph", "characters.json"))
	require.NoError(t, err)
	var doc struct {
		Characters []struct {
			Slug string `json:"slug"`
		} `json:"characters"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Characters, 1)
	require.Equal(t, "marcus-blackwood", doc.Characters[0].Slug)
}

func TestGraph_CacheDirOverride(t *testing.T) {
	api := &fakeAPI{t: t}
	deps := testDeps(t, api)
	api.pages = map[string][]map[string]any{}

	out, err := Graph(context.Background(), deps, GraphInput{CacheDir: "alt-cache"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(deps.BaseDir, "alt-cache"), out.CacheDir)

	_, err = os.Stat(filepath.Join(out.CacheDir, "index.json"))
	require.NoError(t, err)
}
