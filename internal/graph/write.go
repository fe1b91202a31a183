package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
)

// Result is the fully built cache, ready to write.
type Result struct {
	Characters      []*CharacterNode
	Timeline        []*EventNode
	Threads         []*ThreadNode
	Correspondences Correspondences
	State           CurrentState
	Scoring         ScoringDistribution
	Narrative       NarrativeValue
	Index           Index
}

// Build assembles the whole knowledge graph from the three raw page sets.
func Build(characters, elements, timeline []notion.Page, now time.Time) *Result {
	r := &Result{}
	r.Characters = BuildCharacters(characters, elements)
	r.Timeline = BuildTimeline(timeline, elements, characters)
	r.Threads = BuildThreads(elements)
	r.Correspondences = BuildCorrespondences(r.Timeline, elements)
	r.State = BuildCurrentState(elements, r.Timeline, r.Characters, r.Threads)
	r.Scoring = AnalyzeScoring(elements, r.Threads)
	r.Narrative = AnalyzeNarrativeValue(elements)
	r.Index = BuildIndex(r.Characters, r.Timeline, r.Threads, r.Correspondences, r.Scoring, now)
	return r
}

// WriteAll writes the cache tree under root: graph/, current-state/,
// analysis/, work-session/, and the master index.json.
func (r *Result) WriteAll(root string) error {
	for _, dir := range []string{"graph", "current-state", "analysis", "work-session"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return err
		}
	}

	files := []struct {
		path string
		data any
	}{
		{"graph/characters.json", map[string]any{"characters": r.Characters}},
		{"graph/timeline.json", map[string]any{"events": r.Timeline}},
		{"graph/narrative-threads.json", map[string]any{"threads": r.Threads}},
		{"graph/correspondences.json", r.Correspondences},
		{"current-state/all-tokens.json", r.State.AllTokens},
		{"current-state/tokens-by-timeline.json", r.State.TokensByTimeline},
		{"current-state/tokens-by-character.json", r.State.TokensByCharacter},
		{"current-state/tokens-by-thread.json", r.State.TokensByThread},
		{"analysis/timeline-gaps.json", map[string]any{"unmapped_events": r.Correspondences.UnmappedEvents}},
		{"analysis/orphaned-tokens.json", map[string]any{"orphaned_tokens": r.Correspondences.OrphanedTokens}},
		{"analysis/narrative-value.json", r.Narrative},
		{"analysis/scoring-distribution.json", r.Scoring},
		{"index.json", r.Index},
	}

	for _, f := range files {
		if err := writeJSON(filepath.Join(root, f.path), f.data); err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
	}
	return nil
}

func writeJSON(path string, data any) error {
	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(buf, '\n'), 0o644)
}
