package ops

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
	"github.com/maxepunk/ALN-Ecosystem/internal/gaps"
	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
)

// GapsInput configures a story-gap analysis run.
type GapsInput struct {
	// OutputPath, when set, writes the markdown report there instead of
	// returning it inline.
	OutputPath string
	// HTML renders the report as a standalone HTML page.
	HTML bool
	// JSONPath, when set, additionally dumps the raw analysis data as
	// indented JSON for downstream tooling.
	JSONPath string
}

// GapsOutput carries the analysis report and headline counts.
type GapsOutput struct {
	Report             string `json:"report,omitempty"`
	OutputPath         string `json:"output_path,omitempty"`
	JSONPath           string `json:"json_path,omitempty"`
	Characters         int    `json:"characters"`
	CharactersWithGaps int    `json:"characters_with_gaps"`
	UnrepresentedCount int    `json:"unrepresented_events"`
}

// Gaps runs the narrative coverage analysis: which timeline events no
// character text mentions, which character details no element covers, and
// which events have no evidence elements at all. The heuristics are a
// review aid, not an oracle; the report says so.
func Gaps(ctx context.Context, deps Deps, input GapsInput) (*GapsOutput, error) {
	log := deps.logger()

	characters, err := deps.fetchCharacters(ctx)
	if err != nil {
		return nil, err
	}
	timeline, err := deps.fetchTimeline(ctx)
	if err != nil {
		return nil, err
	}
	elements, err := deps.fetchNarrativeElements(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("fetched databases",
		zap.Int("characters", len(characters)),
		zap.Int("timeline", len(timeline)),
		zap.Int("elements", len(elements)))

	report := gaps.Analyze(characters, timeline, elements)

	var rendered []byte
	if input.HTML {
		rendered, err = report.HTML()
		if err != nil {
			return nil, err
		}
	} else {
		rendered = []byte(report.Markdown())
	}

	out := &GapsOutput{
		Characters:         len(report.Characters),
		CharactersWithGaps: report.CharactersWithGaps(),
		UnrepresentedCount: len(report.UnrepresentedEvents),
	}

	if input.OutputPath != "" {
		path := deps.path(input.OutputPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.NewInternal(err)
		}
		if err := os.WriteFile(path, rendered, 0o644); err != nil {
			return nil, errors.NewInternal(err)
		}
		out.OutputPath = path
		log.Info("wrote gap report", zap.String("path", path))
	} else {
		out.Report = string(rendered)
	}

	if input.JSONPath != "" {
		path := deps.path(input.JSONPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.NewInternal(err)
		}
		raw, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
			return nil, errors.NewInternal(err)
		}
		out.JSONPath = path
		log.Info("wrote raw analysis data", zap.String("path", path))
	}

	return out, nil
}

// fetchNarrativeElements fetches the element types the gap analysis cares
// about: the memory-token variants plus documents.
func (d Deps) fetchNarrativeElements(ctx context.Context) ([]notion.Page, error) {
	clauses := make([]map[string]any, 0, len(gaps.NarrativeTypes))
	for _, t := range gaps.NarrativeTypes {
		clauses = append(clauses, notion.SelectEquals("Basic Type", t))
	}

	log := d.logger()
	return d.Client.QueryAll(ctx, d.Config.ElementsDatabaseID,
		notion.Query{Filter: notion.Or(clauses...)},
		func(fetched int) { log.Debug("fetched element pages", zap.Int("count", fetched)) })
}
