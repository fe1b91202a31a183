package ops

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/graph"
)

// GraphInput configures a knowledge-graph build.
type GraphInput struct {
	// CacheDir overrides the configured graph output directory.
	CacheDir string
}

// GraphOutput summarizes what a graph build wrote.
type GraphOutput struct {
	CacheDir       string `json:"cache_dir"`
	CharacterCount int    `json:"character_count"`
	EventCount     int    `json:"event_count"`
	ThreadCount    int    `json:"thread_count"`
	TokenCount     int    `json:"token_count"`
	TotalPoints    int    `json:"total_points"`
}

// Graph fetches the three databases and writes the full knowledge-graph
// cache: graph/, current-state/, analysis/, and index.json.
func Graph(ctx context.Context, deps Deps, input GraphInput) (*GraphOutput, error) {
	log := deps.logger()

	cacheDir := input.CacheDir
	if cacheDir == "" {
		cacheDir = deps.Config.CacheDir
	}
	cacheDir = deps.path(cacheDir)

	characters, err := deps.fetchCharacters(ctx)
	if err != nil {
		return nil, err
	}
	elements, err := deps.fetchElements(ctx)
	if err != nil {
		return nil, err
	}
	timeline, err := deps.fetchTimeline(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("fetched databases",
		zap.Int("characters", len(characters)),
		zap.Int("elements", len(elements)),
		zap.Int("timeline", len(timeline)))

	result := graph.Build(characters, elements, timeline, time.Now().UTC())
	if err := result.WriteAll(cacheDir); err != nil {
		return nil, err
	}

	log.Info("wrote knowledge graph", zap.String("dir", cacheDir))
	return &GraphOutput{
		CacheDir:       cacheDir,
		CharacterCount: len(result.Characters),
		EventCount:     len(result.Timeline),
		ThreadCount:    len(result.Threads),
		TokenCount:     result.Scoring.TotalTokens,
		TotalPoints:    result.Scoring.TotalPoints,
	}, nil
}
