// Package ops implements the pipeline operations behind the CLI subcommands
// and the MCP tools. Each operation takes an Input struct, talks to the
// document database and the filesystem through Deps, and returns an Output
// struct the callers serialize.
package ops

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/assets"
	"github.com/maxepunk/ALN-Ecosystem/internal/config"
	"github.com/maxepunk/ALN-Ecosystem/internal/notion"
	"github.com/maxepunk/ALN-Ecosystem/internal/token"
)

// Deps carries the shared dependencies of all operations.
type Deps struct {
	Client  *notion.Client
	Config  *config.Config
	Logger  *zap.Logger
	BaseDir string // project root; relative config paths resolve against it
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// path resolves a possibly relative config path against the project root.
func (d Deps) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(d.BaseDir, p)
}

func (d Deps) library() assets.Library {
	return assets.Library{
		ImagesDir: d.path(d.Config.ImagesDir),
		AudioDir:  d.path(d.Config.AudioDir),
		VideosDir: d.path(d.Config.VideosDir),
	}
}

// memoryTokenFilter builds the Basic Type or-filter for the four memory
// token types, optionally narrowed by element Status.
func memoryTokenFilter(status string) map[string]any {
	clauses := make([]map[string]any, 0, len(token.MemoryTokenTypes))
	for _, t := range token.MemoryTokenTypes {
		clauses = append(clauses, notion.SelectEquals("Basic Type", t))
	}
	typeFilter := notion.Or(clauses...)

	if status == "" {
		return typeFilter
	}
	return notion.And(typeFilter, notion.StatusEquals("Status", status))
}

func (d Deps) fetchMemoryTokens(ctx context.Context, status string) ([]notion.Page, error) {
	log := d.logger()
	return d.Client.QueryAll(ctx, d.Config.ElementsDatabaseID,
		notion.Query{Filter: memoryTokenFilter(status)},
		func(fetched int) { log.Debug("fetched element pages", zap.Int("count", fetched)) })
}

func (d Deps) fetchElements(ctx context.Context) ([]notion.Page, error) {
	log := d.logger()
	return d.Client.QueryAll(ctx, d.Config.ElementsDatabaseID, notion.Query{},
		func(fetched int) { log.Debug("fetched element pages", zap.Int("count", fetched)) })
}

func (d Deps) fetchCharacters(ctx context.Context) ([]notion.Page, error) {
	log := d.logger()
	return d.Client.QueryAll(ctx, d.Config.CharactersDatabaseID, notion.Query{},
		func(fetched int) { log.Debug("fetched character pages", zap.Int("count", fetched)) })
}

func (d Deps) fetchTimeline(ctx context.Context) ([]notion.Page, error) {
	log := d.logger()
	return d.Client.QueryAll(ctx, d.Config.TimelineDatabaseID,
		notion.Query{Sorts: []notion.Sort{{Property: "Date", Direction: "ascending"}}},
		func(fetched int) { log.Debug("fetched timeline pages", zap.Int("count", fetched)) })
}
