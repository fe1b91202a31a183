package ops

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/logs"
)

// ArchiveLogsInput configures a log archival run.
type ArchiveLogsInput struct {
	// LogsDir overrides the configured log directory.
	LogsDir string
	// CutoffDays overrides the configured retention window.
	CutoffDays int
	// Files overrides the default set of log files.
	Files []string
}

// ArchiveLogsOutput reports per-file archival counts.
type ArchiveLogsOutput struct {
	LogsDir string                     `json:"logs_dir"`
	Files   map[string]logs.FileResult `json:"files"`
	Errors  []string                   `json:"errors,omitempty"`
}

// ArchiveLogs splits old lines out of the backend log files into per-date
// archive files. Per-file errors are collected, not fatal.
func ArchiveLogs(ctx context.Context, deps Deps, input ArchiveLogsInput) (*ArchiveLogsOutput, error) {
	log := deps.logger()

	dir := input.LogsDir
	if dir == "" {
		dir = deps.Config.LogsDir
	}
	dir = deps.path(dir)

	days := input.CutoffDays
	if days <= 0 {
		days = deps.Config.ArchiveCutoffDays
	}
	if days <= 0 {
		days = logs.DefaultCutoffDays
	}

	files := input.Files
	if len(files) == 0 {
		files = logs.DefaultLogFiles
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	results, errs := logs.Archive(dir, files, cutoff)

	out := &ArchiveLogsOutput{LogsDir: dir, Files: results}
	for _, err := range errs {
		out.Errors = append(out.Errors, err.Error())
	}

	archived := 0
	for _, r := range results {
		archived += r.Archived
	}
	log.Info("log archival complete",
		zap.String("dir", dir),
		zap.Int("archived_lines", archived),
		zap.Int("errors", len(out.Errors)))
	return out, nil
}
