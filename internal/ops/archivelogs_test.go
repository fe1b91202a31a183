package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestArchiveLogs_SplitsOldLines(t *testing.T) {
	api := &fakeAPI{t: t}
	deps := testDeps(t, api)

	logsDir := filepath.Join(deps.BaseDir, deps.Config.LogsDir)
	require.NoError(t, os.MkdirAll(logsDir, 0o755))

	old := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	recent := time.Now().Format("2006-01-02")
	lines := fmt.Sprintf("%s 10:00:00 info: old entry\n%s 11:00:00 info: fresh entry\n", old, recent)
	require.NoError(t, os.WriteFile(filepath.Join(logsDir, "combined.log"), []byte(lines), 0o644))

	out, err := ArchiveLogs(context.Background(), deps, ArchiveLogsInput{})
	require.NoError(t, err)
	require.Empty(t, out.Errors)
	require.Equal(t, 1, out.Files["combined.log"].Archived)
	require.Equal(t, 1, out.Files["combined.log"].Retained)

	archived, err := os.ReadFile(filepath.Join(logsDir, "archive", "combined_"+old+".log"))
	require.NoError(t, err)
	require.Contains(t, string(archived), "old entry")

	rewritten, err := os.ReadFile(filepath.Join(logsDir, "combined.log"))
	require.NoError(t, err)
	require.Contains(t, string(rewritten), "fresh entry")
	require.False(t, strings.Contains(string(rewritten), "old entry"))
}

func TestArchiveLogs_MissingDirIsQuiet(t *testing.T) {
	api := &fakeAPI{t: t}
	deps := testDeps(t, api)

	out, err := ArchiveLogs(context.Background(), deps, ArchiveLogsInput{LogsDir: "nowhere"})
	require.NoError(t, err)
	require.Empty(t, out.Errors)
}
