package ops

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
	"github.com/maxepunk/ALN-Ecosystem/internal/token"
)

// idleLoopVideo plays between token scans and belongs to no token.
const idleLoopVideo = "idle-loop.mp4"

// VerifyInput configures an RFID-to-asset verification run.
type VerifyInput struct{}

// AssetFile is one on-disk media file grouped under a token's RFID stem.
type AssetFile struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // image, audio, video
}

// VerifyMatch is a token whose RFID resolves to local assets, or one that
// has no assets anywhere, which also counts as consistent.
type VerifyMatch struct {
	Name  string      `json:"name"`
	RFID  string      `json:"rfid"`
	Files []AssetFile `json:"files,omitempty"`
}

// VerifyMismatch is a token whose RFID matches no local file while its
// database entry carries attachments under different stems.
type VerifyMismatch struct {
	Name        string   `json:"name"`
	RFID        string   `json:"rfid"`
	NotionFiles []string `json:"notion_files"`
	ActualStems []string `json:"actual_stems"`
}

// VerifyOutput is the full verification report.
type VerifyOutput struct {
	Matched    []VerifyMatch    `json:"matched"`
	Mismatched []VerifyMismatch `json:"mismatched"`
	NoRFID     []string         `json:"no_rfid,omitempty"`
}

// Verify cross-checks every memory token's SF_RFID against the media files
// on disk and the attachments recorded in the database. It only reports;
// fixing a mismatch means editing the database or renaming files.
func Verify(ctx context.Context, deps Deps, input VerifyInput) (*VerifyOutput, error) {
	log := deps.logger()

	stems, err := scanAssetStems(deps)
	if err != nil {
		return nil, err
	}
	log.Debug("scanned asset directories", zap.Int("stems", len(stems)))

	pages, err := deps.fetchMemoryTokens(ctx, "")
	if err != nil {
		return nil, err
	}

	out := &VerifyOutput{}
	for _, page := range pages {
		name := page.Title("Name")
		if name == "" {
			name = "Untitled"
		}
		desc := page.Text("Description/Text")
		rfid := token.ParseSFFields(desc).RFID

		if rfid == "" {
			out.NoRFID = append(out.NoRFID, name)
			continue
		}

		if files, ok := stems[rfid]; ok {
			out.Matched = append(out.Matched, VerifyMatch{Name: name, RFID: rfid, Files: files})
			continue
		}

		notionFiles := page.FileNames("Files & media")
		if len(notionFiles) == 0 {
			// Nothing on disk and nothing attached: consistent.
			out.Matched = append(out.Matched, VerifyMatch{Name: name, RFID: rfid})
			continue
		}

		seen := map[string]bool{}
		var actual []string
		for _, f := range notionFiles {
			stem := fileStem(f)
			if !seen[stem] {
				seen[stem] = true
				actual = append(actual, stem)
			}
		}
		sort.Strings(actual)
		out.Mismatched = append(out.Mismatched, VerifyMismatch{
			Name:        name,
			RFID:        rfid,
			NotionFiles: notionFiles,
			ActualStems: actual,
		})
	}

	log.Info("verification complete",
		zap.Int("matched", len(out.Matched)),
		zap.Int("mismatched", len(out.Mismatched)),
		zap.Int("no_rfid", len(out.NoRFID)))
	return out, nil
}

// scanAssetStems indexes every media file in the three asset directories by
// lowercased filename stem. A missing directory is skipped, not an error.
func scanAssetStems(deps Deps) (map[string][]AssetFile, error) {
	dirs := []struct {
		path string
		kind string
	}{
		{deps.path(deps.Config.ImagesDir), "image"},
		{deps.path(deps.Config.AudioDir), "audio"},
		{deps.path(deps.Config.VideosDir), "video"},
	}

	stems := make(map[string][]AssetFile)
	for _, d := range dirs {
		if d.path == "" {
			continue
		}
		entries, err := os.ReadDir(d.path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.NewInternal(err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if d.kind == "video" && e.Name() == idleLoopVideo {
				continue
			}
			stem := fileStem(e.Name())
			stems[stem] = append(stems[stem], AssetFile{Name: e.Name(), Kind: d.kind})
		}
	}
	return stems, nil
}

func fileStem(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
}
