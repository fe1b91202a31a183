package ops

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/assets"
	"github.com/maxepunk/ALN-Ecosystem/internal/display"
	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
	"github.com/maxepunk/ALN-Ecosystem/internal/token"
)

// SyncInput configures a tokens.json sync.
type SyncInput struct {
	// OutputPath overrides the configured tokens.json location.
	OutputPath string
	// FilterStatus narrows the fetch to elements with a matching Status.
	FilterStatus string
	// Render generates display BMPs for tokens that carry a summary but
	// have no image asset on disk.
	Render bool
}

// SyncOutput reports what a sync wrote.
type SyncOutput struct {
	OutputPath   string   `json:"output_path"`
	TokenCount   int      `json:"token_count"`
	Rendered     int      `json:"rendered"`
	RenderFailed int      `json:"render_failed"`
	Skipped      []string `json:"skipped,omitempty"`
}

// Sync fetches the memory-token elements, resolves their media assets on
// disk, and writes the tokens.json consumed by the scanner and the player
// front end. Elements without an SF_RFID tag are skipped, never fatal.
func Sync(ctx context.Context, deps Deps, input SyncInput) (*SyncOutput, error) {
	log := deps.logger()

	outputPath := input.OutputPath
	if outputPath == "" {
		outputPath = deps.Config.TokensPath
	}
	outputPath = deps.path(outputPath)

	pages, err := deps.fetchMemoryTokens(ctx, input.FilterStatus)
	if err != nil {
		return nil, err
	}
	log.Info("fetched memory token elements", zap.Int("count", len(pages)))

	var composer *display.Composer
	if input.Render {
		fonts, err := display.LoadFonts()
		if err != nil {
			return nil, err
		}
		composer = &display.Composer{Fonts: fonts}
	}

	lib := deps.library()
	out := &SyncOutput{OutputPath: outputPath}
	tokens := make(map[string]token.Record)

	for _, page := range pages {
		name := page.Title("Name")
		desc := page.Text("Description/Text")
		sf := token.ParseSFFields(desc)

		if sf.RFID == "" {
			log.Warn("element has no RFID tag, skipping", zap.String("name", name))
			out.Skipped = append(out.Skipped, name)
			continue
		}

		if composer != nil && sf.Summary != nil && lib.FindImage(sf.RFID) == "" {
			if err := renderToken(composer, deps, sf.RFID, *sf.Summary); err != nil {
				log.Warn("render failed, continuing without a generated image",
					zap.String("rfid", sf.RFID), zap.Error(err))
				out.RenderFailed++
			} else {
				out.Rendered++
			}
		}

		tokens[sf.RFID] = buildRecord(lib, sf)
	}

	if err := writeTokensFile(outputPath, tokens); err != nil {
		return nil, err
	}

	out.TokenCount = len(tokens)
	log.Info("wrote tokens file",
		zap.String("path", outputPath),
		zap.Int("tokens", out.TokenCount),
		zap.Int("skipped", len(out.Skipped)))
	return out, nil
}

// buildRecord resolves assets for one token and applies the video-token
// image swap: video tokens carry their image as processingImage only.
func buildRecord(lib assets.Library, sf token.SFFields) token.Record {
	rec := token.Record{
		RFID:        sf.RFID,
		ValueRating: sf.ValueRating,
		MemoryType:  sf.MemoryType,
		Group:       sf.Group,
	}

	image := lib.FindImage(sf.RFID)
	if image == "" && lib.HasPlaceholder() {
		image = assets.PlaceholderImage
	}
	if image != "" {
		rec.Image = &image
	}
	if audio := lib.FindAudio(sf.RFID); audio != "" {
		rec.Audio = &audio
	}
	if video := lib.FindVideo(sf.RFID); video != "" {
		rec.Video = &video
		if rec.Image != nil {
			rec.ProcessingImage = rec.Image
			rec.Image = nil
		}
	}

	return rec
}

// renderToken writes a generated display BMP for one token into both
// consumer image directories.
func renderToken(composer *display.Composer, deps Deps, rfid, summary string) error {
	return writeDisplay(deps, rfid, composer.Render(rfid, summary))
}

// writeTokensFile writes the token map as two-space-indented JSON, keys in
// sorted order, atomically via a temp file in the target directory. Atomic
// replacement matters: the scanner reloads tokens.json on change and must
// never observe a partial write.
func writeTokensFile(path string, tokens map[string]token.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewInternal(err)
	}

	buf, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return errors.NewInternal(err)
	}
	buf = append(buf, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewInternal(err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewInternal(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewInternal(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewInternal(err)
	}
	return nil
}
