package ops

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/maxepunk/ALN-Ecosystem/internal/display"
	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
	"github.com/maxepunk/ALN-Ecosystem/internal/token"
)

// RenderInput selects what to render. Exactly one mode applies: Placeholder,
// a single RFID (with optional inline Text), or the default batch over every
// token that carries a summary.
type RenderInput struct {
	RFID        string
	Text        string
	Placeholder bool
}

// RenderOutput reports what was written.
type RenderOutput struct {
	Rendered []string `json:"rendered"`
	Failed   []string `json:"failed,omitempty"`
}

// Render generates token display BMPs into both consumer image directories.
// In batch mode a failing token is logged and skipped.
func Render(ctx context.Context, deps Deps, input RenderInput) (*RenderOutput, error) {
	log := deps.logger()

	if input.Text != "" && input.RFID == "" {
		return nil, errors.NewInvalidRequest("text requires an rfid to name the output file")
	}

	fonts, err := display.LoadFonts()
	if err != nil {
		return nil, err
	}
	composer := &display.Composer{Fonts: fonts}

	out := &RenderOutput{}

	if input.Placeholder {
		img := composer.RenderPlaceholder()
		if err := writeDisplay(deps, "placeholder", img); err != nil {
			return nil, err
		}
		out.Rendered = append(out.Rendered, "placeholder")
		log.Info("wrote placeholder image")
		return out, nil
	}

	if input.RFID != "" && input.Text != "" {
		img := composer.Render(input.RFID, input.Text)
		if err := writeDisplay(deps, input.RFID, img); err != nil {
			return nil, err
		}
		out.Rendered = append(out.Rendered, input.RFID)
		return out, nil
	}

	pages, err := deps.fetchMemoryTokens(ctx, "")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		sf := token.ParseSFFields(page.Text("Description/Text"))
		if sf.RFID == "" || sf.Summary == nil {
			continue
		}
		if input.RFID != "" && sf.RFID != input.RFID {
			continue
		}

		img := composer.Render(sf.RFID, *sf.Summary)
		if err := writeDisplay(deps, sf.RFID, img); err != nil {
			if input.RFID != "" {
				return nil, err
			}
			log.Warn("render failed, skipping", zap.String("rfid", sf.RFID), zap.Error(err))
			out.Failed = append(out.Failed, sf.RFID)
			continue
		}
		out.Rendered = append(out.Rendered, sf.RFID)
	}

	if input.RFID != "" && len(out.Rendered) == 0 {
		return nil, errors.NewNotFound(fmt.Sprintf("no token with a summary for rfid %q", input.RFID))
	}

	log.Info("render complete",
		zap.Int("rendered", len(out.Rendered)),
		zap.Int("failed", len(out.Failed)))
	return out, nil
}

// writeDisplay writes one composed image as <name>.bmp into the web images
// directory and the device SD directory.
func writeDisplay(deps Deps, name string, img image.Image) error {
	file := name + ".bmp"
	for _, dir := range []string{deps.path(deps.Config.ImagesDir), deps.path(deps.Config.SDImagesDir)} {
		if dir == "" {
			continue
		}
		if err := display.WriteBMP(img, filepath.Join(dir, file)); err != nil {
			return errors.NewRender(name, err)
		}
	}
	return nil
}
