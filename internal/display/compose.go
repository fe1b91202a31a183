package display

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"golang.org/x/image/bmp"
)

// Canvas geometry for the 240x320 scanner display.
const (
	canvasWidth  = 240
	canvasHeight = 320

	padding       = 15
	headerY       = 12
	accentY       = 65
	bodyStartY    = 75
	timestampGap  = 22
	bottomReserve = 40
	footerY       = canvasHeight - 25
	scanlineStep  = 4
)

// PlaceholderText is the body of the standard corrupted-memory image.
const PlaceholderText = "[ERR] MEMORY CORRUPTED. DEEP EXTRACTION REQUIRED... " +
	"PLEASE CONTACT NEURAI REPRESENTATIVE."

const truncationMarker = "[...]"

var (
	colorBG    = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	colorRed   = color.RGBA{R: 204, A: 255}
	colorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// redAlpha returns the display red premultiplied at the given alpha, so it
// composites correctly over the opaque canvas.
func redAlpha(a uint8) color.RGBA {
	return color.RGBA{R: uint8(uint32(204) * uint32(a) / 255), A: a}
}

// Composer renders token display images with the fixed NeurAI styling.
type Composer struct {
	Fonts *FontSet
}

// Render produces the full display image for one token. The identifier goes
// in the header; rawText runs through extraction, fit selection, and name
// highlighting before composition. The result is fully opaque so the BMP
// encoder emits the 24-bit format the device firmware expects.
func (c *Composer) Render(identifier, rawText string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{colorBG}, image.Point{}, draw.Src)

	c.drawBorder(img)
	c.drawLogo(img, canvasWidth-70, 5)
	fillRect(img, 10, accentY, canvasWidth-10, accentY+2, colorRed)

	c.drawText(img, padding, headerY, strings.ToUpper(identifier), 12, true, redAlpha(204), false)

	ext := Extract(rawText)

	textTop := bodyStartY
	if ext.Timestamp != "" {
		c.drawText(img, padding, textTop, ext.Timestamp, 13, false, timestampColor(ext.Kind), true)
		textTop += timestampGap
	}

	maxWidth := canvasWidth - padding*2
	available := canvasHeight - textTop - bottomReserve
	fit := Fit(c.Fonts, ext.Body, maxWidth, available, DefaultCandidates)

	for i, line := range fit.Lines {
		y := textTop + i*fit.Candidate.LineHeight
		c.drawLine(img, padding, y, line, fit.Candidate.Size)
	}

	if fit.Truncated {
		y := textTop + len(fit.Lines)*fit.Candidate.LineHeight + 5
		c.drawText(img, padding, y, truncationMarker, fit.Candidate.Size, false, redAlpha(204), false)
	}

	c.drawFooter(img)
	c.drawScanlines(img)

	return img
}

// RenderPlaceholder produces the standard corrupted-memory image.
func (c *Composer) RenderPlaceholder() *image.RGBA {
	return c.Render("placeholder", PlaceholderText)
}

// WriteBMP encodes img as an uncompressed BMP at path, creating parent
// directories as needed.
func WriteBMP(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func timestampColor(kind Kind) color.RGBA {
	switch kind {
	case KindTime:
		return colorRed
	case KindDate:
		return redAlpha(204)
	default:
		return redAlpha(102)
	}
}

// drawLine renders one wrapped body line: red glow pass under white text,
// with embedded names in solid red.
func (c *Composer) drawLine(img *image.RGBA, x, y int, line string, size float64) {
	segments := SplitNames(line)

	cursor := x
	for _, seg := range segments {
		main := colorWhite
		if seg.Name {
			main = colorRed
		}
		c.drawText(img, cursor, y, seg.Text, size, false, main, true)
		cursor += c.Fonts.Width(size, seg.Text)
	}
}

// drawText draws s with its top edge at y. glow adds four offset passes in
// translucent red under the main pass.
func (c *Composer) drawText(img *image.RGBA, x, y int, s string, size float64, bold bool, col color.RGBA, glow bool) {
	face := c.Fonts.Face(size, bold)
	baseline := y + face.Metrics().Ascent.Ceil()

	if glow {
		glowColor := redAlpha(102)
		for _, off := range [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
			c.drawAt(img, face, x+off[0], baseline+off[1], s, glowColor)
		}
	}
	c.drawAt(img, face, x, baseline, s, col)
}

func (c *Composer) drawAt(img *image.RGBA, face font.Face, x, baseline int, s string, col color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{col},
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

func (c *Composer) drawFooter(img *image.RGBA) {
	const branding = "N E U R A I"
	width := c.Fonts.Width(12, branding)
	x := (canvasWidth - width) / 2
	c.drawText(img, x, footerY, branding, 12, false, redAlpha(153), false)
}

func (c *Composer) drawBorder(img *image.RGBA) {
	col := redAlpha(76)
	fillRect(img, 1, 1, canvasWidth-1, 3, col)
	fillRect(img, 1, canvasHeight-3, canvasWidth-1, canvasHeight-1, col)
	fillRect(img, 1, 3, 3, canvasHeight-3, col)
	fillRect(img, canvasWidth-3, 3, canvasWidth-1, canvasHeight-3, col)
}

// drawLogo draws the simplified N mark: two vertical bars of short
// horizontal strokes joined by a stepped diagonal, with accent dots.
func (c *Composer) drawLogo(img *image.RGBA, x, y int) {
	stroke := redAlpha(102)

	for i := 0; i < 45; i += 3 {
		fillRect(img, x, y+i, x+8, y+i+1, stroke)
		fillRect(img, x+52, y+i, x+60, y+i+1, stroke)
	}
	for i := 0; i < 45; i += 4 {
		sx := x + 10 + i*6/10
		ex := sx + 6 + i*15/100
		fillRect(img, sx, y+i, ex, y+i+1, stroke)
	}

	dot := redAlpha(153)
	for _, p := range [][2]int{{5, 10}, {20, 20}, {35, 30}, {55, 15}, {40, 35}} {
		fillRect(img, x+p[0]-1, y+p[1]-1, x+p[0]+2, y+p[1]+2, dot)
	}
}

func (c *Composer) drawScanlines(img *image.RGBA) {
	col := redAlpha(13)
	for y := 0; y < canvasHeight; y += scanlineStep {
		fillRect(img, 0, y, canvasWidth, y+1, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), &image.Uniform{col}, image.Point{}, draw.Over)
}
