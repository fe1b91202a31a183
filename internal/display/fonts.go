package display

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

const fontDPI = 72

type faceKey struct {
	size float64
	bold bool
}

// FontSet holds the embedded display fonts and a cache of sized faces. The
// monospace face renders body text; the bold face renders the header.
type FontSet struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// LoadFonts parses the embedded Go fonts used for all display rendering.
func LoadFonts() (*FontSet, error) {
	regular, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse mono font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &FontSet{regular: regular, bold: bold, faces: map[faceKey]font.Face{}}, nil
}

// Face returns a cached face at the given size.
func (fs *FontSet) Face(size float64, bold bool) font.Face {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	key := faceKey{size: size, bold: bold}
	if face, ok := fs.faces[key]; ok {
		return face
	}

	src := fs.regular
	if bold {
		src = fs.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// The embedded fonts parse at any positive size; a failure here
		// means a zero or negative size, which no candidate produces.
		panic(fmt.Sprintf("new face at %g: %v", size, err))
	}
	fs.faces[key] = face
	return face
}

// Width reports the rendered pixel width of s at the given size, satisfying
// Measurer for the wrap selector.
func (fs *FontSet) Width(size float64, s string) int {
	d := font.Drawer{Face: fs.Face(size, false)}
	return d.MeasureString(s).Ceil()
}
