package display

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func newComposer(t *testing.T) *Composer {
	t.Helper()
	fonts, err := LoadFonts()
	if err != nil {
		t.Fatal(err)
	}
	return &Composer{Fonts: fonts}
}

func TestRender_CanvasGeometry(t *testing.T) {
	c := newComposer(t)
	img := c.Render("tac001", "TAC001 - 1:22am - Marcus confronts VICTORIA about the funding.")

	b := img.Bounds()
	if b.Dx() != 240 || b.Dy() != 320 {
		t.Fatalf("canvas = %dx%d, want 240x320", b.Dx(), b.Dy())
	}

	// Accent rule under the header.
	if got := img.RGBAAt(120, 66); got != colorRed {
		t.Errorf("accent line pixel = %+v, want %+v", got, colorRed)
	}
	// Plain background between body region and footer.
	if got := img.RGBAAt(120, 285); got != colorBG {
		t.Errorf("background pixel = %+v, want %+v", got, colorBG)
	}
}

func TestRender_FullyOpaque(t *testing.T) {
	c := newComposer(t)
	img := c.Render("eli042", "??/??/???? - Old photo of the lab.")

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d; translucent output breaks 24-bit encoding",
					x, y, img.RGBAAt(x, y).A)
			}
		}
	}
}

func TestRenderPlaceholder(t *testing.T) {
	c := newComposer(t)
	img := c.RenderPlaceholder()
	if img.Bounds().Dx() != 240 || img.Bounds().Dy() != 320 {
		t.Fatalf("placeholder bounds = %v", img.Bounds())
	}
}

func TestWriteBMP(t *testing.T) {
	c := newComposer(t)
	img := c.Render("drk015", "9:20PM - Howie offers her a cup of water.")

	path := filepath.Join(t.TempDir(), "nested", "drk015.bmp")
	if err := WriteBMP(img, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("decode written bmp: %v", err)
	}
	if decoded.Bounds().Dx() != 240 || decoded.Bounds().Dy() != 320 {
		t.Errorf("decoded bounds = %v", decoded.Bounds())
	}
}
