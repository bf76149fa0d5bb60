package iconset

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// patternImage returns an opaque image with enough structure for perceptual hashing.
// invert produces the negative of the same pattern.
func patternImage(width, height int, invert bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8((x*x/7 + y*3 + (x/16)*(y/16)*29) % 256)
			if x < width/2 && y < height/2 {
				v = 255 - v/4
			}
			if invert {
				v = 255 - v
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: uint8(x * 255 / width), B: uint8(y * 255 / height), A: 255})
		}
	}
	if invert {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := img.NRGBAAt(x, y)
				img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: 255 - c.G, B: 255 - c.B, A: 255})
			}
		}
	}
	return img
}

func writePNGSource(t *testing.T, size int, invert bool) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "source.png")
	if err := imaging.Save(patternImage(size, size, invert), p); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return p
}

func writeICOSource(t *testing.T, sizes ...int) string {
	t.Helper()
	frames := make([]image.Image, 0, len(sizes))
	for _, sz := range sizes {
		frames = append(frames, patternImage(sz, sz, false))
	}
	p := filepath.Join(t.TempDir(), "source.ico")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := EncodeICO(f, frames); err != nil {
		t.Fatalf("failed to write ico source: %v", err)
	}
	return p
}

func newTestGenerator(t *testing.T, source string, opts ...Option) *Generator {
	t.Helper()
	g, err := New(append([]Option{WithSource(source)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func decodeFile(t *testing.T, p string) image.Image {
	t.Helper()
	img, err := imaging.Open(p)
	if err != nil {
		t.Fatalf("failed to decode %s: %v", p, err)
	}
	return img
}

// unavailableIconutil is an iconutil compiler that can never be found on PATH.
func unavailableIconutil() *IconutilCompiler {
	c := NewIconutilCompiler(DefaultICNSTimeout)
	c.bin = "iconutil-missing-for-test"
	return c
}
