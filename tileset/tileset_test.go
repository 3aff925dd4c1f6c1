package tileset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var magenta = color.RGBA{0xff, 0x00, 0xff, 0xff}

func TestColorkeyPaletted(t *testing.T) {
	pal := color.Palette{
		color.RGBA{0, 0, 0, 0xff},
		magenta,
		color.RGBA{0x10, 0x20, 0x30, 0xff},
	}
	src := image.NewPaletted(image.Rect(0, 0, 32, 32), pal)
	src.SetColorIndex(0, 0, 1)
	src.SetColorIndex(1, 0, 2)

	ts := New(src)
	img := ts.Image()

	assert.Equal(t, color.NRGBA{0, 0, 0, 0}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0x10, 0x20, 0x30, 0xff}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, img.NRGBAAt(2, 2))
}

func TestColorkeySkippedWithAlpha(t *testing.T) {
	// An image that really has an alpha channel keeps its magenta pixels.
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	src.SetNRGBA(0, 0, color.NRGBA{0xff, 0x00, 0xff, 0xff})
	src.SetNRGBA(1, 0, color.NRGBA{0x40, 0x50, 0x60, 0x80})

	ts := New(src)
	img := ts.Image()

	assert.Equal(t, color.NRGBA{0xff, 0x00, 0xff, 0xff}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0x40, 0x50, 0x60, 0x80}, img.NRGBAAt(1, 0))
}

func TestColorkeyTruecolorPNG(t *testing.T) {
	// The png package encodes a fully opaque RGBA image as truecolor
	// without an alpha channel and decodes it back to *image.RGBA, the
	// usual shape of a curses tileset on disk. Magenta must still turn
	// transparent.
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetRGBA(x, y, color.RGBA{0x10, 0x20, 0x30, 0xff})
		}
	}
	src.SetRGBA(0, 0, magenta)
	require.True(t, src.Opaque())

	path := filepath.Join(t.TempDir(), "curses_rgb.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	ts, err := Load(path)
	require.NoError(t, err)
	img := ts.Image()

	assert.Equal(t, color.NRGBA{0, 0, 0, 0}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0x10, 0x20, 0x30, 0xff}, img.NRGBAAt(1, 0))
}

func TestColorkeySkippedWithTranslucentRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	src.SetRGBA(0, 0, color.RGBA{0xff, 0x00, 0xff, 0xff})
	src.SetRGBA(1, 0, color.RGBA{0x20, 0x28, 0x30, 0x80})

	img := New(src).Image()

	assert.Equal(t, color.NRGBA{0xff, 0x00, 0xff, 0xff}, img.NRGBAAt(0, 0))
}

func TestColorkeySkippedWithTranslucentPalette(t *testing.T) {
	pal := color.Palette{
		color.NRGBA{0, 0, 0, 0},
		color.NRGBA{0xff, 0x00, 0xff, 0xff},
	}
	src := image.NewPaletted(image.Rect(0, 0, 16, 16), pal)
	src.SetColorIndex(0, 0, 1)

	img := New(src).Image()

	assert.Equal(t, color.NRGBA{0xff, 0x00, 0xff, 0xff}, img.NRGBAAt(0, 0))
}

func TestTileSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		tw   int
		th   int
	}{
		{"even", 128, 192, 8, 12},
		{"remainder ignored", 130, 135, 8, 8},
		{"small", 16, 16, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := New(image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h)))
			w, h := ts.TileSize()
			assert.Equal(t, tt.tw, w)
			assert.Equal(t, tt.th, h)
		})
	}
}

func TestGlyphRects(t *testing.T) {
	ts := New(image.NewNRGBA(image.Rect(0, 0, 128, 192)))
	tw, th := ts.TileSize()

	seen := make(map[image.Point]bool)
	for n := 0; n < 256; n++ {
		r := ts.Glyph(uint8(n))
		assert.Equal(t, tw, r.Dx())
		assert.Equal(t, th, r.Dy())
		assert.True(t, r.In(image.Rect(0, 0, 128, 192)))
		assert.False(t, seen[r.Min], "glyph %d overlaps", n)
		seen[r.Min] = true
	}
	assert.Len(t, seen, 256)

	assert.Equal(t, image.Rect(0, 0, tw, th), ts.Glyph(0))
	assert.Equal(t, image.Rect(15*tw, 0, 16*tw, th), ts.Glyph(15))
	assert.Equal(t, image.Rect(0, th, tw, 2*th), ts.Glyph(16))
	assert.Equal(t, image.Rect(15*tw, 15*th, 16*tw, 16*th), ts.Glyph(255))
}

func TestLoad(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	path := filepath.Join(t.TempDir(), "curses.png")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	ts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, ts.Path())

	w, h := ts.TileSize()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
