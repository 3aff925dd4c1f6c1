/*
Package tileset loads the glyph atlas images used to render screen
previews.

A tileset is any raster image treated as a 16 by 16 grid of equally sized
glyph cells; glyph n occupies column n%16 and row n/16. Images decoded
from formats without an alpha channel additionally have the game's
transparency sentinel applied: every pixel that is exactly magenta becomes
fully transparent.
*/
package tileset

import (
	"fmt"
	"image"
	"image/draw"
	"os"
)

const gridSize = 16

// Tileset is a normalized glyph atlas.
type Tileset struct {
	img   *image.NRGBA
	tileW int
	tileH int
	path  string
}

// Load reads and normalizes the tileset image at path. The image format
// must have been registered with the image package by the caller.
func Load(path string) (*Tileset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tileset: decoding %s: %w", path, err)
	}

	ts := New(src)
	ts.path = path
	return ts, nil
}

// New normalizes an already decoded image into a tileset.
func New(src image.Image) *Tileset {
	img := normalize(src)
	b := img.Bounds()
	return &Tileset{
		img:   img,
		tileW: b.Dx() / gridSize,
		tileH: b.Dy() / gridSize,
	}
}

// alphaless reports whether the image came from a source format with no
// alpha channel. Only such images get the colorkey treatment; anything
// carrying real alpha is used as-is.
func alphaless(src image.Image) bool {
	switch m := src.(type) {
	case *image.YCbCr, *image.CMYK:
		return true
	case *image.RGBA:
		// The png decoder hands back *image.RGBA for truecolor images
		// with no alpha channel; a hand-built translucent RGBA image is
		// not opaque and keeps its alpha.
		return m.Opaque()
	case *image.RGBA64:
		return m.Opaque()
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return false
			}
		}
		return true
	}
	return false
}

func normalize(src image.Image) *image.NRGBA {
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if nrgba, ok := src.(*image.NRGBA); ok {
		// Straight copy, avoiding a round-trip through
		// premultiplied alpha
		for y := 0; y < b.Dy(); y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.Dx()*4],
				nrgba.Pix[(y+b.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride+(b.Min.X-nrgba.Rect.Min.X)*4:])
		}
		return img
	}

	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)

	if alphaless(src) {
		for i := 0; i < len(img.Pix); i += 4 {
			if img.Pix[i] == 0xff && img.Pix[i+1] == 0x00 && img.Pix[i+2] == 0xff && img.Pix[i+3] == 0xff {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
			}
		}
	}

	return img
}

// Image returns the normalized atlas pixels.
func (t *Tileset) Image() *image.NRGBA {
	return t.img
}

// Path returns the file the tileset was loaded from, if any.
func (t *Tileset) Path() string {
	return t.path
}

// TileSize returns the pixel dimensions of one glyph cell. Any remainder
// pixels beyond 16 whole cells are unused padding at the image edge.
func (t *Tileset) TileSize() (w, h int) {
	return t.tileW, t.tileH
}

// Glyph returns the source rectangle of glyph n within the atlas.
func (t *Tileset) Glyph(n uint8) image.Rectangle {
	x := int(n) % gridSize * t.tileW
	y := int(n) / gridSize * t.tileH
	return image.Rect(x, y, x+t.tileW, y+t.tileH)
}
