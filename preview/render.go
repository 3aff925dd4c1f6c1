/*
Package preview reconstructs a color bitmap image from a screen snapshot,
a color scheme and one or two tilesets.

Every cell of the snapshot is drawn by copying its glyph out of the
tileset, tinting it with the cell's foreground color and compositing it
over a solid fill of the cell's background color. The TWBT draw modes add
a second pass that re-renders the snapshot's declared sub-region with the
graphics tileset at its native, usually larger, tile size.
*/
package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/dfort/lnp/colors"
	"github.com/dfort/lnp/screenshot"
	"github.com/dfort/lnp/tileset"
)

var opaqueBlack = image.NewUniform(color.NRGBA{0, 0, 0, 0xff})

// multiply performs a channel-wise multiply blend of src into dst. Both
// images must be the same size.
func multiply(dst, src *image.NRGBA) {
	for i := range dst.Pix {
		dst.Pix[i] = uint8(int(dst.Pix[i]) * int(src.Pix[i]) / 0xff)
	}
}

// compositeGrid renders the cells inside the inclusive tile rectangle
// (x1,y1)-(x2,y2) with a single tileset. The layers work exactly like the
// original renderer: a background fill, the raw glyphs, and a solid
// foreground tint multiplied into the glyphs before they are composited
// over the background under their own alpha.
func compositeGrid(s *screenshot.Screen, scheme colors.Scheme, ts *tileset.Tileset, x1, y1, x2, y2 int) *image.NRGBA {
	tw, th := ts.TileSize()

	w, h := x2-x1+1, y2-y1+1
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	bounds := image.Rect(0, 0, w*tw, h*th)
	background := image.NewNRGBA(bounds)
	glyphs := image.NewNRGBA(bounds)
	tint := image.NewNRGBA(bounds)
	draw.Draw(background, bounds, opaqueBlack, image.Point{}, draw.Src)
	draw.Draw(glyphs, bounds, opaqueBlack, image.Point{}, draw.Src)
	draw.Draw(tint, bounds, opaqueBlack, image.Point{}, draw.Src)

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c := s.Cells[y][x]
			dst := image.Rect((x-x1)*tw, (y-y1)*th, (x-x1+1)*tw, (y-y1+1)*th)

			draw.Draw(glyphs, dst, ts.Image(), ts.Glyph(c.Glyph).Min, draw.Src)

			fg := scheme[c.FG&0x0f]
			draw.Draw(tint, dst, image.NewUniform(color.NRGBA{fg.R, fg.G, fg.B, 0xff}), image.Point{}, draw.Src)

			bg := scheme[c.BG&0x0f]
			draw.Draw(background, dst, image.NewUniform(color.NRGBA{bg.R, bg.G, bg.B, 0xff}), image.Point{}, draw.Src)
		}
	}

	multiply(glyphs, tint)
	draw.Draw(background, bounds, glyphs, image.Point{}, draw.Over)

	return background
}

// Render composites a snapshot into the final preview image. normal and
// gfx are the two loaded tilesets; which one draws the base layer depends
// on the mode. linear selects linear instead of nearest-neighbor
// resampling for the legacy overlay rescale.
func Render(s *screenshot.Screen, scheme colors.Scheme, normal, gfx *tileset.Tileset, mode DrawMode, linear bool) *image.NRGBA {
	base := normal
	if mode == ModeGFXFont || mode == ModeTWBT {
		base = gfx
	}

	img := compositeGrid(s, scheme, base, 0, 0, int(s.Width)-1, int(s.Height)-1)

	if !mode.overlay() || s.Subregion == nil {
		return img
	}

	sub := *s.Subregion
	x2, y2 := int(sub.X2), int(sub.Y2)
	if x2 > int(s.Width)-1 {
		x2 = int(s.Width) - 1
	}
	if y2 > int(s.Height)-1 {
		y2 = int(s.Height) - 1
	}

	hi := compositeGrid(s, scheme, gfx, int(sub.X1), int(sub.Y1), x2, y2)

	gw, gh := gfx.TileSize()
	if mode == ModeTWBTLegacy {
		scaled := image.NewNRGBA(image.Rect(0, 0, int(s.Width)*gw, int(s.Height)*gh))
		var scaler draw.Interpolator = draw.NearestNeighbor
		if linear {
			scaler = draw.ApproxBiLinear
		}
		scaler.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}

	dst := image.Rect(int(sub.X1)*gw, int(sub.Y1)*gh, (x2+1)*gw, (y2+1)*gh).Intersect(img.Bounds())

	// The base layer and the overlay are scaled independently, so the two
	// rectangles can disagree by up to a tile; the overlay's crop is
	// clamped to the measured destination rather than rescaled.
	src := hi.Bounds()
	if src.Dx() > dst.Dx() {
		src.Max.X = src.Min.X + dst.Dx()
	}
	if src.Dy() > dst.Dy() {
		src.Max.Y = src.Min.Y + dst.Dy()
	}

	draw.Draw(img, dst, hi, src.Min, draw.Src)

	return img
}
