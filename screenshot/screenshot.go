/*
Package screenshot implements a decoder and encoder for the snapshot file
written by the game alongside a saved screenshot.

The file starts with a two byte header holding the screen width and height
measured in tiles. It is followed by width * height cells of three bytes
each; a glyph index, a foreground color index and a background color index,
emitted row by row from the top-left corner. A newer variant of the format
appends a four byte trailer describing an inclusive bounding box of tiles
to be drawn at a higher resolution by a secondary tileset.
*/
package screenshot

const (
	// Filename is the expected filename used when reading from disk
	Filename = "screenshot.bin"

	headerSize  = 2
	cellSize    = 3
	trailerSize = 4
)

// Cell is a single tile of the screen. FG and BG index into a 16 color
// palette.
type Cell struct {
	Glyph uint8
	FG    uint8
	BG    uint8
}

// Rect is an inclusive bounding box in tile coordinates.
type Rect struct {
	X1, Y1, X2, Y2 uint8
}

// Screen is one decoded snapshot. Cells always holds exactly Height rows
// of Width cells. Subregion is nil unless the snapshot carried the
// high-resolution trailer.
type Screen struct {
	Width     uint8
	Height    uint8
	Cells     [][]Cell
	Subregion *Rect
}
