package screenshot

import (
	"errors"
	"io"
)

// ErrTruncated is returned when the stream ends before the cell data or
// trailer declared by the header has been read. A short snapshot cannot be
// rendered, there is no partial recovery.
var ErrTruncated = errors.New("screenshot: truncated input")

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	screen Screen
}

func (d *decoder) readHeader() error {
	var hdr [headerSize]byte
	if err := readFull(d.r, hdr[:]); err != nil {
		return err
	}
	d.screen.Width, d.screen.Height = hdr[0], hdr[1]
	return nil
}

func (d *decoder) readCells() error {
	w, h := int(d.screen.Width), int(d.screen.Height)

	buf := make([]byte, w*h*cellSize)
	if err := readFull(d.r, buf); err != nil {
		return err
	}

	d.screen.Cells = make([][]Cell, h)
	for y := 0; y < h; y++ {
		row := make([]Cell, w)
		for x := 0; x < w; x++ {
			i := (y*w + x) * cellSize
			row[x] = Cell{
				Glyph: buf[i],
				FG:    buf[i+1],
				BG:    buf[i+2],
			}
		}
		d.screen.Cells[y] = row
	}
	return nil
}

func (d *decoder) readTrailer() error {
	var tr [trailerSize]byte
	n, err := io.ReadFull(d.r, tr[:])
	switch {
	case n == 0 && (err == io.EOF || err == io.ErrUnexpectedEOF):
		// Older variant of the format, no sub-region
		return nil
	case n == trailerSize:
		d.screen.Subregion = &Rect{tr[0], tr[1], tr[2], tr[3]}
		return nil
	case err == io.ErrUnexpectedEOF || err == io.EOF:
		return ErrTruncated
	default:
		return err
	}
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err == io.ErrUnexpectedEOF {
			return ErrTruncated
		}
		return err
	}

	if configOnly {
		return nil
	}

	if err := d.readCells(); err != nil {
		if err == io.ErrUnexpectedEOF {
			return ErrTruncated
		}
		return err
	}

	return d.readTrailer()
}

// Decode reads a snapshot from r and returns the screen it describes. A
// width or height of zero is valid and yields a grid with no cells.
func Decode(r io.Reader) (*Screen, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return &d.screen, nil
}

// DecodeConfig returns the dimensions of a snapshot without decoding the
// cell data.
func DecodeConfig(r io.Reader) (width, height int, err error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return 0, 0, err
	}
	return int(d.screen.Width), int(d.screen.Height), nil
}
