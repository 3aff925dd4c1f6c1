package screenshot

import (
	"errors"
	"io"
)

var errBadGrid = errors.New("screenshot: cell grid does not match dimensions")

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(s *Screen) error {
	if _, err := e.w.Write([]byte{s.Width, s.Height}); err != nil {
		return err
	}

	var cell [cellSize]byte
	for _, row := range s.Cells {
		for _, c := range row {
			cell[0], cell[1], cell[2] = c.Glyph, c.FG, c.BG
			if _, err := e.w.Write(cell[:]); err != nil {
				return err
			}
		}
	}

	if s.Subregion != nil {
		r := s.Subregion
		if _, err := e.w.Write([]byte{r.X1, r.Y1, r.X2, r.Y2}); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the screen s to w in snapshot format.
func Encode(w io.Writer, s *Screen) error {
	if len(s.Cells) != int(s.Height) {
		return errBadGrid
	}
	for _, row := range s.Cells {
		if len(row) != int(s.Width) {
			return errBadGrid
		}
	}

	e := encoder{w: w}

	return e.encode(s)
}
