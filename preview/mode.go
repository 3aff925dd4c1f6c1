package preview

import "strings"

// DrawMode selects which tileset renders the base layer of a preview and
// whether the high-resolution overlay pass runs.
type DrawMode int

const (
	// ModeFont renders every cell with the normal font.
	ModeFont DrawMode = iota
	// ModeGFXFont renders every cell with the graphics font.
	ModeGFXFont
	// ModeTWBT renders with the graphics font and re-renders the
	// snapshot's sub-region at the graphics font's native tile size.
	ModeTWBT
	// ModeTWBTLegacy renders the base layer with the normal font,
	// rescales it to the graphics font's tile size and then pastes the
	// high-resolution sub-region over it.
	ModeTWBTLegacy
)

func (m DrawMode) String() string {
	switch m {
	case ModeGFXFont:
		return "GFXFONT"
	case ModeTWBT:
		return "TWBT"
	case ModeTWBTLegacy:
		return "TWBT_LEGACY"
	default:
		return "FONT"
	}
}

// overlay reports whether the mode includes the sub-region pass.
func (m DrawMode) overlay() bool {
	return m == ModeTWBT || m == ModeTWBTLegacy
}

// ParseDrawMode derives the draw mode from the game's PRINT_MODE and
// GRAPHICS settings.
func ParseDrawMode(printMode string, graphics bool) DrawMode {
	switch {
	case printMode == "TWBT_LEGACY":
		return ModeTWBTLegacy
	case strings.HasPrefix(printMode, "TWBT"):
		return ModeTWBT
	case graphics:
		return ModeGFXFont
	default:
		return ModeFont
	}
}
