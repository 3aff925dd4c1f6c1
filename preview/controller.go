package preview

import (
	"errors"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/dfort/lnp/colors"
	"github.com/dfort/lnp/config"
	"github.com/dfort/lnp/raws"
	"github.com/dfort/lnp/screenshot"
	"github.com/dfort/lnp/tileset"
)

// ErrNoTileset is returned when a render is triggered before any tileset
// has been loaded.
var ErrNoTileset = errors.New("preview: no tileset loaded")

// TilesetLoader loads a tileset from a file path. It exists so tests can
// substitute the real loader.
type TilesetLoader func(path string) (*tileset.Tileset, error)

// Controller holds the five pieces of state a preview depends on and
// re-renders the image whenever one of them changes. Setting a slot to its
// current value is a no-op. Rendering is synchronous; when a setter
// returns, the image reflects the latest value of every slot. A failed
// render leaves the slot at its previous value, so retrying the same
// setter renders again.
type Controller struct {
	mu sync.Mutex

	paths  *config.Paths
	logger *log.Logger

	load     TilesetLoader
	snapshot string
	linear   bool

	fontPath    string
	gfxFontPath string
	scheme      string
	printMode   string
	graphics    bool

	font    *tileset.Tileset
	gfxFont *tileset.Tileset

	img *image.NRGBA
}

// Option configures a Controller.
type Option func(*Controller)

// WithTilesetLoader substitutes the function used to load tilesets.
func WithTilesetLoader(fn TilesetLoader) Option {
	return func(c *Controller) {
		c.load = fn
	}
}

// WithSnapshotPath overrides the snapshot file location.
func WithSnapshotPath(path string) Option {
	return func(c *Controller) {
		c.snapshot = path
	}
}

// WithLinearFilter selects linear resampling for the legacy overlay
// rescale, matching the game's TEXTURE_PARAM setting.
func WithLinearFilter(linear bool) Option {
	return func(c *Controller) {
		c.linear = linear
	}
}

// NewController returns a controller with no tilesets loaded.
func NewController(paths *config.Paths, logger *log.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Controller{
		paths:    paths,
		logger:   logger,
		load:     tileset.Load,
		snapshot: screenshot.Filename,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetFont loads the normal font from path and re-renders. The graphics
// font is left untouched.
func (c *Controller) SetFont(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path == c.fontPath {
		return nil
	}
	ts, err := c.load(path)
	if err != nil {
		return err
	}
	prevPath, prev := c.fontPath, c.font
	c.fontPath, c.font = path, ts
	if err := c.render(); err != nil {
		c.fontPath, c.font = prevPath, prev
		return err
	}
	return nil
}

// SetGraphicsFont loads the graphics font from path and re-renders. The
// normal font is left untouched.
func (c *Controller) SetGraphicsFont(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path == c.gfxFontPath {
		return nil
	}
	ts, err := c.load(path)
	if err != nil {
		return err
	}
	prevPath, prev := c.gfxFontPath, c.gfxFont
	c.gfxFontPath, c.gfxFont = path, ts
	if err := c.render(); err != nil {
		c.gfxFontPath, c.gfxFont = prevPath, prev
		return err
	}
	return nil
}

// SetColorScheme selects the named color scheme and re-renders. An empty
// name selects the game's currently installed colors.
func (c *Controller) SetColorScheme(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name == c.scheme {
		return nil
	}
	prev := c.scheme
	c.scheme = name
	if err := c.render(); err != nil {
		c.scheme = prev
		return err
	}
	return nil
}

// SetPrintMode records the game's PRINT_MODE setting and re-renders.
func (c *Controller) SetPrintMode(mode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode == c.printMode {
		return nil
	}
	prev := c.printMode
	c.printMode = mode
	if err := c.render(); err != nil {
		c.printMode = prev
		return err
	}
	return nil
}

// SetGraphics records the game's GRAPHICS setting and re-renders.
func (c *Controller) SetGraphics(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enabled == c.graphics {
		return nil
	}
	c.graphics = enabled
	if err := c.render(); err != nil {
		c.graphics = !enabled
		return err
	}
	return nil
}

// LoadFromInit primes every slot from the game's init.txt: FONT,
// GRAPHICS_FONT, GRAPHICS, PRINT_MODE and TEXTURE_PARAM. The image is
// rendered once at the end.
func (c *Controller) LoadFromInit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := raws.Load(c.paths.InitFile())
	if err != nil {
		return err
	}

	if font, ok := raw.Value("FONT"); ok {
		path := filepath.Join(c.paths.Art, font)
		if path != c.fontPath {
			ts, err := c.load(path)
			if err != nil {
				return err
			}
			c.fontPath, c.font = path, ts
		}
	}
	if font, ok := raw.Value("GRAPHICS_FONT"); ok {
		path := filepath.Join(c.paths.Art, font)
		if path != c.gfxFontPath {
			ts, err := c.load(path)
			if err != nil {
				return err
			}
			c.gfxFontPath, c.gfxFont = path, ts
		}
	}

	mode, _ := raw.Value("PRINT_MODE")
	c.printMode = mode

	gfx, _ := raw.Value("GRAPHICS")
	c.graphics = gfx == "YES"

	if param, ok := raw.Value("TEXTURE_PARAM"); ok {
		c.linear = param == "LINEAR"
	}

	return c.render()
}

// Image returns the most recently rendered preview, or nil when nothing
// has been rendered yet.
func (c *Controller) Image() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.img == nil {
		return nil
	}
	return c.img
}

// render must be called with the lock held.
func (c *Controller) render() error {
	f, err := os.Open(c.snapshot)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := screenshot.Decode(f)
	if err != nil {
		return err
	}

	normal, gfx := c.font, c.gfxFont
	if normal == nil {
		normal = gfx
	}
	if gfx == nil {
		gfx = normal
	}
	if normal == nil {
		return ErrNoTileset
	}

	scheme := colors.LoadOrDefault(c.paths, c.scheme, c.logger)
	mode := ParseDrawMode(c.printMode, c.graphics)

	c.img = Render(s, scheme, normal, gfx, mode, c.linear)
	return nil
}
