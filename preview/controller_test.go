package preview

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfort/lnp/config"
	"github.com/dfort/lnp/tileset"
)

// countingLoader stands in for tileset.Load and records every path it is
// asked to load.
type countingLoader struct {
	calls []string
	size  int
}

func (c *countingLoader) load(path string) (*tileset.Tileset, error) {
	c.calls = append(c.calls, path)
	return tileset.New(image.NewNRGBA(image.Rect(0, 0, c.size, c.size))), nil
}

func writeSnapshot(t *testing.T, b []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "screenshot.bin")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func testController(t *testing.T) (*Controller, *countingLoader) {
	t.Helper()

	loader := &countingLoader{size: 128}
	snapshot := writeSnapshot(t, []byte{1, 1, 0, 15, 0})

	paths := config.NewPaths(t.TempDir(), "")
	c := NewController(paths, nil,
		WithTilesetLoader(loader.load),
		WithSnapshotPath(snapshot))
	return c, loader
}

func TestControllerRenders(t *testing.T) {
	c, _ := testController(t)

	require.NoError(t, c.SetFont("curses.png"))

	img := c.Image()
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
}

func TestControllerUnchangedFontSkipsLoader(t *testing.T) {
	c, loader := testController(t)

	require.NoError(t, c.SetFont("curses.png"))
	require.NoError(t, c.SetFont("curses.png"))
	assert.Equal(t, []string{"curses.png"}, loader.calls)

	require.NoError(t, c.SetFont("other.png"))
	assert.Equal(t, []string{"curses.png", "other.png"}, loader.calls)
}

func TestControllerFontsReloadIndependently(t *testing.T) {
	c, loader := testController(t)

	require.NoError(t, c.SetFont("curses.png"))
	require.NoError(t, c.SetGraphicsFont("gfx.png"))
	require.NoError(t, c.SetGraphicsFont("gfx2.png"))

	// swapping the graphics font never re-decodes the normal font
	assert.Equal(t, []string{"curses.png", "gfx.png", "gfx2.png"}, loader.calls)
}

func TestControllerStateSlots(t *testing.T) {
	c, loader := testController(t)
	require.NoError(t, c.SetFont("curses.png"))

	// graphics, print mode and colorscheme changes re-render without
	// touching the tileset loader
	require.NoError(t, c.SetGraphics(true))
	require.NoError(t, c.SetGraphics(true))
	require.NoError(t, c.SetPrintMode("TWBT"))
	require.NoError(t, c.SetColorScheme("gray"))
	assert.Equal(t, []string{"curses.png"}, loader.calls)
	assert.NotNil(t, c.Image())
}

func TestControllerNoTileset(t *testing.T) {
	c, _ := testController(t)

	assert.ErrorIs(t, c.SetGraphics(true), ErrNoTileset)
}

func TestControllerMissingSnapshot(t *testing.T) {
	loader := &countingLoader{size: 128}
	paths := config.NewPaths(t.TempDir(), "")
	c := NewController(paths, nil,
		WithTilesetLoader(loader.load),
		WithSnapshotPath(filepath.Join(t.TempDir(), "missing.bin")))

	assert.Error(t, c.SetFont("curses.png"))
}

func TestControllerRetryAfterFailedRender(t *testing.T) {
	loader := &countingLoader{size: 128}
	snapshot := filepath.Join(t.TempDir(), "screenshot.bin")
	paths := config.NewPaths(t.TempDir(), "")
	c := NewController(paths, nil,
		WithTilesetLoader(loader.load),
		WithSnapshotPath(snapshot))

	require.NoError(t, os.WriteFile(snapshot, []byte{1, 1, 0, 15, 0}, 0o644))
	require.NoError(t, c.SetFont("curses.png"))

	require.NoError(t, os.Remove(snapshot))
	require.Error(t, c.SetPrintMode("TWBT"))

	// the value that failed to render was not committed, so the same
	// call renders once the snapshot is back
	require.NoError(t, os.WriteFile(snapshot, []byte{1, 1, 0, 15, 0}, 0o644))
	require.NoError(t, c.SetPrintMode("TWBT"))
	assert.NotNil(t, c.Image())
}

func TestControllerTruncatedSnapshot(t *testing.T) {
	loader := &countingLoader{size: 128}
	paths := config.NewPaths(t.TempDir(), "")
	c := NewController(paths, nil,
		WithTilesetLoader(loader.load),
		WithSnapshotPath(writeSnapshot(t, []byte{5, 5, 0})))

	assert.Error(t, c.SetFont("curses.png"))
	assert.Nil(t, c.Image())
}

func TestControllerLoadFromInit(t *testing.T) {
	loader := &countingLoader{size: 128}
	snapshot := writeSnapshot(t, []byte{1, 1, 0, 15, 0})

	paths := config.NewPaths(t.TempDir(), "")
	require.NoError(t, os.MkdirAll(paths.Init, 0o755))
	require.NoError(t, os.WriteFile(paths.InitFile(), []byte(
		"[FONT:curses.png]\n[GRAPHICS_FONT:gfx.png]\n[GRAPHICS:YES]\n[PRINT_MODE:2D]\n[TEXTURE_PARAM:LINEAR]\n",
	), 0o644))

	c := NewController(paths, nil,
		WithTilesetLoader(loader.load),
		WithSnapshotPath(snapshot))

	require.NoError(t, c.LoadFromInit())

	assert.Equal(t, []string{
		filepath.Join(paths.Art, "curses.png"),
		filepath.Join(paths.Art, "gfx.png"),
	}, loader.calls)
	assert.NotNil(t, c.Image())

	// loading again with nothing changed does not reload the tilesets
	require.NoError(t, c.LoadFromInit())
	assert.Len(t, loader.calls, 2)
}
