// Package config holds the launcher's path layout and user settings.
package config

import "path/filepath"

// Paths resolves every directory the launcher touches. It is built once at
// startup from the pack root and passed to any component that needs to
// locate a file; there is no global registry.
type Paths struct {
	Root      string // pack root directory
	Df        string // game installation
	Init      string // data/init inside the game directory
	Art       string // data/art inside the game directory
	Save      string // data/save inside the game directory
	Colors    string // color scheme files
	Mods      string // mod directories
	Utilities string // bundled utilities
}

// NewPaths builds the path layout rooted at root. df overrides the game
// directory when non-empty, otherwise it defaults to <root>/df.
func NewPaths(root, df string) *Paths {
	if df == "" {
		df = filepath.Join(root, "df")
	}
	return &Paths{
		Root:      root,
		Df:        df,
		Init:      filepath.Join(df, "data", "init"),
		Art:       filepath.Join(df, "data", "art"),
		Save:      filepath.Join(df, "data", "save"),
		Colors:    filepath.Join(root, "LNP", "Colors"),
		Mods:      filepath.Join(root, "LNP", "Mods"),
		Utilities: filepath.Join(root, "LNP", "Utilities"),
	}
}

// InitFile returns the path of the game's init.txt.
func (p *Paths) InitFile() string {
	return filepath.Join(p.Init, "init.txt")
}

// ColorsFile returns the path of the active color scheme inside the game
// installation.
func (p *Paths) ColorsFile() string {
	return filepath.Join(p.Init, "colors.txt")
}
