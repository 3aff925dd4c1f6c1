/*
Package colors manages the game's 16 color palette and the pack's library
of color scheme files.

A scheme file is a token file holding 48 values, a _R, _G and _B channel
for each of the 16 fixed color names.
*/
package colors

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dfort/lnp/config"
	"github.com/dfort/lnp/raws"
)

// Names lists the 16 colors in palette order. Cell color indices 0
// through 15 select the corresponding entry.
var Names = [16]string{
	"BLACK", "BLUE", "GREEN", "CYAN",
	"RED", "MAGENTA", "BROWN", "LGRAY",
	"DGRAY", "LBLUE", "LGREEN", "LCYAN",
	"LRED", "LMAGENTA", "YELLOW", "WHITE",
}

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// Scheme is a full 16 color palette.
type Scheme [16]RGB

// resolve turns a scheme name into a file path. The .txt extension is
// implied when missing and bare names are looked up in the pack's colors
// directory.
func resolve(p *config.Paths, name string) string {
	if !strings.HasSuffix(name, ".txt") {
		name += ".txt"
	}
	if filepath.Dir(name) == "." {
		name = filepath.Join(p.Colors, name)
	}
	return name
}

// Load reads the scheme with the given name, or the game's currently
// installed colors when name is empty.
func Load(p *config.Paths, name string) (Scheme, error) {
	var scheme Scheme

	file := p.ColorsFile()
	if name != "" {
		file = resolve(p, name)
	}

	raw, err := raws.Load(file)
	if err != nil {
		return scheme, err
	}

	for i, c := range Names {
		r, err := raw.Int(c + "_R")
		if err != nil {
			return Scheme{}, err
		}
		g, err := raw.Int(c + "_G")
		if err != nil {
			return Scheme{}, err
		}
		b, err := raw.Int(c + "_B")
		if err != nil {
			return Scheme{}, err
		}
		scheme[i] = RGB{uint8(r), uint8(g), uint8(b)}
	}
	return scheme, nil
}

// LoadOrDefault is the fail-soft variant of Load used by the preview
// renderer; any load failure is logged and yields an all-black palette so
// that rendering is never blocked on a broken scheme file.
func LoadOrDefault(p *config.Paths, name string, logger *log.Logger) Scheme {
	scheme, err := Load(p, name)
	if err != nil {
		logger.Printf("unable to read colors: %v", err)
		return Scheme{}
	}
	return scheme
}

// ReadSchemes returns the sorted names of every scheme in the pack.
func ReadSchemes(p *config.Paths) ([]string, error) {
	entries, err := os.ReadDir(p.Colors)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// Install makes the named scheme the game's active colors.
func Install(p *config.Paths, name string) error {
	return copyFile(p.ColorsFile(), resolve(p, name))
}

// Save exports the game's active colors to a scheme file with the given
// name.
func Save(p *config.Paths, name string) error {
	return copyFile(resolve(p, name), p.ColorsFile())
}

// Exists reports whether a scheme with the given name is present in the
// pack.
func Exists(p *config.Paths, name string) bool {
	_, err := os.Stat(resolve(p, name))
	return err == nil
}

// Delete removes the named scheme from the pack.
func Delete(p *config.Paths, name string) error {
	return os.Remove(resolve(p, name))
}

// Installed identifies which scheme is currently active by comparing the
// installed palette against every known scheme.
func Installed(p *config.Paths) (string, error) {
	current, err := Load(p, "")
	if err != nil {
		return "", err
	}

	names, err := ReadSchemes(p)
	if err != nil {
		return "", err
	}

	for _, name := range names {
		scheme, err := Load(p, name)
		if err != nil {
			continue
		}
		if scheme == current {
			return name, nil
		}
	}
	return "", fmt.Errorf("colors: no scheme matches the installed palette")
}
