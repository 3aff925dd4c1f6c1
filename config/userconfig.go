package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// UserConfigFilename is the expected filename of the user settings file
// inside the pack root.
const UserConfigFilename = "lnp.toml"

// UserConfig holds the user's launcher settings.
type UserConfig struct {
	// Terminal is a custom terminal command used to spawn console
	// programs on Linux. A "$" argument marks where the launched
	// command line is inserted.
	Terminal string `toml:"terminal"`

	// AutoClose closes the launcher after starting the game.
	AutoClose bool `toml:"autoclose"`

	// DfExecutable overrides the autodetected game executable name.
	DfExecutable string `toml:"df_executable"`

	// PremergeGraphics starts mod merges from the installed graphics
	// pack raws instead of the vanilla raws.
	PremergeGraphics bool `toml:"premerge_graphics"`
}

// LoadUserConfig reads the settings file at path. A missing file is not an
// error and yields the defaults.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := &UserConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes the settings back to path.
func (c *UserConfig) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
