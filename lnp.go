/*
Package lnp is a library for managing a Dwarf Fortress pack: color
schemes, mod merging, tileset previews and launching the game and its
companion utilities.
*/
package lnp

import (
	"log"
	"sync"

	"github.com/dfort/lnp/config"
)

type LNP struct {
	paths  *config.Paths
	cfg    *config.UserConfig
	db     *ModDB
	logger *log.Logger

	mu      sync.Mutex
	running map[string]*process
}

func New(paths *config.Paths, cfg *config.UserConfig, db *ModDB, logger *log.Logger) *LNP {
	return &LNP{
		paths:   paths,
		cfg:     cfg,
		db:      db,
		logger:  logger,
		running: make(map[string]*process),
	}
}

// Paths returns the pack's path layout.
func (l *LNP) Paths() *config.Paths {
	return l.paths
}

// Mods returns the pack's mod store.
func (l *LNP) Mods() *ModDB {
	return l.db
}
