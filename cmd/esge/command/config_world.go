package command

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/storage"
	"github.com/pixil98/go-esge/internal/world"
)

const DefaultPlayerName = "Player"

type WorldConfig struct {
	// Path is loaded at startup when it exists. Paths ending in .zst are
	// compressed.
	Path       string `json:"path"`
	PlayerName string `json:"player_name,omitempty"`
	Autosave   bool   `json:"autosave,omitempty"`
	// SaveDir confines the save and load commands. Defaults to the directory
	// of Path.
	SaveDir string `json:"save_dir,omitempty"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.Autosave && c.Path == "" {
		el.Add(fmt.Errorf("world: autosave requires path"))
	}

	return el.Err()
}

func (c *WorldConfig) playerName() string {
	if c.PlayerName == "" {
		return DefaultPlayerName
	}
	return c.PlayerName
}

func (c *WorldConfig) saveDir() string {
	if c.SaveDir != "" {
		return c.SaveDir
	}
	if c.Path != "" {
		return filepath.Dir(c.Path)
	}
	return "."
}

// BuildIngame loads the configured world, falling back to a fresh genesis
// world when there is nothing saved yet.
func (c *WorldConfig) BuildIngame() (*game.Ingame, error) {
	s, err := c.loadStore()
	if err != nil {
		return nil, err
	}

	g, err := world.InitPackages(s, world.BasePackage())
	if err != nil {
		return nil, fmt.Errorf("initializing world %s: %w", s.Id(), err)
	}
	return g, nil
}

func (c *WorldConfig) loadStore() (*storage.Store, error) {
	if c.Path != "" {
		_, err := os.Stat(c.Path)
		switch {
		case err == nil:
			s, err := storage.LoadFile(c.Path)
			if err != nil {
				return nil, err
			}
			slog.Info("loaded world", "path", c.Path, "id", s.Id(), "records", s.Len())
			return s, nil
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("checking world file: %w", err)
		}
	}

	slog.Info("starting new world", "player", c.playerName())
	return world.InitialGenesis(c.playerName()), nil
}
