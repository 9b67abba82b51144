package world

import (
	"fmt"

	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/storage"
)

// PlausibilityCheck inspects a loaded world and reports why a package cannot
// run on it.
type PlausibilityCheck func(g *game.Ingame) error

// Package is a unit of game content: a check that the world suits it and a
// persistent action that drives it.
type Package struct {
	Name  string
	Check PlausibilityCheck
	Init  game.Action
}

// InitPackages builds a game from store, failing on the first package whose
// check rejects the world. Each package's Init is scheduled as a persistent
// action.
func InitPackages(s *storage.Store, pkgs ...Package) (*game.Ingame, error) {
	g := game.WithStore(s)
	for _, p := range pkgs {
		if p.Check != nil {
			if err := p.Check(g); err != nil {
				return nil, fmt.Errorf("package %s: %w", p.Name, err)
			}
		}
		if p.Init != nil {
			g.AddAction(p.Init)
		}
	}
	return g, nil
}

// BasePackage requires a player standing in a room.
func BasePackage() Package {
	return Package{
		Name: "base",
		Check: func(g *game.Ingame) error {
			_, err := RoomOfPlayer(g)
			return err
		},
	}
}
