package commands

import (
	"context"

	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/world"
)

// LookHandlerFactory creates handlers that show the player's room.
type LookHandlerFactory struct{}

func (f *LookHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *LookHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		return world.DisplayCurrentRoom{}, nil
	}, nil
}

// StoreHandlerFactory creates handlers that dump the whole world as JSON.
type StoreHandlerFactory struct{}

func (f *StoreHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *StoreHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		return ShowWorld{}, nil
	}, nil
}
