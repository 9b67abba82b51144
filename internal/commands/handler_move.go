package commands

import (
	"context"

	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/world"
)

// MoveHandlerFactory creates handlers that move the player through an exit.
// Config:
//   - direction (required): exit label, usually "{{ .Inputs.direction }}"
type MoveHandlerFactory struct{}

func (f *MoveHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireConfig(config, "direction")
}

func (f *MoveHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		direction, err := expandRequired(req, "direction", "Go where?")
		if err != nil {
			return nil, err
		}
		return world.MovePlayer{Direction: direction}, nil
	}, nil
}
