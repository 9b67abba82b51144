package commands

import (
	"context"

	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/world"
)

// AddExitHandlerFactory creates handlers that link the player's room to
// another room, creating it if needed.
// Config:
//   - label (required): exit label
//   - room (required): destination room id
type AddExitHandlerFactory struct{}

func (f *AddExitHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireConfig(config, "label", "room")
}

func (f *AddExitHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		label, err := expandRequired(req, "label", "Which exit?")
		if err != nil {
			return nil, err
		}
		room, err := expandRequired(req, "room", "Leading where?")
		if err != nil {
			return nil, err
		}
		return world.AddExit{Label: label, RoomId: room}, nil
	}, nil
}

// DigHandlerFactory creates handlers that make a new room behind a new exit.
// Config:
//   - label (required): exit label
//   - back (optional): label of the exit leading back
//   - name (optional): name of the new room
type DigHandlerFactory struct{}

func (f *DigHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireConfig(config, "label")
}

func (f *DigHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		label, err := expandRequired(req, "label", "Dig which way?")
		if err != nil {
			return nil, err
		}
		back, err := req.Expand("back")
		if err != nil {
			return nil, err
		}
		name, err := req.Expand("name")
		if err != nil {
			return nil, err
		}
		return world.Dig{Label: label, Back: back, Name: name}, nil
	}, nil
}

// RenameRoomHandlerFactory creates handlers that rename the player's room.
// Config:
//   - name (required): new room name
type RenameRoomHandlerFactory struct{}

func (f *RenameRoomHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireConfig(config, "name")
}

func (f *RenameRoomHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		name, err := expandRequired(req, "name", "Rename it to what?")
		if err != nil {
			return nil, err
		}
		return world.RenameRoom{Name: name}, nil
	}, nil
}

// RedescribeRoomHandlerFactory creates handlers that replace the description
// of the player's room.
// Config:
//   - description (required): new description
type RedescribeRoomHandlerFactory struct{}

func (f *RedescribeRoomHandlerFactory) ValidateConfig(config map[string]any) error {
	return requireConfig(config, "description")
}

func (f *RedescribeRoomHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		desc, err := req.Expand("description")
		if err != nil {
			return nil, err
		}
		return world.RedescribeRoom{Description: desc}, nil
	}, nil
}

// EmptyWorldHandlerFactory creates handlers that place a new nested world in
// the player's room.
// Config:
//   - world (optional): id of the new world, random when empty
//   - player (optional): player name in the new world, the current player's
//     name when empty
type EmptyWorldHandlerFactory struct{}

func (f *EmptyWorldHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *EmptyWorldHandlerFactory) Create(config map[string]any) (BuildFunc, error) {
	return func(ctx context.Context, req *Request) (game.Action, error) {
		name, err := req.Expand("world")
		if err != nil {
			return nil, err
		}
		player, err := req.Expand("player")
		if err != nil {
			return nil, err
		}
		if player == "" && req.Ingame != nil {
			if p, err := world.Player(req.Ingame); err == nil {
				player = p.Name
			}
		}
		return world.InsertEmptyWorld{PlayerName: player, WorldName: name}, nil
	}, nil
}
