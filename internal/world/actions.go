package world

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/storage"
)

// DisplayCurrentRoom shows the player's room on the out channel.
type DisplayCurrentRoom struct{}

func (DisplayCurrentRoom) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	return DisplayPlayerRoom(m)
}

// MoveActorAction sends an actor through an exit of its room.
type MoveActorAction struct {
	ActorId   string
	Direction string
}

func (a MoveActorAction) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	return MoveActor(m, a.ActorId, a.Direction)
}

// MovePlayer sends the player through an exit and shows the new room.
type MovePlayer struct {
	Direction string
}

func (a MovePlayer) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	player, err := Player(m)
	if err != nil {
		return err
	}
	if err := MoveActor(m, player.Id, a.Direction); err != nil {
		return err
	}
	return DisplayPlayerRoom(m)
}

// AddRoom stores a room.
type AddRoom struct {
	Room *Room
}

func (a AddRoom) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	m.Insert(a.Room)
	return nil
}

// AddExit adds an exit from the player's room to RoomId, creating an empty
// destination room when the id is unused. An id held by anything other than a
// room is refused.
type AddExit struct {
	Label  string
	RoomId string
}

func (a AddExit) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	room, err := RoomOfPlayer(m)
	if err != nil {
		return err
	}

	if _, ok := m.Lookup(a.RoomId); !ok {
		m.Insert(NewRoom(a.RoomId).WithName(a.RoomId))
	} else if _, ok := storage.Get[Room](m, a.RoomId); !ok {
		return fmt.Errorf("%s is not a room", a.RoomId)
	}

	m.Insert(room.WithExit(a.Label, a.RoomId))
	return nil
}

// Dig creates a new room behind a new exit of the player's room. When Back is
// set the new room gets an exit with that label leading back.
type Dig struct {
	Label string
	Back  string
	Name  string
}

func (a Dig) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	room, err := RoomOfPlayer(m)
	if err != nil {
		return err
	}
	if _, exists := room.Exits[a.Label]; exists {
		return fmt.Errorf("exit %q already exists", a.Label)
	}

	name := a.Name
	if name == "" {
		name = "Unnamed room"
	}
	dug := NewRoom(uuid.NewString()).WithName(name)
	if a.Back != "" {
		dug.WithExit(a.Back, room.Id)
	}

	m.Insert(dug)
	m.Insert(room.WithExit(a.Label, dug.Id))
	return nil
}

// RenameRoom renames the player's room.
type RenameRoom struct {
	Name string
}

func (a RenameRoom) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	room, err := RoomOfPlayer(m)
	if err != nil {
		return err
	}
	m.Insert(room.WithName(a.Name))
	return nil
}

// RedescribeRoom replaces the description of the player's room.
type RedescribeRoom struct {
	Description string
}

func (a RedescribeRoom) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	room, err := RoomOfPlayer(m)
	if err != nil {
		return err
	}
	m.Insert(room.WithDescription(a.Description))
	return nil
}

// InsertEmptyWorld places a fresh nested world in the player's room.
type InsertEmptyWorld struct {
	PlayerName string
	WorldName  string
}

func (a InsertEmptyWorld) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	return InsertItemInPlayerRoom(m, EmptyWorld(a.PlayerName, a.WorldName))
}
