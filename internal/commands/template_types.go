package commands

import (
	"github.com/pixil98/go-esge/internal/storage"
	"github.com/pixil98/go-esge/internal/world"
)

// Stable template-facing types
// These types decouple templates from the world views.

// ActorRef is the template-facing view of an actor.
type ActorRef struct {
	Name        string
	Description string
}

// RoomRef is the template-facing view of a room.
type RoomRef struct {
	Name        string
	Description string
	Exits       []string
}

// InputContext is used for Pass 1 expansion (config templates that reference inputs).
type InputContext struct {
	Inputs map[string]any // Parsed input values keyed by input name
}

// RuntimeContext is used for Pass 2 expansion (message templates with full context).
type RuntimeContext struct {
	Inputs map[string]any
	Player *ActorRef
	Room   *RoomRef
}

// newRuntimeContext resolves the player and their room. Refs are left empty
// when the world has no player or the player is nowhere.
func newRuntimeContext(r storage.Reader, inputs map[string]any) *RuntimeContext {
	rc := &RuntimeContext{
		Inputs: inputs,
		Player: &ActorRef{},
		Room:   &RoomRef{},
	}

	if player, err := world.Player(r); err == nil {
		rc.Player.Name = player.Name
		rc.Player.Description = player.Description
	}

	if room, err := world.RoomOfPlayer(r); err == nil {
		rc.Room.Name = room.Name
		rc.Room.Description = room.Description
		for label := range world.Exits(r, room) {
			rc.Room.Exits = append(rc.Room.Exits, label)
		}
	}

	return rc
}
