package world

import (
	"github.com/google/uuid"
	"github.com/pixil98/go-esge/internal/storage"
)

const (
	PlayerActorId = "player-actor"
	GenesisRoomId = "genesis-room"
	InitRoomId    = "init-room"
)

// InitialGenesis builds the starting world: one room holding the player.
func InitialGenesis(playerName string) *storage.Store {
	return world("genesis-store", playerName, NewRoom(GenesisRoomId).
		WithName("Genesis").
		WithDescription("Nothing exists yet. Use add_exit and rename_room to shape the world."))
}

// EmptyWorld builds a minimal world that can be nested in another one. An
// empty worldName gets a random id.
func EmptyWorld(playerName string, worldName string) *storage.Store {
	if worldName == "" {
		worldName = uuid.NewString()
	}
	return world(worldName, playerName, NewRoom(InitRoomId).
		WithName("Init").
		WithDescription("You are in an empty world."))
}

func world(id string, playerName string, start *Room) *storage.Store {
	start.Actors = append(start.Actors, PlayerActorId)
	return storage.NewStore(id).
		With(&Actor{Id: PlayerActorId, Name: playerName}).
		With(&BaseGame{Player: PlayerActorId}).
		With(start)
}
