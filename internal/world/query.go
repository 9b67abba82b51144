package world

import (
	"iter"

	"github.com/pixil98/go-esge/internal/storage"
)

// Player returns the actor controlled by the player.
func Player(r storage.Reader) (*Actor, error) {
	base, ok := storage.Get[BaseGame](r, BaseGameId)
	if !ok {
		return nil, ErrBaseGameNotFound
	}
	actor, ok := storage.Get[Actor](r, base.Player)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return actor, nil
}

// RoomOfActor returns the room listing the actor.
func RoomOfActor(r storage.Reader, actorId string) (*Room, error) {
	for room := range storage.AllOfType[Room](r) {
		if room.HasActor(actorId) {
			return room, nil
		}
	}
	return nil, ErrRoomNotFound
}

// RoomOfPlayer returns the room the player is in.
func RoomOfPlayer(r storage.Reader) (*Room, error) {
	player, err := Player(r)
	if err != nil {
		return nil, err
	}
	return RoomOfActor(r, player.Id)
}

// Exits yields each exit label of room with the room it leads to, in label
// order. Exits whose destination is missing are skipped.
func Exits(r storage.Reader, room *Room) iter.Seq2[string, *Room] {
	return func(yield func(string, *Room) bool) {
		for _, label := range room.ExitLabels() {
			dest, ok := storage.Get[Room](r, room.Exits[label])
			if !ok {
				continue
			}
			if !yield(label, dest) {
				return
			}
		}
	}
}

// ItemsInRoom yields the records of the items in room that still exist.
func ItemsInRoom(r storage.Reader, room *Room) iter.Seq[*storage.Record] {
	return func(yield func(*storage.Record) bool) {
		for _, id := range room.Items {
			rec, ok := r.Lookup(id)
			if !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// ActorsInRoom yields the actors in room that still exist.
func ActorsInRoom(r storage.Reader, room *Room) iter.Seq[*Actor] {
	return func(yield func(*Actor) bool) {
		for _, id := range room.Actors {
			actor, ok := storage.Get[Actor](r, id)
			if !ok {
				continue
			}
			if !yield(actor) {
				return
			}
		}
	}
}
