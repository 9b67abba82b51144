package world

import (
	"slices"
	"strings"

	"github.com/pixil98/go-esge/internal/display"
	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/storage"
)

// RemoveActorFromRoom drops the actor from the room's actor list.
func RemoveActorFromRoom(m *game.Mutator, actorId string, room *Room) {
	room.Actors = slices.DeleteFunc(room.Actors, func(id string) bool {
		return id == actorId
	})
	m.Insert(room)
}

// WarpActor moves the actor into room, taking it out of whatever room it was
// in before.
func WarpActor(m *game.Mutator, actorId string, room *Room) {
	if from, err := RoomOfActor(m, actorId); err == nil {
		RemoveActorFromRoom(m, actorId, from)
		if from.Id == room.Id {
			room = from
		}
	}

	if !room.HasActor(actorId) {
		room.Actors = append(room.Actors, actorId)
	}
	m.Insert(room)
}

// MoveActor sends the actor through the exit labelled direction of its
// current room.
func MoveActor(m *game.Mutator, actorId string, direction string) error {
	room, err := RoomOfActor(m, actorId)
	if err != nil {
		return err
	}

	destId, ok := room.Exits[direction]
	if !ok {
		return ErrExitNotFound
	}

	dest, ok := storage.Get[Room](m, destId)
	if !ok {
		return ErrNoDestination
	}

	WarpActor(m, actorId, dest)
	return nil
}

// DescribeRoom renders the room as shown to the player.
func DescribeRoom(r storage.Reader, room *Room) string {
	var items []string
	for rec := range ItemsInRoom(r, room) {
		items = append(items, rec.Text("name", rec.Id))
	}

	var exits []string
	for label := range Exits(r, room) {
		exits = append(exits, label)
	}

	var sb strings.Builder
	sb.WriteString("Room: " + room.Name + "\n")
	if room.Description != "" {
		sb.WriteString(display.Wrap(room.Description) + "\n")
	}
	sb.WriteString(display.Labelled("Items", items) + "\n")
	sb.WriteString(display.Labelled("Directions", exits) + "\n")
	return sb.String()
}

// DisplayRoom appends the room description to the out channel.
func DisplayRoom(m *game.Mutator, room *Room) {
	m.AppendResponse(game.ChannelOut, DescribeRoom(m, room))
}

// DisplayPlayerRoom shows the room the player is in.
func DisplayPlayerRoom(m *game.Mutator) error {
	room, err := RoomOfPlayer(m)
	if err != nil {
		return err
	}
	DisplayRoom(m, room)
	return nil
}

// InsertItemInRoom stores item and lists it in room.
func InsertItemInRoom(m *game.Mutator, item storage.Itemizer, room *Room) {
	m.Insert(item)
	if !slices.Contains(room.Items, item.ItemId()) {
		room.Items = append(room.Items, item.ItemId())
	}
	m.Insert(room)
}

// InsertItemInPlayerRoom stores item in the room the player is in.
func InsertItemInPlayerRoom(m *game.Mutator, item storage.Itemizer) error {
	room, err := RoomOfPlayer(m)
	if err != nil {
		return err
	}
	InsertItemInRoom(m, item, room)
	return nil
}
