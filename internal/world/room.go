package world

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/pixil98/go-esge/internal/storage"
)

const RoomType = "room"

// Room is a place in the world. Items, actors and exit destinations are
// referenced by id and resolved through the store when used; a reference
// to a missing record is simply skipped.
type Room struct {
	Id          string
	Name        string
	Description string
	Items       []string
	Actors      []string
	// Exits maps an exit label to the id of the room behind it.
	Exits map[string]string
}

func NewRoom(id string) *Room {
	return &Room{
		Id:     id,
		Items:  []string{},
		Actors: []string{},
		Exits:  map[string]string{},
	}
}

func (r *Room) WithName(name string) *Room {
	r.Name = name
	return r
}

func (r *Room) WithDescription(desc string) *Room {
	r.Description = desc
	return r
}

func (r *Room) WithExit(label string, roomId string) *Room {
	if r.Exits == nil {
		r.Exits = map[string]string{}
	}
	r.Exits[label] = roomId
	return r
}

// ExitLabels returns the exit labels in sorted order.
func (r *Room) ExitLabels() []string {
	return slices.Sorted(maps.Keys(r.Exits))
}

// HasActor reports whether the actor id is listed in the room.
func (r *Room) HasActor(id string) bool {
	return slices.Contains(r.Actors, id)
}

func (r *Room) ItemId() string {
	return r.Id
}

func (r *Room) ToRecord() *storage.Record {
	rec := storage.NewRecord(RoomType, r.Id)
	r.MergeInto(rec)
	return rec
}

func (r *Room) MergeInto(rec *storage.Record) {
	exits := r.Exits
	if exits == nil {
		exits = map[string]string{}
	}
	// A map of strings always marshals.
	b, _ := json.Marshal(exits)

	rec.Set("name", storage.Text(r.Name))
	rec.Set("desc", storage.Text(r.Description))
	rec.Set("items", storage.TextVec(slices.Clone(r.Items)))
	rec.Set("actors", storage.TextVec(slices.Clone(r.Actors)))
	rec.Set("exits", storage.Text(b))
}

func (r *Room) FromRecord(rec *storage.Record) bool {
	if rec.Type != RoomType {
		return false
	}

	exits := map[string]string{}
	if raw := rec.Text("exits", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &exits); err != nil {
			return false
		}
		if exits == nil {
			exits = map[string]string{}
		}
	}

	r.Id = rec.Id
	r.Name = rec.Text("name", "")
	r.Description = rec.Text("desc", "")
	r.Items = rec.TextVec("items")
	r.Actors = rec.TextVec("actors")
	r.Exits = exits
	return true
}
