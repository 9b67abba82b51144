package world

import "github.com/pixil98/go-esge/internal/storage"

const ActorType = "actor"

// Actor is a living creature in the world, such as the player or an NPC.
type Actor struct {
	Id          string
	Name        string
	Description string
}

func (a *Actor) ItemId() string {
	return a.Id
}

func (a *Actor) ToRecord() *storage.Record {
	rec := storage.NewRecord(ActorType, a.Id)
	a.MergeInto(rec)
	return rec
}

func (a *Actor) MergeInto(rec *storage.Record) {
	rec.Set("name", storage.Text(a.Name))
	rec.Set("desc", storage.Text(a.Description))
}

func (a *Actor) FromRecord(rec *storage.Record) bool {
	if rec.Type != ActorType {
		return false
	}
	a.Id = rec.Id
	a.Name = rec.Text("name", "")
	a.Description = rec.Text("desc", "")
	return true
}
