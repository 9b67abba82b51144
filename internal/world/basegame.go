package world

import "github.com/pixil98/go-esge/internal/storage"

const BaseGameId = "base_game"

// BaseGame is the singleton record holding game-wide settings.
type BaseGame struct {
	// Player is the id of the actor controlled by the player.
	Player string
}

func (b *BaseGame) ItemId() string {
	return BaseGameId
}

func (b *BaseGame) ToRecord() *storage.Record {
	rec := storage.NewRecord(BaseGameId, BaseGameId)
	b.MergeInto(rec)
	return rec
}

func (b *BaseGame) MergeInto(rec *storage.Record) {
	rec.Set("player", storage.Text(b.Player))
}

func (b *BaseGame) FromRecord(rec *storage.Record) bool {
	if rec.Type != BaseGameId {
		return false
	}
	b.Player = rec.Text("player", "")
	return true
}
