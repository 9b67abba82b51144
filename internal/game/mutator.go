package game

import (
	"iter"

	"github.com/pixil98/go-esge/internal/storage"
)

// Mutator gives an action write access to the game while it runs. It is not
// valid after the action returns.
type Mutator struct {
	ingame *Ingame
}

func (m *Mutator) target() *Ingame {
	if m.ingame == nil {
		panic("game: mutator used after its action returned")
	}
	return m.ingame
}

func (m *Mutator) release() {
	m.ingame = nil
}

// Ingame returns the read-only view of the game.
func (m *Mutator) Ingame() *Ingame {
	return m.target()
}

func (m *Mutator) Lookup(id string) (*storage.Record, bool) {
	return m.target().Lookup(id)
}

func (m *Mutator) Records() iter.Seq[*storage.Record] {
	return m.target().Records()
}

// Insert stores it, merging into an existing record with the same id.
func (m *Mutator) Insert(it storage.Itemizer) {
	m.target().store.Insert(it)
}

// Replace swaps the whole store, e.g. after loading a saved world.
func (m *Mutator) Replace(s *storage.Store) {
	m.target().store = s
}

func (m *Mutator) AddAction(a Action) Handle {
	return m.target().AddAction(a)
}

func (m *Mutator) AddOneTimeAction(a Action) {
	m.target().AddOneTimeAction(a)
}

func (m *Mutator) RemoveAction(h Handle) {
	m.target().RemoveAction(h)
}

// SetResponse overwrites channel with msg.
func (m *Mutator) SetResponse(channel string, msg string) {
	m.target().response.set(channel, msg)
}

// AppendResponse adds msg to the end of channel.
func (m *Mutator) AppendResponse(channel string, msg string) {
	m.target().response.append(channel, msg)
}

func (m *Mutator) Response(channel string) string {
	return m.target().Response(channel)
}
