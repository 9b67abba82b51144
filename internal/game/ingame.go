package game

import (
	"context"
	"iter"
	"log/slog"

	"github.com/pixil98/go-esge/internal/storage"
)

// Ingame holds the complete game state: the entity store, the scheduled
// actions and the responses of the last tick.
//
// Ingame itself only offers reads and scheduling. The state is changed by
// actions, which receive a Mutator for the duration of one run.
type Ingame struct {
	store    *storage.Store
	actions  *actions
	response *response
}

// New creates an Ingame with an empty store.
func New(id string) *Ingame {
	return WithStore(storage.NewStore(id))
}

// WithStore creates an Ingame around an existing store.
func WithStore(s *storage.Store) *Ingame {
	return &Ingame{
		store:    s,
		actions:  newActions(),
		response: newResponse(),
	}
}

// FromJSON creates an Ingame from a document written by Serialize.
func FromJSON(data string) (*Ingame, error) {
	s, err := storage.Deserialize(data)
	if err != nil {
		return nil, err
	}
	return WithStore(s), nil
}

// Id returns the id of the underlying store.
func (g *Ingame) Id() string {
	return g.store.Id()
}

func (g *Ingame) Lookup(id string) (*storage.Record, bool) {
	return g.store.Lookup(id)
}

func (g *Ingame) Records() iter.Seq[*storage.Record] {
	return g.store.Records()
}

// Response returns what was written to channel during the last tick.
func (g *Ingame) Response(channel string) string {
	return g.response.Get(channel)
}

// Channels returns the channels written during the last tick.
func (g *Ingame) Channels() []string {
	return g.response.Channels()
}

// Serialize renders the store as JSON.
func (g *Ingame) Serialize() (string, error) {
	return g.store.Serialize()
}

// Save writes the store to a file.
func (g *Ingame) Save(path string) error {
	return storage.SaveFile(path, g.store)
}

// Store returns a copy of the store, detached from the game.
func (g *Ingame) Store() *storage.Store {
	s := storage.NewStore(g.store.Id())
	for rec := range g.store.Records() {
		s.Insert(rec)
	}
	return s
}

// AddAction schedules a persistent action starting with the next tick and
// returns its handle.
func (g *Ingame) AddAction(a Action) Handle {
	return g.actions.add(a)
}

// AddOneTimeAction schedules an action to run once on the next tick.
func (g *Ingame) AddOneTimeAction(a Action) {
	g.actions.addOneTime(a)
}

// RemoveAction stops the persistent action h from the next tick on.
// Removing an unknown or already removed handle does nothing.
func (g *Ingame) RemoveAction(h Handle) {
	g.actions.remove(h)
}

// ActionCount returns the number of live persistent actions.
func (g *Ingame) ActionCount() int {
	return g.actions.liveCount()
}

// Mutate runs fn with a Mutator outside of a tick, e.g. to load a world.
func (g *Ingame) Mutate(fn func(m *Mutator) error) error {
	m := &Mutator{ingame: g}
	defer m.release()
	return fn(m)
}

// Step advances the game by one tick: responses are cleared, pending
// scheduler changes are applied, then every persistent action and every
// queued one-time action is run.
func (g *Ingame) Step(ctx context.Context) {
	g.response.clear()
	g.actions.apply()

	for _, s := range g.actions.detachLive() {
		g.run(ctx, s.action, s.handle)
	}

	for _, a := range g.actions.detachOneTime() {
		g.run(ctx, a, 0)
	}
}

// Tick steps the game; it lets an Ingame be driven by a ticker.
func (g *Ingame) Tick(ctx context.Context) error {
	g.Step(ctx)
	return nil
}

func (g *Ingame) run(ctx context.Context, a Action, h Handle) {
	m := &Mutator{ingame: g}
	err := a.Run(ctx, m, h)
	m.release()

	if err != nil {
		slog.DebugContext(ctx, "action failed", "handle", h, "error", err)
		g.reportError(err)
	}
}

func (g *Ingame) reportError(err error) {
	msg := err.Error()
	if msg == "" {
		return
	}
	if g.response.Get(ChannelErr) != "" {
		g.response.append(ChannelErr, "\n")
	}
	g.response.append(ChannelErr, msg)
}
