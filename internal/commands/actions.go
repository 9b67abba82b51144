package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/storage"
)

// Archive stores named snapshots of a world.
type Archive interface {
	Put(ctx context.Context, name string, s *storage.Store) error
	Get(ctx context.Context, name string) (*storage.Store, error)
	List(ctx context.Context) ([]string, error)
}

// say appends msg to channel as a line of its own.
func say(m *game.Mutator, channel string, msg string) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	m.AppendResponse(channel, msg)
}

// Message expands a template against the current game and writes it to a
// channel.
type Message struct {
	Channel  string
	Template string
	Inputs   map[string]any
}

func (a Message) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	text, err := ExpandTemplate(a.Template, newRuntimeContext(m, a.Inputs))
	if err != nil {
		return fmt.Errorf("expanding message: %w", err)
	}
	say(m, a.Channel, text)
	return nil
}

// Quit ends the session.
type Quit struct {
	Message string
}

func (a Quit) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	if a.Message != "" {
		say(m, game.ChannelOut, a.Message)
	}
	m.SetResponse(game.ChannelDone, "true")
	return nil
}

// ShowWorld writes the serialized store to the out channel.
type ShowWorld struct{}

func (ShowWorld) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	data, err := m.Ingame().Serialize()
	if err != nil {
		return fmt.Errorf("serializing world: %w", err)
	}
	say(m, game.ChannelOut, data)
	return nil
}

// SaveWorld writes the store to a file.
type SaveWorld struct {
	Path string
}

func (a SaveWorld) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	if err := m.Ingame().Save(a.Path); err != nil {
		return fmt.Errorf("saving world: %w", err)
	}
	say(m, game.ChannelOut, fmt.Sprintf("Saved world to %s.", a.Path))
	return nil
}

// LoadWorld replaces the store with one read from a file. The current world
// is kept when the file cannot be loaded.
type LoadWorld struct {
	Path string
}

func (a LoadWorld) Run(_ context.Context, m *game.Mutator, _ game.Handle) error {
	s, err := storage.LoadFile(a.Path)
	if err != nil {
		return fmt.Errorf("loading world: %w", err)
	}
	m.Replace(s)
	say(m, game.ChannelOut, fmt.Sprintf("Loaded world %s.", s.Id()))
	return nil
}

// ArchiveWorld stores a snapshot of the store under a name.
type ArchiveWorld struct {
	Archive Archive
	Name    string
}

func (a ArchiveWorld) Run(ctx context.Context, m *game.Mutator, _ game.Handle) error {
	if err := a.Archive.Put(ctx, a.Name, m.Ingame().Store()); err != nil {
		return fmt.Errorf("archiving world: %w", err)
	}
	say(m, game.ChannelOut, fmt.Sprintf("Archived world as %s.", a.Name))
	return nil
}

// RestoreWorld replaces the store with a named snapshot.
type RestoreWorld struct {
	Archive Archive
	Name    string
}

func (a RestoreWorld) Run(ctx context.Context, m *game.Mutator, _ game.Handle) error {
	s, err := a.Archive.Get(ctx, a.Name)
	if err != nil {
		return fmt.Errorf("restoring world: %w", err)
	}
	m.Replace(s)
	say(m, game.ChannelOut, fmt.Sprintf("Restored world %s.", a.Name))
	return nil
}
