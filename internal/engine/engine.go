package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixil98/go-esge/internal"
	"github.com/pixil98/go-esge/internal/commands"
	"github.com/pixil98/go-esge/internal/game"
)

// SubjectPrefix is prepended to a channel name to form its publish subject.
const SubjectPrefix = "esge."

// Publisher provides the ability to publish messages to subjects
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Output is what one command produced.
type Output struct {
	Out  string
	Err  string
	Done bool
}

// Engine serializes access to one game for any number of sessions. Each
// command runs as a one-time action in a tick of its own.
type Engine struct {
	mu      sync.Mutex
	ingame  *game.Ingame
	handler *commands.Handler

	publisher Publisher
	autosave  string
}

func New(g *game.Ingame, h *commands.Handler, opts ...EngineOpt) *Engine {
	e := &Engine{
		ingame:  g,
		handler: h,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Exec parses line, asking for interactive input on term, then runs the
// command. Parse and build failures are returned without advancing the game.
func (e *Engine) Exec(ctx context.Context, term *internal.Terminal, line string) (*Output, error) {
	inv, err := e.handler.Parse(term, line)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return &Output{}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	action, err := inv.Build(ctx, e.ingame)
	if err != nil {
		return nil, err
	}

	e.ingame.AddOneTimeAction(action)
	e.step(ctx)

	if e.autosave != "" {
		if err := e.ingame.Save(e.autosave); err != nil {
			slog.WarnContext(ctx, "autosave failed", "path", e.autosave, "error", err)
		}
	}

	return &Output{
		Out:  e.ingame.Response(game.ChannelOut),
		Err:  e.ingame.Response(game.ChannelErr),
		Done: e.ingame.Response(game.ChannelDone) != "",
	}, nil
}

// Tick advances the game without a command.
func (e *Engine) Tick(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.step(ctx)
	return nil
}

// Save writes the current world to path.
func (e *Engine) Save(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ingame.Save(path); err != nil {
		return fmt.Errorf("saving world: %w", err)
	}
	return nil
}

// Read runs fn with the game locked. fn must not keep the game.
func (e *Engine) Read(fn func(g *game.Ingame)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.ingame)
}

func (e *Engine) step(ctx context.Context) {
	e.ingame.Step(ctx)
	e.publish(ctx)
}

func (e *Engine) publish(ctx context.Context) {
	if e.publisher == nil {
		return
	}
	for _, channel := range e.ingame.Channels() {
		msg := e.ingame.Response(channel)
		if msg == "" {
			continue
		}
		if err := e.publisher.Publish(SubjectPrefix+channel, []byte(msg)); err != nil {
			slog.WarnContext(ctx, "publishing response", "channel", channel, "error", err)
		}
	}
}
