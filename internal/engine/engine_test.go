package engine

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pixil98/go-esge/internal"
	"github.com/pixil98/go-esge/internal/commands"
	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/storage"
	"github.com/pixil98/go-esge/internal/world"
	"github.com/pixil98/go-testutil"
)

type published struct {
	Subject string
	Data    string
}

// recordingPublisher records every published message.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{Subject: subject, Data: string(data)})
	return nil
}

type fakeConn struct {
	io.Reader
	out bytes.Buffer
}

func (c *fakeConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func terminal(input string) *internal.Terminal {
	return internal.NewTerminal(&fakeConn{Reader: strings.NewReader(input)})
}

func newEngine(t *testing.T, opts ...EngineOpt) *Engine {
	t.Helper()
	h := commands.NewHandler()
	if err := h.RegisterAll(commands.DefaultDefinitions()); err != nil {
		t.Fatalf("registering commands: %v", err)
	}
	return New(game.WithStore(world.InitialGenesis("Ada")), h, opts...)
}

func TestEngine_Exec(t *testing.T) {
	tests := map[string]struct {
		line   string
		exp    *Output
		expErr string
	}{
		"blank line": {
			line: "",
			exp:  &Output{},
		},
		"echo": {
			line: "echo hi",
			exp:  &Output{Out: "hi\n"},
		},
		"err channel": {
			line: "err oops",
			exp:  &Output{Err: "oops\n"},
		},
		"quit": {
			line: "quit",
			exp:  &Output{Out: "Goodbye.\n", Done: true},
		},
		"unknown": {
			line:   "dance",
			expErr: "Could not find command 'dance'",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEngine(t)
			got, err := e.Exec(context.Background(), terminal(""), tt.line)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.exp, got); diff != "" {
				t.Errorf("output mismatch (-exp +got):\n%s", diff)
			}
		})
	}
}

func TestEngine_FailedBuildDoesNotTick(t *testing.T) {
	e := newEngine(t)
	ticks := 0
	e.Read(func(g *game.Ingame) {
		g.AddAction(game.ActionFunc(func(context.Context, *game.Mutator, game.Handle) error {
			ticks++
			return nil
		}))
	})

	if _, err := e.Exec(context.Background(), terminal(""), "help nothing"); err == nil {
		t.Fatal("expected an error")
	}
	testutil.AssertEqual(t, "ticks", ticks, 0)

	if _, err := e.Exec(context.Background(), terminal(""), "look"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "ticks", ticks, 1)
}

func TestEngine_Publishes(t *testing.T) {
	pub := &recordingPublisher{}
	e := newEngine(t, WithPublisher(pub))

	if _, err := e.Exec(context.Background(), terminal(""), "echo hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exp := []published{{Subject: "esge.out", Data: "hello\n"}}
	if diff := cmp.Diff(exp, pub.msgs); diff != "" {
		t.Errorf("published mismatch (-exp +got):\n%s", diff)
	}
}

func TestEngine_Autosave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto.json")
	e := newEngine(t, WithAutosave(path))

	if _, err := e.Exec(context.Background(), terminal(""), "rename_room Saved Hall"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := storage.LoadFile(path)
	if err != nil {
		t.Fatalf("loading autosave: %v", err)
	}
	room, _ := world.RoomOfPlayer(s)
	testutil.AssertEqual(t, "saved name", room.Name, "Saved Hall")
}

func TestEngine_ConcurrentSessions(t *testing.T) {
	e := newEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				out, err := e.Exec(context.Background(), terminal(""), "echo ping")
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if out.Out != "ping\n" {
					t.Errorf("out = %q, expected only this session's output", out.Out)
				}
			}
		}()
	}
	wg.Wait()
}
