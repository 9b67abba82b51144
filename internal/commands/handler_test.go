package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pixil98/go-esge/internal"
	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/storage"
	"github.com/pixil98/go-esge/internal/world"
	"github.com/pixil98/go-testutil"
)

// fakeConn reads from a fixed input and records everything written.
type fakeConn struct {
	io.Reader
	out bytes.Buffer
}

func (c *fakeConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func terminal(input string) (*internal.Terminal, *fakeConn) {
	conn := &fakeConn{Reader: strings.NewReader(input)}
	return internal.NewTerminal(conn), conn
}

// fakeArchive keeps snapshots in memory.
type fakeArchive struct {
	worlds map[string]string
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{worlds: map[string]string{}}
}

func (a *fakeArchive) Put(_ context.Context, name string, s *storage.Store) error {
	data, err := s.Serialize()
	if err != nil {
		return err
	}
	a.worlds[name] = data
	return nil
}

func (a *fakeArchive) Get(_ context.Context, name string) (*storage.Store, error) {
	data, ok := a.worlds[name]
	if !ok {
		return nil, fmt.Errorf("world %q not archived", name)
	}
	return storage.Deserialize(data)
}

func (a *fakeArchive) List(_ context.Context) ([]string, error) {
	return slices.Sorted(maps.Keys(a.worlds)), nil
}

func defaultHandler(t *testing.T, opts ...HandlerOpt) *Handler {
	t.Helper()
	h := NewHandler(opts...)
	if err := h.RegisterAll(DefaultDefinitions()); err != nil {
		t.Fatalf("registering defaults: %v", err)
	}
	return h
}

// exec runs one command line for a single tick and returns the build error,
// if any.
func exec(t *testing.T, h *Handler, g *game.Ingame, input string, line string) error {
	t.Helper()
	term, _ := terminal(input)

	inv, err := h.Parse(term, line)
	if err != nil {
		return err
	}
	if inv == nil {
		return nil
	}

	action, err := inv.Build(context.Background(), g)
	if err != nil {
		return err
	}
	g.AddOneTimeAction(action)
	g.Step(context.Background())
	return nil
}

func twoRoomGame() *game.Ingame {
	s := world.InitialGenesis("Ada")
	s.Insert(world.NewRoom("north-room").WithName("North"))
	room, _ := storage.Get[world.Room](s, world.GenesisRoomId)
	s.Insert(room.WithExit("north", "north-room"))
	return game.WithStore(s)
}

func TestParseValue(t *testing.T) {
	tests := map[string]struct {
		inputType InputType
		raw       string
		exp       any
		expErr    string
	}{
		"string type": {
			inputType: InputTypeString,
			raw:       "hello world",
			exp:       "hello world",
		},
		"number type valid": {
			inputType: InputTypeNumber,
			raw:       "42",
			exp:       42,
		},
		"number type negative": {
			inputType: InputTypeNumber,
			raw:       "-10",
			exp:       -10,
		},
		"number type invalid": {
			inputType: InputTypeNumber,
			raw:       "abc",
			expErr:    `"abc" is not a valid number.`,
		},
		"number type float rejected": {
			inputType: InputTypeNumber,
			raw:       "3.14",
			expErr:    `"3.14" is not a valid number.`,
		},
		"unknown type": {
			inputType: InputType("bogus"),
			raw:       "test",
			expErr:    `unknown parameter type "bogus"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseValue(tt.inputType, tt.raw)

			if tt.expErr != "" {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.expErr)
					return
				}
				if err.Error() != tt.expErr {
					t.Errorf("error = %q, expected %q", err.Error(), tt.expErr)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if got != tt.exp {
				t.Errorf("got %v, expected %v", got, tt.exp)
			}
		})
	}
}

func TestParseInputs(t *testing.T) {
	tests := map[string]struct {
		specs    []InputSpec
		args     []string
		terminal string
		exp      map[string]any
		expErr   string
		userErr  bool
	}{
		"rest joins words": {
			specs: []InputSpec{
				{Name: "who", Type: InputTypeString, Required: true},
				{Name: "text", Type: InputTypeString, Rest: true},
			},
			args: []string{"bob", "hello", "there"},
			exp:  map[string]any{"who": "bob", "text": "hello there"},
		},
		"optional inputs get zero values": {
			specs: []InputSpec{
				{Name: "text", Type: InputTypeString},
				{Name: "count", Type: InputTypeNumber},
			},
			exp: map[string]any{"text": "", "count": 0},
		},
		"too many args": {
			specs:   []InputSpec{{Name: "dir", Type: InputTypeString}},
			args:    []string{"north", "south"},
			expErr:  "Expected at most 1 argument(s), got 2",
			userErr: true,
		},
		"missing required": {
			specs:   []InputSpec{{Name: "dir", Type: InputTypeString, Required: true}},
			expErr:  "Missing required parameter: dir",
			userErr: true,
		},
		"prompted word": {
			specs:    []InputSpec{{Name: "world", Type: InputTypeString, Prompt: "World name: "}},
			terminal: "pocket\n",
			exp:      map[string]any{"world": "pocket"},
		},
		"lines": {
			specs:    []InputSpec{{Name: "body", Type: InputTypeLines}},
			terminal: "one\ntwo\nEND\n",
			exp:      map[string]any{"body": "one\ntwo"},
		},
		"lines do not count as arguments": {
			specs:    []InputSpec{{Name: "body", Type: InputTypeLines}},
			args:     []string{"extra"},
			terminal: "END\n",
			expErr:   "Expected at most 0 argument(s), got 1",
			userErr:  true,
		},
		"confirm": {
			specs: []InputSpec{
				{Name: "path", Type: InputTypeString, Required: true},
				{Name: "sure", Type: InputTypeConfirm},
			},
			args:     []string{"w.json"},
			terminal: "no\n",
			exp:      map[string]any{"path": "w.json", "sure": false},
		},
		"terminal closed": {
			specs:  []InputSpec{{Name: "body", Type: InputTypeLines}},
			expErr: "reading body",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			term, _ := terminal(tt.terminal)
			got, err := parseInputs(term, tt.specs, tt.args)

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				testutil.AssertEqual(t, "user error", IsUserError(err), tt.userErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.exp, got); diff != "" {
				t.Errorf("inputs mismatch (-exp +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_Register(t *testing.T) {
	valid := func() *Definition { return &Definition{Handler: "look"} }

	tests := map[string]struct {
		keyword string
		def     *Definition
		expErr  string
	}{
		"empty keyword": {
			keyword: " ",
			def:     valid(),
			expErr:  "command keyword cannot be empty",
		},
		"keyword with space": {
			keyword: "look around",
			def:     valid(),
			expErr:  "cannot contain whitespace",
		},
		"duplicate keyword in another case": {
			keyword: "LOOK",
			def:     valid(),
			expErr:  `command "LOOK" already registered`,
		},
		"unknown handler": {
			keyword: "dance",
			def:     &Definition{Handler: "dance"},
			expErr:  `command "dance": unknown handler "dance"`,
		},
		"bad config": {
			keyword: "walk",
			def:     &Definition{Handler: "move"},
			expErr:  "direction is required",
		},
		"bad template": {
			keyword: "shout",
			def:     &Definition{Handler: "message", Config: map[string]any{"message": "{{ .Inputs"}},
			expErr:  "parsing template",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHandler()
			if err := h.Register("look", valid()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertErrorContains(t, h.Register(tt.keyword, tt.def), tt.expErr)
		})
	}
}

func TestHandler_RegisterFactory(t *testing.T) {
	h := NewHandler()

	testutil.AssertErrorContains(t, h.RegisterFactory("", &LookHandlerFactory{}), "handler name cannot be empty")
	testutil.AssertErrorContains(t, h.RegisterFactory("x", nil), "handler factory cannot be nil")
	testutil.AssertErrorContains(t, h.RegisterFactory("look", &LookHandlerFactory{}), `handler factory "look" already registered`)
}

func TestHandler_RegisterAllReportsEveryFailure(t *testing.T) {
	h := NewHandler()
	err := h.RegisterAll(map[string]*Definition{
		"a": {Handler: "nope"},
		"b": {},
	})
	testutil.AssertErrorContains(t, err, `unknown handler "nope"`)
	testutil.AssertErrorContains(t, err, "command handler not set")
}

func TestHandler_Parse(t *testing.T) {
	h := defaultHandler(t)

	tests := map[string]struct {
		line       string
		expKeyword string
		expErr     string
	}{
		"blank line": {
			line: "   ",
		},
		"known command": {
			line:       "look",
			expKeyword: "look",
		},
		"case folded": {
			line:       "LoOk",
			expKeyword: "look",
		},
		"unknown command": {
			line:   "dance wildly",
			expErr: "Could not find command 'dance'",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			term, _ := terminal("")
			inv, err := h.Parse(term, tt.line)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				testutil.AssertEqual(t, "user error", IsUserError(err), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expKeyword == "" {
				if inv != nil {
					t.Errorf("expected no invocation, got %q", inv.Keyword())
				}
				return
			}
			testutil.AssertEqual(t, "keyword", inv.Keyword(), tt.expKeyword)
		})
	}
}

func TestCommands_Output(t *testing.T) {
	tests := map[string]struct {
		line    string
		input   string
		expOut  string
		expErr  string
		expDone string
	}{
		"look": {
			line:   "look",
			expOut: "Room: Genesis\n",
		},
		"go": {
			line:   "go north",
			expOut: "Room: North\n",
		},
		"go nowhere": {
			line:   "go west",
			expErr: world.ErrExitNotFound.Error(),
		},
		"echo": {
			line:   "echo hello   world",
			expOut: "hello world\n",
		},
		"say uses the player": {
			line:   "say hi",
			expOut: "Ada says \"hi\"\n",
		},
		"err default": {
			line:   "err",
			expErr: "Test\n",
		},
		"quit": {
			line:    "quit",
			expOut:  "Goodbye.\n",
			expDone: "true",
		},
		"store": {
			line:   "store",
			expOut: `{"id":"genesis-store"`,
		},
		"help list": {
			line:   "help",
			expOut: "Available commands:\n  Building: add_exit, dig, empty_world, redescribe_room, rename_room\n",
		},
		"help command": {
			line:   "help go",
			expOut: "go: Walk through an exit.\nUsage: go <direction>\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := twoRoomGame()
			if err := exec(t, defaultHandler(t), g, tt.input, tt.line); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !strings.HasPrefix(g.Response(game.ChannelOut), tt.expOut) {
				t.Errorf("out = %q, expected prefix %q", g.Response(game.ChannelOut), tt.expOut)
			}
			testutil.AssertEqual(t, "err", g.Response(game.ChannelErr), tt.expErr)
			testutil.AssertEqual(t, "done", g.Response(game.ChannelDone), tt.expDone)
		})
	}
}

func TestCommands_BuildErrors(t *testing.T) {
	tests := map[string]struct {
		line   string
		expErr string
	}{
		"help unknown": {
			line:   "help dance",
			expErr: `Command "dance" is unknown.`,
		},
		"go missing direction": {
			line:   "go",
			expErr: "Missing required parameter: direction",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := exec(t, defaultHandler(t), twoRoomGame(), "", tt.line)
			testutil.AssertErrorContains(t, err, tt.expErr)
			testutil.AssertEqual(t, "user error", IsUserError(err), true)
		})
	}
}

func TestCommands_Building(t *testing.T) {
	h := defaultHandler(t)
	g := twoRoomGame()

	steps := []struct {
		line  string
		input string
	}{
		{line: "rename_room Great Hall"},
		{line: "redescribe_room", input: "High ceilings.\nDusty.\nEND\n"},
		{line: "add_exit down cellar"},
		{line: "dig up down Attic"},
	}
	for _, s := range steps {
		if err := exec(t, h, g, s.input, s.line); err != nil {
			t.Fatalf("%s: unexpected error: %v", s.line, err)
		}
		testutil.AssertEqual(t, s.line+" err", g.Response(game.ChannelErr), "")
	}

	room, err := world.RoomOfPlayer(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "name", room.Name, "Great Hall")
	testutil.AssertEqual(t, "description", room.Description, "High ceilings.\nDusty.")
	if diff := cmp.Diff([]string{"down", "north", "up"}, room.ExitLabels()); diff != "" {
		t.Errorf("exits mismatch (-exp +got):\n%s", diff)
	}

	if err := exec(t, h, g, "", "go up"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attic, _ := world.RoomOfPlayer(g)
	testutil.AssertEqual(t, "dug room", attic.Name, "Attic")
	testutil.AssertEqual(t, "way back", attic.Exits["down"], world.GenesisRoomId)
}

func TestCommands_EmptyWorldPrompts(t *testing.T) {
	g := twoRoomGame()

	if err := exec(t, defaultHandler(t), g, "pocket\n", "empty_world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nested, ok := storage.Get[storage.Store](g, "pocket")
	if !ok {
		t.Fatal("expected nested world")
	}
	player, err := world.Player(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "nested player", player.Name, "Ada")
}

func TestCommands_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	h := defaultHandler(t, WithSaveDir(dir))
	g := twoRoomGame()

	if err := exec(t, h, g, "", "save slot1.json.zst"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "save out", g.Response(game.ChannelOut), "Saved world to "+filepath.Join(dir, "slot1.json.zst")+".\n")

	if err := exec(t, h, g, "", "rename_room Changed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := exec(t, h, g, "yes\n", "load slot1.json.zst"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "load err", g.Response(game.ChannelErr), "")

	room, _ := world.RoomOfPlayer(g)
	testutil.AssertEqual(t, "restored name", room.Name, "Genesis")
}

func TestCommands_LoadFailures(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		line       string
		input      string
		expBuild   string
		expRuntime string
	}{
		"cancelled": {
			line:     "load w.json",
			input:    "n\n",
			expBuild: "Load cancelled.",
		},
		"escapes save dir": {
			line:     "load ../w.json",
			input:    "y\n",
			expBuild: "is outside the save directory",
		},
		"missing file keeps world": {
			line:       "load missing.json",
			input:      "y\n",
			expRuntime: "loading world: reading file",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := twoRoomGame()
			err := exec(t, defaultHandler(t, WithSaveDir(dir)), g, tt.input, tt.line)

			if tt.expBuild != "" {
				testutil.AssertErrorContains(t, err, tt.expBuild)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertErrorContains(t, errors.New(g.Response(game.ChannelErr)), tt.expRuntime)
			testutil.AssertEqual(t, "world kept", g.Id(), "genesis-store")
		})
	}
}

func TestCommands_ArchiveRestore(t *testing.T) {
	archive := newFakeArchive()
	h := defaultHandler(t, WithArchive(archive))
	if err := h.RegisterAll(ArchiveDefinitions()); err != nil {
		t.Fatalf("registering archive commands: %v", err)
	}
	g := twoRoomGame()

	err := exec(t, h, g, "", "restore")
	testutil.AssertErrorContains(t, err, "There are no archived worlds.")

	if err := exec(t, h, g, "", "archive before"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "archive out", g.Response(game.ChannelOut), "Archived world as before.\n")

	if err := exec(t, h, g, "", "rename_room After"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := exec(t, h, g, "", "restore"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "list out", g.Response(game.ChannelOut), "Archived worlds: before\n")

	if err := exec(t, h, g, "", "restore before"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	room, _ := world.RoomOfPlayer(g)
	testutil.AssertEqual(t, "restored name", room.Name, "Genesis")

	if err := exec(t, h, g, "", "restore nothing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertErrorContains(t, errors.New(g.Response(game.ChannelErr)), `world "nothing" not archived`)
}
