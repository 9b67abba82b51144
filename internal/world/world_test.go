package world

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pixil98/go-esge/internal/game"
	"github.com/pixil98/go-esge/internal/storage"
	"github.com/pixil98/go-testutil"
)

// twoRooms builds a world with the player in "hall", which has an exit
// north to "library" and a dangling exit east.
func twoRooms() *storage.Store {
	s := InitialGenesis("Ada")
	s.Insert(NewRoom("hall").
		WithName("Hall").
		WithExit("north", "library").
		WithExit("east", "nowhere"))
	s.Insert(NewRoom("library").WithName("Library").WithExit("south", "hall"))

	lamp := storage.NewRecord("item", "lamp")
	lamp.Set("name", storage.Text("brass lamp"))
	s.Insert(lamp)

	hall, _ := storage.Get[Room](s, "hall")
	hall.Items = []string{"lamp", "gone"}
	hall.Actors = []string{PlayerActorId}
	s.Insert(hall)

	genesis, _ := storage.Get[Room](s, GenesisRoomId)
	genesis.Actors = nil
	s.Insert(genesis)
	return s
}

func recordWith(recordType string, key string, v storage.Value) *storage.Record {
	rec := storage.NewRecord(recordType, "r1")
	rec.Set(key, v)
	return rec
}

func step(t *testing.T, g *game.Ingame, a game.Action) {
	t.Helper()
	g.AddOneTimeAction(a)
	g.Step(context.Background())
}

func TestRoom_RecordRoundTrip(t *testing.T) {
	room := NewRoom("r1").
		WithName("Cellar").
		WithDescription("Damp.").
		WithExit("up", "r2")
	room.Items = []string{"i1"}
	room.Actors = []string{"a1"}

	got, ok := storage.Get[Room](storage.NewStore("w").With(room), "r1")
	if !ok {
		t.Fatal("expected room to parse")
	}
	if diff := cmp.Diff(room, got); diff != "" {
		t.Errorf("room mismatch (-exp +got):\n%s", diff)
	}
}

func TestRoom_FromRecord(t *testing.T) {
	tests := map[string]struct {
		rec   *storage.Record
		expOk bool
	}{
		"wrong type": {
			rec:   storage.NewRecord(ActorType, "x"),
			expOk: false,
		},
		"bare room": {
			rec:   storage.NewRecord(RoomType, "x"),
			expOk: true,
		},
		"malformed exits": {
			rec:   recordWith(RoomType, "exits", storage.Text("{nope")),
			expOk: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var r Room
			testutil.AssertEqual(t, "ok", r.FromRecord(tt.rec), tt.expOk)
			if tt.expOk && r.Exits == nil {
				t.Error("expected non-nil exits")
			}
		})
	}
}

func TestRoom_MergeKeepsForeignFields(t *testing.T) {
	rec := recordWith(RoomType, "owner", storage.Text("ada"))
	s := storage.NewStore("w").With(rec)

	s.Insert(NewRoom("r1").WithName("Renamed"))

	got, _ := s.Lookup("r1")
	testutil.AssertEqual(t, "owner", got.Text("owner", ""), "ada")
	testutil.AssertEqual(t, "name", got.Text("name", ""), "Renamed")
}

func TestQueries(t *testing.T) {
	s := twoRooms()

	player, err := Player(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "player name", player.Name, "Ada")

	room, err := RoomOfPlayer(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "room", room.Id, "hall")

	var labels []string
	for label, dest := range Exits(s, room) {
		labels = append(labels, label+">"+dest.Id)
	}
	if diff := cmp.Diff([]string{"north>library"}, labels); diff != "" {
		t.Errorf("exits mismatch (-exp +got):\n%s", diff)
	}

	var items []string
	for rec := range ItemsInRoom(s, room) {
		items = append(items, rec.Id)
	}
	if diff := cmp.Diff([]string{"lamp"}, items); diff != "" {
		t.Errorf("items mismatch (-exp +got):\n%s", diff)
	}

	var actors []string
	for a := range ActorsInRoom(s, room) {
		actors = append(actors, a.Name)
	}
	if diff := cmp.Diff([]string{"Ada"}, actors); diff != "" {
		t.Errorf("actors mismatch (-exp +got):\n%s", diff)
	}
}

func TestQueries_Errors(t *testing.T) {
	tests := map[string]struct {
		store  *storage.Store
		expErr error
	}{
		"no base game": {
			store:  storage.NewStore("w"),
			expErr: ErrBaseGameNotFound,
		},
		"dangling player": {
			store:  storage.NewStore("w").With(&BaseGame{Player: "ghost"}),
			expErr: ErrPlayerNotFound,
		},
		"player nowhere": {
			store: storage.NewStore("w").
				With(&BaseGame{Player: "p"}).
				With(&Actor{Id: "p"}),
			expErr: ErrRoomNotFound,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := RoomOfPlayer(tt.store)
			if !errors.Is(err, tt.expErr) {
				t.Errorf("expected %v, got %v", tt.expErr, err)
			}
		})
	}
}

func TestMovePlayer(t *testing.T) {
	g := game.WithStore(twoRooms())

	step(t, g, MovePlayer{Direction: "north"})

	testutil.AssertEqual(t, "err", g.Response(game.ChannelErr), "")
	room, err := RoomOfPlayer(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "room", room.Id, "library")

	hall, _ := storage.Get[Room](g, "hall")
	if hall.HasActor(PlayerActorId) {
		t.Error("player still listed in the hall")
	}
	if !strings.HasPrefix(g.Response(game.ChannelOut), "Room: Library\n") {
		t.Errorf("unexpected out %q", g.Response(game.ChannelOut))
	}
}

func TestMovePlayer_Errors(t *testing.T) {
	tests := map[string]struct {
		direction string
		expErr    string
	}{
		"unknown exit": {
			direction: "west",
			expErr:    ErrExitNotFound.Error(),
		},
		"dangling exit": {
			direction: "east",
			expErr:    ErrNoDestination.Error(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := game.WithStore(twoRooms())
			step(t, g, MovePlayer{Direction: tt.direction})

			testutil.AssertEqual(t, "err", g.Response(game.ChannelErr), tt.expErr)
			room, _ := RoomOfPlayer(g)
			testutil.AssertEqual(t, "room", room.Id, "hall")
		})
	}
}

func TestWarpActor_SameRoom(t *testing.T) {
	g := game.WithStore(twoRooms())

	err := g.Mutate(func(m *game.Mutator) error {
		hall, _ := storage.Get[Room](m, "hall")
		WarpActor(m, PlayerActorId, hall)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hall, _ := storage.Get[Room](g, "hall")
	if diff := cmp.Diff([]string{PlayerActorId}, hall.Actors); diff != "" {
		t.Errorf("actors mismatch (-exp +got):\n%s", diff)
	}
}

func TestDisplayCurrentRoom(t *testing.T) {
	g := game.WithStore(twoRooms())

	step(t, g, DisplayCurrentRoom{})

	exp := "Room: Hall\nItems: brass lamp\nDirections: north\n"
	testutil.AssertEqual(t, "out", g.Response(game.ChannelOut), exp)
}

func TestAddExit(t *testing.T) {
	tests := map[string]struct {
		roomId   string
		expErr   string
		expName  string
		expExits []string
	}{
		"creates missing destination": {
			roomId:   "cellar",
			expName:  "cellar",
			expExits: []string{"down", "east", "north"},
		},
		"keeps existing destination": {
			roomId:   "library",
			expName:  "Library",
			expExits: []string{"down", "east", "north"},
		},
		"refuses an actor id": {
			roomId:   PlayerActorId,
			expErr:   "player-actor is not a room",
			expExits: []string{"east", "north"},
		},
		"refuses an item id": {
			roomId:   "lamp",
			expErr:   "lamp is not a room",
			expExits: []string{"east", "north"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := game.WithStore(twoRooms())
			before, _ := g.Lookup(tt.roomId)

			step(t, g, AddExit{Label: "down", RoomId: tt.roomId})

			room, _ := RoomOfPlayer(g)
			if diff := cmp.Diff(tt.expExits, room.ExitLabels()); diff != "" {
				t.Errorf("exits mismatch (-exp +got):\n%s", diff)
			}

			if tt.expErr != "" {
				testutil.AssertEqual(t, "err", g.Response(game.ChannelErr), tt.expErr)
				after, _ := g.Lookup(tt.roomId)
				if diff := cmp.Diff(before, after); diff != "" {
					t.Errorf("record changed (-before +after):\n%s", diff)
				}
				return
			}

			testutil.AssertEqual(t, "err", g.Response(game.ChannelErr), "")
			dest, ok := storage.Get[Room](g, tt.roomId)
			if !ok {
				t.Fatal("expected destination room")
			}
			testutil.AssertEqual(t, "name", dest.Name, tt.expName)
		})
	}
}

func TestAddExit_ThenMove(t *testing.T) {
	g := game.WithStore(twoRooms())

	step(t, g, AddExit{Label: "down", RoomId: "cellar"})
	step(t, g, MovePlayer{Direction: "down"})

	room, _ := RoomOfPlayer(g)
	testutil.AssertEqual(t, "room", room.Id, "cellar")
}

func TestDig(t *testing.T) {
	g := game.WithStore(twoRooms())

	step(t, g, Dig{Label: "down", Back: "up", Name: "Cellar"})
	testutil.AssertEqual(t, "err", g.Response(game.ChannelErr), "")

	step(t, g, MovePlayer{Direction: "down"})
	room, _ := RoomOfPlayer(g)
	testutil.AssertEqual(t, "name", room.Name, "Cellar")
	testutil.AssertEqual(t, "back exit", room.Exits["up"], "hall")

	step(t, g, Dig{Label: "up"})
	testutil.AssertErrorContains(t, errors.New(g.Response(game.ChannelErr)), `exit "up" already exists`)
}

func TestRenameAndRedescribe(t *testing.T) {
	g := game.WithStore(twoRooms())

	g.AddOneTimeAction(RenameRoom{Name: "Great Hall"})
	g.AddOneTimeAction(RedescribeRoom{Description: "Tall windows."})
	g.Step(context.Background())

	room, _ := RoomOfPlayer(g)
	testutil.AssertEqual(t, "name", room.Name, "Great Hall")
	testutil.AssertEqual(t, "desc", room.Description, "Tall windows.")
	testutil.AssertEqual(t, "items kept", len(room.Items), 2)
}

func TestInsertEmptyWorld(t *testing.T) {
	g := game.WithStore(twoRooms())

	step(t, g, InsertEmptyWorld{PlayerName: "Bob", WorldName: "pocket"})
	testutil.AssertEqual(t, "err", g.Response(game.ChannelErr), "")

	room, _ := RoomOfPlayer(g)
	if diff := cmp.Diff([]string{"lamp", "gone", "pocket"}, room.Items); diff != "" {
		t.Errorf("items mismatch (-exp +got):\n%s", diff)
	}

	nested, ok := storage.Get[storage.Store](g, "pocket")
	if !ok {
		t.Fatal("expected nested world")
	}
	player, err := Player(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "nested player", player.Name, "Bob")
}

func TestEmptyWorld_GeneratesId(t *testing.T) {
	a := EmptyWorld("p", "")
	b := EmptyWorld("p", "")
	if a.Id() == "" || a.Id() == b.Id() {
		t.Errorf("expected distinct generated ids, got %q and %q", a.Id(), b.Id())
	}
}

func TestInitPackages(t *testing.T) {
	ran := 0
	counting := Package{
		Name: "counter",
		Init: game.ActionFunc(func(context.Context, *game.Mutator, game.Handle) error {
			ran++
			return nil
		}),
	}

	g, err := InitPackages(InitialGenesis("Ada"), BasePackage(), counting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g.Step(context.Background())
	g.Step(context.Background())
	testutil.AssertEqual(t, "init runs", ran, 2)
}

func TestInitPackages_CheckFails(t *testing.T) {
	g, err := InitPackages(storage.NewStore("empty"), BasePackage())
	if g != nil {
		t.Error("expected no game")
	}
	testutil.AssertErrorContains(t, err, "package base: could not find base_game")
}
