package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/viewsync"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapMap(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name       string
		msg        tea.KeyMsg
		players    int
		wantPlayer core.PlayerID
		wantAction core.Action
	}{
		{"wasd up", runes("w"), 2, core.Player1, core.ActionUp},
		{"wasd right", runes("d"), 2, core.Player1, core.ActionRight},
		{"arrow left duel", tea.KeyMsg{Type: tea.KeyLeft}, 2, core.Player2, core.ActionLeft},
		{"arrow left solo", tea.KeyMsg{Type: tea.KeyLeft}, 1, core.Player1, core.ActionLeft},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, 2, core.Player2, core.ActionDown},
		{"quit q", runes("q"), 1, core.NoPlayer, core.ActionQuit},
		{"quit ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, 1, core.NoPlayer, core.ActionQuit},
		{"help", runes("?"), 1, core.NoPlayer, core.ActionHelp},
		{"unbound", runes("x"), 1, core.NoPlayer, core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, a := km.Map(tt.msg, tt.players)
			if p != tt.wantPlayer || a != tt.wantAction {
				t.Errorf("Map(%q) = %v, %v, want %v, %v", tt.msg.String(), p, a, tt.wantPlayer, tt.wantAction)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
	if got := km.P2.Up.Help().Key; got != "↑" {
		t.Errorf("P2 up help key = %q, want ↑", got)
	}
}

// testState is a 5x5 maze with a wall border opening on the right.
//
//	#####
//	#1.T#
//	#.C.2
//	#...#
//	#####
func testState() *viewsync.ViewState {
	W, P, T, C := maze.Wall, maze.Path, maze.TurretSpawn, maze.Checkpoint
	g := maze.MustGrid([][]maze.Tile{
		{W, W, W, W, W},
		{W, maze.P1Spawn, P, T, W},
		{W, P, C, P, maze.P2Spawn},
		{W, P, P, P, W},
		{W, W, W, W, W},
	})
	return &viewsync.ViewState{
		Mode:    "solo",
		Maze:    maze.Identity{Generation: 1, Name: "test"},
		Grid:    g,
		Turrets: []maze.Coord{maze.C(3, 1)},
		Bullets: []viewsync.BulletView{{Tile: maze.C(3, 2), Dir: maze.DirDown}},
		Players: []viewsync.PlayerView{{ID: core.Player1, Tile: maze.C(1, 1), Color: core.ColorBlue}},
		Exit:    maze.C(4, 2),
		Phase:   viewsync.PhasePlaying,
	}
}

func TestDrawMazeMap(t *testing.T) {
	v := testState()
	s := core.NewScreen(v.Grid.W()*TileWidth, v.Grid.H())
	DrawMaze(s, v, 0, 0, nil)

	want := []string{
		"██████████",
		"██P1  []██",
		"██  ()**><",
		"██      ██",
		"██████████",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
	if c := s.GetCell(2, 1); c.Color != core.ColorBlue {
		t.Errorf("player color = %v, want blue", c.Color)
	}
}

func TestDrawMazeFog(t *testing.T) {
	v := testState()
	s := core.NewScreen(v.Grid.W()*TileWidth, v.Grid.H())
	DrawMaze(s, v, 0, 0, &Fog{Center: maze.C(1, 1), Radius: 1})

	want := []string{
		"██████░░░░",
		"██P1  ░░░░",
		"██  ()░░░░",
		"░░░░░░░░░░",
		"░░░░░░░░░░",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
}

func TestDrawMazeActiveCheckpointAndDuel(t *testing.T) {
	v := testState()
	v.HasActive = true
	v.Checkpoint = maze.C(2, 2)
	v.Mode = "duel"
	s := core.NewScreen(v.Grid.W()*TileWidth, v.Grid.H())
	DrawMaze(s, v, 0, 0, nil)

	if c := s.GetCell(4, 2); c.Color != core.ColorGreen {
		t.Errorf("active checkpoint color = %v, want green", c.Color)
	}
	if got := s.Row(2); !strings.HasSuffix(got, "··") {
		t.Errorf("duel should draw the P2 spawn, not an exit: %q", got)
	}
}

func TestBoardShowsBannerWhenOver(t *testing.T) {
	v := testState().WithPhase(viewsync.PhaseCompleted)
	v.WinText = "You Won!"
	if out := MapView(v); !strings.Contains(out, "You Won!") {
		t.Errorf("board after completion does not show the banner:\n%s", out)
	}
}

type recordedInput struct {
	player core.PlayerID
	action core.Action
}

type fakeInput struct {
	got []recordedInput
}

func (f *fakeInput) SendInput(p core.PlayerID, a core.Action) bool {
	f.got = append(f.got, recordedInput{p, a})
	return true
}

func TestLocalModelRoutesKeys(t *testing.T) {
	pub := viewsync.NewPublisher()
	pub.Publish(testState())
	in := &fakeInput{}
	m := NewLocalModel(pub, in, nil, LocalOptions{Players: 2, FogRadius: 1, View: core.DefaultConfig(), Keys: DefaultKeyMap()})

	var model tea.Model = m
	for _, msg := range []tea.KeyMsg{runes("s"), {Type: tea.KeyRight}, runes("x")} {
		model, _ = model.Update(msg)
	}

	want := []recordedInput{{core.Player1, core.ActionDown}, {core.Player2, core.ActionRight}}
	if len(in.got) != len(want) {
		t.Fatalf("inputs = %v, want %v", in.got, want)
	}
	for i := range want {
		if in.got[i] != want[i] {
			t.Errorf("input %d = %v, want %v", i, in.got[i], want[i])
		}
	}

	if out := model.View(); !strings.Contains(out, "P2") || !strings.Contains(out, "map") {
		t.Errorf("duel view should show the map and both players:\n%s", out)
	}

	model, cmd := model.Update(runes("q"))
	if cmd == nil {
		t.Error("quit key returned no command")
	}
	if model.View() != "" {
		t.Error("view after quit should be empty")
	}
}

func TestLocalModelStopsInputWhenFinished(t *testing.T) {
	pub := viewsync.NewPublisher()
	in := &fakeInput{}
	var model tea.Model = NewLocalModel(pub, in, nil, LocalOptions{Players: 1, View: core.DefaultConfig(), Keys: DefaultKeyMap()})

	if got := model.View(); got != "loading maze..." {
		t.Errorf("View before first publish = %q", got)
	}

	model, _ = model.Update(simDoneMsg{})
	model, _ = model.Update(runes("w"))
	if len(in.got) != 0 {
		t.Errorf("input after the run ended: %v", in.got)
	}

	boom := errors.New("boom")
	model, cmd := model.Update(simDoneMsg{err: boom})
	if cmd == nil {
		t.Error("simulation error should quit")
	}
	if !errors.Is(model.(LocalModel).Err(), boom) {
		t.Errorf("Err() = %v, want boom", model.(LocalModel).Err())
	}
}

func TestLocalModelFollowsRoleFlip(t *testing.T) {
	tests := []struct {
		name       string
		controller int
		mapFirst   bool
	}{
		{"slot 0 controls", 0, false},
		{"roles flipped", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testState()
			v.Mode = "relay"
			v.Controller = tt.controller
			pub := viewsync.NewPublisher()
			pub.Publish(v)
			var model tea.Model = NewLocalModel(pub, &fakeInput{}, nil, LocalOptions{Players: 1, FogRadius: 1, View: core.DefaultConfig(), Keys: DefaultKeyMap()})
			model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

			lines := strings.Split(model.View(), "\n")
			if len(lines) < 2 {
				t.Fatalf("view too short:\n%s", model.View())
			}
			titles := lines[1]
			mapAt, p1At := strings.Index(titles, "map"), strings.Index(titles, "P1")
			if mapAt < 0 || p1At < 0 {
				t.Fatalf("title row %q lacks a panel title", titles)
			}
			if got := mapAt < p1At; got != tt.mapFirst {
				t.Errorf("map first = %v, want %v in %q", got, tt.mapFirst, titles)
			}
		})
	}
}

type fakeHub struct {
	msgs []viewsync.HubMessage
}

func (f *fakeHub) Send(msg viewsync.HubMessage) {
	f.msgs = append(f.msgs, msg)
}

func TestViewModelRoles(t *testing.T) {
	tests := []struct {
		name       string
		slot       int
		controller int
		want       viewsync.Role
	}{
		{"first view controls", 0, 0, viewsync.RoleController},
		{"second view maps", 1, 0, viewsync.RoleMap},
		{"roles flipped", 0, 1, viewsync.RoleMap},
		{"spectator", 2, 0, viewsync.RoleSpectator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := viewsync.NewMailbox("s")
			var model tea.Model = NewViewModel(session, &fakeHub{}, DefaultKeyMap(), 1, "alice", core.DefaultConfig())
			model, _ = model.Update(viewsync.AttachedEvent{Slot: tt.slot})
			v := testState()
			v.Controller = tt.controller
			model, _ = model.Update(viewsync.FrameEvent{State: v})

			if got := model.(ViewModel).Role(); got != tt.want {
				t.Errorf("Role() = %v, want %v", got, tt.want)
			}
			if out := model.View(); !strings.Contains(out, tt.want.String()) {
				t.Errorf("view does not name its role %s:\n%s", tt.want, out)
			}
		})
	}
}

func TestViewModelSendsInputAndQuits(t *testing.T) {
	session := viewsync.NewMailbox("s1")
	hub := &fakeHub{}
	var model tea.Model = NewViewModel(session, hub, DefaultKeyMap(), 2, "bob", core.DefaultConfig())

	if got := model.View(); got != "waiting for the simulation..." {
		t.Errorf("View before attach = %q", got)
	}

	model, _ = model.Update(runes("a"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model, _ = model.Update(runes("?"))

	want := []viewsync.HubMessage{
		viewsync.InputMsg{SessionID: "s1", Action: core.ActionLeft},
		viewsync.InputMsg{SessionID: "s1", Action: core.ActionUp},
	}
	if len(hub.msgs) != len(want) {
		t.Fatalf("hub messages = %v, want %v", hub.msgs, want)
	}
	for i := range want {
		if hub.msgs[i] != want[i] {
			t.Errorf("message %d = %v, want %v", i, hub.msgs[i], want[i])
		}
	}

	_, cmd := model.Update(runes("q"))
	if cmd == nil {
		t.Error("quit returned no command")
	}
	select {
	case <-session.Done():
	default:
		t.Error("quitting did not close the session")
	}
}

func TestTooSmallTerminal(t *testing.T) {
	pub := viewsync.NewPublisher()
	pub.Publish(testState())
	var model tea.Model = NewLocalModel(pub, &fakeInput{}, nil, LocalOptions{Players: 1, View: core.DefaultConfig(), Keys: DefaultKeyMap()})

	model, _ = model.Update(tea.WindowSizeMsg{Width: 23, Height: 8})
	out := model.View()
	if !strings.Contains(out, "terminal too small") || !strings.Contains(out, "need 24x10, have 23x8") {
		t.Errorf("small terminal view:\n%s", out)
	}

	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if out := model.View(); strings.Contains(out, "terminal too small") {
		t.Errorf("80x24 should fit a 5x5 maze:\n%s", out)
	}
}
