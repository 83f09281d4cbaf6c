package viewsync

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

type recordedInput struct {
	player core.PlayerID
	action core.Action
}

type fakeSink struct {
	mu     sync.Mutex
	inputs []recordedInput
}

func (f *fakeSink) SendInput(p core.PlayerID, a core.Action) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, recordedInput{p, a})
	return true
}

func (f *fakeSink) take() []recordedInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.inputs
	f.inputs = nil
	return out
}

func newTestHub(players int) (*Hub, *fakeSink) {
	sink := &fakeSink{}
	return NewHub(HubConfig{Players: players}, NewPublisher(), sink, log.New(io.Discard)), sink
}

func drain(m *Mailbox) []SessionEvent {
	var out []SessionEvent
	for {
		evt, ok := m.TryNext()
		if !ok {
			return out
		}
		out = append(out, evt)
	}
}

func TestPublisherBeforeFirstPublish(t *testing.T) {
	p := NewPublisher()
	if p.Snapshot() != nil {
		t.Error("Snapshot() should be nil before the first publish")
	}
	called := false
	p.Draw(func(*ViewState) { called = true })
	if called {
		t.Error("Draw() must not call fn before the first publish")
	}
}

func TestPublisherReadersNeverSeeTornState(t *testing.T) {
	gridA := maze.MustGrid([][]maze.Tile{{-1, 0, -2}})
	gridB := maze.MustGrid([][]maze.Tile{{-2, 0, -1}})
	p := NewPublisher()
	p.Publish(&ViewState{Maze: maze.Identity{Name: "a"}, Grid: gridA})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				p.Draw(func(v *ViewState) {
					want := gridA
					if v.Maze.Name == "b" {
						want = gridB
					}
					if v.Grid != want {
						t.Errorf("maze %s drawn with the wrong grid", v.Maze.Name)
					}
				})
			}
		}()
	}

	for i := 0; i < 1000; i++ {
		if i%2 == 0 {
			p.Publish(&ViewState{Tick: uint64(i), Maze: maze.Identity{Name: "b"}, Grid: gridB})
		} else {
			p.Publish(&ViewState{Tick: uint64(i), Maze: maze.Identity{Name: "a"}, Grid: gridA})
		}
	}
	close(stop)
	wg.Wait()
}

func TestMailboxKeepsNewestFrame(t *testing.T) {
	m := NewMailbox("m")
	m.Deliver(AttachedEvent{Slot: 1})
	for i := 1; i <= 5; i++ {
		m.Deliver(FrameEvent{State: &ViewState{Tick: uint64(i)}})
	}
	m.Deliver(AttachedEvent{Slot: 2})

	events := drain(m)
	if len(events) != 3 {
		t.Fatalf("got %d events, expected 3: %v", len(events), events)
	}
	for i, want := range []int{1, 2} {
		if a, ok := events[i].(AttachedEvent); !ok || a.Slot != want {
			t.Errorf("event %d = %#v, expected AttachedEvent{%d}", i, events[i], want)
		}
	}
	if f, ok := events[2].(FrameEvent); !ok || f.State.Tick != 5 {
		t.Errorf("last event = %#v, expected the frame of tick 5", events[2])
	}
	if got := m.Replaced(); got != 4 {
		t.Errorf("Replaced() = %d, expected 4", got)
	}
}

func TestMailboxNextWaitsForDelivery(t *testing.T) {
	m := NewMailbox("m")
	got := make(chan SessionEvent, 1)
	go func() {
		evt, _ := m.Next()
		got <- evt
	}()

	v := &ViewState{Tick: 9}
	m.Deliver(FrameEvent{State: v})
	select {
	case evt := <-got:
		if f, ok := evt.(FrameEvent); !ok || f.State != v {
			t.Errorf("Next() = %#v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("Next did not return after a delivery")
	}
}

func TestMailboxClosed(t *testing.T) {
	m := NewMailbox("m")
	m.Deliver(FrameEvent{State: &ViewState{Tick: 1}})
	m.Close()
	m.Close()
	m.Deliver(FrameEvent{State: &ViewState{Tick: 2}})

	evt, ok := m.Next()
	if !ok || evt.(FrameEvent).State.Tick != 1 {
		t.Errorf("Next() = %#v, %v; expected the frame read before close", evt, ok)
	}
	if evt, ok := m.Next(); ok {
		t.Errorf("closed, empty mailbox returned %#v", evt)
	}
}

func TestHubAssignsSlots(t *testing.T) {
	h, _ := newTestHub(1)
	defer h.Stop()

	sessions := make([]*Mailbox, 4)
	for i := range sessions {
		sessions[i] = NewMailbox(SessionID(string(rune('a'+i))))
		h.handleMessage(AttachMsg{Viewer: sessions[i]})
	}

	for i, s := range sessions {
		slot, ok := h.Slot(s.ID())
		if !ok || slot != i {
			t.Errorf("session %d slot = %d, %v", i, slot, ok)
		}
		events := drain(s)
		if len(events) == 0 {
			t.Fatalf("session %d got no events", i)
		}
		if a, ok := events[0].(AttachedEvent); !ok || a.Slot != i {
			t.Errorf("first event = %#v, expected AttachedEvent{%d}", events[0], i)
		}
	}

	h.handleMessage(DetachMsg{SessionID: sessions[0].ID()})
	late := NewMailbox("late")
	h.handleMessage(AttachMsg{Viewer: late})
	if slot, _ := h.Slot(late.ID()); slot != 0 {
		t.Errorf("late session got slot %d, expected the freed slot 0", slot)
	}
	if h.Count() != 4 {
		t.Errorf("Count() = %d, expected 4", h.Count())
	}
}

func TestHubFansOutFrames(t *testing.T) {
	h, _ := newTestHub(1)
	defer h.Stop()

	a := NewMailbox("a")
	b := NewMailbox("b")
	h.handleMessage(AttachMsg{Viewer: a})
	h.handleMessage(AttachMsg{Viewer: b})
	drain(a)
	drain(b)

	v := &ViewState{Tick: 7}
	h.Publish(v)
	for _, s := range []*Mailbox{a, b} {
		events := drain(s)
		if len(events) != 1 || events[0].(FrameEvent).State != v {
			t.Errorf("session %s got %v", s.ID(), events)
		}
	}
	if h.Snapshot() != v {
		t.Error("Publish should also store the state")
	}

	// A late view gets the current frame right after its slot.
	c := NewMailbox("c")
	h.handleMessage(AttachMsg{Viewer: c})
	events := drain(c)
	if len(events) != 2 || events[1].(FrameEvent).State != v {
		t.Errorf("late session events = %v", events)
	}
}

func TestHubRoutesInput(t *testing.T) {
	tests := []struct {
		name       string
		players    int
		controller int
		slot       int
		action     core.Action
		want       []recordedInput
	}{
		{"solo controller steers p1", 1, 0, 0, core.ActionUp, []recordedInput{{core.Player1, core.ActionUp}}},
		{"solo map view is ignored", 1, 0, 1, core.ActionUp, nil},
		{"flipped roles", 1, 1, 1, core.ActionLeft, []recordedInput{{core.Player1, core.ActionLeft}}},
		{"flipped roles ignore slot 0", 1, 1, 0, core.ActionLeft, nil},
		{"duel slot 1 steers p2", 2, 0, 1, core.ActionDown, []recordedInput{{core.Player2, core.ActionDown}}},
		{"spectators never steer", 2, 0, 2, core.ActionDown, nil},
		{"non-directional actions are dropped", 1, 0, 0, core.ActionHelp, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, sink := newTestHub(tc.players)
			defer h.Stop()
			h.Publish(&ViewState{Controller: tc.controller})

			var target SessionID
			for i := 0; i <= tc.slot; i++ {
				s := NewMailbox(NewSessionID())
				h.handleMessage(AttachMsg{Viewer: s})
				target = s.ID()
			}
			h.handleMessage(InputMsg{SessionID: target, Action: tc.action})

			got := sink.take()
			if len(got) != len(tc.want) {
				t.Fatalf("inputs = %v, expected %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("input %d = %v, expected %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestRoleOf(t *testing.T) {
	v := &ViewState{Controller: 1}
	if v.RoleOf(1) != RoleController || v.RoleOf(0) != RoleMap || v.RoleOf(5) != RoleSpectator {
		t.Errorf("roles = %v %v %v", v.RoleOf(0), v.RoleOf(1), v.RoleOf(5))
	}
}

func TestHubDetachesClosedSessions(t *testing.T) {
	h, _ := newTestHub(1)
	h.Start()
	defer h.Stop()

	s := NewMailbox("gone")
	h.Send(AttachMsg{Viewer: s})
	waitFor(t, func() bool { return h.Count() == 1 })

	s.Close()
	waitFor(t, func() bool { return h.Count() == 0 })
	if _, ok := h.Slot(s.ID()); ok {
		t.Error("closed session still holds a slot")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
