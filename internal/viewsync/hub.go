package viewsync

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// InputSink accepts player input. The simulation engine implements it.
type InputSink interface {
	SendInput(player core.PlayerID, a core.Action) bool
}

// InputFunc adapts a function to InputSink.
type InputFunc func(player core.PlayerID, a core.Action) bool

// SendInput calls f.
func (f InputFunc) SendInput(player core.PlayerID, a core.Action) bool {
	return f(player, a)
}

// HubConfig holds configuration for the hub.
type HubConfig struct {
	Players int // 1: only the controller view steers; 2: both player views do
}

// Hub attaches view sessions to one simulation. The first two sessions get
// the player slots 0 and 1, later ones spectate. Every published state is
// fanned out to all sessions without ever blocking the publisher.
type Hub struct {
	config HubConfig
	pub    *Publisher
	sink   InputSink
	log    *log.Logger

	mu         sync.RWMutex
	views      map[SessionID]Viewer
	slots      map[SessionID]int
	seats      [2]SessionID
	spectators int

	msgChan  chan HubMessage
	done     chan struct{}
	stopOnce sync.Once
}

// NewHub creates a new hub publishing through pub and forwarding input to sink.
func NewHub(cfg HubConfig, pub *Publisher, sink InputSink, logger *log.Logger) *Hub {
	return &Hub{
		config:  cfg,
		pub:     pub,
		sink:    sink,
		log:     logger,
		views:   make(map[SessionID]Viewer),
		slots:   make(map[SessionID]int),
		msgChan: make(chan HubMessage, 256),
		done:    make(chan struct{}),
	}
}

// Start begins the hub's background processing.
func (h *Hub) Start() {
	go h.processMessages()
}

// Stop shuts down the hub.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Send sends a message to the hub for async processing.
func (h *Hub) Send(msg HubMessage) {
	select {
	case h.msgChan <- msg:
	case <-h.done:
	}
}

// Publish stores v as the latest state and delivers it to every view.
func (h *Hub) Publish(v *ViewState) {
	h.pub.Publish(v)

	h.mu.RLock()
	views := make([]Viewer, 0, len(h.views))
	for _, vw := range h.views {
		views = append(views, vw)
	}
	h.mu.RUnlock()

	evt := FrameEvent{State: v}
	for _, vw := range views {
		vw.Deliver(evt)
	}
}

// Snapshot returns the latest published state.
func (h *Hub) Snapshot() *ViewState {
	return h.pub.Snapshot()
}

// Slot returns the slot of an attached session.
func (h *Hub) Slot(id SessionID) (int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	slot, ok := h.slots[id]
	return slot, ok
}

// Count returns the number of attached views.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.views)
}

func (h *Hub) processMessages() {
	for {
		select {
		case msg := <-h.msgChan:
			h.handleMessage(msg)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleMessage(msg HubMessage) {
	switch m := msg.(type) {
	case AttachMsg:
		h.handleAttach(m)
	case DetachMsg:
		h.handleDetach(m)
	case InputMsg:
		h.handleInput(m)
	}
}

func (h *Hub) handleAttach(msg AttachMsg) {
	s := msg.Viewer

	h.mu.Lock()
	slot := -1
	for i, id := range h.seats {
		if id == "" {
			h.seats[i] = s.ID()
			slot = i
			break
		}
	}
	if slot < 0 {
		h.spectators++
		slot = len(h.seats) + h.spectators - 1
	}
	h.slots[s.ID()] = slot
	h.views[s.ID()] = s
	h.mu.Unlock()

	h.log.Info("view attached", "session", s.ID().Short(), "slot", slot)

	s.Deliver(AttachedEvent{Slot: slot})
	if v := h.pub.Snapshot(); v != nil {
		s.Deliver(FrameEvent{State: v})
	}

	go func() {
		select {
		case <-s.Done():
			h.Send(DetachMsg{SessionID: s.ID()})
		case <-h.done:
		}
	}()
}

func (h *Hub) handleDetach(msg DetachMsg) {
	h.mu.Lock()
	slot, ok := h.slots[msg.SessionID]
	delete(h.slots, msg.SessionID)
	delete(h.views, msg.SessionID)
	if ok && slot < len(h.seats) {
		h.seats[slot] = ""
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	h.log.Info("view detached", "session", msg.SessionID.Short(), "slot", slot)
}

func (h *Hub) handleInput(msg InputMsg) {
	if !msg.Action.IsDirectional() {
		return
	}
	slot, ok := h.Slot(msg.SessionID)
	if !ok {
		return
	}
	player := h.playerFor(slot, h.pub.Snapshot())
	if player == core.NoPlayer {
		return
	}
	if !h.sink.SendInput(player, msg.Action) {
		h.log.Debug("input dropped", "session", msg.SessionID.Short(), "action", msg.Action)
	}
}

// playerFor maps a view slot to the player it steers.
func (h *Hub) playerFor(slot int, v *ViewState) core.PlayerID {
	if h.config.Players == 2 {
		switch slot {
		case 0:
			return core.Player1
		case 1:
			return core.Player2
		}
		return core.NoPlayer
	}
	controller := 0
	if v != nil {
		controller = v.Controller
	}
	if slot == controller {
		return core.Player1
	}
	return core.NoPlayer
}
