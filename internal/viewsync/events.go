package viewsync

import "github.com/vovakirdan/tui-maze/internal/core"

// SessionEvent represents an event sent from the hub to a session.
type SessionEvent interface {
	sessionEvent()
}

// AttachedEvent is sent once when a session gets its slot.
type AttachedEvent struct {
	Slot int // 0 and 1 are the two player views, higher slots spectate
}

func (AttachedEvent) sessionEvent() {}

// FrameEvent carries a published state to a session.
type FrameEvent struct {
	State *ViewState
}

func (FrameEvent) sessionEvent() {}

// HubMessage represents a message from a session to the hub.
type HubMessage interface {
	hubMessage()
}

// AttachMsg registers a view with the hub.
type AttachMsg struct {
	Viewer Viewer
}

func (AttachMsg) hubMessage() {}

// DetachMsg is sent when a session ends.
type DetachMsg struct {
	SessionID SessionID
}

func (DetachMsg) hubMessage() {}

// InputMsg carries one key action from a session.
type InputMsg struct {
	SessionID SessionID
	Action    core.Action
}

func (InputMsg) hubMessage() {}
