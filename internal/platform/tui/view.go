package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/viewsync"
)

// HubSender is the part of the hub a remote view talks to.
type HubSender interface {
	Send(msg viewsync.HubMessage)
}

// ViewModel is one remote view attached to the hub. What it draws depends
// on its slot: the controller sees the fogged player view, the map view and
// spectators see the whole maze.
type ViewModel struct {
	session *viewsync.Mailbox
	hub     HubSender
	keys    KeyMap
	help    help.Model
	fog     int
	user    string
	view    core.RuntimeConfig

	slot     int
	state    *viewsync.ViewState
	quitting bool
}

// NewViewModel creates a view for session. The session must already be
// attached or about to be.
func NewViewModel(session *viewsync.Mailbox, hub HubSender, keys KeyMap, fog int, user string, rc core.RuntimeConfig) ViewModel {
	return ViewModel{
		session: session,
		hub:     hub,
		keys:    keys,
		help:    help.New(),
		fog:     fog,
		user:    user,
		view:    rc,
		slot:    -1,
	}
}

// Init starts listening for hub events.
func (m ViewModel) Init() tea.Cmd {
	return waitForEvent(m.session)
}

// waitForEvent returns a command that waits for the next hub event.
func waitForEvent(mb *viewsync.Mailbox) tea.Cmd {
	return func() tea.Msg {
		evt, ok := mb.Next()
		if !ok {
			return nil
		}
		return evt
	}
}

// Update handles messages.
func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewsync.AttachedEvent:
		m.slot = msg.Slot
		return m, waitForEvent(m.session)

	case viewsync.FrameEvent:
		m.state = msg.State
		return m, waitForEvent(m.session)

	case tea.WindowSizeMsg:
		m.view.ScreenW = msg.Width
		m.view.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch a := m.keys.Action(msg); {
		case a == core.ActionQuit:
			m.quitting = true
			m.session.Close()
			return m, tea.Quit
		case a == core.ActionHelp:
			m.help.ShowAll = !m.help.ShowAll
		case a.IsDirectional():
			m.hub.Send(viewsync.InputMsg{SessionID: m.session.ID(), Action: a})
		}
	}
	return m, nil
}

// Role returns the current role of this view.
func (m ViewModel) Role() viewsync.Role {
	if m.state == nil || m.slot < 0 {
		return viewsync.RoleSpectator
	}
	return m.state.RoleOf(m.slot)
}

// View renders the view for the current role.
func (m ViewModel) View() string {
	if m.quitting {
		return ""
	}
	if m.state == nil || m.slot < 0 {
		return "waiting for the simulation..."
	}

	if w, h := NeedSize(m.state.Grid.W(), m.state.Grid.H(), 1); m.view.ScreenW < w || m.view.ScreenH < h {
		return TooSmall(m.view, w, h)
	}

	role := m.Role()
	var board string
	if role == viewsync.RoleController {
		board = PlayerView(m.state, core.Player1, m.fog)
	} else {
		board = MapView(m.state)
	}

	title := fmt.Sprintf("%s  slot %d  %s", m.user, m.slot, role)
	return lipgloss.JoinVertical(lipgloss.Left,
		Panel(title, board),
		Status(m.state),
		m.help.View(m.keys),
	)
}
