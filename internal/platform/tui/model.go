package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/viewsync"
)

// LocalOptions configures the local split view.
type LocalOptions struct {
	Players   int
	FogRadius int
	View      core.RuntimeConfig // Initial size and frame rate
	Keys      KeyMap
}

// simDoneMsg reports that the simulation loop returned.
type simDoneMsg struct{ err error }

// LocalModel is the Bubble Tea model for local play: the map next to the
// fogged player view, redrawn from the publisher every frame.
type LocalModel struct {
	pub   *viewsync.Publisher
	input viewsync.InputSink
	done  <-chan error
	opts  LocalOptions
	view  core.RuntimeConfig
	help  help.Model

	finished bool
	err      error
	quitting bool
}

// NewLocalModel creates the local view. done yields the simulation result.
func NewLocalModel(pub *viewsync.Publisher, input viewsync.InputSink, done <-chan error, opts LocalOptions) LocalModel {
	return LocalModel{
		pub:   pub,
		input: input,
		done:  done,
		opts:  opts,
		view:  opts.View,
		help:  help.New(),
	}
}

// Init starts the frame loop and waits for the simulation.
func (m LocalModel) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.view.FrameRate), waitSim(m.done))
}

func waitSim(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		if done == nil {
			return nil
		}
		return simDoneMsg{err: <-done}
	}
}

// Update handles messages and updates the model state.
func (m LocalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.view.ScreenW = msg.Width
		m.view.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		return m, frameCmd(m.view.FrameRate)

	case simDoneMsg:
		m.finished = true
		m.err = msg.err
		if msg.err != nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m LocalModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	player, action := m.opts.Keys.Map(msg, m.opts.Players)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case action.IsDirectional() && !m.finished:
		m.input.SendInput(player, action)
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m LocalModel) View() string {
	if m.quitting {
		return ""
	}
	out := "loading maze..."
	m.pub.Draw(func(v *viewsync.ViewState) {
		out = m.render(v)
	})
	return out
}

func (m LocalModel) render(v *viewsync.ViewState) string {
	boards := m.opts.Players + 1
	if w, h := NeedSize(v.Grid.W(), v.Grid.H(), boards); m.view.ScreenW < w || m.view.ScreenH < h {
		return TooSmall(m.view, w, h)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.panels(v)...),
		Status(v),
		m.help.View(m.opts.Keys),
	)
}

// panels lays the boards out left to right. With one player the left board
// belongs to slot 0 and the right one to slot 1, so a relay role flip swaps
// the fogged view and the map just as it does for SSH views.
func (m LocalModel) panels(v *viewsync.ViewState) []string {
	mapPanel := Panel("map", MapView(v))
	p1 := Panel(core.Player1.String(), PlayerView(v, core.Player1, m.opts.FogRadius))
	if m.opts.Players > 1 {
		return []string{mapPanel, p1, Panel(core.Player2.String(), PlayerView(v, core.Player2, m.opts.FogRadius))}
	}
	if v.RoleOf(0) == viewsync.RoleController {
		return []string{p1, mapPanel}
	}
	return []string{mapPanel, p1}
}

// Err returns the simulation error that ended the view, if any.
func (m LocalModel) Err() error {
	return m.err
}

// RunLocal runs the local view until the user quits.
func RunLocal(pub *viewsync.Publisher, input viewsync.InputSink, done <-chan error, opts LocalOptions) error {
	p := tea.NewProgram(
		NewLocalModel(pub, input, done, opts),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if lm, ok := final.(LocalModel); ok {
		return lm.Err()
	}
	return nil
}
