package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
)

// Scheme is one player's set of direction keys.
type Scheme struct {
	Name  string
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

// NewScheme builds a scheme from configured key lists.
func NewScheme(c config.SchemeConfig) Scheme {
	return Scheme{
		Name:  c.Name,
		Up:    key.NewBinding(key.WithKeys(c.Up...), key.WithHelp(keyLabel(c.Up), "up")),
		Down:  key.NewBinding(key.WithKeys(c.Down...), key.WithHelp(keyLabel(c.Down), "down")),
		Left:  key.NewBinding(key.WithKeys(c.Left...), key.WithHelp(keyLabel(c.Left), "left")),
		Right: key.NewBinding(key.WithKeys(c.Right...), key.WithHelp(keyLabel(c.Right), "right")),
	}
}

func keyLabel(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	switch keys[0] {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	}
	return keys[0]
}

// Action returns the direction msg stands for in this scheme, or
// ActionNone.
func (s Scheme) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, s.Up):
		return core.ActionUp
	case key.Matches(msg, s.Down):
		return core.ActionDown
	case key.Matches(msg, s.Left):
		return core.ActionLeft
	case key.Matches(msg, s.Right):
		return core.ActionRight
	}
	return core.ActionNone
}

// KeyMap translates Bubble Tea key messages to game actions.
// It implements help.KeyMap for the footer.
type KeyMap struct {
	P1   Scheme
	P2   Scheme
	Help key.Binding
	Quit key.Binding
}

// NewKeyMap creates a key map from the control settings.
func NewKeyMap(c config.ControlsConfig) KeyMap {
	return KeyMap{
		P1: NewScheme(c.P1),
		P2: NewScheme(c.P2),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DefaultKeyMap returns the wasd/arrows key map.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.Default().Controls)
}

// Map returns the player and action for msg. Help and quit belong to no
// player. In single-player games both schemes steer player 1.
func (k KeyMap) Map(msg tea.KeyMsg, players int) (core.PlayerID, core.Action) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.NoPlayer, core.ActionQuit
	case key.Matches(msg, k.Help):
		return core.NoPlayer, core.ActionHelp
	}
	if a := k.P1.Action(msg); a != core.ActionNone {
		return core.Player1, a
	}
	if a := k.P2.Action(msg); a != core.ActionNone {
		if players < 2 {
			return core.Player1, a
		}
		return core.Player2, a
	}
	return core.NoPlayer, core.ActionNone
}

// Action maps msg regardless of player. Remote views use it since the hub
// decides who a view steers.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	_, a := k.Map(msg, 1)
	return a
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1.Up, k.P1.Left, k.P1.Down, k.P1.Right, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1.Up, k.P1.Down, k.P1.Left, k.P1.Right},
		{k.P2.Up, k.P2.Down, k.P2.Left, k.P2.Right},
		{k.Help, k.Quit},
	}
}
