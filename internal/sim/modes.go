package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

func init() {
	registry.Register("solo", func(s registry.Setup) registry.Mode { return &soloMode{setup: s} })
	registry.Register("relay", func(s registry.Setup) registry.Mode { return &relayMode{setup: s} })
	registry.Register("duel", func(s registry.Setup) registry.Mode { return &duelMode{setup: s} })
}

func startLevel(s registry.Setup, op string) (levels.Level, error) {
	if len(s.Levels) == 0 {
		return levels.Level{}, &maze.ConfigurationError{Op: op, Reason: "no levels"}
	}
	if s.Start < 0 || s.Start >= len(s.Levels) {
		return levels.Level{}, &maze.ConfigurationError{Op: op, Reason: fmt.Sprintf("start level %d out of range", s.Start)}
	}
	return s.Levels[s.Start], nil
}

// soloMode plays the level list in order.
type soloMode struct {
	setup registry.Setup
}

func (m *soloMode) ID() string          { return "solo" }
func (m *soloMode) Title() string       { return "Solo run through every level" }
func (m *soloMode) Players() int        { return 1 }
func (m *soloMode) Goal() registry.Goal { return registry.GoalExit }

func (m *soloMode) First() (registry.Leg, error) {
	lvl, err := startLevel(m.setup, "solo")
	if err != nil {
		return registry.Leg{}, err
	}
	for _, other := range m.setup.Levels[m.setup.Start:] {
		if other.Grid.W() != lvl.Grid.W() || other.Grid.H() != lvl.Grid.H() {
			return registry.Leg{}, &maze.ConfigurationError{
				Op:     "solo",
				Reason: fmt.Sprintf("level %s is %dx%d, %s is %dx%d", other.ID, other.Grid.W(), other.Grid.H(), lvl.ID, lvl.Grid.W(), lvl.Grid.H()),
			}
		}
	}
	return registry.Leg{Name: lvl.ID, Grid: lvl.Grid}, nil
}

func (m *soloMode) Next(completed int, _ *maze.Grid) (registry.Leg, bool, error) {
	idx := m.setup.Start + completed
	if idx >= len(m.setup.Levels) {
		return registry.Leg{}, false, nil
	}
	lvl := m.setup.Levels[idx]
	return registry.Leg{Name: lvl.ID, Grid: lvl.Grid}, true, nil
}

// relayMode bounces between a maze and its reflection, swapping the
// controller and map views on every leg.
type relayMode struct {
	setup registry.Setup
}

func (m *relayMode) ID() string          { return "relay" }
func (m *relayMode) Title() string       { return "Relay through the reflected maze" }
func (m *relayMode) Players() int        { return 1 }
func (m *relayMode) Goal() registry.Goal { return registry.GoalExit }

func (m *relayMode) First() (registry.Leg, error) {
	lvl, err := startLevel(m.setup, "relay")
	if err != nil {
		return registry.Leg{}, err
	}
	if lvl.Grid.W() != lvl.Grid.H() {
		return registry.Leg{}, &maze.ConfigurationError{
			Op:     "relay",
			Reason: fmt.Sprintf("level %s is %dx%d; reflection needs a square maze", lvl.ID, lvl.Grid.W(), lvl.Grid.H()),
		}
	}
	if m.setup.Legs < 0 {
		return registry.Leg{}, &maze.ConfigurationError{Op: "relay", Reason: "legs must not be negative"}
	}
	return registry.Leg{Name: lvl.ID, Grid: lvl.Grid}, nil
}

func (m *relayMode) Next(completed int, current *maze.Grid) (registry.Leg, bool, error) {
	if completed > m.setup.Legs {
		return registry.Leg{}, false, nil
	}
	name := m.setup.Levels[m.setup.Start].ID
	if completed%2 == 1 {
		name += "-reflected"
	}
	return registry.Leg{Name: name, Grid: maze.Reflect(current), FlipRoles: true}, true, nil
}

// duelMode has two players race to meet; there is no second maze.
type duelMode struct {
	setup registry.Setup
}

func (m *duelMode) ID() string          { return "duel" }
func (m *duelMode) Title() string       { return "Two players, one meeting point" }
func (m *duelMode) Players() int        { return 2 }
func (m *duelMode) Goal() registry.Goal { return registry.GoalMeet }

func (m *duelMode) First() (registry.Leg, error) {
	lvl, err := startLevel(m.setup, "duel")
	if err != nil {
		return registry.Leg{}, err
	}
	return registry.Leg{Name: lvl.ID, Grid: lvl.Grid}, nil
}

func (m *duelMode) Next(int, *maze.Grid) (registry.Leg, bool, error) {
	return registry.Leg{}, false, nil
}
