// Package registry provides a global registry for game modes.
// Modes register themselves in init() functions, allowing the CLI and the
// SSH server to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Goal is what ends a leg of play.
type Goal int

const (
	GoalExit Goal = iota // Player 1 reaches the exit target
	GoalMeet             // The two players touch
)

// Leg is one maze of a run.
type Leg struct {
	Name      string
	Grid      *maze.Grid
	FlipRoles bool // Swap controller and map views when this leg starts
}

// Mode decides which mazes a run goes through and how it is won.
// Modes contain no timing and no rendering.
type Mode interface {
	// ID returns a unique identifier for this mode (e.g., "solo", "relay").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Players returns how many players take part (1 or 2).
	Players() int

	// Goal returns the win condition.
	Goal() Goal

	// First returns the maze the run starts on.
	First() (Leg, error)

	// Next returns the maze that follows the given number of completed legs.
	// ok is false when the run is complete.
	Next(completed int, current *maze.Grid) (leg Leg, ok bool, err error)
}

// Setup carries what a mode needs to build its legs.
type Setup struct {
	Levels []levels.Level // Level list in play order
	Start  int            // Index of the first level
	Legs   int            // Number of transitions in relay mode
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID      string
	Title   string
	Players int
}

// Factory is a function that creates a mode for a setup.
type Factory func(Setup) Mode

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ModeInfo)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Panics if a mode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	factories[id] = f

	m := f(Setup{})
	infos[id] = ModeInfo{ID: id, Title: m.Title(), Players: m.Players()}
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a mode by its ID.
func Create(id string, setup Setup) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	return f(setup), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
