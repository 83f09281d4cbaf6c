// Package viewsync publishes the simulation to its views. The simulation is
// the only writer: each tick it replaces an immutable ViewState, and views
// either read the latest one or receive it over their session channel.
package viewsync

import (
	"sync"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Phase is the stage of a run.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseSwapping
	PhaseWon
	PhaseCompleted
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseSwapping:
		return "swapping"
	case PhaseWon:
		return "won"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Over reports whether the run has ended.
func (p Phase) Over() bool {
	return p == PhaseWon || p == PhaseCompleted
}

// PlayerView is a player as views see it.
type PlayerView struct {
	ID      core.PlayerID
	Pos     maze.Point
	Tile    maze.Coord
	Color   core.Color
	Respawn maze.Point
}

// BulletView is a bullet as views see it.
type BulletView struct {
	Pos  maze.Point
	Tile maze.Coord
	Dir  maze.Dir
}

// ViewState is everything a view may draw. It is never modified after
// publication; the grid is shared and immutable.
type ViewState struct {
	Tick       uint64
	Mode       string
	Maze       maze.Identity
	Leg        int
	Grid       *maze.Grid
	Geometry   maze.Geometry
	Turrets    []maze.Coord
	Bullets    []BulletView
	Players    []PlayerView
	Checkpoint maze.Coord
	HasActive  bool
	Exit       maze.Coord
	Controller int // Slot of the view that is the controller; the other is the map
	Phase      Phase
	WinText    string
}

// Player returns the view of player id.
func (v *ViewState) Player(id core.PlayerID) (PlayerView, bool) {
	for _, p := range v.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerView{}, false
}

// BulletAt reports whether a bullet is on tile c.
func (v *ViewState) BulletAt(c maze.Coord) bool {
	for _, b := range v.Bullets {
		if b.Tile == c {
			return true
		}
	}
	return false
}

// RoleOf returns the role of the view in slot.
func (v *ViewState) RoleOf(slot int) Role {
	switch {
	case slot < 0 || slot > 1:
		return RoleSpectator
	case slot == v.Controller:
		return RoleController
	default:
		return RoleMap
	}
}

// WithPhase returns a copy of v in another phase.
func (v *ViewState) WithPhase(p Phase) *ViewState {
	c := *v
	c.Phase = p
	return &c
}

// Sink receives every published state.
type Sink interface {
	Publish(v *ViewState)
}

// Publisher holds the latest ViewState. Publish swaps the pointer under the
// write lock; readers copy the pointer or draw under the read lock.
type Publisher struct {
	mu  sync.RWMutex
	cur *ViewState
}

// NewPublisher creates an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish replaces the current state.
func (p *Publisher) Publish(v *ViewState) {
	p.mu.Lock()
	p.cur = v
	p.mu.Unlock()
}

// Snapshot returns the current state, or nil before the first publish.
func (p *Publisher) Snapshot() *ViewState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cur
}

// Draw calls fn with the current state while holding the read lock, so no
// publish lands in the middle of a draw. fn is not called before the first
// publish.
func (p *Publisher) Draw(fn func(v *ViewState)) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cur != nil {
		fn(p.cur)
	}
}
