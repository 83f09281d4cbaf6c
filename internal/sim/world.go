// Package sim runs the authoritative simulation: it applies input to the
// maze, resolves collisions in a fixed order each tick, drives the bullet
// and turret clocks and publishes a fresh view state after every tick.
package sim

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/viewsync"
)

// WinText is shown when a run ends.
const WinText = "You Won!"

// Config holds simulation settings.
type Config struct {
	TickRate       int           // Simulation rate in Hz
	BulletInterval time.Duration // Bullets move one tile this often
	FireInterval   time.Duration // Turrets fire this often
	ScreenWidth    int           // Used to size cells when Geometry.CellSize is zero
	Geometry       maze.Geometry
	Schemes        [2]string // Control scheme names of player 1 and 2
	InputBuffer    int       // Capacity of the input queue
}

// DefaultConfig returns the stock timing: 30 Hz, bullets every 500 ms and
// turret fire every 5 s.
func DefaultConfig() Config {
	return Config{
		TickRate:       30,
		BulletInterval: 500 * time.Millisecond,
		FireInterval:   5 * time.Second,
		ScreenWidth:    900,
		Geometry:       maze.Geometry{PlayerInset: 2, BulletInset: 10},
		Schemes:        [2]string{"wasd", "arrows"},
		InputBuffer:    64,
	}
}

// StepResult describes what one tick did.
type StepResult struct {
	Moves        int
	Hits         []core.PlayerID
	Checkpoints  []core.PlayerID
	Swapped      bool
	Transitioned bool
	Phase        viewsync.Phase
}

// World is the simulation state of one run: a mode, its maze and players.
// It is owned by a single goroutine.
type World struct {
	mode    registry.Mode
	maze    *maze.Maze
	players []*maze.Player
	log     *log.Logger

	tick       uint64
	phase      viewsync.Phase
	completed  int  // Exits reached so far
	controller int  // Slot of the controller view
	exitArmed  bool // The player must leave the exit before it counts again
	winText    string
}

var playerColors = [2]core.Color{core.ColorBlue, core.ColorRed}

// NewWorld loads the first maze of mode and places its players.
func NewWorld(mode registry.Mode, cfg Config, logger *log.Logger) (*World, error) {
	leg, err := mode.First()
	if err != nil {
		return nil, err
	}

	geo := cfg.Geometry
	if geo.CellSize == 0 {
		geo.CellSize = maze.DefaultGeometry(cfg.ScreenWidth, leg.Grid.W()).CellSize
	}
	m, err := maze.Load(leg.Grid, maze.Options{Name: leg.Name, Geometry: geo})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", leg.Name, err)
	}

	w := &World{
		mode:      mode,
		maze:      m,
		log:       logger,
		exitArmed: true,
	}
	ids := []core.PlayerID{core.Player1, core.Player2}
	for i := 0; i < mode.Players(); i++ {
		id := ids[i]
		w.players = append(w.players, maze.NewPlayer(id, m.Spawn(id), geo, playerColors[i], cfg.Schemes[i]))
	}
	logger.Info("maze loaded", "mode", mode.ID(), "maze", m.Identity(), "size", fmt.Sprintf("%dx%d", leg.Grid.W(), leg.Grid.H()), "cell", geo.CellSize)
	return w, nil
}

// Maze returns the live maze.
func (w *World) Maze() *maze.Maze {
	return w.maze
}

// Player returns player id, or nil when the mode has no such player.
func (w *World) Player(id core.PlayerID) *maze.Player {
	for _, p := range w.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Phase returns the run phase.
func (w *World) Phase() viewsync.Phase {
	return w.phase
}

// Step runs one tick in a fixed order: moves, then the bullet and fire
// clocks, then bullet hits, checkpoints, swap zones and finally the win
// condition. Each stage sees the positions left by the previous one.
func (w *World) Step(in core.InputFrame, due Due) (StepResult, error) {
	if w.phase.Over() {
		return StepResult{Phase: w.phase}, nil
	}
	w.tick++
	var res StepResult

	for _, e := range in.Events {
		p := w.Player(e.Player)
		d, ok := maze.DirFromAction(e.Action)
		if p == nil || !ok {
			continue
		}
		if p.TryMove(d, w.maze) {
			res.Moves++
		}
	}
	res.Hits = w.maze.Advance(maze.Volley{Move: due.Advance, Fire: due.Fire}, w.players...)
	for _, id := range res.Hits {
		w.log.Debug("player hit", "player", id, "tick", w.tick)
	}

	for _, p := range w.players {
		if w.maze.TouchCheckpoint(p) {
			res.Checkpoints = append(res.Checkpoints, p.ID)
			w.log.Debug("checkpoint", "player", p.ID, "tile", p.Tile(), "exit", w.maze.ExitTarget())
		}
	}

	if len(w.players) == 2 {
		res.Swapped = w.maze.ResolveSwap(w.players[0], w.players[1])
	}

	switch w.mode.Goal() {
	case registry.GoalMeet:
		if len(w.players) == 2 && w.players[0].Rect().Intersects(w.players[1].Rect()) {
			w.finish(viewsync.PhaseWon)
		}
	case registry.GoalExit:
		p := w.players[0]
		switch {
		case !w.maze.AtExit(p):
			w.exitArmed = true
		case w.exitArmed:
			transitioned, err := w.nextLeg()
			if err != nil {
				return res, err
			}
			res.Transitioned = transitioned
		}
	}

	res.Phase = w.phase
	return res, nil
}

func (w *World) finish(phase viewsync.Phase) {
	w.phase = phase
	w.winText = WinText
	w.log.Info("run over", "phase", phase, "maze", w.maze.Identity(), "tick", w.tick)
}

// nextLeg moves to the mode's next maze, or ends the run when there is none.
func (w *World) nextLeg() (bool, error) {
	w.completed++
	leg, ok, err := w.mode.Next(w.completed, w.maze.Grid())
	if err != nil {
		return false, err
	}
	if !ok {
		w.finish(viewsync.PhaseCompleted)
		return false, nil
	}

	if err := w.maze.Transition(leg.Grid, leg.Name); err != nil {
		return false, fmt.Errorf("leg %d: %w", w.completed, err)
	}
	for _, p := range w.players {
		if w.maze.Settle(p) {
			w.log.Warn("player position blocked in new maze, moved to spawn", "player", p.ID, "maze", w.maze.Identity())
		}
	}
	if leg.FlipRoles {
		w.controller = 1 - w.controller
	}
	w.exitArmed = false
	w.log.Info("maze transition", "maze", w.maze.Identity(), "leg", w.completed, "controller", w.controller)
	return true, nil
}

// View builds the published state from the current world.
func (w *World) View() *viewsync.ViewState {
	c := w.maze.Capture()
	geo := w.maze.Geometry()

	v := &viewsync.ViewState{
		Tick:       w.tick,
		Mode:       w.mode.ID(),
		Maze:       c.Identity,
		Leg:        w.completed,
		Grid:       c.Grid,
		Geometry:   geo,
		Turrets:    c.Turrets,
		Bullets:    make([]viewsync.BulletView, len(c.Bullets)),
		Players:    make([]viewsync.PlayerView, len(w.players)),
		Checkpoint: c.Checkpoint,
		HasActive:  c.HasActive,
		Exit:       c.Exit,
		Controller: w.controller,
		Phase:      w.phase,
		WinText:    w.winText,
	}
	if c.State == maze.Swapping {
		v.Phase = viewsync.PhaseSwapping
	}
	for i, b := range c.Bullets {
		v.Bullets[i] = viewsync.BulletView{Pos: geo.Pixel(b.Pos), Tile: b.Pos, Dir: b.Dir}
	}
	for i, p := range w.players {
		v.Players[i] = viewsync.PlayerView{
			ID:      p.ID,
			Pos:     p.Position(),
			Tile:    p.Tile(),
			Color:   p.Color,
			Respawn: p.Respawn,
		}
	}
	return v
}
