package sim

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/viewsync"
)

// Engine runs a World at a fixed rate. Input arrives through a bounded
// queue and every tick ends with a publish to the sink.
type Engine struct {
	world  *World
	clocks Clocks
	sink   viewsync.Sink
	log    *log.Logger

	inputChan chan core.InputEvent
	frame     core.InputFrame

	lastMu sync.Mutex
	last   *viewsync.ViewState
}

// NewEngine creates an engine for world publishing to sink.
func NewEngine(world *World, cfg Config, sink viewsync.Sink, logger *log.Logger) *Engine {
	buf := cfg.InputBuffer
	if buf < 1 {
		buf = 64
	}
	e := &Engine{
		world:     world,
		clocks:    NewClocks(cfg.TickRate, cfg.BulletInterval, cfg.FireInterval),
		sink:      sink,
		log:       logger,
		inputChan: make(chan core.InputEvent, buf),
		frame:     core.NewInputFrame(buf),
	}
	world.Maze().OnStateChange(func(_, to maze.State) {
		if to != maze.Swapping {
			return
		}
		e.lastMu.Lock()
		last := e.last
		e.lastMu.Unlock()
		if last != nil {
			sink.Publish(last.WithPhase(viewsync.PhaseSwapping))
		}
	})
	return e
}

// World returns the simulated world.
func (e *Engine) World() *World {
	return e.world
}

// Clocks returns the engine clocks.
func (e *Engine) Clocks() Clocks {
	return e.clocks
}

// SendInput queues one action for player.
// Non-blocking: returns false and drops the input when the queue is full.
func (e *Engine) SendInput(player core.PlayerID, a core.Action) bool {
	select {
	case e.inputChan <- core.InputEvent{Player: player, Action: a}:
		return true
	default:
		return false
	}
}

// Run publishes the initial state and then ticks until ctx is cancelled or
// the run is over. A tick error stops the loop and is returned.
func (e *Engine) Run(ctx context.Context) error {
	e.publish()

	ticker := time.NewTicker(e.clocks.Frame)
	defer ticker.Stop()

	e.log.Info("simulation started", "rate", int(time.Second/e.clocks.Frame),
		"bullet_frames", e.clocks.Bullet.Frames(), "fire_frames", e.clocks.Fire.Frames())

	for {
		select {
		case <-ctx.Done():
			e.log.Info("simulation stopped", "tick", e.world.tick)
			return nil
		case <-ticker.C:
			res, err := e.Step()
			if err != nil {
				e.log.Error("simulation failed", "err", err)
				return err
			}
			if res.Phase.Over() {
				return nil
			}
		}
	}
}

// Step runs exactly one tick: drain input, advance clocks, step the world
// and publish.
func (e *Engine) Step() (StepResult, error) {
	e.drainInputs()
	res, err := e.world.Step(e.frame, e.clocks.Tick())
	e.frame.Clear()
	if err != nil {
		return res, err
	}
	if res.Transitioned {
		e.clocks.Reset()
	}
	e.publish()
	return res, nil
}

func (e *Engine) drainInputs() {
	for {
		select {
		case in := <-e.inputChan:
			e.frame.Add(in.Player, in.Action)
		default:
			return
		}
	}
}

func (e *Engine) publish() {
	v := e.world.View()
	e.lastMu.Lock()
	e.last = v
	e.lastMu.Unlock()
	e.sink.Publish(v)
}
