package sim

import "time"

// Clock fires every period of simulated time. Simulated time advances by one
// frame per tick, so a clock is a whole number of frames and behaves the same
// whatever the wall clock does.
type Clock struct {
	frames  int
	elapsed int
}

// NewClock creates a clock firing every period, rounded to whole frames of
// length frame. A clock never fires more often than once per frame.
func NewClock(period, frame time.Duration) *Clock {
	n := 1
	if frame > 0 {
		n = int((period + frame/2) / frame)
	}
	return &Clock{frames: max(n, 1)}
}

// Frames returns the clock period in frames.
func (c *Clock) Frames() int {
	return c.frames
}

// Tick advances the clock by one frame and reports whether it fired.
func (c *Clock) Tick() bool {
	c.elapsed++
	if c.elapsed >= c.frames {
		c.elapsed = 0
		return true
	}
	return false
}

// Reset restarts the current period.
func (c *Clock) Reset() {
	c.elapsed = 0
}

// Due says which timed actions a tick must run.
type Due struct {
	Advance bool // Move bullets
	Fire    bool // Fire turrets
}

// Clocks are the three timing domains of the simulation.
type Clocks struct {
	Frame  time.Duration
	Bullet *Clock
	Fire   *Clock
}

// NewClocks builds the clocks for a tick rate in Hz.
func NewClocks(tickRate int, bulletEvery, fireEvery time.Duration) Clocks {
	frame := time.Second / time.Duration(max(tickRate, 1))
	return Clocks{
		Frame:  frame,
		Bullet: NewClock(bulletEvery, frame),
		Fire:   NewClock(fireEvery, frame),
	}
}

// Tick advances both timed clocks by one frame.
func (c Clocks) Tick() Due {
	return Due{Advance: c.Bullet.Tick(), Fire: c.Fire.Tick()}
}

// Reset restarts both timed clocks, e.g. when a new maze starts.
func (c Clocks) Reset() {
	c.Bullet.Reset()
	c.Fire.Reset()
}
