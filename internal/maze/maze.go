package maze

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// State is the transition state of a Maze.
type State int

const (
	Stable State = iota
	Swapping
)

func (s State) String() string {
	if s == Swapping {
		return "swapping"
	}
	return "stable"
}

// Identity names one loaded maze. Generation increases with every load or
// transition so views can tell two loads of the same level apart.
type Identity struct {
	Generation uint64
	Name       string
}

// String returns "name#generation".
func (id Identity) String() string {
	return fmt.Sprintf("%s#%d", id.Name, id.Generation)
}

// Options configure Load.
type Options struct {
	Name     string
	Geometry Geometry
}

// Maze owns the active grid, its derived layout, the live turrets and the
// transient play state of one level. Grid, layout, turrets and identity are
// only ever replaced together under the write lock, so a reader holding the
// read lock never sees a turret list from one maze with the grid of another.
type Maze struct {
	mu sync.RWMutex

	grid    *Grid
	layout  Layout
	turrets []*Turret
	ident   Identity
	state   State
	geo     Geometry

	active  int   // Index into layout.Checkpoints, -1 when none
	exit    Coord // Current exit target
	swapped bool  // Swap latch

	onState func(from, to State)
}

// Load builds a maze from g. It fails with a ConfigurationError when the
// geometry is unusable or the grid lacks a player 1 spawn or an exit tile.
func Load(g *Grid, opts Options) (*Maze, error) {
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	layout, turrets, err := build(g)
	if err != nil {
		return nil, err
	}
	m := &Maze{
		grid:    g,
		layout:  layout,
		turrets: turrets,
		ident:   Identity{Generation: 1, Name: opts.Name},
		geo:     opts.Geometry,
		active:  -1,
	}
	m.exit = layout.ClosestExit(layout.P1Spawn)
	return m, nil
}

func build(g *Grid) (Layout, []*Turret, error) {
	if g == nil {
		return Layout{}, nil, configErr("load maze", "nil grid")
	}
	layout := Derive(g)
	if err := layout.Validate(); err != nil {
		return Layout{}, nil, err
	}
	turrets := make([]*Turret, len(layout.Turrets))
	for i, c := range layout.Turrets {
		turrets[i] = NewTurret(c)
	}
	return layout, turrets, nil
}

// OnStateChange registers fn to be called on every transition state change.
// It is called without the lock held.
func (m *Maze) OnStateChange(fn func(from, to State)) {
	m.mu.Lock()
	m.onState = fn
	m.mu.Unlock()
}

func (m *Maze) setState(s State) {
	m.mu.Lock()
	from := m.state
	m.state = s
	fn := m.onState
	m.mu.Unlock()
	if fn != nil && from != s {
		fn(from, s)
	}
}

// Transition replaces the grid, layout, turrets and identity with those of
// g as one unit. Live bullets are dropped and play state is reset. g must
// have the same dimensions as the current grid.
func (m *Maze) Transition(g *Grid, name string) error {
	m.setState(Swapping)
	defer m.setState(Stable)

	cur := m.Grid()
	if g == nil || g.W() != cur.W() || g.H() != cur.H() {
		got := "nil"
		if g != nil {
			got = fmt.Sprintf("%dx%d", g.W(), g.H())
		}
		return configErr("transition", "grid %s does not match current %dx%d", got, cur.W(), cur.H())
	}
	layout, turrets, err := build(g)
	if err != nil {
		return fmt.Errorf("transition to %q: %w", name, err)
	}
	exit := layout.ClosestExit(layout.P1Spawn)

	m.mu.Lock()
	m.grid = g
	m.layout = layout
	m.turrets = turrets
	m.ident = Identity{Generation: m.ident.Generation + 1, Name: name}
	m.active = -1
	m.exit = exit
	m.swapped = false
	m.mu.Unlock()
	return nil
}

// TileAt implements Terrain against the current grid.
func (m *Maze) TileAt(c Coord) (Tile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.grid.TileAt(c)
}

// Grid returns the current grid.
func (m *Maze) Grid() *Grid {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.grid
}

// Layout returns the current derived layout.
func (m *Maze) Layout() Layout {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.layout
}

// Identity returns the current maze identity.
func (m *Maze) Identity() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ident
}

// State returns the transition state.
func (m *Maze) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Geometry returns the tile-to-pixel mapping.
func (m *Maze) Geometry() Geometry {
	return m.geo
}

// Turrets returns the live turrets. The slice is a copy; the turrets are not.
func (m *Maze) Turrets() []*Turret {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Turret, len(m.turrets))
	copy(out, m.turrets)
	return out
}

// Spawn returns the spawn tile of player id.
func (m *Maze) Spawn(id core.PlayerID) Coord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id == core.Player2 {
		return m.layout.P2Spawns[0]
	}
	return m.layout.P1Spawn
}

// FireTurrets fires every turret and returns the number of new bullets.
func (m *Maze) FireTurrets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.turrets {
		n += t.Fire(m.grid)
	}
	return n
}

// AdvanceBullets advances every turret's bullets and returns how many were
// removed.
func (m *Maze) AdvanceBullets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.turrets {
		n += t.Advance(m.grid)
	}
	return n
}

// ResolveHits respawns every player overlapped by a live bullet and returns
// their ids. Bullets survive the hit.
func (m *Maze) ResolveHits(players ...*Player) []core.PlayerID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var hit []core.PlayerID
	for _, p := range players {
		rect := p.Rect()
		for _, t := range m.turrets {
			if t.Hits(rect, m.geo) {
				p.RespawnNow()
				hit = append(hit, p.ID)
				break
			}
		}
	}
	return hit
}

// Volley names the turret clocks that are due in one Advance.
type Volley struct {
	Move bool // Bullets travel one tile
	Fire bool // Turrets spawn new bullets
}

// Advance runs the due turret clocks, bullets first, then respawns every
// player a bullet overlaps. Hits are returned in player order.
func (m *Maze) Advance(v Volley, players ...*Player) []core.PlayerID {
	if v.Move {
		m.AdvanceBullets()
	}
	if v.Fire {
		m.FireTurrets()
	}
	return m.ResolveHits(players...)
}

// TouchCheckpoint activates the checkpoint p overlaps unless p already
// respawns there. Activation moves p's respawn point onto the checkpoint and
// re-aims the exit target from there. The active checkpoint is shared, but
// each player's respawn point is its own.
func (m *Maze) TouchCheckpoint(p *Player) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	rect := p.Rect()
	for i, c := range m.layout.Checkpoints {
		if !m.geo.TileRect(c).Intersects(rect) {
			continue
		}
		px := m.geo.Pixel(c)
		if i == m.active && p.Respawn == px {
			continue
		}
		m.active = i
		p.Respawn = px
		m.exit = m.layout.ClosestExit(c)
		return true
	}
	return false
}

// ActiveCheckpoint returns the last touched checkpoint.
func (m *Maze) ActiveCheckpoint() (Coord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active < 0 {
		return Coord{}, false
	}
	return m.layout.Checkpoints[m.active], true
}

// ExitTarget returns the exit tile a single player is heading for.
func (m *Maze) ExitTarget() Coord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exit
}

// AtExit reports whether p overlaps the exit target.
func (m *Maze) AtExit(p *Player) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.geo.TileRect(m.exit).Intersects(p.Rect())
}

// onSwapZone reports whether rect overlaps any swap zone. Callers hold mu.
func (m *Maze) onSwapZone(rect core.Rect) bool {
	for _, c := range m.layout.SwapZones {
		if m.geo.TileRect(c).Intersects(rect) {
			return true
		}
	}
	return false
}

// ResolveSwap exchanges the positions of a and b the first time either of
// them stands on a swap zone. The latch then holds until both players are
// off every swap zone at once. It returns true when a swap happened.
func (m *Maze) ResolveSwap(a, b *Player) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	onA, onB := m.onSwapZone(a.Rect()), m.onSwapZone(b.Rect())
	if !onA && !onB {
		m.swapped = false
		return false
	}
	if m.swapped {
		return false
	}
	pa, pb := a.Position(), b.Position()
	a.MoveTo(pb)
	b.MoveTo(pa)
	m.swapped = true
	return true
}

// Swapped reports whether the swap latch is set.
func (m *Maze) Swapped() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.swapped
}

// Settle fits a player carried over from the previous maze into the current
// one: its respawn point becomes its spawn here, and if the tile it stands on
// is now closed to it the player is moved onto the spawn. It returns true
// when the player had to be moved.
func (m *Maze) Settle(p *Player) bool {
	spawn := m.geo.Pixel(m.Spawn(p.ID))
	p.Respawn = spawn
	t, ok := m.TileAt(p.Tile())
	if ok && CanEnter(p.ID, t) {
		return false
	}
	p.MoveTo(spawn)
	return true
}

// Capture is a consistent copy of everything a view needs from the maze,
// taken under one read lock.
type Capture struct {
	Identity   Identity
	State      State
	Grid       *Grid
	Turrets    []Coord
	Bullets    []Bullet
	Checkpoint Coord
	HasActive  bool
	Exit       Coord
	Swapped    bool
}

// Capture takes a consistent copy of the maze for publication.
func (m *Maze) Capture() Capture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c := Capture{
		Identity: m.ident,
		State:    m.state,
		Grid:     m.grid,
		Turrets:  make([]Coord, len(m.turrets)),
		Exit:     m.exit,
		Swapped:  m.swapped,
	}
	for i, t := range m.turrets {
		c.Turrets[i] = t.Pos
		c.Bullets = append(c.Bullets, t.bullets...)
	}
	if m.active >= 0 {
		c.Checkpoint = m.layout.Checkpoints[m.active]
		c.HasActive = true
	}
	return c
}
