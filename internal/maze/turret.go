package maze

import "github.com/vovakirdan/tui-maze/internal/core"

// Bullet travels one tile per advance in a fixed direction.
type Bullet struct {
	Pos Coord
	Dir Dir
}

// Turret is a fixed hazard on a turret spawn tile. It owns its live bullets.
type Turret struct {
	Pos     Coord
	bullets []Bullet
}

// NewTurret creates a turret with no bullets.
func NewTurret(pos Coord) *Turret {
	return &Turret{Pos: pos}
}

// Bullets returns a copy of the live bullets.
func (t *Turret) Bullets() []Bullet {
	out := make([]Bullet, len(t.bullets))
	copy(out, t.bullets)
	return out
}

// Fire spawns one bullet on every neighbouring tile that is inside the
// terrain and not solid, in FireOrder. It returns the number spawned.
func (t *Turret) Fire(terrain Terrain) int {
	n := 0
	for _, d := range FireOrder {
		c := t.Pos.Step(d)
		tile, ok := terrain.TileAt(c)
		if !ok || tile.Solid() {
			continue
		}
		t.bullets = append(t.bullets, Bullet{Pos: c, Dir: d})
		n++
	}
	return n
}

// Advance moves every bullet one tile and drops those that now sit on a wall
// or left the terrain. It returns the number removed.
func (t *Turret) Advance(terrain Terrain) int {
	live := t.bullets[:0]
	for _, b := range t.bullets {
		b.Pos = b.Pos.Step(b.Dir)
		tile, ok := terrain.TileAt(b.Pos)
		if !ok || tile == Wall {
			continue
		}
		live = append(live, b)
	}
	removed := len(t.bullets) - len(live)
	clear(t.bullets[len(live):])
	t.bullets = live
	return removed
}

// Hits reports whether any bullet overlaps rect. A hit never removes the
// bullet.
func (t *Turret) Hits(rect core.Rect, geo Geometry) bool {
	for _, b := range t.bullets {
		if geo.BulletRect(b.Pos).Intersects(rect) {
			return true
		}
	}
	return false
}
