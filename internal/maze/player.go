package maze

import "github.com/vovakirdan/tui-maze/internal/core"

// Player is a tile-aligned avatar. Its rectangle is inset from the tile so
// that two players on neighbouring tiles never touch.
type Player struct {
	ID      core.PlayerID
	Color   core.Color
	Scheme  string // Control scheme name, e.g. "wasd"
	Respawn Point  // Where a hit sends the player

	pos Point
	geo Geometry
}

// NewPlayer places a player on tile spawn, which is also its respawn point.
func NewPlayer(id core.PlayerID, spawn Coord, geo Geometry, color core.Color, scheme string) *Player {
	p := geo.Pixel(spawn)
	return &Player{
		ID:      id,
		Color:   color,
		Scheme:  scheme,
		Respawn: p,
		pos:     p,
		geo:     geo,
	}
}

// Position returns the player's top-left pixel.
func (p *Player) Position() Point {
	return p.pos
}

// Tile returns the tile the player stands on.
func (p *Player) Tile() Coord {
	return p.geo.TileOf(p.pos)
}

// Rect returns the player's collision rectangle.
func (p *Player) Rect() core.Rect {
	return p.geo.PlayerRect(p.pos)
}

// CanEnter reports whether player id may stand on tile t.
func CanEnter(id core.PlayerID, t Tile) bool {
	switch t {
	case Wall, TurretSpawn:
		return false
	case P1Gate:
		return id == core.Player1
	case P2Gate:
		return id == core.Player2
	default:
		return true
	}
}

// TryMove moves the player exactly one tile in direction d. It returns false
// and changes nothing when the destination is outside the terrain, solid, or
// a gate the player does not own.
func (p *Player) TryMove(d Dir, t Terrain) bool {
	dest := p.Tile().Step(d)
	tile, ok := t.TileAt(dest)
	if !ok || !CanEnter(p.ID, tile) {
		return false
	}
	p.pos = p.geo.Pixel(dest)
	return true
}

// MoveTo teleports the player to pixel position pt.
func (p *Player) MoveTo(pt Point) {
	p.pos = pt
}

// RespawnNow sends the player back to its respawn point.
func (p *Player) RespawnNow() {
	p.pos = p.Respawn
}
