// Package maze holds the tile-grid maze model and the entities that live on
// it: players, turrets and their bullets. It owns no goroutines. The
// simulation drives it one tick at a time and views only ever see copies.
package maze

import "fmt"

// Tile is the semantic code of one maze cell.
type Tile int

const (
	P2Spawn     Tile = -2 // Player 2 spawn in duel, exit region otherwise
	P1Spawn     Tile = -1
	Path        Tile = 0
	Wall        Tile = 1
	TurretSpawn Tile = 2
	SwapZone    Tile = 3
	P2Gate      Tile = 4 // Passable only for player 2
	P1Gate      Tile = 5 // Passable only for player 1
	Checkpoint  Tile = 6
)

// AllTiles lists every valid tile code.
var AllTiles = []Tile{P2Spawn, P1Spawn, Path, Wall, TurretSpawn, SwapZone, P2Gate, P1Gate, Checkpoint}

// Valid reports whether t is a known tile code.
func (t Tile) Valid() bool {
	return t >= P2Spawn && t <= Checkpoint
}

// Solid reports whether nothing may ever stand on the tile.
func (t Tile) Solid() bool {
	return t == Wall || t == TurretSpawn
}

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case P2Spawn:
		return "p2_spawn"
	case P1Spawn:
		return "p1_spawn"
	case Path:
		return "path"
	case Wall:
		return "wall"
	case TurretSpawn:
		return "turret"
	case SwapZone:
		return "swap"
	case P2Gate:
		return "p2_gate"
	case P1Gate:
		return "p1_gate"
	case Checkpoint:
		return "checkpoint"
	default:
		return fmt.Sprintf("tile(%d)", int(t))
	}
}
