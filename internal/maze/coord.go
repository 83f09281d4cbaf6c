package maze

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Coord is a tile coordinate. X increases to the right, Y downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the neighbouring coordinate in direction d.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	return core.Abs(c.X-other.X) + core.Abs(c.Y-other.Y)
}

// Dir is one of the four cardinal directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// FireOrder is the order in which a turret tries its four neighbours.
var FireOrder = [4]Dir{DirDown, DirUp, DirRight, DirLeft}

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset of one step in this direction.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// DirFromAction converts a directional action into a Dir.
func DirFromAction(a core.Action) (Dir, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	default:
		return 0, false
	}
}
