package maze

import "github.com/vovakirdan/tui-maze/internal/core"

// Point is a position in pixel space.
type Point struct {
	X, Y int
}

// Geometry maps tiles to pixels. It replaces the module-level cell-size
// constants a pixel renderer would otherwise share.
type Geometry struct {
	CellSize    int // Pixels per tile side
	PlayerInset int // Player rect is CellSize-PlayerInset wide
	BulletInset int // Bullet rect is CellSize-BulletInset wide
}

// DefaultGeometry fits a grid gridW tiles wide into screenW pixels.
func DefaultGeometry(screenW, gridW int) Geometry {
	cell := 0
	if gridW > 0 {
		cell = screenW / gridW
	}
	return Geometry{CellSize: cell, PlayerInset: 2, BulletInset: 10}
}

// Validate rejects geometries where a player or bullet would have no area.
func (g Geometry) Validate() error {
	switch {
	case g.CellSize <= 0:
		return configErr("geometry", "cell size must be positive, got %d", g.CellSize)
	case g.PlayerInset < 0 || g.BulletInset < 0:
		return configErr("geometry", "insets must not be negative")
	case g.CellSize-g.PlayerInset <= 0:
		return configErr("geometry", "player inset %d leaves an empty rectangle in a %dpx cell", g.PlayerInset, g.CellSize)
	case g.CellSize-g.BulletInset <= 0:
		return configErr("geometry", "bullet inset %d leaves an empty rectangle in a %dpx cell", g.BulletInset, g.CellSize)
	}
	return nil
}

// Pixel returns the top-left pixel of tile c.
func (g Geometry) Pixel(c Coord) Point {
	return Point{X: c.X * g.CellSize, Y: c.Y * g.CellSize}
}

// TileOf returns the tile containing pixel p. Negative pixels map to
// negative tiles, never to tile zero.
func (g Geometry) TileOf(p Point) Coord {
	return Coord{X: floorDiv(p.X, g.CellSize), Y: floorDiv(p.Y, g.CellSize)}
}

// TileRect returns the full rectangle of tile c.
func (g Geometry) TileRect(c Coord) core.Rect {
	p := g.Pixel(c)
	return core.NewRect(p.X, p.Y, g.CellSize, g.CellSize)
}

// PlayerRect returns a player's rectangle with its corner at p.
func (g Geometry) PlayerRect(p Point) core.Rect {
	return core.NewRect(p.X, p.Y, g.CellSize-g.PlayerInset, g.CellSize-g.PlayerInset)
}

// BulletRect returns the rectangle of a bullet on tile c.
func (g Geometry) BulletRect(c Coord) core.Rect {
	p := g.Pixel(c)
	return core.NewRect(p.X, p.Y, g.CellSize-g.BulletInset, g.CellSize-g.BulletInset)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
