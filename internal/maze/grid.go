package maze

// Terrain is anything a move or a shot can be checked against. Both a bare
// Grid and a live Maze satisfy it.
type Terrain interface {
	TileAt(c Coord) (Tile, bool)
}

// Grid is an immutable rectangular tile grid in row-major order. Once built
// it is never written again, so it can be shared with views without copying.
type Grid struct {
	w     int
	h     int
	tiles []Tile // index = y*w + x
}

// NewGrid copies rows into a new Grid. Rows must be non-empty, rectangular
// and contain only known tile codes.
func NewGrid(rows [][]Tile) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, configErr("new grid", "grid is empty")
	}
	w, h := len(rows[0]), len(rows)
	g := &Grid{w: w, h: h, tiles: make([]Tile, 0, w*h)}
	for y, row := range rows {
		if len(row) != w {
			return nil, configErr("new grid", "row %d has %d tiles, expected %d", y, len(row), w)
		}
		for x, t := range row {
			if !t.Valid() {
				return nil, configErr("new grid", "unknown tile code %d at %s", int(t), C(x, y))
			}
		}
		g.tiles = append(g.tiles, row...)
	}
	return g, nil
}

// MustGrid is NewGrid for literals in tests and built-in levels.
func MustGrid(rows [][]Tile) *Grid {
	g, err := NewGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// FromInts builds a grid from plain integer codes.
func FromInts(rows [][]int) (*Grid, error) {
	tiles := make([][]Tile, len(rows))
	for y, row := range rows {
		tiles[y] = make([]Tile, len(row))
		for x, v := range row {
			tiles[y][x] = Tile(v)
		}
	}
	return NewGrid(tiles)
}

// W returns the grid width in tiles.
func (g *Grid) W() int { return g.w }

// H returns the grid height in tiles.
func (g *Grid) H() int { return g.h }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

// TileAt returns the tile at c and false when c is outside the grid.
func (g *Grid) TileAt(c Coord) (Tile, bool) {
	if !g.InBounds(c) {
		return Wall, false
	}
	return g.tiles[c.Y*g.w+c.X], true
}

// At is the checked form of TileAt.
func (g *Grid) At(c Coord) (Tile, error) {
	t, ok := g.TileAt(c)
	if !ok {
		return 0, &OutOfBoundsError{Coord: c, W: g.w, H: g.h}
	}
	return t, nil
}

// Rows returns a fresh copy of the tiles as rows.
func (g *Grid) Rows() [][]Tile {
	rows := make([][]Tile, g.h)
	for y := range rows {
		rows[y] = make([]Tile, g.w)
		copy(rows[y], g.tiles[y*g.w:(y+1)*g.w])
	}
	return rows
}

// Equal reports whether two grids have the same shape and tiles.
func (g *Grid) Equal(other *Grid) bool {
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i, t := range g.tiles {
		if other.tiles[i] != t {
			return false
		}
	}
	return true
}

// Reflect rotates the grid 90 degrees and mirrors it horizontally, which is
// the transpose: tile (x, y) moves to (y, x). Reflecting twice yields the
// original grid.
func Reflect(g *Grid) *Grid {
	out := &Grid{w: g.h, h: g.w, tiles: make([]Tile, len(g.tiles))}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			out.tiles[x*out.w+y] = g.tiles[y*g.w+x]
		}
	}
	return out
}
