// Package formats provides the maze file decoders: raster images whose pixel
// colors map to tiles through a palette, and YAML text grids.
package formats

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Palette maps exact pixel colors to tiles.
type Palette map[color.NRGBA]maze.Tile

// DefaultPalette returns the stock palette used by the maze assets.
func DefaultPalette() Palette {
	return Palette{
		{0, 0, 0, 0}:         maze.Path,
		{70, 70, 70, 255}:    maze.Wall,
		{111, 49, 152, 255}:  maze.TurretSpawn,
		{34, 177, 76, 255}:   maze.SwapZone,
		{153, 217, 234, 255}: maze.P2Gate,
		{255, 126, 0, 255}:   maze.P1Gate,
		{255, 242, 0, 255}:   maze.Checkpoint,
		{237, 28, 36, 255}:   maze.P1Spawn,
		{47, 54, 153, 255}:   maze.P2Spawn,
	}
}

// tileNames maps config keys to tiles.
var tileNames = map[string]maze.Tile{}

func init() {
	for _, t := range maze.AllTiles {
		tileNames[t.String()] = t
	}
}

// WithOverrides returns a copy of p where every tile named in overrides is
// drawn with the given RGBA color instead of its stock one.
func (p Palette) WithOverrides(overrides map[string][4]uint8) (Palette, error) {
	out := make(Palette, len(p))
	for c, t := range p {
		out[c] = t
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tile, ok := tileNames[name]
		if !ok {
			return nil, &maze.ConfigurationError{Op: "palette", Reason: fmt.Sprintf("unknown tile name %q", name)}
		}
		for c, t := range out {
			if t == tile {
				delete(out, c)
			}
		}
		v := overrides[name]
		c := color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}
		if other, taken := out[c]; taken {
			return nil, &maze.ConfigurationError{Op: "palette", Reason: fmt.Sprintf("color %v used by both %s and %s", v, other, tile)}
		}
		out[c] = tile
	}
	return out, nil
}

// ColorOf returns the color a tile is drawn with.
func (p Palette) ColorOf(t maze.Tile) (color.NRGBA, bool) {
	for c, tile := range p {
		if tile == t {
			return c, true
		}
	}
	return color.NRGBA{}, false
}

// InvalidTileColorError reports a pixel whose color is not in the palette.
type InvalidTileColorError struct {
	X, Y  int
	Color color.NRGBA
}

func (e *InvalidTileColorError) Error() string {
	return fmt.Sprintf("invalid tile color rgba(%d,%d,%d,%d) at (%d,%d)",
		e.Color.R, e.Color.G, e.Color.B, e.Color.A, e.X, e.Y)
}

// Unwrap places the error in the configuration category.
func (e *InvalidTileColorError) Unwrap() error {
	return maze.ErrConfiguration
}
