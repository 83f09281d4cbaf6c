package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// YAMLLevel represents the YAML structure for a maze file. Exactly one of
// Rows and Tiles must be set.
type YAMLLevel struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Mode  string   `yaml:"mode,omitempty"` // Mode the maze is meant for, empty for any
	Rows  []string `yaml:"rows,omitempty"`
	Tiles [][]int  `yaml:"tiles,omitempty"`
}

// Level represents a parsed maze file.
type Level struct {
	ID    string
	Name  string
	Mode  string
	Tiles [][]maze.Tile
}

var glyphs = map[rune]maze.Tile{
	'.': maze.Path,
	'#': maze.Wall,
	'T': maze.TurretSpawn,
	'S': maze.SwapZone,
	'2': maze.P2Gate,
	'1': maze.P1Gate,
	'C': maze.Checkpoint,
	'a': maze.P1Spawn,
	'b': maze.P2Spawn,
}

// Glyph returns the text glyph of a tile.
func Glyph(t maze.Tile) rune {
	for r, tile := range glyphs {
		if tile == t {
			return r
		}
	}
	return '?'
}

// ParseYAML parses a YAML maze file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{ID: yl.ID, Name: yl.Name, Mode: yl.Mode}

	switch {
	case len(yl.Rows) > 0 && len(yl.Tiles) > 0:
		return Level{}, &maze.ConfigurationError{Op: "parse yaml", Reason: "both rows and tiles are set"}
	case len(yl.Rows) > 0:
		level.Tiles = make([][]maze.Tile, len(yl.Rows))
		for y, row := range yl.Rows {
			for x, r := range []rune(row) {
				t, ok := glyphs[r]
				if !ok {
					return Level{}, &maze.ConfigurationError{
						Op:     "parse yaml",
						Reason: fmt.Sprintf("unknown glyph %q at (%d,%d)", r, x, y),
					}
				}
				level.Tiles[y] = append(level.Tiles[y], t)
			}
		}
	case len(yl.Tiles) > 0:
		level.Tiles = make([][]maze.Tile, len(yl.Tiles))
		for y, row := range yl.Tiles {
			level.Tiles[y] = make([]maze.Tile, len(row))
			for x, v := range row {
				level.Tiles[y][x] = maze.Tile(v)
			}
		}
	default:
		return Level{}, &maze.ConfigurationError{Op: "parse yaml", Reason: "no rows or tiles"}
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return append([]string{".yaml", ".yml"}, ImageExtensions()...)
}
