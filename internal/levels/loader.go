// Package levels finds and loads maze files. This package depends on maze
// but maze does not depend on levels.
package levels

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-maze/internal/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Level is a decoded maze file.
type Level struct {
	ID       string
	Name     string
	Mode     string // Mode the maze is meant for, empty for any
	Grid     *maze.Grid
	FilePath string
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root    string
	Palette formats.Palette

	fsys fs.FS
	// Invalid collects the errors of files LoadAll skipped.
	Invalid []error
}

// NewLoader creates a loader rooted at a directory on disk.
func NewLoader(root string, palette formats.Palette) *Loader {
	return &Loader{Root: root, Palette: palette, fsys: os.DirFS(root)}
}

// Builtin returns a loader over the mazes compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return &Loader{Root: "builtin", Palette: formats.DefaultPalette(), fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped and recorded in Invalid.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	l.Invalid = nil

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", p, err)
		}
		level, err := l.decode(data, p)
		if err != nil {
			l.Invalid = append(l.Invalid, err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file from disk, outside the loader's root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return l.decode(data, p)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

func (l *Loader) decode(data []byte, p string) (Level, error) {
	ext := strings.ToLower(path.Ext(p))
	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	level := Level{ID: base, Name: base, FilePath: p}

	var tiles [][]maze.Tile
	switch ext {
	case ".yaml", ".yml":
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
		}
		if parsed.ID != "" {
			level.ID = parsed.ID
		}
		if parsed.Name != "" {
			level.Name = parsed.Name
		}
		level.Mode = parsed.Mode
		tiles = parsed.Tiles
	case ".png", ".gif", ".bmp":
		palette := l.Palette
		if palette == nil {
			palette = formats.DefaultPalette()
		}
		decoded, err := formats.DecodeImage(bytes.NewReader(data), palette)
		if err != nil {
			return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
		}
		tiles = decoded
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}

	g, err := maze.NewGrid(tiles)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if err := maze.Derive(g).Validate(); err != nil {
		return Level{}, fmt.Errorf("checking file %s: %w", p, err)
	}
	level.Grid = g
	return level, nil
}

// ForMode returns the levels meant for mode, keeping their order. Levels
// without a mode tag suit every mode.
func ForMode(levels []Level, mode string) []Level {
	var out []Level
	for _, lvl := range levels {
		if lvl.Mode == "" || lvl.Mode == mode {
			out = append(out, lvl)
		}
	}
	return out
}

// Index returns the position of the level with the given ID, or -1.
func Index(levels []Level, id string) int {
	for i, lvl := range levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Ordered returns the levels named by ids in that order. An empty ids keeps
// levels as they are.
func Ordered(levels []Level, ids []string) ([]Level, error) {
	if len(ids) == 0 {
		return levels, nil
	}
	out := make([]Level, 0, len(ids))
	for _, id := range ids {
		i := Index(levels, id)
		if i < 0 {
			return nil, fmt.Errorf("level order: unknown level %q", id)
		}
		out = append(out, levels[i])
	}
	return out, nil
}
