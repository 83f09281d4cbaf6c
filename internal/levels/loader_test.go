package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "id: b\nrows:\n  - \"a.b\"\n")
	writeFile(t, dir, "nested/a.yml", "id: a\nname: First\nrows:\n  - \"b.a\"\n")
	writeFile(t, dir, "broken.yaml", "id: broken\nrows:\n  - \"...\"\n")
	writeFile(t, dir, "notes.txt", "ignored")

	l := NewLoader(dir, formats.DefaultPalette())
	levels, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("loaded %d levels, expected 2", len(levels))
	}
	if levels[0].ID != "a" || levels[1].ID != "b" {
		t.Errorf("levels not sorted by ID: %s, %s", levels[0].ID, levels[1].ID)
	}
	if levels[0].Name != "First" || levels[1].Name != "b" {
		t.Errorf("names = %q, %q", levels[0].Name, levels[1].Name)
	}
	if len(l.Invalid) != 1 || !errors.Is(l.Invalid[0], maze.ErrConfiguration) {
		t.Errorf("Invalid = %v, expected one configuration error", l.Invalid)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.yaml", "id: custom\nrows:\n  - \"ab\"\n")

	l := NewLoader(dir, nil)
	lvl, err := l.LoadByID("custom")
	if err != nil {
		t.Fatalf("LoadByID() error: %v", err)
	}
	if lvl.Grid.W() != 2 || lvl.Grid.H() != 1 {
		t.Errorf("grid %dx%d, expected 2x1", lvl.Grid.W(), lvl.Grid.H())
	}
	if _, err := l.LoadByID("missing"); err == nil {
		t.Error("LoadByID(missing) should fail")
	}
}

func TestLoadFileImage(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "maze.png")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	g := maze.MustGrid([][]maze.Tile{{1, 1, 1}, {-1, 0, -2}, {1, 1, 1}})
	if err := formats.EncodePNG(f, g, formats.DefaultPalette()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	lvl, err := NewLoader(dir, nil).LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if lvl.ID != "maze" || !lvl.Grid.Equal(g) {
		t.Errorf("loaded %q %v", lvl.ID, lvl.Grid.Rows())
	}
}

func TestBuiltinLevels(t *testing.T) {
	l := Builtin()
	levels, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(l.Invalid) != 0 {
		t.Fatalf("invalid builtin levels: %v", l.Invalid)
	}
	if len(levels) < 3 {
		t.Fatalf("expected at least 3 builtin levels, got %d", len(levels))
	}
	for _, lvl := range levels {
		if lvl.Grid.W() != lvl.Grid.H() {
			t.Errorf("%s is %dx%d; builtin mazes are square so relay can reflect them", lvl.ID, lvl.Grid.W(), lvl.Grid.H())
		}
		if lvl.Grid.W() != levels[0].Grid.W() {
			t.Errorf("%s has a different size than %s", lvl.ID, levels[0].ID)
		}
	}

	solo := ForMode(levels, "solo")
	for _, lvl := range solo {
		if lvl.Mode == "duel" {
			t.Errorf("duel level %s offered to solo", lvl.ID)
		}
	}
	if Index(levels, "03-gates") < 0 {
		t.Error("03-gates not found")
	}
}

func TestOrdered(t *testing.T) {
	all := []Level{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got, err := Ordered(all, []string{"c", "a"})
	if err != nil {
		t.Fatalf("Ordered: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Errorf("Ordered = %v, want [c a]", got)
	}

	same, err := Ordered(all, nil)
	if err != nil || len(same) != 3 {
		t.Errorf("Ordered(nil) = %v, %v, want all levels", same, err)
	}

	if _, err := Ordered(all, []string{"zz"}); err == nil {
		t.Error("Ordered with unknown ID should fail")
	}
}
