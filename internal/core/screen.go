package core

import (
	"strings"
)

// Cell is one character position of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a 2D buffer of colored runes. Views draw maze tiles, players and
// bullets into it and the tui layer turns it into styled text.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	old := s.cells
	oldW, oldH := s.width, s.height

	s.width = max(width, 0)
	s.height = max(height, 0)
	s.allocate()
	s.Clear()

	for y := 0; y < min(oldH, s.height); y++ {
		copy(s.cells[y][:min(oldW, s.width)], old[y])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// Set places an uncolored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetCell places a colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, or a blank cell when out
// of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y), clipped.
func (s *Screen) DrawText(x, y int, text string, color Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, Cell{Rune: r, Color: color})
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given row.
func (s *Screen) DrawTextCentered(y int, text string, color Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text, color)
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, color Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	s.SetCell(r.X, r.Y, Cell{'┌', color})
	s.SetCell(r.Right()-1, r.Y, Cell{'┐', color})
	s.SetCell(r.X, r.Bottom()-1, Cell{'└', color})
	s.SetCell(r.Right()-1, r.Bottom()-1, Cell{'┘', color})

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetCell(x, r.Y, Cell{'─', color})
		s.SetCell(x, r.Bottom()-1, Cell{'─', color})
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetCell(r.X, y, Cell{'│', color})
		s.SetCell(r.Right()-1, y, Cell{'│', color})
	}
}

// String converts the buffer to plain text, rows joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
