package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/viewsync"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorRed:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:       lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightBlue: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorOrange:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorLightBlue:  lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	core.ColorGray:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGray:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Consecutive cells of one color share a single style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			style, ok := colorStyles[start]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// TileWidth is the number of terminal columns one maze tile takes.
const TileWidth = 2

type glyph struct {
	text  string
	color core.Color
}

var tileGlyphs = map[maze.Tile]glyph{
	maze.Path:        {"  ", core.ColorDefault},
	maze.Wall:        {"██", core.ColorGray},
	maze.TurretSpawn: {"[]", core.ColorMagenta},
	maze.SwapZone:    {"<>", core.ColorCyan},
	maze.P2Gate:      {"▒▒", core.ColorLightBlue},
	maze.P1Gate:      {"▒▒", core.ColorOrange},
	maze.Checkpoint:  {"()", core.ColorYellow},
	maze.P1Spawn:     {"··", core.ColorDarkGray},
	maze.P2Spawn:     {"··", core.ColorGreen},
}

var (
	fogGlyph        = glyph{"░░", core.ColorDarkGray}
	exitGlyph       = glyph{"><", core.ColorGreen}
	activeGlyph     = glyph{"()", core.ColorGreen}
	bulletGlyph     = glyph{"**", core.ColorBrightRed}
	playerGlyphText = map[core.PlayerID]string{core.Player1: "P1", core.Player2: "P2"}
)

// Fog hides tiles outside a square around one tile.
type Fog struct {
	Center maze.Coord
	Radius int
}

// Hides reports whether c is outside the fog window.
func (f *Fog) Hides(c maze.Coord) bool {
	if f == nil {
		return false
	}
	return core.Abs(c.X-f.Center.X) > f.Radius || core.Abs(c.Y-f.Center.Y) > f.Radius
}

func put(s *core.Screen, x, y int, g glyph) {
	s.DrawText(x, y, g.text, g.color)
}

// DrawMaze draws the maze of v with its top-left corner at (ox, oy).
// A nil fog draws everything.
func DrawMaze(s *core.Screen, v *viewsync.ViewState, ox, oy int, fog *Fog) {
	g := v.Grid
	for y := range g.H() {
		for x := range g.W() {
			c := maze.C(x, y)
			sx, sy := ox+x*TileWidth, oy+y
			if fog.Hides(c) {
				put(s, sx, sy, fogGlyph)
				continue
			}
			t, _ := g.TileAt(c)
			gl := tileGlyphs[t]
			switch {
			case v.HasActive && c == v.Checkpoint:
				gl = activeGlyph
			case v.Mode != "duel" && c == v.Exit:
				gl = exitGlyph
			}
			put(s, sx, sy, gl)
		}
	}

	for _, b := range v.Bullets {
		if g.InBounds(b.Tile) && !fog.Hides(b.Tile) {
			put(s, ox+b.Tile.X*TileWidth, oy+b.Tile.Y, bulletGlyph)
		}
	}
	for _, p := range v.Players {
		if g.InBounds(p.Tile) && !fog.Hides(p.Tile) {
			put(s, ox+p.Tile.X*TileWidth, oy+p.Tile.Y, glyph{playerGlyphText[p.ID], p.Color})
		}
	}
}

// Board renders the maze of v. With fog set only the window around the
// player is visible. When the run is over the board shows the win banner.
func Board(v *viewsync.ViewState, fog *Fog) string {
	w, h := v.Grid.W()*TileWidth, v.Grid.H()
	if v.Phase.Over() {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, Banner(v.WinText))
	}
	s := core.NewScreen(w, h)
	DrawMaze(s, v, 0, 0, fog)
	return RenderScreen(s)
}

// MapView renders the whole maze.
func MapView(v *viewsync.ViewState) string {
	return Board(v, nil)
}

// PlayerView renders the fogged view around player id. Without that
// player on the board it falls back to the map.
func PlayerView(v *viewsync.ViewState, id core.PlayerID, radius int) string {
	p, ok := v.Player(id)
	if !ok {
		return MapView(v)
	}
	return Board(v, &Fog{Center: p.Tile, Radius: radius})
}

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("2")).
			Foreground(lipgloss.Color("10")).
			Bold(true).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	swapStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true)
)

// Banner renders the end-of-run text.
func Banner(text string) string {
	return bannerStyle.Render(text)
}

// Panel frames body under a title.
func Panel(title, body string) string {
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), body))
}

// Status renders one line describing the run.
func Status(v *viewsync.ViewState) string {
	line := fmt.Sprintf("%s  %s  leg %d  tick %d", v.Mode, v.Maze, v.Leg, v.Tick)
	if v.Phase == viewsync.PhaseSwapping {
		return lipgloss.JoinHorizontal(lipgloss.Top, statusStyle.Render(line+"  "), swapStyle.Render("swapping maze..."))
	}
	return statusStyle.Render(line + "  " + v.Phase.String())
}

// NeedSize returns the terminal size needed to show boards framed maze
// views of a gridW x gridH maze side by side with the status and help lines.
func NeedSize(gridW, gridH, boards int) (w, h int) {
	return (gridW*TileWidth + 2) * boards, gridH + 3 + 2
}

// TooSmall renders a notice filling the screen described by rc.
func TooSmall(rc core.RuntimeConfig, needW, needH int) string {
	s := core.NewScreen(rc.ScreenW, rc.ScreenH)
	s.DrawBox(core.NewRect(0, 0, rc.ScreenW, rc.ScreenH), core.ColorGray)
	mid := rc.ScreenH / 2
	s.DrawTextCentered(mid-1, "terminal too small", core.ColorYellow)
	s.DrawTextCentered(mid, fmt.Sprintf("need %dx%d, have %dx%d", needW, needH, rc.ScreenW, rc.ScreenH), core.ColorGray)
	return RenderScreen(s)
}
