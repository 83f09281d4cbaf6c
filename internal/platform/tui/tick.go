// Package tui draws the maze in the terminal. It has the local split view,
// the per-session SSH view and the Wish server that hosts them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent to trigger a redraw.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends frame messages at the specified rate.
func frameCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 30
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
