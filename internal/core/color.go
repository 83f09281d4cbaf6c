package core

// Color is a foreground color for a screen cell. The tui layer maps it to
// ANSI 256 colors.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightBlue
	ColorOrange
	ColorLightBlue
	ColorGray
	ColorDarkGray
)
