package core

// RuntimeConfig describes the view a renderer draws into. Views get it from
// the local terminal size or from the SSH PTY.
type RuntimeConfig struct {
	ScreenW   int // Screen width in characters
	ScreenH   int // Screen height in characters
	FrameRate int // Draw loop rate in frames per second
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 30 FPS.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 30,
	}
}
