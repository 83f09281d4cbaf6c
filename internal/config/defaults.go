package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Screen: ScreenConfig{Width: 900, Height: 900},
		Timing: TimingConfig{
			TickRate:         30,
			BulletIntervalMs: 500,
			FireIntervalMs:   5000,
		},
		Geometry: GeometryConfig{
			CellSize:    0,
			PlayerInset: 2,
			BulletInset: 10,
		},
		Controls: ControlsConfig{
			P1: SchemeConfig{
				Name:  "wasd",
				Up:    []string{"w"},
				Down:  []string{"s"},
				Left:  []string{"a"},
				Right: []string{"d"},
			},
			P2: SchemeConfig{
				Name:  "arrows",
				Up:    []string{"up"},
				Down:  []string{"down"},
				Left:  []string{"left"},
				Right: []string{"right"},
			},
		},
		Relay: RelayConfig{Legs: 3},
		View: ViewConfig{
			FogRadius: 2,
			FrameRate: 30,
		},
		SSH: SSHConfig{
			Address:        ":23240",
			HostKey:        ".ssh/maze_ed25519",
			IdleTimeoutSec: 600,
		},
		Logging: LoggingConfig{Level: "info"},
		Source:  "builtin",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
