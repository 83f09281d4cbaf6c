package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/sim"
)

const fileName = "maze.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.maze/config.yaml -> ./configs/maze.yaml -> embedded default
// Keys missing from the file keep their Default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return parse(data, customPath)
	}

	candidates := []string{userConfigPath("config.yaml"), filepath.Join("configs", fileName)}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", p, err)
		}
		return parse(data, p)
	}

	// Use embedded default YAML
	cfg, err := parse(defaultMazeYAML, "embedded")
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	cfg.Source = source
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".maze", filename)
}

func invalid(op, format string, args ...any) error {
	return &maze.ConfigurationError{Op: "config " + op, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every section and returns a *maze.ConfigurationError for
// the first bad value.
func (c Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return invalid("screen", "size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Timing.TickRate <= 0:
		return invalid("timing", "tick_rate must be positive, got %d", c.Timing.TickRate)
	case c.Timing.BulletIntervalMs <= 0 || c.Timing.FireIntervalMs <= 0:
		return invalid("timing", "intervals must be positive")
	case c.Geometry.CellSize < 0:
		return invalid("geometry", "cell_size must not be negative")
	case c.Relay.Legs < 1:
		return invalid("relay", "legs must be at least 1, got %d", c.Relay.Legs)
	case c.View.FogRadius < 0:
		return invalid("view", "fog_radius must not be negative")
	case c.View.FrameRate <= 0:
		return invalid("view", "frame_rate must be positive")
	case c.SSH.IdleTimeoutSec < 0:
		return invalid("ssh", "idle_timeout_sec must not be negative")
	}

	if c.Geometry.CellSize > 0 {
		g := maze.Geometry{
			CellSize:    c.Geometry.CellSize,
			PlayerInset: c.Geometry.PlayerInset,
			BulletInset: c.Geometry.BulletInset,
		}
		if err := g.Validate(); err != nil {
			return err
		}
	} else if c.Geometry.PlayerInset < 0 || c.Geometry.BulletInset < 0 {
		return invalid("geometry", "insets must not be negative")
	}

	for i, s := range []SchemeConfig{c.Controls.P1, c.Controls.P2} {
		if len(s.Up) == 0 || len(s.Down) == 0 || len(s.Left) == 0 || len(s.Right) == 0 {
			return invalid("controls", "p%d needs keys for all four directions", i+1)
		}
	}

	if _, err := c.TilePalette(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging", "unknown level %q", c.Logging.Level)
	}
	return nil
}

// TilePalette returns the stock palette with the configured overrides applied.
func (c Config) TilePalette() (formats.Palette, error) {
	overrides := make(map[string][4]uint8, len(c.Palette))
	for name, rgba := range c.Palette {
		if len(rgba) != 3 && len(rgba) != 4 {
			return nil, invalid("palette", "%s: want [r, g, b] or [r, g, b, a], got %v", name, rgba)
		}
		col := [4]uint8{0, 0, 0, 255}
		for i, v := range rgba {
			if v < 0 || v > 255 {
				return nil, invalid("palette", "%s: component %d out of range", name, v)
			}
			col[i] = uint8(v)
		}
		overrides[name] = col
	}
	return formats.DefaultPalette().WithOverrides(overrides)
}

// LevelLoader returns a loader over levels.dir, or over the built-in
// mazes when no directory is configured.
func (c Config) LevelLoader() (*levels.Loader, error) {
	if c.Levels.Dir == "" {
		return levels.Builtin(), nil
	}
	p, err := c.TilePalette()
	if err != nil {
		return nil, err
	}
	return levels.NewLoader(c.Levels.Dir, p), nil
}

// LogLevel returns the configured log level. Validate has already
// rejected unknown names.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// SimConfig converts the timing, geometry and control settings.
func (c Config) SimConfig() sim.Config {
	sc := sim.DefaultConfig()
	sc.TickRate = c.Timing.TickRate
	sc.BulletInterval = time.Duration(c.Timing.BulletIntervalMs) * time.Millisecond
	sc.FireInterval = time.Duration(c.Timing.FireIntervalMs) * time.Millisecond
	sc.ScreenWidth = c.Screen.Width
	sc.Geometry = maze.Geometry{
		CellSize:    c.Geometry.CellSize,
		PlayerInset: c.Geometry.PlayerInset,
		BulletInset: c.Geometry.BulletInset,
	}
	sc.Schemes = [2]string{c.Controls.P1.Name, c.Controls.P2.Name}
	return sc
}

// IdleTimeout returns the SSH idle timeout, zero for none.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.SSH.IdleTimeoutSec) * time.Second
}
