// Package config provides YAML-based configuration loading for the maze
// game: timing, geometry, palette, controls, levels, views and the SSH server.
package config

// Config is the complete game configuration.
type Config struct {
	Screen   ScreenConfig     `yaml:"screen"`
	Timing   TimingConfig     `yaml:"timing"`
	Geometry GeometryConfig   `yaml:"geometry"`
	Palette  map[string][]int `yaml:"palette,omitempty"` // Tile name -> RGBA override
	Controls ControlsConfig   `yaml:"controls"`
	Levels   LevelsConfig     `yaml:"levels"`
	Relay    RelayConfig      `yaml:"relay"`
	View     ViewConfig       `yaml:"view"`
	SSH      SSHConfig        `yaml:"ssh"`
	Logging  LoggingConfig    `yaml:"logging"`

	// Source is where the configuration was read from.
	Source string `yaml:"-"`
}

// ScreenConfig is the pixel size cells are fitted into when
// geometry.cell_size is zero.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines the three clocks.
type TimingConfig struct {
	TickRate         int `yaml:"tick_rate"`          // Simulation rate in Hz
	BulletIntervalMs int `yaml:"bullet_interval_ms"` // Bullet advance period
	FireIntervalMs   int `yaml:"fire_interval_ms"`   // Turret fire period
}

// GeometryConfig defines the tile-to-pixel mapping.
type GeometryConfig struct {
	CellSize    int `yaml:"cell_size"` // 0 = screen.width / maze width
	PlayerInset int `yaml:"player_inset"`
	BulletInset int `yaml:"bullet_inset"`
}

// SchemeConfig binds keys to the four directions.
type SchemeConfig struct {
	Name  string   `yaml:"name"`
	Up    []string `yaml:"up"`
	Down  []string `yaml:"down"`
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
}

// ControlsConfig holds the control schemes of both players.
type ControlsConfig struct {
	P1 SchemeConfig `yaml:"p1"`
	P2 SchemeConfig `yaml:"p2"`
}

// LevelsConfig says where mazes come from.
type LevelsConfig struct {
	Dir   string   `yaml:"dir"`   // Empty = built-in mazes
	Order []string `yaml:"order"` // Level IDs in play order, empty = sorted by ID
	Start string   `yaml:"start"` // First level ID, empty = first in order
}

// RelayConfig configures relay mode.
type RelayConfig struct {
	Legs int `yaml:"legs"` // Reflections before the run completes
}

// ViewConfig configures the views.
type ViewConfig struct {
	FogRadius int `yaml:"fog_radius"` // Tiles visible around the player in the player view
	FrameRate int `yaml:"frame_rate"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address        string `yaml:"address"`
	HostKey        string `yaml:"host_key"`
	IdleTimeoutSec int    `yaml:"idle_timeout_sec"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty = stderr for serve, discarded for play
}
