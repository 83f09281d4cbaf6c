package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/sim"
)

// newLogger writes to logging.file when set, else to fallback. The returned
// func closes the file.
func newLogger(cfg config.Config, fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	out, closer := fallback, func() {}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           cfg.LogLevel(),
	})
	return logger, closer, nil
}

// loadLevels loads the configured level set in play order.
func loadLevels(cfg config.Config, logger *log.Logger) ([]levels.Level, error) {
	loader, err := cfg.LevelLoader()
	if err != nil {
		return nil, err
	}
	all, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, bad := range loader.Invalid {
		logger.Warn("skipping level", "err", bad)
	}
	return levels.Ordered(all, cfg.Levels.Order)
}

// selectLevels picks the levels for a mode and the index to start at.
// Without a requested level the first one tagged for the mode wins.
func selectLevels(all []levels.Level, modeID, levelID string) ([]levels.Level, int, error) {
	candidates := levels.ForMode(all, modeID)
	if len(candidates) == 0 {
		return nil, 0, fmt.Errorf("no levels for mode %q", modeID)
	}
	if levelID != "" {
		i := levels.Index(candidates, levelID)
		if i < 0 {
			return nil, 0, fmt.Errorf("level %q not found for mode %q", levelID, modeID)
		}
		return candidates, i, nil
	}
	for i, lvl := range candidates {
		if lvl.Mode == modeID {
			return candidates, i, nil
		}
	}
	return candidates, 0, nil
}

// newWorld builds the mode and world for a run.
func newWorld(cfg config.Config, modeID, levelID string, logger *log.Logger) (*sim.World, registry.Mode, error) {
	if !registry.Exists(modeID) {
		return nil, nil, fmt.Errorf("unknown mode %q (run 'maze list')", modeID)
	}
	all, err := loadLevels(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if levelID == "" {
		levelID = cfg.Levels.Start
	}
	lvls, start, err := selectLevels(all, modeID, levelID)
	if err != nil {
		return nil, nil, err
	}
	mode, err := registry.Create(modeID, registry.Setup{Levels: lvls, Start: start, Legs: cfg.Relay.Legs})
	if err != nil {
		return nil, nil, err
	}
	world, err := sim.NewWorld(mode, cfg.SimConfig(), logger)
	if err != nil {
		return nil, nil, err
	}
	return world, mode, nil
}
