package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/sim"
	"github.com/vovakirdan/tui-maze/internal/viewsync"
)

var (
	flagMode  string
	flagLevel string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play locally",
	Long: `Play in this terminal with the map and the fogged player view side
by side.

Modes:
  solo   - Run through every level in order
  relay  - Reach the exit, then play the reflected maze with roles swapped
  duel   - Two players on one keyboard race to meet

Controls:
  W/A/S/D      - Player 1
  Arrow keys   - Player 2 (player 1 in single-player modes)
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  maze play
  maze play --mode duel
  maze play --mode solo --level 02-crossfire`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "solo", "Game mode: solo, relay, duel")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID to start at")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	// The TUI owns the terminal, so logs only go to a file.
	logger, closeLog, err := newLogger(cfg, io.Discard, "maze")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	world, mode, err := newWorld(cfg, flagMode, flagLevel, logger)
	if err != nil {
		closeLog()
		fail("%v", err)
	}

	view, err := checkTerminal(world.Maze().Grid().W(), world.Maze().Grid().H(), mode.Players())
	if err != nil {
		closeLog()
		fail("%v", err)
	}
	view.FrameRate = cfg.View.FrameRate

	pub := viewsync.NewPublisher()
	engine := sim.NewEngine(world, cfg.SimConfig(), pub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- engine.Run(ctx)
	}()

	runErr := tui.RunLocal(pub, engine, done, tui.LocalOptions{
		Players:   mode.Players(),
		FogRadius: cfg.View.FogRadius,
		View:      view,
		Keys:      tui.NewKeyMap(cfg.Controls),
	})
	cancel()

	if runErr != nil {
		closeLog()
		fail("%v", runErr)
	}
}

// checkTerminal makes sure stdout is a terminal that fits the map plus one
// player view per player and returns its size.
func checkTerminal(gridW, gridH, players int) (core.RuntimeConfig, error) {
	rc := core.DefaultConfig()
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return rc, fmt.Errorf("play needs an interactive terminal")
	}
	if w, h, err := term.GetSize(fd); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	needW, needH := tui.NeedSize(gridW, gridH, players+1)
	if rc.ScreenW < needW || rc.ScreenH < needH {
		return rc, fmt.Errorf("terminal is %dx%d, the maze needs at least %dx%d", rc.ScreenW, rc.ScreenH, needW, needH)
	}
	return rc, nil
}
