package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate maze files",
	Long: `Decode and load each maze file and report configuration errors:
unknown tile colors or glyphs, ragged rows, missing spawns.

Supported formats: .yaml/.yml text grids and .png/.gif/.bmp palette images.

Examples:
  maze check level.png
  maze check mazes/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	palette, err := cfg.TilePalette()
	if err != nil {
		fail("%v", err)
	}
	loader := levels.NewLoader(".", palette)

	failed := 0
	for _, p := range args {
		lvl, err := loader.LoadFile(p)
		if err != nil {
			failed++
			var colorErr *formats.InvalidTileColorError
			switch {
			case errors.As(err, &colorErr):
				fmt.Printf("FAIL %s: pixel (%d, %d) has color %v\n", p, colorErr.X, colorErr.Y, colorErr.Color)
			case errors.Is(err, maze.ErrConfiguration):
				fmt.Printf("FAIL %s: %v\n", p, err)
			default:
				fmt.Printf("ERR  %s: %v\n", p, err)
			}
			continue
		}
		layout := maze.Derive(lvl.Grid)
		fmt.Printf("OK   %s: %dx%d, %d turrets, %d checkpoints, %d exits\n",
			p, lvl.Grid.W(), lvl.Grid.H(), len(layout.Turrets), len(layout.Checkpoints), len(layout.P2Spawns))
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(args))
		os.Exit(1)
	}
}
