package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

var (
	flagReflect bool
	flagOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export <level>",
	Short: "Write a level as a palette PNG",
	Long: `Write a level as a one-pixel-per-tile PNG in the configured palette.
With --reflect the maze is transposed first, as relay mode does.

Examples:
  maze export 01-first-steps
  maze export 02-crossfire --reflect -o crossfire-r.png`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagReflect, "reflect", false, "Transpose the maze before writing")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default: <level>.png)")
}

func runExport(_ *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	palette, err := cfg.TilePalette()
	if err != nil {
		fail("%v", err)
	}
	loader, err := cfg.LevelLoader()
	if err != nil {
		fail("%v", err)
	}
	lvl, err := loader.LoadByID(args[0])
	if err != nil {
		fail("%v", err)
	}

	g := lvl.Grid
	if flagReflect {
		g = maze.Reflect(g)
	}
	out := flagOut
	if out == "" {
		out = lvl.ID + ".png"
	}

	if err := writePNG(out, g, palette); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", out, g.W(), g.H())
}

func writePNG(path string, g *maze.Grid, p formats.Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := formats.EncodePNG(f, g, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
