// maze is a real-time tile maze: dodge turret fire, touch checkpoints and
// reach the exit, alone, as a relay between two views or in a duel.
//
// Usage:
//
//	maze list                 - List modes and levels
//	maze play                 - Play locally in a split view
//	maze serve                - Serve one shared game over SSH
//	maze check <file>...      - Validate maze files
//	maze export <level>       - Write a level as a palette PNG
//
// Global flags:
//
//	--config <path>  - Configuration file (default: ~/.maze/config.yaml)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import sim to register the game modes
	_ "github.com/vovakirdan/tui-maze/internal/sim"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "TUI Maze - dodge turrets and find the exit",
	Long: `TUI Maze is a real-time tile maze played in the terminal.

Available commands:
  list     - Show modes and levels
  play     - Play locally (map and player view side by side)
  serve    - Serve one shared game; every SSH session is a view
  check    - Validate maze files
  export   - Write a level (optionally reflected) as a PNG

Examples:
  maze list
  maze play --mode relay
  maze serve --ssh :23240
  maze check ./mazes/*.png`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
