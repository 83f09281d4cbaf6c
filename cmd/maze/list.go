package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes and levels",
	Long:  `Shows the registered game modes and the levels of the configured level set.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	fmt.Println("Modes:")
	fmt.Println()
	modes := registry.List()
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Players", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "-------", "-----")
	for _, m := range modes {
		fmt.Printf("  %-*s  %-7d  %s\n", maxIDLen, m.ID, m.Players, m.Title)
	}

	lvls, err := loadLevels(cfg, log.New(io.Discard))
	if err != nil {
		fail("%v", err)
	}

	fmt.Println()
	fmt.Println("Levels:")
	fmt.Println()
	if len(lvls) == 0 {
		fmt.Println("  No levels found.")
		return
	}
	maxIDLen = 2
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Size", "Mode", "Name")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "----", "----")
	for _, l := range lvls {
		mode := l.Mode
		if mode == "" {
			mode = "any"
		}
		size := fmt.Sprintf("%dx%d", l.Grid.W(), l.Grid.H())
		fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, l.ID, size, mode, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'maze play --mode <id> --level <id>' to play.")
}
