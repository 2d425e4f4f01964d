package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every loaded level with your best solve, followed by the play modes.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	done := map[string]bool{}
	if a.store != nil {
		if done, err = a.store.CompletedLevels(storage.LocalPlayer); err != nil {
			return err
		}
	}

	lvls := a.pack.Levels()
	fmt.Printf("Levels (%d/%d solved):\n", len(done), len(lvls))
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, lvl := range lvls {
		maxIDLen = max(maxIDLen, len(lvl.ID))
		maxNameLen = max(maxNameLen, len([]rune(lvl.Name)))
	}

	// Print header
	fmt.Printf("     %-*s  %-*s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Best")
	fmt.Printf("     %-*s  %-*s  %s\n", maxIDLen, "--", maxNameLen, "----", "----")

	// Print levels
	for _, lvl := range lvls {
		mark, best := " ", ""
		if done[lvl.ID] {
			mark = "✓"
			if b, err := a.store.Best(storage.LocalPlayer, lvl.ID); err == nil && b != nil {
				best = fmt.Sprintf("%d moves, %d pushes", b.Moves, b.Pushes)
			}
		}
		fmt.Printf("  %s  %-*s  %-*s  %s\n", mark, maxIDLen, lvl.ID, maxNameLen, lvl.Name, best)
	}

	fmt.Println()
	fmt.Println("Modes:")
	for _, g := range registry.List() {
		fmt.Printf("  %-8s  %s\n", g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'sokoban play <id>' to play a level.")
	return nil
}
