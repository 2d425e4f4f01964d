package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var (
	flagClear bool
	flagLimit int
)

var progressCmd = &cobra.Command{
	Use:   "progress [level]",
	Short: "Show best runs and level statistics",
	Long: `Without a level, shows solve statistics for every level. With a
level, shows its best runs.

--clear deletes your own runs (for the given level, or all of them).

Examples:
  sokoban progress
  sokoban progress classic-02
  sokoban progress classic-02 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete your recorded runs")
	progressCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runProgress(_ *cobra.Command, args []string) error {
	a, err := newApp(appOptions{requireStore: true})
	if err != nil {
		return err
	}
	defer a.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
		if _, err := a.pack.Get(levelID); err != nil {
			return fmt.Errorf("%w; run 'sokoban list' to see levels", err)
		}
	}

	if flagClear {
		n, err := a.store.ClearProgress(storage.LocalPlayer, levelID)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d run(s).\n", n)
		return nil
	}

	if levelID == "" {
		return printAllStats(a)
	}
	return printLevelRuns(a, levelID)
}

func printAllStats(a *app) error {
	stats, err := a.store.AllLevelStats()
	if err != nil {
		return err
	}
	done, err := a.store.CompletedLevels(storage.LocalPlayer)
	if err != nil {
		return err
	}

	lvls := a.pack.Levels()
	maxIDLen := 2
	for _, lvl := range lvls {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("Progress (%d/%d solved)\n", len(done), len(lvls))
	fmt.Println()
	fmt.Printf("     %-*s  %-6s  %-7s  %-10s  %s\n", maxIDLen, "ID", "Solves", "Players", "Best", "Last")
	fmt.Printf("     %-*s  %-6s  %-7s  %-10s  %s\n", maxIDLen, "--", "------", "-------", "----", "----")

	for _, lvl := range lvls {
		mark := " "
		if done[lvl.ID] {
			mark = "✓"
		}
		s, ok := stats[lvl.ID]
		if !ok || s.Solves == 0 {
			fmt.Printf("  %s  %-*s  %-6d  %-7d  %-10s  %s\n", mark, maxIDLen, lvl.ID, 0, 0, "-", "-")
			continue
		}
		best := fmt.Sprintf("%d/%d", s.BestMoves, s.BestPushes)
		fmt.Printf("  %s  %-*s  %-6d  %-7d  %-10s  %s\n", mark, maxIDLen, lvl.ID,
			s.Solves, s.Players, best, s.LastSolved.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Best is moves/pushes.")
	return nil
}

func printLevelRuns(a *app, levelID string) error {
	lvl, err := a.pack.Get(levelID)
	if err != nil {
		return err
	}
	runs, err := a.store.BestRuns(levelID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s (%s)\n", lvl.Name, lvl.ID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sokoban play %s' to set the first one!\n", levelID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %s\n", "Rank", "Player", "Moves", "Pushes", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %s\n", "----", "------", "-----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-6d  %-6d  %s\n", i+1, r.Player, r.Moves, r.Pushes,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if s, err := a.store.LevelStats(levelID); err == nil && s.Solves > 0 {
		fmt.Println()
		fmt.Printf("%d solves by %d players, average %.1f moves\n", s.Solves, s.Players, s.AvgMoves)
	}
	fmt.Println()
	fmt.Printf("Best solution: %s\n", runs[0].Solution)
	return nil
}
