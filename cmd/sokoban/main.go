// sokoban is a terminal Sokoban player with a level select, progress
// tracking and an SSH server for remote play.
//
// Usage:
//
//	sokoban list                 - List levels and your progress
//	sokoban play [level]         - Play, starting at a level
//	sokoban menu                 - Level select, play and progress board
//	sokoban serve                - Start SSH server for remote play
//	sokoban progress [level]     - Show best runs and level statistics
//	sokoban replay <level> [lurd] - Replay a move sequence and print the board
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.sokoban/config.yaml)
//	--db <path>         - Progress database (default: ~/.sokoban/progress.db)
//	--levels <dir>      - Extra level directory, repeatable
//	--glyphs <set>      - Board glyphs: unicode or ascii
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLevelDirs []string
	flagGlyphs    string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push crates onto goals in your terminal",
	Long: `Sokoban is a terminal puzzle game. Push every crate onto a matching
goal; crates pushed into holes fill them and are gone for good.

Available commands:
  list      - Show all levels and which ones you solved
  play      - Play directly, optionally starting at a level
  menu      - Interactive level select with progress board
  serve     - Start SSH server for remote play
  progress  - View best runs and statistics
  replay    - Replay a LURD move string against a level

Examples:
  sokoban list
  sokoban play classic-02
  sokoban play --mode demo
  sokoban menu --levels ./my-levels
  sokoban serve --port 2222
  sokoban replay classic-01 R`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database")
	rootCmd.PersistentFlags().StringArrayVar(&flagLevelDirs, "levels", nil, "Extra level directory (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagGlyphs, "glyphs", "", "Board glyphs: unicode or ascii")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(replayCmd)
}
