package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play, starting at a level",
	Long: `Start playing at the given level, or at the first one. Solving a
level moves on to the next.

Controls:
  Arrows/hjkl/wasd - Move
  U/Ctrl+Z         - Undo
  R                - Restart level
  Enter            - Next level (once solved)
  P                - Pause
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Modes:
  sokoban - Play yourself (default)
  demo    - Watch stored solutions play out

Examples:
  sokoban play
  sokoban play classic-03
  sokoban play --mode demo
  sokoban play --glyphs ascii`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Play mode (default from config)")
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := newApp(appOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer a.Close()

	opts := a.uiOptions(flagMode)
	if !registry.Exists(opts.Mode) {
		return fmt.Errorf("unknown mode %q; run 'sokoban list' to see modes", opts.Mode)
	}

	if len(args) == 1 {
		if _, err := a.pack.Get(args[0]); err != nil {
			return fmt.Errorf("%w; run 'sokoban list' to see levels", err)
		}
		opts.Config.LevelID = args[0]
	}

	game, err := registry.Create(opts.Mode, opts.Env)
	if err != nil {
		return err
	}

	if err := tui.Run(game, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
