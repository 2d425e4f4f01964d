package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive level select",
	Long: `Opens the level select. Pick a level to play, press Esc to come back
and Tab to open the progress board.

Examples:
  sokoban menu
  sokoban menu --mode demo
  sokoban menu --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMode, "mode", "", "Play mode (default from config)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp(appOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer a.Close()

	opts := a.uiOptions(flagMode)
	if !registry.Exists(opts.Mode) {
		return fmt.Errorf("unknown mode %q", opts.Mode)
	}

	if err := tui.RunSession(opts); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
