package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/levels/formats"
	"github.com/vovakirdan/tui-sokoban/internal/session"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

var replayCmd = &cobra.Command{
	Use:   "replay <level> [moves]",
	Short: "Replay a move sequence and print the board",
	Long: `Feeds a LURD move string (u, d, l, r; upper case marks a push) through
a puzzle session and prints every event followed by the final board.
Without moves, the level's stored solution is used.

Examples:
  sokoban replay classic-01 R
  sokoban replay classic-02
  sokoban replay holes-01 "rrRR" --log-level debug`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	lvl, err := a.pack.Get(args[0])
	if err != nil {
		return err
	}

	moves := ""
	if len(args) == 2 {
		moves = args[1]
	} else if s, ok := lvl.Solution(); ok {
		moves = s
	} else {
		return fmt.Errorf("level %s has no stored solution; pass moves explicitly", lvl.ID)
	}

	steps, err := sokoban.ParseMoves(moves)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess := session.New(lvl.Puzzle, session.Config{
		UndoLimit: a.cfg.Gameplay.UndoLimit,
		Logger:    a.logger.With("level", lvl.ID),
	})

	runErr := make(chan error, 1)
	go func() { runErr <- sess.Run(ctx) }()

	sub := sess.Subscribe()
	logged := make(chan struct{})
	go func() {
		defer close(logged)
		for evt := range sub.Events() {
			a.logger.Debug("event",
				"seq", evt.Seq,
				"kind", evt.Kind,
				"dir", evt.Move.Dir,
				"outcome", evt.Move.Outcome,
				"moves", evt.Snapshot.Moves,
				"pushes", evt.Snapshot.Pushes,
			)
		}
	}()

	blocked := 0
	for i, st := range steps {
		evt, err := sess.Submit(ctx, session.MoveIntent{Dir: st.Dir})
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if !evt.Accepted {
			blocked++
			fmt.Printf("step %d (%s): %s\n", i+1, st.Dir, evt.Move.Outcome)
		}
	}

	final, err := sess.Submit(ctx, session.QueryIntent{})
	if err != nil {
		return fmt.Errorf("reading final state: %w", err)
	}

	sess.Close()
	<-logged
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Print(formats.FormatSnapshot(lvl.Puzzle, final.Snapshot))
	fmt.Println(strings.Repeat("-", lvl.Puzzle.Grid().Width()))

	snap := final.Snapshot
	status := "not solved"
	if snap.Solved {
		status = "solved"
	}
	fmt.Printf("%s: %d moves, %d pushes, %d blocked - %s\n", lvl.ID, snap.Moves, snap.Pushes, blocked, status)
	return nil
}
