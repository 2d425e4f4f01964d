package session_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sokoban/internal/session"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

const (
	F = sokoban.CellFloor
	G = sokoban.CellGoal
)

// corridor: @ . $ . . G
func corridorLevel(t *testing.T) *sokoban.Level {
	t.Helper()
	lvl, err := sokoban.NewLevel(
		sokoban.GridFromRows([][]sokoban.CellKind{{F, F, F, F, F, G}}),
		sokoban.P(0, 0),
		[]sokoban.Crate{{Pos: sokoban.P(2, 0)}},
		[]sokoban.Goal{{Pos: sokoban.P(5, 0)}},
	)
	require.NoError(t, err)
	return lvl
}

func startSession(t *testing.T, lvl *sokoban.Level, cfg session.Config) *session.Session {
	t.Helper()
	cfg.Logger = log.New(io.Discard)
	s := session.New(lvl, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case <-errc:
		case <-time.After(time.Second):
			t.Error("session did not stop")
		}
	})
	return s
}

func move(d sokoban.Direction) session.Intent {
	return session.MoveIntent{Dir: d}
}

func TestSubmitResolvesMoves(t *testing.T) {
	s := startSession(t, corridorLevel(t), session.DefaultConfig())
	ctx := context.Background()

	evt, err := s.Submit(ctx, move(sokoban.DirRight))
	require.NoError(t, err)
	assert.Equal(t, session.EventMove, evt.Kind)
	assert.Equal(t, sokoban.OutcomeMoved, evt.Move.Outcome)
	assert.True(t, evt.Accepted)
	assert.Equal(t, uint64(1), evt.Seq)

	evt, err = s.Submit(ctx, move(sokoban.DirLeft))
	require.NoError(t, err)
	evt, err = s.Submit(ctx, move(sokoban.DirLeft))
	require.NoError(t, err)
	assert.Equal(t, sokoban.OutcomeBlocked, evt.Move.Outcome)
	assert.False(t, evt.Accepted)

	for i := 0; i < 3; i++ {
		evt, err = s.Submit(ctx, move(sokoban.DirRight))
		require.NoError(t, err)
	}
	assert.Equal(t, sokoban.OutcomePushed, evt.Move.Outcome)

	evt, err = s.Submit(ctx, move(sokoban.DirRight))
	require.NoError(t, err)
	assert.Equal(t, sokoban.OutcomePushedAndSolved, evt.Move.Outcome)
	assert.True(t, evt.Snapshot.Solved)

	evt, err = s.Submit(ctx, move(sokoban.DirLeft))
	require.NoError(t, err)
	assert.Equal(t, sokoban.OutcomeAlreadySolved, evt.Move.Outcome)
}

func TestUndoAndRestart(t *testing.T) {
	s := startSession(t, corridorLevel(t), session.Config{UndoLimit: 1})
	ctx := context.Background()

	initial, err := s.Submit(ctx, session.QueryIntent{})
	require.NoError(t, err)

	_, err = s.Submit(ctx, move(sokoban.DirRight))
	require.NoError(t, err)
	_, err = s.Submit(ctx, move(sokoban.DirRight))
	require.NoError(t, err)

	evt, err := s.Submit(ctx, session.UndoIntent{})
	require.NoError(t, err)
	assert.True(t, evt.Accepted)
	assert.Equal(t, sokoban.P(1, 0), evt.Snapshot.Player)

	evt, err = s.Submit(ctx, session.UndoIntent{})
	require.NoError(t, err)
	assert.False(t, evt.Accepted, "undo limit is one move")

	evt, err = s.Submit(ctx, session.RestartIntent{})
	require.NoError(t, err)
	assert.Equal(t, session.EventRestart, evt.Kind)
	assert.Equal(t, initial.Snapshot, evt.Snapshot)
}

func TestConcurrentSubmitsAreSerialized(t *testing.T) {
	lvl, err := sokoban.NewLevel(
		sokoban.GridFromRows([][]sokoban.CellKind{
			{F, F, F, F, F, F, F, F},
			{F, F, F, F, F, F, F, G},
		}),
		sokoban.P(0, 0),
		[]sokoban.Crate{{Pos: sokoban.P(0, 1)}},
		[]sokoban.Goal{{Pos: sokoban.P(7, 1)}},
	)
	require.NoError(t, err)

	s := startSession(t, lvl, session.DefaultConfig())
	ctx := context.Background()

	const workers, perWorker = 8, 50
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		seqs     = make(map[uint64]bool)
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			dirs := []sokoban.Direction{sokoban.DirRight, sokoban.DirLeft}
			for i := 0; i < perWorker; i++ {
				evt, err := s.Submit(ctx, move(dirs[(w+i)%2]))
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				assert.False(t, seqs[evt.Seq], "duplicate seq %d", evt.Seq)
				seqs[evt.Seq] = true
				if evt.Accepted {
					accepted++
				}
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	final, err := s.Submit(ctx, session.QueryIntent{})
	require.NoError(t, err)
	assert.Equal(t, uint64(workers*perWorker+1), final.Seq)
	assert.Equal(t, accepted, final.Snapshot.Moves)
	assert.Len(t, seqs, workers*perWorker)
}

func TestSubscribersSeeEventsInOrder(t *testing.T) {
	s := startSession(t, corridorLevel(t), session.DefaultConfig())
	sub := s.Subscribe()
	defer sub.Close()

	ctx := context.Background()
	for _, d := range []sokoban.Direction{sokoban.DirRight, sokoban.DirUp, sokoban.DirRight} {
		require.NoError(t, s.Send(ctx, move(d)))
	}

	var got []sokoban.Outcome
	for i := 0; i < 3; i++ {
		select {
		case evt := <-sub.Events():
			assert.Equal(t, uint64(i+1), evt.Seq)
			got = append(got, evt.Move.Outcome)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
	assert.Equal(t, []sokoban.Outcome{
		sokoban.OutcomeMoved,
		sokoban.OutcomeBlocked,
		sokoban.OutcomePushed,
	}, got)
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	s := startSession(t, corridorLevel(t), session.Config{SubscriberBuffer: 2})
	sub := s.Subscribe()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := s.Submit(ctx, session.QueryIntent{})
		require.NoError(t, err)
	}

	// Only the newest events survive.
	first := <-sub.Events()
	second := <-sub.Events()
	assert.Equal(t, uint64(9), first.Seq)
	assert.Equal(t, uint64(10), second.Seq)

	sub.Close()
	_, open := <-sub.Events()
	assert.False(t, open)
	sub.Close()
}

func TestCloseStopsSession(t *testing.T) {
	s := session.New(corridorLevel(t), session.Config{Logger: log.New(io.Discard)})
	sub := s.Subscribe()

	errc := make(chan error, 1)
	go func() { errc <- s.Run(context.Background()) }()

	_, err := s.Submit(context.Background(), session.QueryIntent{})
	require.NoError(t, err)
	<-sub.Events()

	s.Close()
	require.NoError(t, <-errc)

	_, open := <-sub.Events()
	assert.False(t, open, "subscribers are closed on stop")

	_, err = s.Submit(context.Background(), move(sokoban.DirRight))
	assert.ErrorIs(t, err, session.ErrClosed)

	late := s.Subscribe()
	_, open = <-late.Events()
	assert.False(t, open)
}

func TestRunTwice(t *testing.T) {
	s := startSession(t, corridorLevel(t), session.DefaultConfig())
	// Wait for the loop to be up.
	_, err := s.Submit(context.Background(), session.QueryIntent{})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Run(context.Background()), session.ErrRunning)
}

func TestRunCancelled(t *testing.T) {
	s := session.New(corridorLevel(t), session.Config{Logger: log.New(io.Discard)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	<-s.Done()
}
