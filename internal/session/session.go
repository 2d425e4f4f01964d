// Package session serializes move intents from any number of goroutines
// into a single loop that owns the puzzle state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

var (
	// ErrClosed is returned when submitting to a stopped session.
	ErrClosed = errors.New("session: closed")
	// ErrRunning is returned when Run is called twice.
	ErrRunning = errors.New("session: already running")
)

// Config holds session settings.
type Config struct {
	QueueSize        int         // pending intents before Submit blocks
	SubscriberBuffer int         // per-subscriber event buffer
	UndoLimit        int         // 0 = unlimited
	Logger           *log.Logger // optional
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		QueueSize:        64,
		SubscriberBuffer: 64,
	}
}

type request struct {
	intent Intent
	reply  chan Event // nil for fire-and-forget
}

// Session owns one puzzle state. Only the Run goroutine touches the state.
type Session struct {
	lvl    *sokoban.Level
	cfg    Config
	logger *log.Logger

	state *sokoban.State
	seq   uint64

	reqs      chan request
	done      chan struct{}
	closeOnce sync.Once
	running   atomic.Bool

	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

// New creates a session for a level. Call Run to start processing.
func New(lvl *sokoban.Level, cfg Config) *Session {
	def := DefaultConfig()
	if cfg.QueueSize < 1 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.SubscriberBuffer < 1 {
		cfg.SubscriberBuffer = def.SubscriberBuffer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		lvl:    lvl,
		cfg:    cfg,
		logger: logger,
		state:  sokoban.NewState(lvl),
		reqs:   make(chan request, cfg.QueueSize),
		done:   make(chan struct{}),
		subs:   make(map[*Subscriber]struct{}),
	}
	s.state.SetUndoLimit(cfg.UndoLimit)
	return s
}

// Run processes intents until ctx is cancelled or Close is called.
// It returns ctx.Err() on cancellation and nil after Close.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer s.shutdown()

	for {
		select {
		case req := <-s.reqs:
			evt := s.handle(req.intent)
			s.publish(evt)
			if req.reply != nil {
				req.reply <- evt
			}
		case <-ctx.Done():
			s.Close()
			return ctx.Err()
		case <-s.done:
			return nil
		}
	}
}

// Submit enqueues an intent and waits for its event.
func (s *Session) Submit(ctx context.Context, in Intent) (Event, error) {
	req := request{intent: in, reply: make(chan Event, 1)}
	if err := s.enqueue(ctx, req); err != nil {
		return Event{}, err
	}

	select {
	case evt := <-req.reply:
		return evt, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case <-s.done:
		// The loop may have answered right before stopping.
		select {
		case evt := <-req.reply:
			return evt, nil
		default:
			return Event{}, ErrClosed
		}
	}
}

// Send enqueues an intent without waiting for the result. Subscribers
// still see the event.
func (s *Session) Send(ctx context.Context, in Intent) error {
	return s.enqueue(ctx, request{intent: in})
}

func (s *Session) enqueue(ctx context.Context, req request) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}

	select {
	case s.reqs <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
}

// Subscribe registers a new event subscriber.
func (s *Session) Subscribe() *Subscriber {
	sub := &Subscriber{owner: s, events: make(chan Event, s.cfg.SubscriberBuffer)}

	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		sub.closed = true
		close(sub.events)
	default:
		s.subs[sub] = struct{}{}
	}
	return sub
}

// Level returns the level this session plays.
func (s *Session) Level() *sokoban.Level {
	return s.lvl
}

// Done returns a channel that closes when the session stops.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close stops the session. Safe to call multiple times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		// Without a running loop nobody else closes the subscribers.
		if !s.running.Load() {
			s.shutdown()
		}
	})
}

func (s *Session) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		s.dropSubscriber(sub)
	}
}

// dropSubscriber must be called with mu held.
func (s *Session) dropSubscriber(sub *Subscriber) {
	if sub.closed {
		return
	}
	sub.closed = true
	delete(s.subs, sub)
	close(sub.events)
}

func (s *Session) publish(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		sub.send(evt)
	}
}

func (s *Session) handle(in Intent) Event {
	s.seq++
	evt := Event{Seq: s.seq}

	switch m := in.(type) {
	case MoveIntent:
		evt.Kind = EventMove
		evt.Move = sokoban.AttemptMove(s.state, s.lvl, m.Dir)
		evt.Accepted = evt.Move.Outcome.Succeeded()
		if evt.Move.Outcome.Solved() {
			s.logger.Info("level solved", "moves", s.state.Moves(), "pushes", s.state.Pushes())
		}
	case UndoIntent:
		evt.Kind = EventUndo
		evt.Move, evt.Accepted = sokoban.Undo(s.state)
	case RestartIntent:
		evt.Kind = EventRestart
		s.state = sokoban.NewState(s.lvl)
		s.state.SetUndoLimit(s.cfg.UndoLimit)
		evt.Accepted = true
	case QueryIntent:
		evt.Kind = EventQuery
		evt.Accepted = true
	default:
		s.logger.Warn("unknown intent", "type", fmt.Sprintf("%T", in))
	}

	evt.Snapshot = s.state.Snapshot()
	s.logger.Debug("intent processed", "seq", evt.Seq, "kind", evt.Kind,
		"outcome", evt.Move.Outcome, "accepted", evt.Accepted)
	return evt
}
