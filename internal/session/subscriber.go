package session

// Subscriber receives events published by a session. Delivery is best
// effort: when the buffer is full the oldest event is dropped, so a slow
// consumer never stalls the move loop.
type Subscriber struct {
	owner  *Session
	events chan Event
	closed bool // guarded by owner.mu
}

// Events returns the channel to receive events from. It is closed when the
// subscriber is closed or the session stops.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Close unsubscribes. Safe to call multiple times.
func (s *Subscriber) Close() {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	s.owner.dropSubscriber(s)
}

// send must be called with owner.mu held.
func (s *Subscriber) send(evt Event) {
	if s.closed {
		return
	}

	select {
	case s.events <- evt:
		return
	default:
	}

	// Buffer full, drop oldest and retry once.
	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
}
