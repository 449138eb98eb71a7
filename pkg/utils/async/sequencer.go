package async

import (
	"context"
	"sync"
)

// Ticket identifies one issued request. Only the most recently issued ticket is current.
type Ticket struct {
	seq    uint64
	cancel context.CancelFunc
}

// Seq returns the ticket sequence number
func (t *Ticket) Seq() uint64 {
	return t.seq
}

// Sequencer issues tickets so that only the newest request may publish its result.
// Issuing a ticket cancels the context of the previous one.
type Sequencer struct {
	mu      sync.Mutex
	latest  uint64
	current *Ticket
}

// Issue returns a new current ticket and a context that is cancelled when a
// newer ticket is issued or when the ticket is released
func (s *Sequencer) Issue(ctx context.Context) (context.Context, *Ticket) {
	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.cancel()
	}
	s.latest++
	t := &Ticket{seq: s.latest, cancel: cancel}
	s.current = t
	return runCtx, t
}

// IsLatest reports whether t is still the most recently issued ticket
func (s *Sequencer) IsLatest(t *Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t != nil && t.seq == s.latest
}

// Release cancels the ticket context. It is safe to call more than once.
func (s *Sequencer) Release(t *Ticket) {
	if t == nil {
		return
	}
	t.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == t {
		s.current = nil
	}
}
