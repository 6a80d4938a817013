package store

import "sync"

// Ticket identifies one dispatched refresh
type Ticket uint64

// Sequencer keeps the result of the most recently dispatched request. A
// response that resolves after a newer request was dispatched is dropped,
// whatever order the responses arrive in.
type Sequencer[T any] struct {
	mu       sync.Mutex
	next     Ticket
	latest   Ticket
	applied  Ticket
	value    T
	hasValue bool
}

func NewSequencer[T any]() *Sequencer[T] {
	return &Sequencer[T]{}
}

// Begin dispatches a new request
func (s *Sequencer[T]) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.latest = s.next
	return s.next
}

// Resolve stores value if ticket is still the latest dispatched request
func (s *Sequencer[T]) Resolve(ticket Ticket, value T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.latest || ticket <= s.applied {
		return false
	}
	s.applied = ticket
	s.value = value
	s.hasValue = true
	return true
}

// IsCurrent reports whether no newer request was dispatched after ticket
func (s *Sequencer[T]) IsCurrent(ticket Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ticket == s.latest
}

// Latest returns the last accepted value
func (s *Sequencer[T]) Latest() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.hasValue
}
