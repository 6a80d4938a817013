package store

import (
	"fmt"
	"sync"
)

// Phase is the state of an optimistic update
type Phase string

const (
	Pending    Phase = "pending"
	Committed  Phase = "committed"
	RolledBack Phase = "rolled_back"
)

// Update is the record of one optimistic change
type Update[V any] struct {
	Phase    Phase `json:"phase"`
	Previous V     `json:"previous"`
	Value    V     `json:"value"`
	Err      error `json:"-"`
}

// Current is the value the UI should show for this update
func (u Update[V]) Current() V {
	if u.Phase == RolledBack {
		return u.Previous
	}
	return u.Value
}

// TwoPhase tracks optimistic updates keyed by K: Begin shows the new value
// immediately, then Commit keeps it or Rollback restores the previous one.
// Only one update per key may be pending.
type TwoPhase[K comparable, V any] struct {
	mu      sync.Mutex
	updates map[K]*Update[V]
}

func NewTwoPhase[K comparable, V any]() *TwoPhase[K, V] {
	return &TwoPhase[K, V]{updates: map[K]*Update[V]{}}
}

// Begin records a pending update; it fails if one is already pending for key
func (t *TwoPhase[K, V]) Begin(key K, previous V, value V) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if u, ok := t.updates[key]; ok && u.Phase == Pending {
		return fmt.Errorf("an update for %v is already pending", key)
	}
	t.updates[key] = &Update[V]{Phase: Pending, Previous: previous, Value: value}
	return nil
}

// Commit confirms the pending update
func (t *TwoPhase[K, V]) Commit(key K) (Update[V], bool) {
	return t.finish(key, Committed, nil)
}

// Rollback abandons the pending update and restores the previous value
func (t *TwoPhase[K, V]) Rollback(key K, cause error) (Update[V], bool) {
	return t.finish(key, RolledBack, cause)
}

func (t *TwoPhase[K, V]) finish(key K, phase Phase, cause error) (Update[V], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	u, ok := t.updates[key]
	if !ok || u.Phase != Pending {
		return Update[V]{}, false
	}
	u.Phase = phase
	u.Err = cause
	return *u, true
}

// Get returns the last update recorded for key
func (t *TwoPhase[K, V]) Get(key K) (Update[V], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	u, ok := t.updates[key]
	if !ok {
		return Update[V]{}, false
	}
	return *u, true
}

// Overlay returns the values to show over a fetched snapshot: pending and
// committed updates win, rolled back ones are dropped.
func (t *TwoPhase[K, V]) Overlay() map[K]V {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[K]V, len(t.updates))
	for k, u := range t.updates {
		if u.Phase != RolledBack {
			out[k] = u.Value
		}
	}
	return out
}

// Forget drops settled updates once a fresh snapshot has been fetched
func (t *TwoPhase[K, V]) Forget() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, u := range t.updates {
		if u.Phase != Pending {
			delete(t.updates, k)
		}
	}
}
