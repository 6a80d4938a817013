package store

import (
	"sync"
	"time"
)

// Approval is the cached answer of the account approval check
type Approval struct {
	Approved  bool      `json:"approved"`
	Reason    string    `json:"reason,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// State is a snapshot of the store
type State struct {
	SidebarOpen bool      `json:"sidebarOpen"`
	Approval    *Approval `json:"approval,omitempty"`
}

// Store holds the app-wide UI state. One instance lives at the application
// root; tests build their own.
type Store struct {
	mu          sync.RWMutex
	sidebarOpen bool
	approval    *Approval
	approvalTTL time.Duration
}

func NewStore(approvalTTL time.Duration) *Store {
	return &Store{approvalTTL: approvalTTL}
}

func (s *Store) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

// ToggleSidebar flips the sidebar and returns the new value
func (s *Store) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = !s.sidebarOpen
	return s.sidebarOpen
}

func (s *Store) SetSidebar(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = open
}

// SetApproval caches an approval result checked at approval.CheckedAt
func (s *Store) SetApproval(approval Approval) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approval = &approval
}

// Approval returns the cached result unless it is older than the TTL at now.
// A zero TTL never expires.
func (s *Store) Approval(now time.Time) (Approval, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.approval == nil {
		return Approval{}, false
	}
	if s.approvalTTL > 0 && now.Sub(s.approval.CheckedAt) >= s.approvalTTL {
		return Approval{}, false
	}
	return *s.approval, true
}

func (s *Store) InvalidateApproval() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approval = nil
}

// Snapshot returns the current state; an expired approval is left out
func (s *Store) Snapshot(now time.Time) State {
	state := State{SidebarOpen: s.SidebarOpen()}
	if approval, ok := s.Approval(now); ok {
		state.Approval = &approval
	}
	return state
}
