package uistate

import (
	"errors"
	"sync"

	"github.com/drovic/drovic-backend/internal/domain"
)

// ErrIndexOutOfRange is returned when selecting a roster index that does not exist
var ErrIndexOutOfRange = errors.New("index out of range")

// Selection is the single-item reference behind a detail overlay.
// Selecting a second item replaces the first; overlays never stack.
type Selection[T any] struct {
	mu      sync.Mutex
	current *T
}

// Select replaces the current reference
func (s *Selection[T]) Select(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &v
}

// Clear closes the overlay
func (s *Selection[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the selected item and whether the overlay is open
func (s *Selection[T]) Current() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		var zero T
		return zero, false
	}
	return *s.current, true
}

// Roster tracks which team member the detail view shows
type Roster struct {
	mu      sync.Mutex
	members []*domain.TeamMember
	active  int
}

// SetMembers replaces the roster; the active index resets when it no longer fits
func (r *Roster) SetMembers(members []*domain.TeamMember) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = members
	if r.active >= len(members) {
		r.active = 0
	}
}

// Select makes member index the active one
func (r *Roster) Select(index int) (*domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.members) {
		return nil, ErrIndexOutOfRange
	}
	r.active = index
	return r.members[index], nil
}

// Active returns the active member and its index; nil when the roster is empty
func (r *Roster) Active() (*domain.TeamMember, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.members) == 0 {
		return nil, 0
	}
	return r.members[r.active], r.active
}
