// Package session owns the per-client session: the in-memory mirror of who
// is logged in, its restoration from the durable cache, and the Gate, which
// is the only code allowed to change it.
package session

import (
	"sync"

	"github.com/foodshare/platform/internal/core/domain"
)

// State is the position of a session in its page-load lifecycle.
type State uint8

const (
	// StateUnknown holds until the durable cache has been consulted.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is one client's view of who is logged in during a single request.
// Readers use Get, IsLoading and State; mutations go through Gate.
type Session struct {
	id string

	mu        sync.RWMutex
	state     State
	principal *domain.Principal
	loading   bool
	inFlight  bool
}

func newSession(id string) *Session {
	return &Session{id: id, state: StateUnknown, loading: true}
}

// ID is the opaque identifier of the client's durable cache slot.
func (s *Session) ID() string { return s.id }

// Get returns a copy of the current principal, or nil when anonymous.
func (s *Session) Get() *domain.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal.Clone()
}

// IsLoading is true before the cache has been read and while a login or
// registration for this client is in flight, including one started by a
// concurrent request.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading || s.inFlight
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// resolve leaves StateUnknown exactly once.
func (s *Session) resolve(p *domain.Principal, inFlight bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnknown {
		return
	}
	s.set(p)
	s.loading = false
	s.inFlight = inFlight
}

func (s *Session) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *Session) abort() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Session) commit(p *domain.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(p)
	s.loading = false
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(nil)
}

func (s *Session) set(p *domain.Principal) {
	if p == nil {
		s.principal = nil
		s.state = StateAnonymous
		return
	}
	s.principal = p.Clone()
	s.state = StateAuthenticated
}
