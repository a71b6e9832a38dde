package handlers

import (
	"sync"

	"wordchain/internal/chain"
)

// sessionEntry pairs a session with its own lock so concurrent requests
// against the same game serialize without blocking other games
type sessionEntry struct {
	mu      sync.Mutex
	session *chain.Session
}

// SessionRegistry holds live game sessions in memory. Persistent user
// profiles live elsewhere; this only tracks games in flight.
type SessionRegistry struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

// NewSessionRegistry creates an empty registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{entries: make(map[string]*sessionEntry)}
}

// Create registers a new session and returns it
func (r *SessionRegistry) Create() *chain.Session {
	s := chain.NewSession()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[s.ID] = &sessionEntry{session: s}
	return s
}

// With runs fn with the named session under its lock. ok is false when
// the session does not exist.
func (r *SessionRegistry) With(id string, fn func(s *chain.Session)) bool {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
	return true
}

// Delete removes a session
func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}
