// Package chatstate tracks which chat is mid-conversation awaiting free-text
// input, keyed by chat identifier. The store is injected into the check-in
// flow rather than living as a package-level singleton, so it can be swapped
// for a distributed implementation.
package chatstate

import (
	"sync"
	"time"
)

// State marks a chat as awaiting input for a specific session record.
type State struct {
	SessionID     string
	AwaitingNotes bool
	Timestamp     time.Time
}

// Store is a keyed conversation-state store with expiry. Implementations
// must be safe for concurrent use; each call sees a read-only snapshot.
type Store interface {
	Set(chatID string, state State)
	Get(chatID string) (State, bool)
	Clear(chatID string)
}

// DefaultTTL is how long an awaiting-input marker survives without activity.
const DefaultTTL = time.Hour

// MemoryStore is an in-process Store with TTL eviction. Expired entries are
// swept lazily on every access.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryStore creates a MemoryStore with the given TTL; ttl <= 0 uses
// DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		states: make(map[string]State),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewMemoryStoreWithClock creates a MemoryStore with an injected clock.
func NewMemoryStoreWithClock(ttl time.Duration, now func() time.Time) *MemoryStore {
	s := NewMemoryStore(ttl)
	s.now = now
	return s
}

func (s *MemoryStore) Set(chatID string, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	state.Timestamp = s.now()
	s.states[chatID] = state
}

func (s *MemoryStore) Get(chatID string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	state, ok := s.states[chatID]
	return state, ok
}

func (s *MemoryStore) Clear(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}

// sweep drops expired entries. Callers must hold the lock.
func (s *MemoryStore) sweep() {
	cutoff := s.now().Add(-s.ttl)
	for chatID, state := range s.states {
		if state.Timestamp.Before(cutoff) {
			delete(s.states, chatID)
		}
	}
}
