package wizard

import (
	"context"
	"sync"
	"time"
)

// Store persists wizard sessions between requests. Implementations must treat
// a missing session and an expired session the same way (ErrSessionNotFound).
type Store interface {
	Save(ctx context.Context, draft *DraftBooking) error
	Get(ctx context.Context, sessionID string) (*DraftBooking, error)
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is an in-process Store used in tests and single-node
// development setups. TTL handling mirrors the Redis implementation.
type MemoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]memoryEntry
}

type memoryEntry struct {
	draft     DraftBooking
	expiresAt time.Time
}

// NewMemoryStore creates a memory store with the given session TTL. A zero
// TTL disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(ctx context.Context, draft *DraftBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{draft: *draft}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}
	s.m[draft.SessionID] = entry
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*DraftBooking, error) {
	s.mu.RLock()
	entry, ok := s.m[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.m, sessionID)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	draft := entry.draft
	return &draft, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sessionID)
	return nil
}
