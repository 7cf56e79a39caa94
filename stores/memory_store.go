package stores

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps conversations in a process-local map. Appends happen
// under the lock, so concurrent turns for the same key cannot lose writes.
// Intended for single-instance deployments; everything is gone on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

type memorySession struct {
	turns   []Turn
	touched time.Time
}

// NewMemoryStore creates an in-memory conversation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
	}
}

// Get returns a copy of the session's turns, or an empty slice if absent.
func (s *MemoryStore) Get(ctx context.Context, sessionKey string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionKey]
	if !ok {
		return []Turn{}, nil
	}
	out := make([]Turn, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

// Append adds a turn to the session, creating it on first use.
func (s *MemoryStore) Append(ctx context.Context, sessionKey string, turn Turn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionKey]
	if !ok {
		sess = &memorySession{}
		s.sessions[sessionKey] = sess
	}
	sess.turns = append(sess.turns, turn)
	sess.touched = time.Now()
	return nil
}

// Expire removes the session.
func (s *MemoryStore) Expire(ctx context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionKey)
	return nil
}

// ExpireIdle removes sessions untouched for longer than olderThan.
func (s *MemoryStore) ExpireIdle(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close drops all sessions.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}
