package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session Session
	expires time.Time
}

// MemoryStore is an in-process session store used when no Redis address is
// configured, and in tests. Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Create(ctx context.Context, sess *Session) (string, error) {
	token := newToken()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryEntry{session: *sess, expires: time.Now().Add(s.ttl)}
	return token, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expires) {
		delete(s.sessions, token)
		return nil, nil
	}
	sess := entry.session
	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
