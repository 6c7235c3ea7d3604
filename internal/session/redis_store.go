package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"peppertree/internal/cache"
)

const sessionKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so they survive restarts and are shared
// across replicas.
type RedisStore struct {
	cache *cache.Client
	ttl   time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a session store over the given Redis client.
func NewRedisStore(cache *cache.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	token := newToken()
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, payload, s.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}
