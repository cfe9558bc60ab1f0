package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionKey = "crm:session"

// RedisTokenStore keeps the token under a single key that expires with the session.
type RedisTokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisTokenStore creates a store on client. An empty key uses "crm:session".
func NewRedisTokenStore(client *redis.Client, key string, ttl time.Duration) (*RedisTokenStore, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = defaultSessionKey
	}
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &RedisTokenStore{client: client, key: key, ttl: ttl}, nil
}

// Save overwrites the key with token.
func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Load returns the token, or ErrNoSession once the key is gone.
func (s *RedisTokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("redis get session: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return "", ErrNoSession
	}
	return token, nil
}

var _ TokenStore = (*RedisTokenStore)(nil)
