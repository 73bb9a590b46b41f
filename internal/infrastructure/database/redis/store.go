// internal/infrastructure/database/redis/store.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Store keeps session state in Redis under <prefix>:<session>:<key>.
// Every write refreshes the TTL of the keys it touches.
type Store struct {
	client *Client
	prefix string
	ttl    time.Duration
}

var _ storage.Store = (*Store)(nil)

// NewStore creates a Redis-backed store
func NewStore(client *Client, prefix string, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: strings.TrimSuffix(prefix, ":"),
		ttl:    ttl,
	}
}

func (s *Store) key(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, namespace, key)
}

// Get returns the stored bytes for key, reporting false when absent
func (s *Store) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	val, err := s.client.Redis.Get(ctx, s.key(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

// Set overwrites key
func (s *Store) Set(ctx context.Context, namespace, key string, value []byte) error {
	if err := s.client.Redis.Set(ctx, s.key(namespace, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// SetMany writes all values inside a MULTI/EXEC block
func (s *Store) SetMany(ctx context.Context, namespace string, values map[string][]byte) error {
	_, err := s.client.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, s.key(namespace, k), v, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis multi set: %w", err)
	}
	return nil
}

// Health pings Redis
func (s *Store) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
