// Package session keeps track of bearer tokens revoked by logout.
//
// Tokens are stateless JWTs, so logout stores the token id (jti) until the
// token would have expired anyway. The Redis store is used when
// SESSION_REDIS_URL is set; otherwise revocations live in process memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records revoked token ids.
type RevocationStore interface {
	// Revoke marks tokenID as revoked until expiresAt.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	// IsRevoked reports whether tokenID was revoked and has not expired yet.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Close() error
}

// minRevocationTTL keeps a revocation alive for tokens whose expiry has
// already passed or is unknown.
const minRevocationTTL = time.Minute

// New returns a Redis-backed store when redisURL is set and a
// [MemoryStore] otherwise.
func New(ctx context.Context, redisURL, prefix string) (RevocationStore, error) {
	if redisURL == "" {
		return NewMemoryStore(), nil
	}

	return NewRedisStore(ctx, redisURL, prefix)
}

// RedisStore implements RevocationStore on Redis keys with a TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRedisURL, err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	return NewRedisStoreWithClient(client, prefix), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(tokenID string) string {
	return s.prefix + tokenID
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	if err := s.client.Set(ctx, s.key(tokenID), "1", revocationTTL(expiresAt)).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	err := s.client.Get(ctx, s.key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup revoked token: %w", err)
	}

	return true, nil
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore implements RevocationStore in process memory. Expired entries
// are dropped lazily on lookup.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = s.now().Add(revocationTTL(expiresAt))

	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}

	return true, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func revocationTTL(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl < minRevocationTTL {
		return minRevocationTTL
	}
	return ttl
}
