package redisstate

// Package redisstate provides a Redis-backed StateStore for headless or
// shared deployments where client state must outlive the local filesystem.
// It is a drop-in alternative to the file store behind the same port.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultOpTimeout = 2 * time.Second

// Store is a Redis-backed StateStore. Keys are namespaced with a prefix so
// several client instances can share one Redis database.
type Store struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewStore creates a Redis state store with the default "suprss:" prefix.
func NewStore(client redis.UniversalClient, logger *slog.Logger) *Store {
	return NewStoreWithPrefix(client, logger, "suprss:")
}

// NewStoreWithPrefix creates a Redis state store with a custom key prefix.
func NewStoreWithPrefix(client redis.UniversalClient, logger *slog.Logger, prefix string) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client:  client,
		prefix:  prefix,
		timeout: defaultOpTimeout,
		logger:  logger,
	}
}

// Get returns the value for key. The StateStore port reads fail-open:
// an unreachable Redis reads as "absent", which downgrades the session to
// unauthenticated instead of wedging the client.
func (s *Store) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("redis state read failed", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

// Set stores value under key without expiry. Session credentials and
// onboarding flags never expire on the client side.
func (s *Store) Set(key, value string) error {
	if key == "" {
		return errors.New("state key cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
