package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "shop:idempotency:"
	pendingMarker    = "pending"
)

// RedisResponseStore implements ResponseStore on Redis so that several
// instances share idempotency state.
type RedisResponseStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisResponseStore connects to Redis and verifies the connection.
func NewRedisResponseStore(cfg RedisConfig) (*RedisResponseStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisResponseStoreWithClient(client, ""), nil
}

// NewRedisResponseStoreWithClient wraps an existing client.
func NewRedisResponseStoreWithClient(client *redis.Client, keyPrefix string) *RedisResponseStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisResponseStore{client: client, keyPrefix: keyPrefix}
}

// Begin implements ResponseStore. The reservation is a SETNX of a pending
// marker, replaced by the encoded response on Complete.
func (s *RedisResponseStore) Begin(ctx context.Context, key string, ttl time.Duration) (*StoredResponse, error) {
	k := s.keyPrefix + key

	ok, err := s.client.SetNX(ctx, k, pendingMarker, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if ok {
		return nil, nil
	}

	raw, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; the caller retries later.
		return nil, ErrInFlight
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	if string(raw) == pendingMarker {
		return nil, ErrInFlight
	}

	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode stored response: %w", err)
	}
	return &resp, nil
}

// Complete implements ResponseStore.
func (s *RedisResponseStore) Complete(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}
	return nil
}

// Release implements ResponseStore.
func (s *RedisResponseStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisResponseStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client
func (s *RedisResponseStore) GetClient() *redis.Client {
	return s.client
}

var _ ResponseStore = (*RedisResponseStore)(nil)
