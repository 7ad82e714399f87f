package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// ErrMiss is returned when a key does not exist.
var ErrMiss = errors.New("cache miss")

// Store wraps the redis client with the console's caching needs: entity
// snapshot caching and the mirrored session record.
type Store struct {
	client *redis.Client
}

// NewStore creates a Store over an initialized redis client.
func NewStore(client *redis.Client) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client is not initialized")
	}
	return &Store{client: client}, nil
}

// Set stores a value with an expiry.
func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

// Get returns the raw value for key, or ErrMiss.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	return val, err
}

// SetJSON marshals value and stores it under key.
func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", key)
	}
	return s.client.Set(ctx, key, payload, expiration).Err()
}

// GetJSON loads the value under key into out. Returns ErrMiss when absent.
func (s *Store) GetJSON(ctx context.Context, key string, out interface{}) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return errors.Wrapf(err, "unmarshal %s", key)
	}
	return nil
}

// Delete removes a single key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// DeleteAll removes every key matching the pattern. SCAN keeps this safe on
// large keyspaces.
func (s *Store) DeleteAll(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
