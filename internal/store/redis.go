package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "taskflow:"

// RedisKV is the redis-backed slot store. Each slot lives under its own
// key (taskflow:tasks, taskflow:profile, taskflow:theme).
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV connects to redis and verifies the connection.
func NewRedisKV(redisURL string) (*RedisKV, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisKV{client: client}, nil
}

// NewRedisStore connects to redis and returns the slot gateway over it.
func NewRedisStore(redisURL string) (*Gateway, error) {
	kv, err := NewRedisKV(redisURL)
	if err != nil {
		return nil, err
	}
	return NewGateway(kv), nil
}

// Client exposes the underlying redis client so the rate limiter can share
// the connection.
func (r *RedisKV) Client() *redis.Client {
	return r.client
}

// Get reads a slot. A missing key means the slot was never set.
func (r *RedisKV) Get(ctx context.Context, slot string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Set writes a slot with no expiration.
func (r *RedisKV) Set(ctx context.Context, slot string, value []byte) error {
	return r.client.Set(ctx, redisKeyPrefix+slot, value, 0).Err()
}

// Delete removes a slot. Deleting an absent slot is not an error.
func (r *RedisKV) Delete(ctx context.Context, slot string) error {
	return r.client.Del(ctx, redisKeyPrefix+slot).Err()
}

// Ping checks if redis is reachable.
func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the redis connection.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
