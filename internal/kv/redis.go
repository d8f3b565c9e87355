package kv

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisTTL = 24 * time.Hour

func NewRedisStore(client *redis.Client, baseTTL time.Duration) *RedisStore {
	if baseTTL <= 0 {
		baseTTL = DefaultRedisTTL
	}
	return &RedisStore{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
	durable bool
}

// Durable returns a store over the same client whose keys never expire.
func (r RedisStore) Durable() Store {
	r.durable = true
	return r
}

func (r RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r RedisStore) Set(ctx context.Context, key string, value []byte) error {
	var ttl time.Duration
	if !r.durable {
		// spread expiries so sessions created together do not expire together
		jitter := time.Duration(rand.Intn(5)) * time.Minute
		ttl = r.baseTTL + jitter
	}
	if err := r.client.Set(ctx, redisKey(key), string(value), ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func redisKey(key string) string {
	return fmt.Sprintf("storefront:%s", key)
}
