package kv

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client, time.Hour)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func TestRedisGet_Success(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(redisKey("session:1:cart"), `{"items":[]}`))

	got, err := store.Get(context.Background(), "session:1:cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))
}

func TestRedisGet_Miss(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	got, err := store.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
}

func TestRedisSet_TTLWithJitter(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))

	assert.True(t, mr.Exists(redisKey("k")))
	ttl := mr.TTL(redisKey("k"))
	assert.GreaterOrEqual(t, ttl, time.Hour)
	assert.Less(t, ttl, time.Hour+5*time.Minute)
}

func TestRedisSet_Expires(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisDelete(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, mr.Exists(redisKey("k")))

	assert.NoError(t, store.Delete(ctx, "k"))
}

func TestRedis_ConnectionError(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Close()

	_, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Error(t, store.Ping(context.Background()))
}

func TestNewRedisStore_DefaultTTL(t *testing.T) {
	store := NewRedisStore(redis.NewClient(&redis.Options{}), 0)
	assert.Equal(t, DefaultRedisTTL, store.baseTTL)
}

func TestRedisDurable_NeverExpires(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	users := Durable(store)
	require.NoError(t, users.Set(ctx, "users", []byte(`[{"id":"1"}]`)))
	require.NoError(t, store.Set(ctx, "session:1:user", []byte(`{"id":"1"}`)))
	assert.Equal(t, time.Duration(0), mr.TTL(redisKey("users")))

	mr.FastForward(48 * time.Hour)

	got, err := users.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	_, err = store.Get(ctx, "session:1:user")
	assert.ErrorIs(t, err, ErrNotFound)
}
