package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
)

func setupTestMongo(t *testing.T) (*MongoStore, func()) {
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	store := NewMongoStore(db)
	require.NoError(t, store.CreateIndexes(ctx))

	cleanup := func() {
		_ = store.Close(ctx)
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return store, cleanup
}

func TestMongoStore_RoundTrip(t *testing.T) {
	store, cleanup := setupTestMongo(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.Get(ctx, "session:1:cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "session:1:cart", []byte(`{"items":[]}`)))
	require.NoError(t, store.Set(ctx, "session:1:cart", []byte(`{"items":[1]}`)))

	got, err := store.Get(ctx, "session:1:cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[1]}`, string(got))

	require.NoError(t, store.Delete(ctx, "session:1:cart"))
	_, err = store.Get(ctx, "session:1:cart")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Ping(ctx))
}

func TestMongoStore_DurableEntriesHaveNoExpiry(t *testing.T) {
	store, cleanup := setupTestMongo(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session:1:cart", []byte(`{}`)))
	require.NoError(t, Durable(store).Set(ctx, "users", []byte(`[]`)))

	var e entry
	require.NoError(t, store.collection.FindOne(ctx, bson.M{"_id": "session:1:cart"}).Decode(&e))
	require.NotNil(t, e.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(MongoTTL), *e.ExpiresAt, time.Minute)

	e = entry{}
	require.NoError(t, store.collection.FindOne(ctx, bson.M{"_id": "users"}).Decode(&e))
	assert.Nil(t, e.ExpiresAt)

	// rewrites stay without expiry
	require.NoError(t, Durable(store).Set(ctx, "users", []byte(`[1]`)))
	got, err := store.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}

func TestConnectMongoDB_PingFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	db, err := ConnectMongoDB(ctx, "mongodb://127.0.0.1:1/?connect=direct", "testdb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping MongoDB")
	assert.Nil(t, db)
}
