package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoTTL is how long an untouched entry survives. Durable entries never
// expire.
const MongoTTL = 90 * 24 * time.Hour

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

type entry struct {
	Key       string     `bson:"_id"`
	Value     []byte     `bson:"value"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

type MongoStore struct {
	collection *mongo.Collection
	durable    bool
}

// Durable returns a store over the same collection whose entries carry no
// expiry and are skipped by the TTL index.
func (m *MongoStore) Durable() Store {
	return &MongoStore{collection: m.collection, durable: true}
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection("kv"),
	}
}

func (m *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var e entry
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return e.Value, nil
}

func (m *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"value":      value,
		"updated_at": now,
		"expires_at": now.Add(MongoTTL),
	}}
	if m.durable {
		update = bson.M{
			"$set":   bson.M{"value": value, "updated_at": now},
			"$unset": bson.M{"expires_at": ""},
		}
	}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", key, err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (m *MongoStore) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}

	if _, err := m.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.collection.Database().Client().Ping(ctx, readpref.Primary())
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.collection.Database().Client().Disconnect(ctx)
}
