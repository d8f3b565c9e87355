package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kakairsyad/Interior-market/internal/catalog"
	"github.com/kakairsyad/Interior-market/internal/checkout"
	"github.com/kakairsyad/Interior-market/internal/config"
	"github.com/kakairsyad/Interior-market/internal/kv"
	"github.com/kakairsyad/Interior-market/internal/publisher"
)

type storage interface {
	kv.Store
	Ping(ctx context.Context) error
}

type catalogBackend interface {
	catalog.Provider
	Ping(ctx context.Context) error
}

func noopClose(context.Context) error { return nil }

// openStorage connects the configured kv backend. The returned func releases it.
func openStorage(ctx context.Context, c config.StorageConfig) (storage, func(context.Context) error, error) {
	switch c.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		log.Info("redis ping succeeded", zap.String("addr", c.Redis.Addr))
		return kv.NewRedisStore(client, c.Redis.TTL), func(context.Context) error { return client.Close() }, nil

	case "mongo":
		db, err := kv.ConnectMongoDB(ctx, c.Mongo.URI, c.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		store := kv.NewMongoStore(db)
		if err := store.CreateIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, nil, err
		}
		log.Info("connected to mongodb", zap.String("database", c.Mongo.Database))
		return store, store.Close, nil

	case "postgres":
		store, err := kv.NewPostgresStore(&kv.Credentials{
			Host:     c.Postgres.Host,
			Port:     c.Postgres.Port,
			User:     c.Postgres.User,
			Password: c.Postgres.Password,
			DBName:   c.Postgres.DBName,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := store.RunMigrations(); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		log.Info("connected to postgres", zap.String("host", c.Postgres.Host))
		return store, func(context.Context) error { return store.Close() }, nil

	default:
		return kv.NewMemoryStore(), noopClose, nil
	}
}

// openCatalog builds the configured catalog. A fresh sqlite database is
// migrated and seeded with the sample catalog.
func openCatalog(ctx context.Context, c config.CatalogConfig) (catalogBackend, func() error, error) {
	if c.Backend != "sqlite" {
		return catalog.NewSampleCatalog(), func() error { return nil }, nil
	}

	db, err := openSQLiteCatalog(c.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	products, err := db.ListProducts(ctx)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if len(products) == 0 {
		if err := db.Seed(ctx, catalog.SampleCategories(), catalog.SampleProducts()); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("seeded sqlite catalog", zap.String("path", c.SQLitePath))
	}
	return db, db.Close, nil
}

func openSQLiteCatalog(path string) (*catalog.SQLiteCatalog, error) {
	db, err := catalog.NewSQLiteCatalog(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newProcessor(c config.CheckoutConfig) checkout.PaymentProcessor {
	var p checkout.PaymentProcessor
	switch c.Processor {
	case "random":
		p = checkout.NewRandomProcessor(c.ProcessingDelay)
	default:
		p = checkout.NewSimulatedProcessor(c.ProcessingDelay)
	}

	if !c.Breaker.Enabled {
		return p
	}
	return checkout.NewBreakerProcessor(p, checkout.BreakerSettings{
		FailureThreshold: c.Breaker.FailureThreshold,
		Timeout:          c.Breaker.Timeout,
	}, log)
}

// newPublisher returns the kafka publisher when brokers are configured.
func newPublisher(c config.KafkaConfig) (publisher.OrderPublisher, func() error) {
	if len(c.Brokers) == 0 {
		return publisher.NewLogPublisher(log), func() error { return nil }
	}
	p := publisher.NewKafkaPublisher(c.Brokers...)
	log.Info("publishing orders to kafka", zap.Strings("brokers", c.Brokers))
	return p, p.Close
}
