package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("key not found")

// Store is the key/value persistence used for carts and the mock credential
// store. Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Durable returns a view of s whose writes never expire. Backends that
// expire entries implement Durable() Store; others are returned unchanged.
func Durable(s Store) Store {
	if d, ok := s.(interface{ Durable() Store }); ok {
		return d.Durable()
	}
	return s
}

func GetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

type namespaced struct {
	inner  Store
	prefix string
}

// Namespace scopes every key of s under prefix.
func Namespace(s Store, prefix string) Store {
	return namespaced{inner: s, prefix: prefix}
}

func (n namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
