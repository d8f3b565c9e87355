package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.Checkout.ProcessingDelay)
	assert.Equal(t, time.Second, cfg.Auth.Delay)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	data := `
http:
  port: "9090"
storage:
  backend: redis
  redis:
    addr: cache:6379
    ttl: 1h
checkout:
  processor: random
  processing_delay: 500ms
  breaker:
    enabled: true
kafka:
  brokers: [kafka:9092]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Storage.Redis.TTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Checkout.ProcessingDelay)
	assert.True(t, cfg.Checkout.Breaker.Enabled)
	assert.Equal(t, uint32(5), cfg.Checkout.Breaker.FailureThreshold)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	// untouched sections keep their defaults
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"9090\"\n"), 0o600))

	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("CHECKOUT_PROCESSING_DELAY", "3s")
	t.Setenv("POSTGRES_PORT", "6543")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.HTTP.Port)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.Checkout.ProcessingDelay)
	assert.Equal(t, 6543, cfg.Storage.Postgres.Port)
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("AUTH_DELAY", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "AUTH_DELAY")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown storage", func(c *Config) { c.Storage.Backend = "etcd" }, "storage.backend"},
		{"unknown catalog", func(c *Config) { c.Catalog.Backend = "csv" }, "catalog.backend"},
		{"sqlite without path", func(c *Config) { c.Catalog.Backend, c.Catalog.SQLitePath = "sqlite", "" }, "catalog.sqlite_path"},
		{"unknown processor", func(c *Config) { c.Checkout.Processor = "stripe" }, "checkout.processor"},
		{"negative delay", func(c *Config) { c.Checkout.ProcessingDelay = -time.Second }, "processing_delay"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
