package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Storage  StorageConfig  `yaml:"storage"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Auth     AuthConfig     `yaml:"auth"`
	Session  SessionConfig  `yaml:"session"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type HTTPConfig struct {
	Port               string        `yaml:"port"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	MaxRequestBodySize int64         `yaml:"max_request_body_size"`
	SecureCookies      bool          `yaml:"secure_cookies"`
}

type GRPCConfig struct {
	Port           string        `yaml:"port"`
	HealthInterval time.Duration `yaml:"health_interval"`
}

type StorageConfig struct {
	// Backend is one of memory, redis, mongo or postgres.
	Backend  string         `yaml:"backend"`
	Redis    RedisConfig    `yaml:"redis"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type CatalogConfig struct {
	// Backend is memory or sqlite.
	Backend    string `yaml:"backend"`
	SQLitePath string `yaml:"sqlite_path"`
}

type CheckoutConfig struct {
	// Processor is simulated (always approves) or random.
	Processor       string        `yaml:"processor"`
	ProcessingDelay time.Duration `yaml:"processing_delay"`
	Breaker         BreakerConfig `yaml:"breaker"`
}

type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled"`
	FailureThreshold uint32        `yaml:"failure_threshold"`
	Timeout          time.Duration `yaml:"timeout"`
}

type AuthConfig struct {
	Delay time.Duration `yaml:"delay"`
}

type SessionConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:               "8080",
			RequestTimeout:     30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			MaxRequestBodySize: 1 << 20, // 1MB
		},
		GRPC: GRPCConfig{
			Port:           "50051",
			HealthInterval: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend: "memory",
			Redis:   RedisConfig{Addr: "localhost:6379", TTL: 24 * time.Hour},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: "storefront"},
			Postgres: PostgresConfig{
				Host:   "localhost",
				Port:   5432,
				User:   "postgres",
				DBName: "storefront",
			},
		},
		Catalog: CatalogConfig{
			Backend:    "memory",
			SQLitePath: "catalog.db",
		},
		Checkout: CheckoutConfig{
			Processor:       "simulated",
			ProcessingDelay: 2 * time.Second,
			Breaker: BreakerConfig{
				FailureThreshold: 5,
				Timeout:          30 * time.Second,
			},
		},
		Auth: AuthConfig{Delay: time.Second},
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: time.Minute,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads defaults, then the YAML file at path when given, then the
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.HTTP.Port = getEnv("HTTP_PORT", c.HTTP.Port)
	c.GRPC.Port = getEnv("GRPC_PORT", c.GRPC.Port)

	c.Storage.Backend = getEnv("STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.Redis.Addr = getEnv("REDIS_ADDR", c.Storage.Redis.Addr)
	c.Storage.Redis.Password = getEnv("REDIS_PASSWORD", c.Storage.Redis.Password)
	c.Storage.Mongo.URI = getEnv("MONGO_URI", c.Storage.Mongo.URI)
	c.Storage.Mongo.Database = getEnv("MONGO_DATABASE", c.Storage.Mongo.Database)
	c.Storage.Postgres.Host = getEnv("POSTGRES_HOST", c.Storage.Postgres.Host)
	c.Storage.Postgres.User = getEnv("POSTGRES_USER", c.Storage.Postgres.User)
	c.Storage.Postgres.Password = getEnv("POSTGRES_PASSWORD", c.Storage.Postgres.Password)
	c.Storage.Postgres.DBName = getEnv("POSTGRES_DB", c.Storage.Postgres.DBName)

	c.Catalog.Backend = getEnv("CATALOG_BACKEND", c.Catalog.Backend)
	c.Catalog.SQLitePath = getEnv("CATALOG_SQLITE_PATH", c.Catalog.SQLitePath)

	c.Checkout.Processor = getEnv("CHECKOUT_PROCESSOR", c.Checkout.Processor)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	if v := getEnv("KAFKA_BROKERS", ""); v != "" {
		c.Kafka.Brokers = splitList(v)
	}

	var err error
	if c.Storage.Postgres.Port, err = getEnvInt("POSTGRES_PORT", c.Storage.Postgres.Port); err != nil {
		return err
	}
	if c.Checkout.ProcessingDelay, err = getEnvDuration("CHECKOUT_PROCESSING_DELAY", c.Checkout.ProcessingDelay); err != nil {
		return err
	}
	if c.Auth.Delay, err = getEnvDuration("AUTH_DELAY", c.Auth.Delay); err != nil {
		return err
	}
	if c.Session.TTL, err = getEnvDuration("SESSION_TTL", c.Session.TTL); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case "memory", "redis", "mongo", "postgres":
	default:
		errs = append(errs, fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend))
	}
	switch c.Catalog.Backend {
	case "memory":
	case "sqlite":
		if c.Catalog.SQLitePath == "" {
			errs = append(errs, errors.New("catalog.sqlite_path: required for sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.backend: unknown backend %q", c.Catalog.Backend))
	}
	switch c.Checkout.Processor {
	case "simulated", "random":
	default:
		errs = append(errs, fmt.Errorf("checkout.processor: unknown processor %q", c.Checkout.Processor))
	}

	if c.HTTP.Port == "" {
		errs = append(errs, errors.New("http.port: required"))
	}
	if c.Checkout.ProcessingDelay < 0 {
		errs = append(errs, errors.New("checkout.processing_delay: must not be negative"))
	}
	if c.Auth.Delay < 0 {
		errs = append(errs, errors.New("auth.delay: must not be negative"))
	}
	if c.Session.TTL <= 0 || c.Session.CleanupInterval <= 0 {
		errs = append(errs, errors.New("session: ttl and cleanup_interval must be positive"))
	}
	if c.GRPC.Port != "" && c.GRPC.HealthInterval <= 0 {
		errs = append(errs, errors.New("grpc.health_interval: must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
