package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Env      string         `json:"env"`
	Http     HttpConfig     `json:"http"`
	Storage  StorageConfig  `json:"storage"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
	APIKey   string         `json:"api_key,omitempty"`
	Webhook  WebhookConfig  `json:"webhook"`
	Evidence EvidenceConfig `json:"evidence"`
	Feed     FeedConfig     `json:"feed"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver string `json:"driver"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Addr     string        `json:"addr"`
	Password string        `json:"password,omitempty"`
	DB       int           `json:"db"`
	Disabled bool          `json:"disabled"`
	CacheTTL time.Duration `json:"cache_ttl"`
}

type WebhookConfig struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
}

type EvidenceConfig struct {
	Root            string        `json:"root"`
	JanitorSchedule string        `json:"janitor_schedule"`
	OrphanGrace     time.Duration `json:"orphan_grace"`
}

type FeedConfig struct {
	SubscriberBuffer int `json:"subscriber_buffer"`
}

func Load() (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "highway_db"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        20,
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Disabled: getEnvBool("REDIS_DISABLED", false),
			CacheTTL: getEnvDuration("REDIS_CACHE_TTL", 30*time.Second),
		},
		APIKey: getEnv("API_KEY", ""),
		Webhook: WebhookConfig{
			URL:      getEnv("WEBHOOK_URL", ""),
			Disabled: getEnvBool("WEBHOOK_DISABLED", true),
		},
		Evidence: EvidenceConfig{
			Root:            getEnv("EVIDENCE_ROOT", "uploads/incidents"),
			JanitorSchedule: getEnv("EVIDENCE_JANITOR_SCHEDULE", "@every 1h"),
			OrphanGrace:     getEnvDuration("EVIDENCE_ORPHAN_GRACE", 24*time.Hour),
		},
		Feed: FeedConfig{
			SubscriberBuffer: getEnvInt("FEED_SUBSCRIBER_BUFFER", 64),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Bool("redis_disabled", cfg.Redis.Disabled),
		slog.String("evidence_root", cfg.Evidence.Root))

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || (len(c.Http.Port) > 0 && c.Http.Port[0] != ':') {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	if c.APIKey == "" {
		return errors.New("API_KEY is empty")
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Postgres.Host == "" {
			return errors.New("POSTGRES_HOST required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not supported", c.Storage.Driver)
	}

	if c.Evidence.Root == "" {
		return errors.New("EVIDENCE_ROOT required")
	}

	if _, err := cron.ParseStandard(c.Evidence.JanitorSchedule); err != nil {
		return fmt.Errorf("EVIDENCE_JANITOR_SCHEDULE: %w", err)
	}

	if c.Feed.SubscriberBuffer < 1 {
		return errors.New("FEED_SUBSCRIBER_BUFFER must be positive")
	}

	if !c.Webhook.Disabled && c.Webhook.URL == "" {
		return errors.New("WEBHOOK_URL required when webhooks are enabled")
	}

	if !c.Webhook.Disabled && c.Redis.Disabled {
		return errors.New("webhooks need Redis: set REDIS_DISABLED=false or WEBHOOK_DISABLED=true")
	}

	if c.Webhook.Disabled {
		log.Println("WARN: Webhooks DISABLED via WEBHOOK_DISABLED=true")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
