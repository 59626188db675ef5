package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	CatalogYAML     = "yaml"
	CatalogPostgres = "postgres"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	Store     StoreConfig
	Postgres  PostgresConfig
	Catalog   CatalogConfig
	Messaging MessagingConfig
	Session   SessionConfig
}

// StoreConfig selects the cart slot backend. SlotKey prefixes every session
// slot, e.g. "devkisteel_cart:<session id>". A zero RedisTTL keeps Redis
// slots forever.
type StoreConfig struct {
	Backend    string
	RedisURL   string
	RedisTTL   time.Duration
	SQLitePath string
	SlotKey    string
}

type PostgresConfig struct {
	Host string
	Port int
	User string
	Pass string
	DB   string
}

// CatalogConfig picks where products come from: the YAML File or the
// Postgres products table.
type CatalogConfig struct {
	Source   string
	File     string
	PageSize int
}

type MessagingConfig struct {
	Host         string
	Recipient    string
	BusinessName string
	Currency     string
}

type SessionConfig struct {
	CookieName    string
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		Store: StoreConfig{
			Backend:    strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
			RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379/0"),
			RedisTTL:   getEnvDuration("REDIS_SLOT_TTL", 0),
			SQLitePath: getEnv("SQLITE_PATH", "storefront.db"),
			SlotKey:    getEnv("CART_SLOT_KEY", "devkisteel_cart"),
		},
		Postgres: PostgresConfig{
			Host: getEnv("POSTGRES_HOST", "localhost"),
			Port: getEnvInt("POSTGRES_PORT", 5432),
			User: getEnv("POSTGRES_USER", "shopping"),
			Pass: getEnv("POSTGRES_PASSWORD", "shoppingpassword"),
			DB:   getEnv("POSTGRES_DB", "shopping_db"),
		},
		Catalog: CatalogConfig{
			Source:   strings.ToLower(getEnv("CATALOG_SOURCE", CatalogYAML)),
			File:     getEnv("CATALOG_FILE", "configs/catalog.yaml"),
			PageSize: getEnvInt("PAGE_SIZE", 8),
		},
		Messaging: MessagingConfig{
			Host:         getEnv("MESSAGING_HOST", "wa.me"),
			Recipient:    getEnv("MESSAGING_RECIPIENT", "254754516464"),
			BusinessName: getEnv("BUSINESS_NAME", "Devkisteel Maishamabati"),
			Currency:     getEnv("CURRENCY", "KES"),
		},
		Session: SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE", "sid"),
			IdleTTL:       getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
