// Package config collects the daemon's environment configuration so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Storage backend selectors for WIZARD_STORE.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config captures everything the wizard daemon reads from the environment.
type Config struct {
	Addr string

	// Store picks the durable backend for session and recovery state.
	Store       string
	StorePath   string
	RedisURL    string
	PostgresURL string

	LookupBaseURL string
	RegAPIBaseURL string

	Steps            int
	SessionTTL       time.Duration
	RecoveryTTL      time.Duration
	LookupCacheTTL   time.Duration
	AutoSaveInterval time.Duration

	LogLevel  string
	LogFormat string
}

// FromEnv builds a Config from environment variables so main stays lean.
// Unset or unparseable values fall back to defaults.
func FromEnv() Config {
	return Config{
		Addr: envOr("WIZARD_ADDR", ":8077"),

		Store:       envOr("WIZARD_STORE", StoreFile),
		StorePath:   envOr("WIZARD_STORE_PATH", "wizard-state.json"),
		RedisURL:    os.Getenv("REDIS_URL"),
		PostgresURL: os.Getenv("POSTGRES_URL"),

		LookupBaseURL: os.Getenv("LOOKUP_BASE_URL"),
		RegAPIBaseURL: envOr("REGAPI_BASE_URL", "http://localhost:8081"),

		Steps:            envInt("WIZARD_STEPS", 2),
		SessionTTL:       envDuration("SESSION_TTL", 24*time.Hour),
		RecoveryTTL:      envDuration("RECOVERY_TTL", 24*time.Hour),
		LookupCacheTTL:   envDuration("LOOKUP_CACHE_TTL", 24*time.Hour),
		AutoSaveInterval: envDuration("AUTOSAVE_INTERVAL", 5*time.Second),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "text"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
