// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	UserID   string

	// Database. DatabaseURL selects PostgreSQL when set; otherwise the
	// local SQLite file at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	// Redis. Empty disables the suggestion cache.
	RedisURL string

	// RabbitMQ. Empty runs in local-only mode; queued events stay pending.
	RabbitMQURL string

	// Scheduling
	WorkdayStart string
	WorkdayEnd   string
	WeekStartsOn string

	// Suggestions
	EnergyLevel     int
	SuggestionLimit int
	SuggestionTTL   time.Duration

	// Sync queue
	SyncPollInterval     time.Duration
	SyncBatchSize        int
	SyncMaxRetries       int
	SyncRetryBackoff     time.Duration
	SyncRetryBackoffMax  time.Duration
	SyncRetentionDays    int
	SyncProcessorEnabled bool
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("MINDMATE_USER_ID", "00000000-0000-0000-0000-000000000001"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("MINDMATE_SQLITE_PATH", ""),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		WorkdayStart: getEnv("MINDMATE_WORKDAY_START", "09:00"),
		WorkdayEnd:   getEnv("MINDMATE_WORKDAY_END", "17:00"),
		WeekStartsOn: getEnv("MINDMATE_WEEK_STARTS_ON", "monday"),

		EnergyLevel:     getIntEnv("MINDMATE_ENERGY", 50),
		SuggestionLimit: getIntEnv("MINDMATE_SUGGESTION_LIMIT", 5),
		SuggestionTTL:   getDurationEnv("MINDMATE_SUGGESTION_TTL", 5*time.Minute),

		SyncPollInterval:     getDurationEnv("SYNC_POLL_INTERVAL", 5*time.Second),
		SyncBatchSize:        getIntEnv("SYNC_BATCH_SIZE", 50),
		SyncMaxRetries:       getIntEnv("SYNC_MAX_RETRIES", 5),
		SyncRetryBackoff:     getDurationEnv("SYNC_RETRY_BACKOFF", 30*time.Second),
		SyncRetryBackoffMax:  getDurationEnv("SYNC_RETRY_BACKOFF_MAX", 30*time.Minute),
		SyncRetentionDays:    getIntEnv("SYNC_RETENTION_DAYS", 14),
		SyncProcessorEnabled: getBoolEnv("SYNC_PROCESSOR_ENABLED", true),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
