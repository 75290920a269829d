package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile string // Path to SQLite database file (default: ./activist.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	CacheBackend string        // Cache backend (memory, redis) (default: memory)
	RedisURL     string        // Redis connection URL, required when CacheBackend is redis
	CacheTTL     time.Duration // Cache entry TTL (default: 15m)

	SessionTTL time.Duration // Session token lifetime (default: 720h / 30 days)

	SMTPHost     string // SMTP relay host; when empty, mail is logged instead of sent
	SMTPPort     int    // SMTP relay port (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string // From address for outbound mail

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile: getEnvOrDefault("API_DATABASE_FILE", "activist.db"),
		PepperFile:   getEnvOrDefault("API_PEPPER_FILE", "pepper"),

		CacheBackend: getEnvOrDefault("CACHE_BACKEND", "memory"),
		RedisURL:     getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		CacheTTL:     getEnvDurationOrDefault("CACHE_TTL", 15*time.Minute),

		SessionTTL: getEnvDurationOrDefault("SESSION_TTL", 30*24*time.Hour),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "no-reply@activist.org"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
