package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Defaults matching the original deployment.
const (
	DefaultPort        = "3000"
	DefaultDailyLimit  = 2
	DefaultProviderURL = "https://api.openai.com/v1/chat/completions"
	DefaultModel       = "gpt-4o"

	// Bootstrap admin. Kept as a default for the allow-list so a fresh
	// deployment has at least one administrative account; override with
	// ADMIN_EMAILS or provision out-of-band via cmd/grantadmin.
	defaultAdminEmail = "utkutarhann@gmail.com"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort string
	Env        string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional; in-process fallbacks apply when empty)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Generation provider
	ProviderAPIKey string
	ProviderAPIURL string
	ProviderModel  string

	// Quota
	DailyLimit int

	// Admin allow-list: emails granted the admin role on sync.
	AdminEmails []string
}

// Load builds a Config from environment variables. Only the database name and
// user are hard requirements; everything else has a sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("PORT", DefaultPort),
		Env:        getEnv("APP_ENV", "production"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		ProviderAPIKey: os.Getenv("OPENAI_API_KEY"),
		ProviderAPIURL: getEnv("OPENAI_API_URL", DefaultProviderURL),
		ProviderModel:  getEnv("OPENAI_MODEL", DefaultModel),

		DailyLimit:  getEnvInt("DAILY_GENERATION_LIMIT", DefaultDailyLimit),
		AdminEmails: splitList(getEnv("ADMIN_EMAILS", defaultAdminEmail)),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", db, err)
		}
		cfg.RedisDB = n
	}

	if cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("DB_USER and DB_NAME must be set")
	}
	if cfg.DailyLimit < 1 {
		return nil, fmt.Errorf("DAILY_GENERATION_LIMIT must be at least 1")
	}

	return cfg, nil
}

// RedisConfigured reports whether any Redis endpoint was provided.
func (c *Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// IsAdminEmail checks the address against the configured allow-list.
func (c *Config) IsAdminEmail(email string) bool {
	for _, a := range c.AdminEmails {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
