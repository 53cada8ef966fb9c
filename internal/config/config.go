package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string
	Env  string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Cache TTLs (seconds)
	DailyQuoteTTL int

	// Session lifecycle
	SessionMaxIdleDays int

	// Public site base URL, used for SEO metadata
	SiteBaseURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		Env:                getEnv("APP_ENV", "development"),
		DBType:             getEnv("DB_TYPE", "postgres"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBDatabase:         getEnv("DB_DATABASE", ""),
		DBUser:             getEnv("DB_USER", ""),
		DBPassword:         getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:  getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		DailyQuoteTTL:      getEnvAsInt("CACHE_TTL_DAILY_QUOTE", 86400),
		SessionMaxIdleDays: getEnvAsInt("SESSION_MAX_IDLE_DAYS", 30),
		SiteBaseURL:        getEnv("SITE_BASE_URL", "https://clock.jsnetworkcorp.com"),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
// Error responses omit internals when true.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
