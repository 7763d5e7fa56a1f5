package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWKSURL     string
	CORSOrigins string
	TablePrefix string
	// Search index
	RedisURL     string
	IndexRetries int  // extra attempts after a failed index call
	IndexAsync   bool // index from a background worker instead of inline
	// Fetchers
	FetchTimeout   time.Duration
	LocalFetchRoot string // base directory the "local" fetcher is jailed to
	GitHubToken    string
	// Logging
	LogDir      string // empty disables the log file sink
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWKSURL:        getEnv("JWKS_URL", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:    getTablePrefix(env),
		RedisURL:       getEnv("REDIS_URL", ""),
		IndexRetries:   getEnvInt("INDEX_RETRIES", 2),
		IndexAsync:     getEnv("INDEX_ASYNC", "false") == "true",
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 2*time.Minute),
		LocalFetchRoot: getEnv("LOCAL_FETCH_ROOT", "."),
		GitHubToken:    getEnv("GITHUB_TOKEN", ""),
		LogDir:         getEnv("LOG_DIR", ""),
		LogMaxFiles:    getEnvInt("LOG_MAX_FILES", 10),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
