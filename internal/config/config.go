package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultDSN = "file:hattucci.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Config holds application configuration values.
type Config struct {
	Secret          string
	DatabaseDSN     string
	HTTPPort        string
	Env             string
	RequireSession  bool
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	// Warnings collects defaults that were applied over invalid values.
	Warnings []string
}

// Load reads configuration from environment variables with reasonable defaults.
// Call godotenv.Load first if a .env file should be honored.
func Load() Config {
	cfg := Config{
		Secret:      getEnv("SECRET", "dev_secret"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Env:         getEnv("APP_ENV", "production"),
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		cfg.Warnings = append(cfg.Warnings, "invalid HTTP_PORT value "+strconv.Quote(cfg.HTTPPort)+", defaulting to 8080")
		cfg.HTTPPort = "8080"
	}

	require, err := strconv.ParseBool(getEnv("REQUIRE_SESSION", "false"))
	if err != nil {
		cfg.Warnings = append(cfg.Warnings, "invalid REQUIRE_SESSION value, sessions stay optional")
	}
	cfg.RequireSession = require

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	timeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "20s"))
	if err != nil || timeout <= 0 {
		cfg.Warnings = append(cfg.Warnings, "invalid SHUTDOWN_TIMEOUT value, defaulting to 20s")
		timeout = 20 * time.Second
	}
	cfg.ShutdownTimeout = timeout

	if cfg.Secret == "dev_secret" && cfg.Env != "development" {
		cfg.Warnings = append(cfg.Warnings, "SECRET not set, session tokens are signed with the development secret")
	}

	return cfg
}

// Development reports whether the app runs with development logging.
func (c Config) Development() bool {
	return c.Env == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
