package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SECRET", "DATABASE_DSN", "HTTP_PORT", "APP_ENV", "REQUIRE_SESSION", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "dev_secret", cfg.Secret)
	assert.Equal(t, defaultDSN, cfg.DatabaseDSN)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.False(t, cfg.RequireSession)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Development())
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("REQUIRE_SESSION", "maybe")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("APP_ENV", "development")

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.RequireSession)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.Development())
	assert.Len(t, cfg.Warnings, 3)
}
