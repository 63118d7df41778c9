package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.Production())

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)

	assert.Equal(t, 30, cfg.Postgres.MaxOpen)
	assert.Equal(t, 5*time.Second, cfg.Postgres.StoreTimeout)

	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)

	assert.Equal(t, 720*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, "token", cfg.Security.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Security.CookieTTL)

	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, "/uploads", cfg.Upload.PublicPath)
	assert.Equal(t, 10, cfg.Upload.MaxFiles)
	assert.Equal(t, int64(20<<20), cfg.Upload.MaxFileBytes)
	assert.Equal(t, 24*time.Hour, cfg.Upload.SweepAfter)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 60, cfg.RateLimit.Max)
}

func TestProduction(t *testing.T) {
	cfg := AppConfig{Environment: "production"}
	assert.True(t, cfg.Production())

	cfg.Environment = "staging"
	assert.False(t, cfg.Production())
}
