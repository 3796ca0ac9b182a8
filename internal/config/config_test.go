package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/wholesale")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, 10*time.Minute, cfg.Redis.CategoryCacheTTL)
	assert.Equal(t, "wholesale.events", cfg.RabbitMQ.Exchange)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Hour, cfg.Sweeper.Interval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_SEED_ENABLED", "false")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "30s")
	t.Setenv("SESSION_SWEEP_INTERVAL", "not-a-duration")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.False(t, cfg.Auth.SeedEnabled)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, time.Hour, cfg.Sweeper.Interval, "invalid durations fall back to the default")
	assert.Zero(t, cfg.App.RequestTimeout())
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "x")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Auth: AuthConfig{
		JWTSecret:             "secret",
		AccessTokenTTLMinutes: 1,
		RefreshTokenTTLHours:  1,
		SessionTTLDays:        1,
	}}
	require.NoError(t, valid.Validate())

	noSecret := valid
	noSecret.Auth.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	zeroTTL := valid
	zeroTTL.Auth.SessionTTLDays = 0
	assert.Error(t, zeroTTL.Validate())
}
