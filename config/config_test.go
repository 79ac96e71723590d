package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, env.Parse(cfg))

	assert.Equal(t, "MangoMarket", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10*time.Minute, cfg.OTP.Expiry)
	assert.Equal(t, 5, cfg.OTP.MaxAttempts)
	assert.Equal(t, 6, cfg.OTP.MinPasswordLength)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Rate)
	assert.Equal(t, 10*time.Second, cfg.Mail.SendTimeout)
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("ONBOARD_OTP_EXPIRY", "5m")
	t.Setenv("ONBOARD_OTP_MAX_ATTEMPTS", "3")
	t.Setenv("ONBOARD_REDIS_ENABLED", "true")
	t.Setenv("ONBOARD_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("ONBOARD_MAIL_FROM_ADDRESS", "noreply@mangomarket.example")

	cfg := &Config{}
	require.NoError(t, env.Parse(cfg))

	assert.Equal(t, 5*time.Minute, cfg.OTP.Expiry)
	assert.Equal(t, 3, cfg.OTP.MaxAttempts)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, "noreply@mangomarket.example", cfg.Mail.FromAddress)
}
