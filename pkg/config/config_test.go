package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("NOTIFICATION_RETENTION_DAYS", "")
	t.Setenv("NATS_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, 0, cfg.Notification.RetentionDays)
	assert.Empty(t, cfg.NATS.URL)
	assert.Empty(t, cfg.Redis.URL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "Mongo")
	t.Setenv("JWT_EXPIRES_IN", "15m")
	t.Setenv("NOTIFICATION_RETENTION_DAYS", "30")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongo", cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.JWT.ExpiresIn)
	assert.Equal(t, 30, cfg.Notification.RetentionDays)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigBadDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWT.ExpiresIn)
}
