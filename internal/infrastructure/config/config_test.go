package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/evetrade/internal/infrastructure/config"
)

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "https://esi.evetech.net/latest", cfg.ESI.BaseURL)
	assert.Equal(t, 50_000_000.0, cfg.Engine.DefaultWallet)
	assert.Equal(t, 230.0, cfg.Engine.DefaultCargo)
	assert.Equal(t, 1_000_000.0, cfg.Engine.DefaultMinProfit)
	assert.Equal(t, 10, cfg.Engine.DefaultLimit)
	assert.Equal(t, time.Hour, cfg.Engine.SnapshotTTL)
	assert.Equal(t, 15*time.Minute, cfg.Engine.RefreshInterval)
	assert.Equal(t, "0.0.0.0:8001", cfg.HTTP.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
}

func TestValidateConfig_RejectsBadValues(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Type = "mongodb"

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type")
}
