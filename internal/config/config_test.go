package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://places.googleapis.com/v1", cfg.Places.BaseURL)
	assert.Equal(t, 5.0, cfg.Places.RateLimit)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "gbp-pulse.db", cfg.Store.SQLitePath)
	assert.Equal(t, "https://login.salesforce.com", cfg.Salesforce.LoginURL)
	assert.Equal(t, 60, cfg.Audit.HotLeadThreshold)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GBPPULSE_STORE_DRIVER", "postgres")
	t.Setenv("GBPPULSE_SERVER_PORT", "9090")
	t.Setenv("GBPPULSE_PLACES_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Places.Key)
}

func TestInitLogger(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
		assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	})

	t.Run("bad level", func(t *testing.T) {
		err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse log level")
	})
}
