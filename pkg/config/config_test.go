package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "09:00", cfg.WorkdayStart)
	assert.Equal(t, "17:00", cfg.WorkdayEnd)
	assert.Equal(t, "monday", cfg.WeekStartsOn)
	assert.Equal(t, 50, cfg.EnergyLevel)
	assert.Equal(t, 5, cfg.SuggestionLimit)
	assert.Equal(t, 5*time.Second, cfg.SyncPollInterval)
	assert.Equal(t, 5, cfg.SyncMaxRetries)
	assert.True(t, cfg.SyncProcessorEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mindmate")
	t.Setenv("MINDMATE_WORKDAY_START", "08:30")
	t.Setenv("MINDMATE_ENERGY", "80")
	t.Setenv("SYNC_POLL_INTERVAL", "250ms")
	t.Setenv("SYNC_PROCESSOR_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://localhost:5432/mindmate", cfg.DatabaseURL)
	assert.Equal(t, "08:30", cfg.WorkdayStart)
	assert.Equal(t, 80, cfg.EnergyLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.SyncPollInterval)
	assert.False(t, cfg.SyncProcessorEnabled)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("MINDMATE_ENERGY", "plenty")
	t.Setenv("SYNC_POLL_INTERVAL", "soon")
	t.Setenv("SYNC_PROCESSOR_ENABLED", "yep")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.EnergyLevel)
	assert.Equal(t, 5*time.Second, cfg.SyncPollInterval)
	assert.True(t, cfg.SyncProcessorEnabled)
}
