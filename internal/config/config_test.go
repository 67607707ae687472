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

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Extractor.Budget)
	assert.Equal(t, 3, cfg.Extractor.CompetitorMax)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Redis.Enabled)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EXTRACTOR_BUDGET", "10s")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("COMPETITOR_MAX_RESULTS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Extractor.Budget)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 5, cfg.Extractor.CompetitorMax)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Extractor.Budget = 0
	assert.Error(t, cfg.Validate())

	cfg, _ = Load()
	cfg.Extractor.CompetitorDelayMin = 5 * time.Second
	cfg.Extractor.CompetitorDelayMax = 1 * time.Second
	assert.Error(t, cfg.Validate())

	cfg, _ = Load()
	cfg.Cache.TTL = 0
	assert.Error(t, cfg.Validate())
}
