package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/stat-engine/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STATSIM_SCENARIOS", "")
	t.Setenv("STATSIM_VERBOSE", "")
	t.Setenv("STATSIM_PARALLELISM", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Simulation.Scenarios)
	assert.False(t, cfg.Simulation.Verbose)
	assert.Equal(t, 4, cfg.Simulation.Parallelism)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STATSIM_SCENARIOS", "armour.yaml, ,buffs.yaml")
	t.Setenv("STATSIM_VERBOSE", "true")
	t.Setenv("STATSIM_PARALLELISM", "2")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"armour.yaml", "buffs.yaml"}, cfg.Simulation.Scenarios)
	assert.True(t, cfg.Simulation.Verbose)
	assert.Equal(t, 2, cfg.Simulation.Parallelism)
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("STATSIM_VERBOSE", "loud")
	t.Setenv("STATSIM_PARALLELISM", "many")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.Simulation.Verbose)
	assert.Equal(t, 4, cfg.Simulation.Parallelism)
}

func TestLoad_RejectsZeroParallelism(t *testing.T) {
	t.Setenv("STATSIM_PARALLELISM", "0")

	_, err := config.Load()
	assert.Error(t, err)
}
