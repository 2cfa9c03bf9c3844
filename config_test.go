package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "rrt_tree.json", cfg.TreeFile)
	require.Equal(t, uint8(DefaultIntensityThreshold), cfg.IntensityThreshold)

	p := cfg.PlannerParams()
	require.NoError(t, p.Validate())
	require.Equal(t, DefaultParams(), p)
	require.Equal(t, DefaultInflateOptions(), cfg.InflateOptions())
}

// TestLoadConfig_Env verifies that environment variables override the defaults.
func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STEP_SIZE", "12.5")
	t.Setenv("MAX_ITER", "400")
	t.Setenv("SEED", "77")
	t.Setenv("WORKERS", "3")
	t.Setenv("CLEARANCE_RADIUS", "4")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)

	p := cfg.PlannerParams()
	require.Equal(t, 12.5, p.StepSize)
	require.Equal(t, 400, p.MaxIter)
	require.Equal(t, uint64(77), p.Seed)
	require.Equal(t, 3, p.Workers)

	opts := cfg.InflateOptions()
	require.Equal(t, 4.0, opts.Radius)
	require.Equal(t, 3, opts.Workers)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("MAX_ITER", "many")
	_, err := LoadConfig()
	require.Error(t, err)
}
