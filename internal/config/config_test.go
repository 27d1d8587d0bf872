package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/blackjacksim/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, 100000, cfg.Simulation.Rounds)
	assert.Equal(t, 6, cfg.Simulation.Decks)
	assert.Equal(t, 75.0, cfg.Simulation.ShuffleThreshold)
	assert.Len(t, cfg.Strategies, 2)
	assert.Nil(t, cfg.Sweep)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
simulation {
  rounds            = 5000
  decks             = 2
  shuffle_threshold = 60
  seed              = 42
}

strategy "safe" {
  kind          = "threshold"
  hit_threshold = 14
}

strategy "counting" {
  kind        = "counting"
  use_counter = true
}

sweep {
  decks           = [1, 2, 6]
  thresholds      = [14, 15, 16, 17]
  rounds_per_cell = 20000
  output          = "sweep.txt"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Simulation.Rounds)
	assert.Equal(t, 2, cfg.Simulation.Decks)
	assert.Equal(t, 60.0, cfg.Simulation.ShuffleThreshold)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)

	safe, err := cfg.Strategy("safe")
	require.NoError(t, err)
	assert.Equal(t, "threshold", safe.Kind)
	assert.Equal(t, 14, safe.HitThreshold)

	require.NotNil(t, cfg.Sweep)
	assert.Equal(t, []int{1, 2, 6}, cfg.Sweep.Decks)
	assert.Equal(t, []int{14, 15, 16, 17}, cfg.Sweep.Thresholds)
	assert.Equal(t, 20000, cfg.Sweep.RoundsPerCell)
	assert.Equal(t, "sweep.txt", cfg.Sweep.Output)
}

func TestLoadInvalidHCL(t *testing.T) {
	path := writeConfig(t, `simulation { rounds = `)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative rounds", Config{Simulation: SimulationSettings{Rounds: -1, Decks: 1, ShuffleThreshold: 75}}},
		{"zero decks", Config{Simulation: SimulationSettings{Rounds: 100, Decks: 0, ShuffleThreshold: 75}}},
		{"threshold too high", Config{Simulation: SimulationSettings{Rounds: 100, Decks: 1, ShuffleThreshold: 101}}},
		{"unknown kind", Config{
			Simulation: SimulationSettings{Rounds: 100, Decks: 1, ShuffleThreshold: 75},
			Strategies: []StrategyConfig{{Name: "x", Kind: "martingale"}},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}
}

func TestUnknownStrategy(t *testing.T) {
	cfg := Default()
	_, err := cfg.Strategy("nope")
	assert.Error(t, err)
}

func TestStrategyPolicy(t *testing.T) {
	p, err := StrategyConfig{Name: "t", Kind: "threshold", HitThreshold: 15}.Policy()
	require.NoError(t, err)
	assert.Equal(t, strategy.NewThreshold(15), p)

	p, err = StrategyConfig{Name: "t", Kind: "threshold"}.Policy()
	require.NoError(t, err)
	assert.Equal(t, strategy.NewThreshold(16), p)

	_, err = StrategyConfig{Name: "b", Kind: "basic"}.Policy()
	require.NoError(t, err)
	_, err = StrategyConfig{Name: "c", Kind: "counting"}.Policy()
	require.NoError(t, err)
}
