// Package config loads simulation run configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/strategy"
)

// Config represents a complete run configuration
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Strategies []StrategyConfig   `hcl:"strategy,block"`
	Sweep      *SweepSettings     `hcl:"sweep,block"`
}

// SimulationSettings contains the core table parameters
type SimulationSettings struct {
	Rounds           int     `hcl:"rounds,optional"`
	Decks            int     `hcl:"decks,optional"`
	ShuffleThreshold float64 `hcl:"shuffle_threshold,optional"`
	Seed             int64   `hcl:"seed,optional"`
}

// StrategyConfig selects and parameterizes a playing strategy
type StrategyConfig struct {
	Name         string `hcl:"name,label"`
	Kind         string `hcl:"kind"`
	HitThreshold int    `hcl:"hit_threshold,optional"`
	UseCounter   bool   `hcl:"use_counter,optional"`
}

// SweepSettings parameterizes the sweep subcommand
type SweepSettings struct {
	Decks         []int  `hcl:"decks,optional"`
	Thresholds    []int  `hcl:"thresholds,optional"`
	RoundsPerCell int    `hcl:"rounds_per_cell,optional"`
	Output        string `hcl:"output,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Rounds:           100000,
			Decks:            6,
			ShuffleThreshold: 75,
		},
		Strategies: []StrategyConfig{
			{Name: "basic", Kind: "basic"},
			{Name: "counting", Kind: "counting", UseCounter: true},
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Simulation.Rounds < 0 {
		return fmt.Errorf("rounds must be non-negative, got %d", c.Simulation.Rounds)
	}
	if c.Simulation.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", c.Simulation.Decks)
	}
	if c.Simulation.ShuffleThreshold <= 0 || c.Simulation.ShuffleThreshold > 100 {
		return fmt.Errorf("shuffle_threshold must be in (0, 100], got %f", c.Simulation.ShuffleThreshold)
	}
	for _, s := range c.Strategies {
		if _, err := s.Policy(); err != nil {
			return err
		}
	}
	return nil
}

// Strategy returns the named strategy configuration
func (c *Config) Strategy(name string) (StrategyConfig, error) {
	for _, s := range c.Strategies {
		if s.Name == name {
			return s, nil
		}
	}
	return StrategyConfig{}, fmt.Errorf("unknown strategy %q", name)
}

// Policy builds the game policy this configuration describes
func (s StrategyConfig) Policy() (game.Policy, error) {
	switch s.Kind {
	case "threshold":
		limit := s.HitThreshold
		if limit == 0 {
			limit = 16
		}
		return strategy.NewThreshold(limit), nil
	case "basic":
		return strategy.NewBasic(), nil
	case "counting":
		return strategy.NewCounting(), nil
	default:
		return nil, fmt.Errorf("strategy %q has unknown kind %q", s.Name, s.Kind)
	}
}
