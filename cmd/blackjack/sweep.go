package main

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/report"
	"github.com/lox/blackjacksim/internal/sweep"
)

// SweepCmd runs strategy comparisons across a parameter grid
type SweepCmd struct {
	Config      string `kong:"default='blackjack.hcl',help='Path to HCL config file'"`
	Mode        string `kong:"default='decks',enum='decks,thresholds',help='Sweep axis: decks or thresholds'"`
	Rounds      int    `kong:"help='Rounds per grid cell (overrides config)'"`
	Seed        int64  `kong:"help='Deterministic RNG seed (0 picks one)'"`
	Parallelism int    `kong:"help='Concurrent cells (0 uses GOMAXPROCS)'"`
	Output      string `kong:"help='Write the comparison to a file instead of stdout'"`
	Verbose     bool   `kong:"short='v',help='Verbose logging'"`
}

func (c *SweepCmd) Run() error {
	logger := setupLogger(c.Verbose)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	decks := []int{1, 2, 6}
	thresholds := []int{14, 15, 16, 17}
	rounds := 100000
	output := c.Output
	if cfg.Sweep != nil {
		if len(cfg.Sweep.Decks) > 0 {
			decks = cfg.Sweep.Decks
		}
		if len(cfg.Sweep.Thresholds) > 0 {
			thresholds = cfg.Sweep.Thresholds
		}
		if cfg.Sweep.RoundsPerCell != 0 {
			rounds = cfg.Sweep.RoundsPerCell
		}
		if output == "" {
			output = cfg.Sweep.Output
		}
	}
	if c.Rounds != 0 {
		rounds = c.Rounds
	}
	seed := c.Seed
	if seed == 0 {
		seed = randutil.AutoSeed()
	}

	sweepCfg := sweep.Config{
		RoundsPerCell:    rounds,
		Decks:            decks,
		Thresholds:       thresholds,
		ShuffleThreshold: cfg.Simulation.ShuffleThreshold,
		Seed:             seed,
		Parallelism:      c.Parallelism,
		Logger:           logger,
	}

	logger.Info("starting sweep",
		"mode", c.Mode,
		"rounds_per_cell", rounds,
		"decks", decks,
		"seed", seed)

	var content string
	switch c.Mode {
	case "decks":
		results, err := sweep.DeckSweep(sweepCfg)
		if err != nil {
			return err
		}
		content = report.DeckComparison(results, rounds)
	case "thresholds":
		results, err := sweep.ThresholdSweep(sweepCfg)
		if err != nil {
			return err
		}
		content = report.ThresholdComparison(results, rounds)
	}

	if output != "" {
		if err := report.Write(output, content); err != nil {
			return err
		}
		logger.Info("wrote comparison", "path", output)
		return nil
	}
	fmt.Print(content)
	return nil
}
