package main

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/config"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/report"
	"github.com/lox/blackjacksim/internal/simulator"
)

// SimulateCmd runs a single simulation and prints the statistics summary
type SimulateCmd struct {
	Config       string `kong:"default='blackjack.hcl',help='Path to HCL config file'"`
	Rounds       int    `kong:"help='Number of rounds to simulate (overrides config)'"`
	Decks        int    `kong:"help='Number of decks in the shoe (overrides config)'"`
	Strategy     string `kong:"default='basic',help='Strategy to play: a configured name, or threshold/basic/counting'"`
	HitThreshold int    `kong:"default='16',help='Hit while at or below this value (threshold strategy only)'"`
	Seed         int64  `kong:"help='Deterministic RNG seed (0 picks one)'"`
	Output       string `kong:"help='Write the summary to a file instead of stdout'"`
	Verbose      bool   `kong:"short='v',help='Verbose logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Verbose)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	rounds := cfg.Simulation.Rounds
	if c.Rounds != 0 {
		rounds = c.Rounds
	}
	decks := cfg.Simulation.Decks
	if c.Decks != 0 {
		decks = c.Decks
	}
	seed := cfg.Simulation.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	if seed == 0 {
		seed = randutil.AutoSeed()
	}

	strat, err := c.resolveStrategy(cfg)
	if err != nil {
		return err
	}
	policy, err := strat.Policy()
	if err != nil {
		return err
	}

	logger.Info("starting simulation",
		"rounds", rounds,
		"decks", decks,
		"strategy", strat.Name,
		"counting", strat.UseCounter,
		"seed", seed)

	stats, err := simulator.New(simulator.Config{
		Rounds:           rounds,
		Decks:            decks,
		ShuffleThreshold: cfg.Simulation.ShuffleThreshold,
		Seed:             seed,
		UseCounter:       strat.UseCounter,
		Policy:           policy,
		Logger:           logger,
	}).Run()
	if err != nil {
		return err
	}

	summary := report.Summary(stats.Snapshot())
	if c.Output != "" {
		return report.Write(c.Output, summary)
	}
	fmt.Print(summary)
	return nil
}

// resolveStrategy looks the flag up among configured strategies first, then
// falls back to treating it as a bare strategy kind.
func (c *SimulateCmd) resolveStrategy(cfg *config.Config) (config.StrategyConfig, error) {
	if strat, err := cfg.Strategy(c.Strategy); err == nil {
		return strat, nil
	}
	strat := config.StrategyConfig{
		Name:         c.Strategy,
		Kind:         c.Strategy,
		HitThreshold: c.HitThreshold,
		UseCounter:   c.Strategy == "counting",
	}
	if _, err := strat.Policy(); err != nil {
		return config.StrategyConfig{}, err
	}
	return strat, nil
}
