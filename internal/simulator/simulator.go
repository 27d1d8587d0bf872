// Package simulator drives many blackjack rounds against a persistent shoe,
// managing shoe replacement, count-driven bet sizing and result aggregation.
package simulator

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacksim/internal/counting"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/statistics"
)

// maxRoundCards is the most cards a single round can consume: a player
// drawing all the way to 21 on aces plus a dealer drawing to 17. The shoe
// is replaced whenever fewer cards remain, so Deal can never hit an empty
// shoe mid-round.
const maxRoundCards = 22

// Config holds configuration for a simulation run
type Config struct {
	Rounds           int
	Decks            int
	ShuffleThreshold float64 // penetration percent that retires the shoe
	Seed             int64
	UseCounter       bool
	Policy           game.Policy
	Logger           *log.Logger
	Clock            quartz.Clock
	ProgressEvery    int // rounds between progress logs, 0 disables
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// BetSize maps a true count onto a betting unit via the standard step ramp.
// A negative count sits the round out (zero stake, round still played).
func BetSize(trueCount float64) float64 {
	switch {
	case trueCount < 0:
		return 0
	case trueCount < 1:
		return 1
	case trueCount < 2:
		return 2
	case trueCount < 3:
		return 5
	case trueCount < 4:
		return 10
	case trueCount < 5:
		return 25
	default:
		return 50
	}
}

// Run executes the configured number of rounds and returns the aggregated
// statistics. The shoe persists across rounds and is replaced, with the
// counter reset, at the penetration threshold.
func (s *Simulator) Run() (*statistics.Statistics, error) {
	cfg := s.config
	rng := randutil.New(cfg.Seed)
	shoe := deck.NewShoe(cfg.Decks, rng)

	var counter *counting.Counter
	if cfg.UseCounter {
		counter = counting.NewCounter()
	}

	cfg.Logger.Debug("starting run",
		"rounds", cfg.Rounds, "decks", cfg.Decks,
		"shuffleThreshold", cfg.ShuffleThreshold,
		"seed", cfg.Seed, "counting", cfg.UseCounter)

	stats := &statistics.Statistics{}
	start := cfg.Clock.Now()

	for i := 0; i < cfg.Rounds; i++ {
		if shoe.NeedsShuffle(cfg.ShuffleThreshold) || shoe.Remaining() < maxRoundCards {
			shoe = deck.NewShoe(cfg.Decks, rng)
			if counter != nil {
				counter.Reset()
			}
			cfg.Logger.Debug("new shoe", "round", i)
		}

		bet := 1.0
		trueCount := 0.0
		if counter != nil {
			trueCount = counter.TrueCount(shoe.DecksRemaining())
			bet = BetSize(trueCount)
		}

		round := game.NewRound(shoe, counter, cfg.Logger)
		result, err := round.Play(cfg.Policy)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}

		stats.Add(statistics.RoundResult{
			Outcome:         result.Outcome,
			Bet:             bet,
			PlayerBlackjack: result.PlayerBlackjack,
			PlayerBust:      result.PlayerBust,
			TrueCount:       trueCount,
		})

		if cfg.ProgressEvery > 0 && (i+1)%cfg.ProgressEvery == 0 {
			elapsed := cfg.Clock.Since(start)
			roundsPerSec := float64(i+1) / elapsed.Seconds()
			cfg.Logger.Info("progress",
				"round", i+1,
				"winRate", fmt.Sprintf("%.2f%%", stats.WinRate()),
				"bankroll", fmt.Sprintf("%.1f", stats.Bankroll),
				"roundsPerSec", fmt.Sprintf("%.0f", roundsPerSec))
		}
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// RunSimulation is a convenience wrapper for a one-shot run
func RunSimulation(rounds, decks int, threshold float64, seed int64, useCounter bool, policy game.Policy, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Rounds:           rounds,
		Decks:            decks,
		ShuffleThreshold: threshold,
		Seed:             seed,
		UseCounter:       useCounter,
		Policy:           policy,
		Logger:           logger,
	}).Run()
}
