// Package sweep runs grids of independent simulations to compare strategies
// across shoe sizes and hit thresholds. Cells share nothing: each gets its
// own shoe, counter and statistics, with a seed derived from the master
// seed so results are stable under parallel scheduling.
package sweep

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/strategy"
	"golang.org/x/sync/errgroup"
)

// Result is one completed sweep cell
type Result struct {
	Strategy     string
	Decks        int
	HitThreshold int // set for threshold-strategy cells only
	Stats        statistics.Snapshot
}

// Config holds sweep parameters shared by every cell
type Config struct {
	RoundsPerCell    int
	Decks            []int
	Thresholds       []int // hit thresholds for ThresholdSweep
	ShuffleThreshold float64
	Seed             int64
	Parallelism      int // 0 means GOMAXPROCS
	Logger           *log.Logger
}

func (c Config) parallelism() int {
	if c.Parallelism > 0 {
		return c.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}

// cell is one unit of sweep work
type cell struct {
	strategy     string
	decks        int
	hitThreshold int
	policy       game.Policy
	useCounter   bool
}

// DeckSweep compares the fixed-threshold, basic and counting strategies
// across the configured deck counts.
func DeckSweep(cfg Config) ([]Result, error) {
	var cells []cell
	for _, decks := range cfg.Decks {
		cells = append(cells,
			cell{strategy: "threshold15", decks: decks, hitThreshold: 15, policy: strategy.NewThreshold(15)},
			cell{strategy: "basic", decks: decks, policy: strategy.NewBasic()},
			cell{strategy: "counting", decks: decks, policy: strategy.NewCounting(), useCounter: true},
		)
	}
	return run(cfg, cells)
}

// ThresholdSweep evaluates the fixed-threshold strategy for every
// (hit threshold, deck count) pair.
func ThresholdSweep(cfg Config) ([]Result, error) {
	var cells []cell
	for _, decks := range cfg.Decks {
		for _, limit := range cfg.Thresholds {
			cells = append(cells, cell{
				strategy:     fmt.Sprintf("threshold%d", limit),
				decks:        decks,
				hitThreshold: limit,
				policy:       strategy.NewThreshold(limit),
			})
		}
	}
	return run(cfg, cells)
}

// run executes cells concurrently; each writes only its own result slot
func run(cfg Config, cells []cell) ([]Result, error) {
	results := make([]Result, len(cells))

	var g errgroup.Group
	g.SetLimit(cfg.parallelism())

	for i, c := range cells {
		g.Go(func() error {
			stats, err := simulator.New(simulator.Config{
				Rounds:           cfg.RoundsPerCell,
				Decks:            c.decks,
				ShuffleThreshold: cfg.ShuffleThreshold,
				Seed:             randutil.Derive(cfg.Seed, i),
				UseCounter:       c.useCounter,
				Policy:           c.policy,
				Logger:           cfg.Logger,
			}).Run()
			if err != nil {
				return fmt.Errorf("cell %s decks=%d: %w", c.strategy, c.decks, err)
			}

			results[i] = Result{
				Strategy:     c.strategy,
				Decks:        c.decks,
				HitThreshold: c.hitThreshold,
				Stats:        stats.Snapshot(),
			}
			cfg.Logger.Debug("cell complete",
				"strategy", c.strategy, "decks", c.decks,
				"winRate", fmt.Sprintf("%.2f%%", results[i].Stats.WinRate))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
