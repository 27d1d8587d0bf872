// Package statistics aggregates round outcomes across a simulation run.
package statistics

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/game"
)

// RoundResult is one finalized round as the simulator records it
type RoundResult struct {
	Outcome         game.Outcome
	Bet             float64
	PlayerBlackjack bool
	PlayerBust      bool
	TrueCount       float64 // true count at bet time, 0 without a counter
}

// NumCountBuckets is the number of true-count bands tracked: below 0,
// floors 0 through 5, and 6 or more.
const NumCountBuckets = 8

// BucketStats accumulates results for one true-count band
type BucketStats struct {
	Rounds   int
	Wins     int
	Losses   int
	Bankroll float64
}

// Statistics accumulates results over a simulation run. It is mutated one
// finalized round at a time and never rolled back.
type Statistics struct {
	Rounds     int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int // natural blackjack wins
	Busts      int // losses by player bust

	Bankroll     float64
	TotalWagered float64

	// Results bucketed by the true count at bet time. Without a counter
	// every round lands in the zero band.
	CountBuckets [NumCountBuckets]BucketStats
}

// bucketIndex maps a true count onto its band
func bucketIndex(trueCount float64) int {
	switch {
	case trueCount < 0:
		return 0
	case trueCount >= 6:
		return NumCountBuckets - 1
	default:
		return int(trueCount) + 1
	}
}

// BucketLabel names a true-count band for reports
func BucketLabel(i int) string {
	switch i {
	case 0:
		return "tc < 0"
	case NumCountBuckets - 1:
		return "tc >= 6"
	default:
		return fmt.Sprintf("%d <= tc < %d", i-1, i)
	}
}

// Snapshot is the externally consumable summary of a run, used by reports
// and sweeps without access to internal round state.
type Snapshot struct {
	TotalRounds  int
	Wins         int
	Losses       int
	Pushes       int
	Blackjacks   int
	Busts        int
	Bankroll     float64
	TotalWagered float64
	WinRate      float64 // percent, pushes excluded
	ROI          float64 // percent of total wagered

	CountBuckets [NumCountBuckets]BucketStats
}

// Add records one finalized round. A win pays the bet, or 1.5x the bet on a
// natural blackjack; a loss costs the bet; a push moves nothing. The wager
// counts toward TotalWagered regardless of outcome.
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	s.TotalWagered += result.Bet

	bucket := &s.CountBuckets[bucketIndex(result.TrueCount)]
	bucket.Rounds++

	switch result.Outcome {
	case game.PlayerWin:
		s.Wins++
		bucket.Wins++
		payout := result.Bet
		if result.PlayerBlackjack {
			s.Blackjacks++
			payout = result.Bet * 1.5
		}
		s.Bankroll += payout
		bucket.Bankroll += payout
	case game.DealerWin:
		s.Losses++
		bucket.Losses++
		s.Bankroll -= result.Bet
		bucket.Bankroll -= result.Bet
		if result.PlayerBust {
			s.Busts++
		}
	case game.Push:
		s.Pushes++
	}
}

// WinRate returns the win percentage excluding pushes, or 0 before any
// decisive round.
func (s *Statistics) WinRate() float64 {
	decisive := s.Wins + s.Losses
	if decisive == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decisive) * 100
}

// ROI returns bankroll as a percentage of total wagered, or 0 when nothing
// was wagered.
func (s *Statistics) ROI() float64 {
	if s.TotalWagered == 0 {
		return 0
	}
	return s.Bankroll / s.TotalWagered * 100
}

// Snapshot returns the summary record for external consumers
func (s *Statistics) Snapshot() Snapshot {
	return Snapshot{
		TotalRounds:  s.Rounds,
		Wins:         s.Wins,
		Losses:       s.Losses,
		Pushes:       s.Pushes,
		Blackjacks:   s.Blackjacks,
		Busts:        s.Busts,
		Bankroll:     s.Bankroll,
		TotalWagered: s.TotalWagered,
		WinRate:      s.WinRate(),
		ROI:          s.ROI(),
		CountBuckets: s.CountBuckets,
	}
}

// Validate checks internal consistency of the tallies
func (s *Statistics) Validate() error {
	if s.Wins+s.Losses+s.Pushes != s.Rounds {
		return fmt.Errorf("outcome tallies (%d+%d+%d) do not sum to rounds (%d)",
			s.Wins, s.Losses, s.Pushes, s.Rounds)
	}
	if s.Blackjacks > s.Wins {
		return fmt.Errorf("blackjack wins (%d) exceed wins (%d)", s.Blackjacks, s.Wins)
	}
	if s.Busts > s.Losses {
		return fmt.Errorf("busts (%d) exceed losses (%d)", s.Busts, s.Losses)
	}
	bucketRounds := 0
	for _, b := range s.CountBuckets {
		bucketRounds += b.Rounds
	}
	if bucketRounds != s.Rounds {
		return fmt.Errorf("bucket rounds (%d) do not sum to rounds (%d)", bucketRounds, s.Rounds)
	}
	return nil
}
