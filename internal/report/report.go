// Package report renders simulation and sweep results as fixed-width text
// reports for offline comparison.
package report

import (
	"fmt"
	"strings"

	"github.com/lox/blackjacksim/internal/fileutil"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/sweep"
)

const lineWidth = 70

// Summary renders a single run's statistics block
func Summary(snap statistics.Snapshot) string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "GAME STATISTICS\n")
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Total rounds played: %d\n", snap.TotalRounds)
	fmt.Fprintf(&b, "Wins: %d (%s)\n", snap.Wins, pct(snap.Wins, snap.TotalRounds))
	fmt.Fprintf(&b, "Losses: %d (%s)\n", snap.Losses, pct(snap.Losses, snap.TotalRounds))
	fmt.Fprintf(&b, "Pushes: %d (%s)\n", snap.Pushes, pct(snap.Pushes, snap.TotalRounds))
	fmt.Fprintf(&b, "\nWin rate (excluding pushes): %.2f%%\n", snap.WinRate)
	fmt.Fprintf(&b, "Blackjacks: %d\n", snap.Blackjacks)
	fmt.Fprintf(&b, "Busts: %d\n", snap.Busts)
	fmt.Fprintf(&b, "Profit (bankroll): %.2f units\n", snap.Bankroll)
	fmt.Fprintf(&b, "Total wagered: %.2f units\n", snap.TotalWagered)
	fmt.Fprintf(&b, "ROI: %.2f%%\n", snap.ROI)

	// Per-count breakdown only means something when rounds were played at
	// more than one count band, i.e. a counting run.
	if populated(snap.CountBuckets) > 1 {
		fmt.Fprintf(&b, "\nTRUE COUNT ANALYSIS\n")
		for i, bucket := range snap.CountBuckets {
			if bucket.Rounds == 0 {
				continue
			}
			fmt.Fprintf(&b, "%-14s %8d rounds  %+10.1f units\n",
				statistics.BucketLabel(i), bucket.Rounds, bucket.Bankroll)
		}
	}

	fmt.Fprintf(&b, "%s\n", rule)
	return b.String()
}

func populated(buckets [statistics.NumCountBuckets]statistics.BucketStats) int {
	n := 0
	for _, b := range buckets {
		if b.Rounds > 0 {
			n++
		}
	}
	return n
}

func pct(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}

// DeckComparison renders the strategy-vs-shoe-size sweep as one table per
// strategy, decks ascending.
func DeckComparison(results []sweep.Result, roundsPerCell int) string {
	var b strings.Builder
	writeBanner(&b, roundsPerCell)

	for _, strat := range strategyOrder(results) {
		writeSection(&b, sectionTitle(strat))
		b.WriteString(tableHeader("Decks"))
		for _, r := range results {
			if r.Strategy == strat {
				b.WriteString(tableRow(r.Decks, r.Stats))
			}
		}
	}
	return b.String()
}

// ThresholdComparison renders the hit-threshold sweep as one table per deck
// count, thresholds ascending.
func ThresholdComparison(results []sweep.Result, roundsPerCell int) string {
	var b strings.Builder
	writeBanner(&b, roundsPerCell)

	seen := map[int]bool{}
	for _, r := range results {
		if seen[r.Decks] {
			continue
		}
		seen[r.Decks] = true

		writeSection(&b, fmt.Sprintf("%d DECK GAME", r.Decks))
		b.WriteString(tableHeader("Hit<=x"))
		for _, rr := range results {
			if rr.Decks == r.Decks {
				b.WriteString(tableRow(rr.HitThreshold, rr.Stats))
			}
		}
	}
	return b.String()
}

// Write saves a rendered report atomically
func Write(path, content string) error {
	return fileutil.WriteFileAtomic(path, []byte(content), 0644)
}

func writeBanner(b *strings.Builder, roundsPerCell int) {
	rule := strings.Repeat("=", lineWidth)
	fmt.Fprintf(b, "%s\n", rule)
	fmt.Fprintf(b, "BLACKJACK STRATEGY COMPARISON\n")
	fmt.Fprintf(b, "Testing %d rounds per configuration\n", roundsPerCell)
	fmt.Fprintf(b, "%s\n", rule)
}

func writeSection(b *strings.Builder, title string) {
	pad := lineWidth - len(title) - 2
	left := pad / 2
	fmt.Fprintf(b, "\n%s %s %s\n",
		strings.Repeat("=", left), title, strings.Repeat("=", pad-left))
}

func tableHeader(axis string) string {
	return fmt.Sprintf("%-8s%12s%18s%12s\n%s\n",
		axis, "Win Rate", "Profit", "ROI", strings.Repeat("-", lineWidth))
}

func tableRow(axis int, snap statistics.Snapshot) string {
	return fmt.Sprintf("%-8d%11.2f%%%12.2f units%11.2f%%\n",
		axis, snap.WinRate, snap.Bankroll, snap.ROI)
}

func sectionTitle(strategy string) string {
	switch strategy {
	case "basic":
		return "BASIC STRATEGY"
	case "counting":
		return "CARD COUNTING STRATEGY"
	default:
		return strings.ToUpper(strategy) + " STRATEGY"
	}
}

// strategyOrder returns distinct strategies in first-seen order
func strategyOrder(results []sweep.Result) []string {
	var order []string
	seen := map[string]bool{}
	for _, r := range results {
		if !seen[r.Strategy] {
			seen[r.Strategy] = true
			order = append(order, r.Strategy)
		}
	}
	return order
}
