// Package counting implements the Hi-Lo card counting system.
//
// Low cards (2-6) seen leaving the shoe raise the running count (+1): the
// remaining shoe is richer in tens and aces, which favors the player. High
// cards (10-A) lower it (-1); 7-9 are neutral. A balanced shoe dealt to the
// felt always nets back to zero.
package counting

import "github.com/lox/blackjacksim/internal/deck"

// Counter tracks the Hi-Lo running count across a shoe's lifetime. Each
// physical card is counted at most once: cards are keyed by the sequence ID
// the shoe assigned them, so revealing the dealer's hole card a second time
// cannot double-count it.
type Counter struct {
	runningCount int
	cardsSeen    int
	seen         map[int]struct{}
}

// NewCounter creates a counter with a zeroed count
func NewCounter() *Counter {
	return &Counter{seen: make(map[int]struct{})}
}

// Observe updates the running count for a card that became visible. A card
// identity already observed is ignored, making Observe idempotent.
// Implements deck.Observer.
func (c *Counter) Observe(card deck.Card) {
	if _, ok := c.seen[card.ID]; ok {
		return
	}
	c.seen[card.ID] = struct{}{}
	c.cardsSeen++
	c.runningCount += TagValue(card.Rank)
}

// TagValue returns the Hi-Lo tag for a rank: +1 for 2-6, -1 for 10-A, 0 for 7-9.
func TagValue(rank deck.Rank) int {
	switch {
	case rank >= deck.Two && rank <= deck.Six:
		return 1
	case rank >= deck.Ten:
		return -1
	default:
		return 0
	}
}

// RunningCount returns the current running count
func (c *Counter) RunningCount() int {
	return c.runningCount
}

// CardsSeen returns how many distinct cards have been observed
func (c *Counter) CardsSeen() int {
	return c.cardsSeen
}

// TrueCount normalizes the running count by the number of decks still in
// play. decksRemaining is clamped to 0.5 so the tail of a shoe cannot blow
// up the division. The result is a real number, never truncated.
func (c *Counter) TrueCount(decksRemaining float64) float64 {
	if decksRemaining < 0.5 {
		decksRemaining = 0.5
	}
	return float64(c.runningCount) / decksRemaining
}

// TrueCountEstimate computes the true count assuming a single-deck shoe,
// estimating decks remaining from cards seen. Callers holding the shoe
// should prefer TrueCount with the live remaining count.
func (c *Counter) TrueCountEstimate() float64 {
	remaining := float64(deck.DeckSize-c.cardsSeen) / deck.DeckSize
	return c.TrueCount(remaining)
}

// Reset clears the count and the seen set. Called whenever the shoe is
// replaced.
func (c *Counter) Reset() {
	c.runningCount = 0
	c.cardsSeen = 0
	c.seen = make(map[int]struct{})
}
