// Package strategy provides the built-in playing policies: a naive
// fixed-threshold rule, the canonical basic strategy chart, and a
// counting-augmented variant that deviates from basic strategy on index
// plays when the true count crosses known thresholds.
package strategy

import (
	"fmt"

	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
)

// upCardValue returns the dealer up-card's value with ace as 11, the axis
// used by every strategy chart.
func upCardValue(card deck.Card) int {
	return card.Value()
}

// Threshold hits while the player's value is at or below Limit. Limit 16
// mimics the dealer's own play; other values exist to be swept.
type Threshold struct {
	Limit int
}

// NewThreshold creates a fixed-threshold policy
func NewThreshold(limit int) Threshold {
	return Threshold{Limit: limit}
}

// Decide implements game.Policy
func (p Threshold) Decide(v game.View) game.Action {
	if v.Player.Value() <= p.Limit {
		return game.Hit
	}
	return game.Stand
}

func (p Threshold) String() string {
	return fmt.Sprintf("threshold(%d)", p.Limit)
}

// Basic is the canonical basic strategy chart for hit/stand decisions
type Basic struct{}

// NewBasic creates a basic strategy policy
func NewBasic() Basic {
	return Basic{}
}

// Decide implements game.Policy
func (Basic) Decide(v game.View) game.Action {
	value := v.Player.Value()
	dealer := upCardValue(v.DealerUp)

	if v.Player.IsSoft() {
		return decideSoft(value, dealer)
	}

	switch {
	case value >= 17:
		return game.Stand
	case value <= 11:
		// cannot bust
		return game.Hit
	case value == 12:
		if dealer >= 4 && dealer <= 6 {
			return game.Stand
		}
		return game.Hit
	default: // 13-16
		if dealer >= 2 && dealer <= 6 {
			return game.Stand
		}
		return game.Hit
	}
}

func (Basic) String() string {
	return "basic"
}

// decideSoft is the soft-hand chart shared by the basic and counting
// policies: stand on soft 19+, stand soft 18 except against 9/10/A, hit
// soft 17 and below.
func decideSoft(value, dealer int) game.Action {
	switch {
	case value >= 19:
		return game.Stand
	case value == 18:
		if dealer >= 9 {
			return game.Hit
		}
		return game.Stand
	default:
		return game.Hit
	}
}

// Counting plays basic strategy with Hi-Lo index-play deviations on hard
// 12-16. The true count is recomputed per decision from the live shoe
// remaining count, never cached.
type Counting struct{}

// NewCounting creates a counting-augmented policy
func NewCounting() Counting {
	return Counting{}
}

// Decide implements game.Policy
func (Counting) Decide(v game.View) game.Action {
	value := v.Player.Value()
	dealer := upCardValue(v.DealerUp)

	if v.Player.IsSoft() {
		return decideSoft(value, dealer)
	}

	switch {
	case value >= 17:
		return game.Stand
	case value <= 11:
		return game.Hit
	}

	trueCount := v.TrueCount()

	switch value {
	case 16:
		switch {
		case dealer <= 6:
			return game.Stand
		case dealer == 7 || dealer == 8:
			return game.Hit
		case dealer == 9:
			// 16 v 9: stand at true count +5
			return standIf(trueCount >= 5)
		default:
			// 16 v T/A: stand at true count 0
			return standIf(trueCount >= 0)
		}
	case 15:
		switch {
		case dealer <= 6:
			return game.Stand
		case dealer == 10:
			// 15 v T: stand at true count +4
			return standIf(trueCount >= 4)
		default:
			return game.Hit
		}
	case 14:
		return standIf(dealer <= 6)
	case 13:
		switch dealer {
		case 2:
			// 13 v 2: hit at true count -1
			return standIf(trueCount > -1)
		case 3:
			// 13 v 3: hit at true count -2
			return standIf(trueCount > -2)
		case 4, 5, 6:
			return game.Stand
		default:
			return game.Hit
		}
	default: // 12
		switch dealer {
		case 2:
			// 12 v 2: stand at true count +3
			return standIf(trueCount >= 3)
		case 3:
			// 12 v 3: stand at true count +2
			return standIf(trueCount >= 2)
		case 4:
			// 12 v 4: hit at true count 0 or below
			return standIf(trueCount > 0)
		case 5:
			// 12 v 5: hit at true count -5
			return standIf(trueCount > -5)
		case 6:
			// 12 v 6: hit at true count -1
			return standIf(trueCount > -1)
		default:
			return game.Hit
		}
	}
}

func (Counting) String() string {
	return "counting"
}

func standIf(cond bool) game.Action {
	if cond {
		return game.Stand
	}
	return game.Hit
}
