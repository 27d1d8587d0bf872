package strategy

import (
	"testing"

	"github.com/lox/blackjacksim/internal/counting"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/stretchr/testify/assert"
)

// view builds a policy view for a player hand vs a dealer up-card
func view(player string, dealerUp string) game.View {
	h := &game.Hand{}
	for _, c := range deck.MustParseCards(player) {
		h.Add(c, true)
	}
	return game.View{
		Player:        h,
		DealerUp:      deck.MustParseCards(dealerUp)[0],
		ShoeRemaining: deck.DeckSize,
	}
}

// viewWithCount attaches a counter whose true count equals count against a
// full single deck remaining
func viewWithCount(player, dealerUp string, count int) game.View {
	v := view(player, dealerUp)
	counter := counting.NewCounter()
	id := 1000
	for count > 0 {
		counter.Observe(deck.Card{Suit: deck.Spades, Rank: deck.Two, ID: id})
		id++
		count--
	}
	for count < 0 {
		counter.Observe(deck.Card{Suit: deck.Spades, Rank: deck.King, ID: id})
		id++
		count++
	}
	v.Counter = counter
	return v
}

func TestThreshold(t *testing.T) {
	policy := NewThreshold(15)

	assert.Equal(t, game.Hit, policy.Decide(view("Ts5h", "7s")), "15 is at the limit")
	assert.Equal(t, game.Stand, policy.Decide(view("Ts6h", "7s")), "16 is over the limit")
	assert.Equal(t, game.Hit, policy.Decide(view("2s3h", "As")))
}

func TestBasicHardHands(t *testing.T) {
	tests := []struct {
		name     string
		player   string
		dealerUp string
		expected game.Action
	}{
		{"17 stands", "Ts7h", "As", game.Stand},
		{"11 or less hits", "6s5h", "2s", game.Hit},
		{"16 v 10 hits", "Ts6h", "Kd", game.Hit},
		{"16 v 6 stands", "Ts6h", "6d", game.Stand},
		{"13 v 2 stands", "Ts3h", "2d", game.Stand},
		{"13 v 7 hits", "Ts3h", "7d", game.Hit},
		{"12 v 5 stands", "Ts2h", "5d", game.Stand},
		{"12 v 3 hits", "Ts2h", "3d", game.Hit},
		{"12 v 2 hits", "Ts2h", "2d", game.Hit},
	}

	policy := NewBasic()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Decide(view(tt.player, tt.dealerUp)))
		})
	}
}

func TestBasicSoftHands(t *testing.T) {
	tests := []struct {
		name     string
		player   string
		dealerUp string
		expected game.Action
	}{
		{"soft 19 stands v anything", "As8h", "Ad", game.Stand},
		{"soft 19 stands v 6", "As8h", "6d", game.Stand},
		{"soft 18 v 9 hits", "As7h", "9d", game.Hit},
		{"soft 18 v 10 hits", "As7h", "Qd", game.Hit},
		{"soft 18 v ace hits", "As7h", "Ad", game.Hit},
		{"soft 18 v 8 stands", "As7h", "8d", game.Stand},
		{"soft 17 hits", "As6h", "2d", game.Hit},
		{"soft 13 hits", "As2h", "6d", game.Hit},
		{"three card soft 18", "As3h4d", "2d", game.Stand},
	}

	policy := NewBasic()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Decide(view(tt.player, tt.dealerUp)))
		})
	}
}

func TestCountingMatchesBasicOffIndex(t *testing.T) {
	// At a neutral count the counting policy agrees with basic strategy on
	// everything except the 16v10 index (which stands at true count >= 0)
	hands := []struct {
		player   string
		dealerUp string
	}{
		{"Ts7h", "9d"},
		{"6s5h", "2d"},
		{"As7h", "9d"},
		{"As8h", "6d"},
		{"Ts4h", "5d"},
		{"Ts4h", "8d"},
	}

	basic := NewBasic()
	cnt := NewCounting()
	for _, h := range hands {
		v := viewWithCount(h.player, h.dealerUp, 0)
		assert.Equal(t, basic.Decide(v), cnt.Decide(v), "%s v %s", h.player, h.dealerUp)
	}
}

func TestCountingIndexPlays(t *testing.T) {
	tests := []struct {
		name      string
		player    string
		dealerUp  string
		trueCount int
		expected  game.Action
	}{
		{"16 v 9 stands at +5", "Ts6h", "9d", 5, game.Stand},
		{"16 v 9 hits at +4", "Ts6h", "9d", 4, game.Hit},
		{"16 v 10 stands at 0", "Ts6h", "Kd", 0, game.Stand},
		{"16 v 10 hits below 0", "Ts6h", "Kd", -1, game.Hit},
		{"16 v 7 always hits", "Ts6h", "7d", 10, game.Hit},
		{"15 v 10 stands at +4", "Ts5h", "Kd", 4, game.Stand},
		{"15 v 10 hits at +3", "Ts5h", "Kd", 3, game.Hit},
		{"15 v 2 stands", "Ts5h", "2d", -10, game.Stand},
		{"14 v 6 stands", "Ts4h", "6d", -10, game.Stand},
		{"14 v 7 hits", "Ts4h", "7d", 10, game.Hit},
		{"13 v 2 hits at -1", "Ts3h", "2d", -1, game.Hit},
		{"13 v 2 stands at 0", "Ts3h", "2d", 0, game.Stand},
		{"13 v 3 hits at -2", "Ts3h", "3d", -2, game.Hit},
		{"13 v 3 stands at -1", "Ts3h", "3d", -1, game.Stand},
		{"12 v 2 stands at +3", "Ts2h", "2d", 3, game.Stand},
		{"12 v 2 hits at +2", "Ts2h", "2d", 2, game.Hit},
		{"12 v 3 stands at +2", "Ts2h", "3d", 2, game.Stand},
		{"12 v 4 hits at 0", "Ts2h", "4d", 0, game.Hit},
		{"12 v 4 stands at +1", "Ts2h", "4d", 1, game.Stand},
		{"12 v 5 hits at -5", "Ts2h", "5d", -5, game.Hit},
		{"12 v 5 stands at -4", "Ts2h", "5d", -4, game.Stand},
		{"12 v 6 hits at -1", "Ts2h", "6d", -1, game.Hit},
		{"12 v 6 stands at 0", "Ts2h", "6d", 0, game.Stand},
		{"12 v 8 always hits", "Ts2h", "8d", 10, game.Hit},
	}

	policy := NewCounting()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viewWithCount(tt.player, tt.dealerUp, tt.trueCount)
			assert.Equal(t, tt.expected, policy.Decide(v), "true count %d", tt.trueCount)
		})
	}
}

func TestCountingSoftHandsIgnoreCount(t *testing.T) {
	policy := NewCounting()

	assert.Equal(t, game.Stand, policy.Decide(viewWithCount("As8h", "Kd", -10)))
	assert.Equal(t, game.Hit, policy.Decide(viewWithCount("As7h", "9d", 10)))
}

func TestCountingUsesLiveShoeRemaining(t *testing.T) {
	// Same running count, different shoe depth: +4 running with two decks
	// left is only +2 true, so 16 v 9 keeps hitting; with half a deck left
	// it is +8 true and stands
	v := viewWithCount("Ts6h", "9d", 4)
	policy := NewCounting()

	v.ShoeRemaining = 2 * deck.DeckSize
	assert.Equal(t, game.Hit, policy.Decide(v))

	v.ShoeRemaining = deck.DeckSize / 2
	assert.Equal(t, game.Stand, policy.Decide(v))
}
