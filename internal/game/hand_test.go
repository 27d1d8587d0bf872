package game

import (
	"testing"

	"github.com/lox/blackjacksim/internal/deck"
)

func handOf(s string) *Hand {
	h := &Hand{}
	for _, c := range deck.MustParseCards(s) {
		h.Add(c, true)
	}
	return h
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected int
	}{
		{"simple", "Ts7h", 17},
		{"face cards", "JsQh", 20},
		{"ace high", "AsTh", 21},
		{"ace reduced", "As9h5c", 15},
		{"two aces one reduced", "AsAh9c", 21},
		{"all aces", "AsAhAdAc", 14},
		{"hard bust", "TsTh5c", 25},
		{"three tens bust", "TsThTd", 30},
		{"ace cannot save", "AsTh5cTd", 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handOf(tt.cards).Value(); got != tt.expected {
				t.Errorf("Value() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestHandSoftness(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		soft  bool
	}{
		{"soft seventeen", "As6h", true},
		{"soft eighteen", "As7h", true},
		{"hard seventeen with ace", "As6hTs", false},
		{"no ace", "Ts7h", false},
		{"ace forced low", "AsTh5c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handOf(tt.cards).IsSoft(); got != tt.soft {
				t.Errorf("IsSoft() = %v, want %v", got, tt.soft)
			}
		})
	}
}

func TestHandBlackjack(t *testing.T) {
	if !handOf("AsKh").IsBlackjack() {
		t.Error("A,K should be blackjack")
	}
	if handOf("As5h5c").IsBlackjack() {
		t.Error("three-card 21 is not a natural")
	}
	if handOf("Ts9h").IsBlackjack() {
		t.Error("19 is not blackjack")
	}
}

func TestHandBust(t *testing.T) {
	if handOf("Ts9h2c").Value() != 21 || handOf("Ts9h2c").IsBust() {
		t.Error("21 is not a bust")
	}
	if !handOf("TsTh5c").IsBust() {
		t.Error("25 is a bust")
	}
	if handOf("AsAh9c").IsBust() {
		t.Error("A,A,9 is 21, not 31")
	}
}

func TestHandReveal(t *testing.T) {
	h := &Hand{}
	cards := deck.MustParseCards("Ts6h")
	h.Add(cards[0], true)
	h.Add(cards[1], false)

	if h.String() != "T♠ ??" {
		t.Errorf("String() = %q, want masked hole card", h.String())
	}

	card, flipped := h.Reveal(1)
	if !flipped {
		t.Error("first reveal should flip the card")
	}
	if card != cards[1] {
		t.Errorf("Reveal() card = %v, want %v", card, cards[1])
	}

	if _, flipped := h.Reveal(1); flipped {
		t.Error("second reveal should be a no-op")
	}
	if h.String() != "T♠ 6♥" {
		t.Errorf("String() after reveal = %q", h.String())
	}
}
