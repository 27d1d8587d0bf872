package game

import (
	"strings"

	"github.com/lox/blackjacksim/internal/deck"
)

// dealtCard pairs a card with its table visibility. The dealer's hole card
// sits face down until the natural check or the dealer's turn; the counter
// is only ever fed face-up cards.
type dealtCard struct {
	card   deck.Card
	faceUp bool
}

// Hand is an ordered sequence of dealt cards owned by one round participant.
// Value is always derived from the cards, never stored.
type Hand struct {
	cards []dealtCard
}

// Add appends a card to the hand with the given visibility
func (h *Hand) Add(card deck.Card, faceUp bool) {
	h.cards = append(h.cards, dealtCard{card: card, faceUp: faceUp})
}

// Cards returns the cards in deal order
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	for i, dc := range h.cards {
		cards[i] = dc.card
	}
	return cards
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Card returns the card at position i in deal order
func (h *Hand) Card(i int) deck.Card {
	return h.cards[i].card
}

// FaceUp reports whether the card at position i is visible
func (h *Hand) FaceUp(i int) bool {
	return h.cards[i].faceUp
}

// Reveal flips the card at position i face up. It returns the card and
// whether this call changed its visibility, so a hole card flips exactly
// once no matter which path reveals it.
func (h *Hand) Reveal(i int) (deck.Card, bool) {
	if h.cards[i].faceUp {
		return h.cards[i].card, false
	}
	h.cards[i].faceUp = true
	return h.cards[i].card, true
}

// Value returns the best blackjack value of the hand. Aces start at 11 and
// are reduced to 1 one at a time while the total exceeds 21. The result can
// still exceed 21, which is a bust.
func (h *Hand) Value() int {
	value := 0
	aces := 0
	for _, dc := range h.cards {
		value += dc.card.Value()
		if dc.card.IsAce() {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// HardValue returns the hand value with every ace counted as 1
func (h *Hand) HardValue() int {
	value := 0
	for _, dc := range h.cards {
		if dc.card.IsAce() {
			value++
		} else {
			value += dc.card.Value()
		}
	}
	return value
}

// IsSoft reports whether an ace is currently counted as 11
func (h *Hand) IsSoft() bool {
	v := h.Value()
	return v != h.HardValue() && v <= 21
}

// IsBlackjack reports a natural: exactly two cards totalling 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == 21
}

// IsBust reports whether the hand value exceeds 21
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// String renders the face-up cards, masking face-down ones (e.g. "A♠ ??")
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, dc := range h.cards {
		if dc.faceUp {
			parts[i] = dc.card.String()
		} else {
			parts[i] = "??"
		}
	}
	return strings.Join(parts, " ")
}
