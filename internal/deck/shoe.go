package deck

import (
	"errors"
	"math/rand/v2"
)

// DeckSize is the number of cards in a single standard deck.
const DeckSize = 52

// ErrShoeExhausted is returned by Deal when the shoe is empty. Hitting it is
// a caller bug: the simulator reshuffles before a round can run the shoe dry.
var ErrShoeExhausted = errors.New("deal from exhausted shoe")

// Observer receives every face-up card as it is dealt. The counting package
// implements it; a nil observer disables observation entirely.
type Observer interface {
	Observe(Card)
}

// Shoe is an ordered, shuffled sequence of cards drawn from one or more
// standard 52-card decks. Cards are dealt from the end of the slice.
type Shoe struct {
	cards    []Card
	numDecks int
	size     int
}

// NewShoe builds a shoe of numDecks standard decks shuffled with the
// provided RNG. Each card receives a sequence ID unique within the shoe.
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}

	cards := make([]Card, 0, numDecks*DeckSize)
	id := 0
	for d := 0; d < numDecks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				cards = append(cards, Card{Suit: suit, Rank: rank, ID: id})
				id++
			}
		}
	}

	// Fisher-Yates with the injected RNG so runs are reproducible by seed
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return &Shoe{cards: cards, numDecks: numDecks, size: len(cards)}
}

// NewStacked builds a shoe whose deal order is exactly the given sequence
// (first card in the slice is dealt first). Used for deterministic tests.
func NewStacked(cards []Card) *Shoe {
	stacked := make([]Card, len(cards))
	for i, c := range cards {
		stacked[len(cards)-1-i] = c
	}
	return &Shoe{cards: stacked, numDecks: (len(cards) + DeckSize - 1) / DeckSize, size: len(cards)}
}

// Deal removes and returns the top card. A non-nil observer sees the card
// immediately, which is how visible cards reach the counter.
func (s *Shoe) Deal(obs Observer) (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}

	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	if obs != nil {
		obs.Observe(card)
	}
	return card, nil
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Size returns the total number of cards the shoe was built with
func (s *Shoe) Size() int {
	return s.size
}

// NumDecks returns the number of decks the shoe was built from
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// DecksRemaining estimates how many decks are still undealt
func (s *Shoe) DecksRemaining() float64 {
	return float64(len(s.cards)) / DeckSize
}

// Penetration returns the percentage of the shoe already dealt. It is
// non-decreasing over the shoe's lifetime and reaches 100 when empty.
func (s *Shoe) Penetration() float64 {
	return float64(s.size-len(s.cards)) / float64(s.size) * 100
}

// NeedsShuffle reports whether penetration has reached the given threshold
// percentage. Casinos typically cut the shoe at 70-80%.
func (s *Shoe) NeedsShuffle(threshold float64) bool {
	return s.Penetration() >= threshold
}
