package deck

import (
	"testing"

	"github.com/lox/blackjacksim/internal/randutil"
)

func TestNewShoe(t *testing.T) {
	tests := []struct {
		name     string
		numDecks int
		expected int
	}{
		{"single deck", 1, 52},
		{"six deck shoe", 6, 312},
		{"eight deck shoe", 8, 416},
		{"zero clamps to one", 0, 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shoe := NewShoe(tt.numDecks, randutil.New(42))
			if shoe.Remaining() != tt.expected {
				t.Errorf("Remaining() = %d, want %d", shoe.Remaining(), tt.expected)
			}
			if shoe.Size() != tt.expected {
				t.Errorf("Size() = %d, want %d", shoe.Size(), tt.expected)
			}
		})
	}
}

func TestShoeCardIdentity(t *testing.T) {
	shoe := NewShoe(2, randutil.New(42))

	// Every card carries a distinct ID even though rank/suit repeat across decks
	seen := make(map[int]bool)
	for shoe.Remaining() > 0 {
		card, err := shoe.Deal(nil)
		if err != nil {
			t.Fatalf("Deal() error = %v", err)
		}
		if seen[card.ID] {
			t.Fatalf("duplicate card ID %d", card.ID)
		}
		seen[card.ID] = true
	}
	if len(seen) != 104 {
		t.Errorf("expected 104 distinct IDs, got %d", len(seen))
	}
}

func TestShoeComposition(t *testing.T) {
	shoe := NewShoe(3, randutil.New(1))

	counts := make(map[Rank]int)
	for shoe.Remaining() > 0 {
		card, err := shoe.Deal(nil)
		if err != nil {
			t.Fatalf("Deal() error = %v", err)
		}
		counts[card.Rank]++
	}

	for rank := Two; rank <= Ace; rank++ {
		if counts[rank] != 12 {
			t.Errorf("rank %s count = %d, want 12", rank, counts[rank])
		}
	}
}

func TestShoeExhausted(t *testing.T) {
	shoe := NewStacked(MustParseCards("AsTh"))

	for i := 0; i < 2; i++ {
		if _, err := shoe.Deal(nil); err != nil {
			t.Fatalf("Deal() error = %v", err)
		}
	}

	if _, err := shoe.Deal(nil); err != ErrShoeExhausted {
		t.Errorf("Deal() on empty shoe error = %v, want ErrShoeExhausted", err)
	}
}

func TestPenetration(t *testing.T) {
	shoe := NewShoe(1, randutil.New(7))

	if shoe.Penetration() != 0 {
		t.Errorf("fresh shoe penetration = %f, want 0", shoe.Penetration())
	}

	prev := 0.0
	for shoe.Remaining() > 0 {
		if _, err := shoe.Deal(nil); err != nil {
			t.Fatalf("Deal() error = %v", err)
		}
		pen := shoe.Penetration()
		if pen < prev {
			t.Fatalf("penetration decreased: %f -> %f", prev, pen)
		}
		prev = pen
	}

	if shoe.Penetration() != 100 {
		t.Errorf("empty shoe penetration = %f, want 100", shoe.Penetration())
	}
}

func TestNeedsShuffle(t *testing.T) {
	shoe := NewShoe(1, randutil.New(7))

	if shoe.NeedsShuffle(75) {
		t.Error("fresh shoe should not need a shuffle")
	}

	// Deal 39 of 52 cards = exactly 75% penetration
	for i := 0; i < 39; i++ {
		if _, err := shoe.Deal(nil); err != nil {
			t.Fatalf("Deal() error = %v", err)
		}
	}

	if !shoe.NeedsShuffle(75) {
		t.Errorf("penetration %f should trigger shuffle at threshold 75", shoe.Penetration())
	}
}

func TestStackedShoeDealOrder(t *testing.T) {
	cards := MustParseCards("Ts7h6dQc")
	shoe := NewStacked(cards)

	for i, want := range cards {
		got, err := shoe.Deal(nil)
		if err != nil {
			t.Fatalf("Deal() error = %v", err)
		}
		if got != want {
			t.Errorf("deal %d = %v, want %v", i, got, want)
		}
	}
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	a := NewShoe(2, randutil.New(99))
	b := NewShoe(2, randutil.New(99))

	for a.Remaining() > 0 {
		ca, _ := a.Deal(nil)
		cb, _ := b.Deal(nil)
		if ca != cb {
			t.Fatalf("same seed produced different order: %v vs %v", ca, cb)
		}
	}
}
