package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/counting"
	"github.com/lox/blackjacksim/internal/deck"
)

// Action is a player decision at one turn of a round
type Action int

const (
	Hit Action = iota
	Stand
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "invalid"
	}
}

// ErrInvalidAction is returned when a policy produces something other than
// Hit or Stand. It is a contract violation by the policy, never retried.
var ErrInvalidAction = errors.New("policy returned invalid action")

// View is the visible round state a policy decides from: the player's full
// hand, the dealer's up-card only, and enough shoe information to compute a
// live true count. The hole card is never exposed here.
type View struct {
	Player        *Hand
	DealerUp      deck.Card
	ShoeRemaining int
	Counter       *counting.Counter
}

// TrueCount returns the live true count from the shoe's actual remaining
// card count, or 0 when no counter is attached.
func (v View) TrueCount() float64 {
	if v.Counter == nil {
		return 0
	}
	return v.Counter.TrueCount(float64(v.ShoeRemaining) / deck.DeckSize)
}

// Policy decides hit-or-stand from the visible round state. Implementations
// must be pure: no hidden state and no mutation of the view.
type Policy interface {
	Decide(View) Action
}

// PolicyFunc adapts a plain function to the Policy interface
type PolicyFunc func(View) Action

// Decide implements Policy
func (f PolicyFunc) Decide(v View) Action {
	return f(v)
}

// Outcome is the resolution of a round from the player's perspective
type Outcome int

const (
	PlayerWin Outcome = iota
	DealerWin
	Push
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case PlayerWin:
		return "win"
	case DealerWin:
		return "loss"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// Result describes a completed round
type Result struct {
	Outcome         Outcome
	PlayerValue     int
	DealerValue     int
	PlayerBlackjack bool
	DealerBlackjack bool
	PlayerBust      bool
	DealerBust      bool
	CardsDealt      int
}

// Round executes a single blackjack round against a shared shoe and
// optional counter. It is transient: create one per round and discard it
// once the result is recorded.
type Round struct {
	shoe    *deck.Shoe
	counter *counting.Counter
	logger  *log.Logger
	player  Hand
	dealer  Hand
}

// NewRound creates a round bound to the given shoe. counter may be nil.
func NewRound(shoe *deck.Shoe, counter *counting.Counter, logger *log.Logger) *Round {
	return &Round{shoe: shoe, counter: counter, logger: logger}
}

// PlayerHand returns the player's hand
func (r *Round) PlayerHand() *Hand {
	return &r.player
}

// DealerHand returns the dealer's hand
func (r *Round) DealerHand() *Hand {
	return &r.dealer
}

// View returns the policy-visible state for the current player turn
func (r *Round) View() View {
	return View{
		Player:        &r.player,
		DealerUp:      r.dealer.Card(0),
		ShoeRemaining: r.shoe.Remaining(),
		Counter:       r.counter,
	}
}

// Play runs the round to completion: initial deal, natural check, player
// turn under the policy, dealer turn, resolution.
func (r *Round) Play(policy Policy) (*Result, error) {
	before := r.shoe.Remaining()

	if err := r.dealInitial(); err != nil {
		return nil, err
	}

	if r.player.IsBlackjack() || r.dealer.IsBlackjack() {
		// Natural: the dealer checks the hole card immediately
		r.revealHole()
		return r.resolve(before), nil
	}

	busted, err := r.playerTurn(policy)
	if err != nil {
		return nil, err
	}
	if busted {
		return r.resolve(before), nil
	}

	if err := r.dealerTurn(); err != nil {
		return nil, err
	}
	return r.resolve(before), nil
}

// dealInitial deals player, dealer up-card, player, dealer hole-card. The
// hole card stays face down and unobserved until revealed.
func (r *Round) dealInitial() error {
	if err := r.deal(&r.player, true); err != nil {
		return fmt.Errorf("initial deal: %w", err)
	}
	if err := r.deal(&r.dealer, true); err != nil {
		return fmt.Errorf("initial deal: %w", err)
	}
	if err := r.deal(&r.player, true); err != nil {
		return fmt.Errorf("initial deal: %w", err)
	}
	if err := r.deal(&r.dealer, false); err != nil {
		return fmt.Errorf("initial deal: %w", err)
	}

	r.logger.Debug("initial deal",
		"player", r.player.String(), "playerValue", r.player.Value(),
		"dealerUp", r.dealer.Card(0))
	return nil
}

func (r *Round) playerTurn(policy Policy) (bool, error) {
	for {
		action := policy.Decide(r.View())
		switch action {
		case Stand:
			r.logger.Debug("player stands", "value", r.player.Value())
			return false, nil
		case Hit:
			if err := r.deal(&r.player, true); err != nil {
				return false, fmt.Errorf("player hit: %w", err)
			}
			card := r.player.Card(r.player.Len() - 1)
			r.logger.Debug("player hits", "card", card, "value", r.player.Value())
			if r.player.IsBust() {
				r.logger.Debug("player busts", "value", r.player.Value())
				return true, nil
			}
		default:
			return false, fmt.Errorf("%w: %d", ErrInvalidAction, action)
		}
	}
}

func (r *Round) dealerTurn() error {
	r.revealHole()
	r.logger.Debug("dealer reveals", "dealer", r.dealer.String(), "value", r.dealer.Value())

	// Dealer hits to hard 17 or above; no soft-17 special case
	for r.dealer.Value() < 17 {
		if err := r.deal(&r.dealer, true); err != nil {
			return fmt.Errorf("dealer draw: %w", err)
		}
		card := r.dealer.Card(r.dealer.Len() - 1)
		r.logger.Debug("dealer draws", "card", card, "value", r.dealer.Value())
	}
	return nil
}

// revealHole flips the dealer's hole card and submits it to the counter.
// Safe to call on any path: the flip happens once and the counter
// deduplicates by card identity regardless.
func (r *Round) revealHole() {
	if r.dealer.Len() < 2 {
		return
	}
	card, _ := r.dealer.Reveal(1)
	if r.counter != nil {
		r.counter.Observe(card)
	}
}

// deal draws one card into hand. Only face-up cards reach the counter.
func (r *Round) deal(hand *Hand, faceUp bool) error {
	var obs deck.Observer
	if faceUp && r.counter != nil {
		obs = r.counter
	}
	card, err := r.shoe.Deal(obs)
	if err != nil {
		return err
	}
	hand.Add(card, faceUp)
	return nil
}

// resolve classifies the finished round. Precedence: naturals first, then
// busts, then value comparison.
func (r *Round) resolve(shoeBefore int) *Result {
	res := &Result{
		PlayerValue:     r.player.Value(),
		DealerValue:     r.dealer.Value(),
		PlayerBlackjack: r.player.IsBlackjack(),
		DealerBlackjack: r.dealer.IsBlackjack(),
		PlayerBust:      r.player.IsBust(),
		DealerBust:      r.dealer.IsBust(),
		CardsDealt:      shoeBefore - r.shoe.Remaining(),
	}

	switch {
	case res.PlayerBlackjack && !res.DealerBlackjack:
		res.Outcome = PlayerWin
	case res.DealerBlackjack && !res.PlayerBlackjack:
		res.Outcome = DealerWin
	case res.PlayerBust:
		res.Outcome = DealerWin
	case res.DealerBust:
		res.Outcome = PlayerWin
	case res.PlayerValue > res.DealerValue:
		res.Outcome = PlayerWin
	case res.PlayerValue < res.DealerValue:
		res.Outcome = DealerWin
	default:
		res.Outcome = Push
	}

	r.logger.Debug("round resolved",
		"outcome", res.Outcome,
		"player", r.player.String(), "playerValue", res.PlayerValue,
		"dealer", r.dealer.String(), "dealerValue", res.DealerValue)
	return res
}
