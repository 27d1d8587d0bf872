// Package tui implements the interactive play mode as a Bubble Tea program.
package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/counting"
	"github.com/lox/blackjacksim/internal/deck"
	"github.com/lox/blackjacksim/internal/game"
	"github.com/lox/blackjacksim/internal/randutil"
	"github.com/lox/blackjacksim/internal/simulator"
	"github.com/lox/blackjacksim/internal/statistics"
	"github.com/lox/blackjacksim/internal/strategy"
)

// phase tracks where the table is in the deal/act/settle cycle
type phase int

const (
	phaseBetween phase = iota // waiting for the next deal
	phasePlayerTurn
	phaseRoundOver // settled, waiting for the next deal
)

// Config parameterizes an interactive session
type Config struct {
	Decks            int
	ShuffleThreshold float64
	Seed             int64
	Logger           *log.Logger
}

// Model represents the Bubble Tea model for an interactive blackjack session
type Model struct {
	logger *log.Logger

	// Table state
	numDecks         int
	shuffleThreshold float64
	rng              *rand.Rand
	shoe             *deck.Shoe
	counter          *counting.Counter
	hint             game.Policy
	player           *game.Hand
	dealer           *game.Hand
	phase            phase
	bet              float64
	betCount         float64 // true count at bet time
	stats            *statistics.Statistics

	// UI components
	logViewport viewport.Model
	gameLog     []string

	// Dimensions
	width       int
	height      int
	initialized bool
	quitting    bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// New creates a session model
func New(cfg Config) *Model {
	return NewWithOptions(cfg, false)
}

// NewWithOptions creates a session model with test mode option
func NewWithOptions(cfg Config, testMode bool) *Model {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Decks == 0 {
		cfg.Decks = 6
	}
	if cfg.ShuffleThreshold == 0 {
		cfg.ShuffleThreshold = 75
	}
	if cfg.Seed == 0 {
		cfg.Seed = randutil.AutoSeed()
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		logger:           cfg.Logger.WithPrefix("tui"),
		numDecks:         cfg.Decks,
		shuffleThreshold: cfg.ShuffleThreshold,
		rng:              randutil.New(cfg.Seed),
		counter:          counting.NewCounter(),
		hint:             strategy.NewBasic(),
		stats:            &statistics.Statistics{},
		logViewport:      vp,
		gameLog:          []string{},
		testMode:         testMode,
		capturedLog:      []string{},
	}
	m.addLog(InfoStyle.Render(fmt.Sprintf("Welcome. %d deck shoe, shuffling at %.0f%% penetration.", cfg.Decks, cfg.ShuffleThreshold)))
	m.addLog(InfoStyle.Render("Press d to deal."))
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.logger.Debug("updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "d", "enter":
			if m.phase != phasePlayerTurn {
				m.startRound()
			}
		case "h":
			if m.phase == phasePlayerTurn {
				m.hit()
			}
		case "s":
			if m.phase == phasePlayerTurn {
				m.stand()
			}
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// View renders the session
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(" BLACKJACK ")

	table := m.renderTable()
	status := m.renderStatus()
	help := m.renderHelp()

	footer := lipgloss.JoinVertical(lipgloss.Left, table, status, help)
	footerHeight := lipgloss.Height(footer)

	logWidth := m.width - 2
	logHeight := m.height - footerHeight - 3
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight).
		Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, logPane, footer)
}

// renderTable shows the current hands
func (m *Model) renderTable() string {
	if m.player == nil {
		return HandInfoStyle.Render("No hand in play")
	}

	var b strings.Builder
	b.WriteString(HandInfoStyle.Render("Dealer: "))
	b.WriteString(m.formatHand(m.dealer))
	if m.phase != phasePlayerTurn {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  (%d)", m.dealer.Value())))
	}
	b.WriteString("\n")
	b.WriteString(HandInfoStyle.Render("Player: "))
	b.WriteString(m.formatHand(m.player))
	b.WriteString(InfoStyle.Render(fmt.Sprintf("  (%d)", m.player.Value())))
	return b.String()
}

// renderStatus shows bankroll and count information
func (m *Model) renderStatus() string {
	tc := 0.0
	if m.shoe != nil {
		tc = m.counter.TrueCount(m.shoe.DecksRemaining())
	}
	decks := 0.0
	if m.shoe != nil {
		decks = m.shoe.DecksRemaining()
	}
	bankroll := fmt.Sprintf("Bankroll: %+.1f", m.stats.Bankroll)
	record := fmt.Sprintf("W/L/P: %d/%d/%d", m.stats.Wins, m.stats.Losses, m.stats.Pushes)
	count := fmt.Sprintf("Running: %+d  True: %+.1f  Decks left: %.1f",
		m.counter.RunningCount(), tc, decks)
	return WarningStyle.Render(bankroll) + "  " + InfoStyle.Render(record) + "\n" + InfoStyle.Render(count)
}

// renderHelp shows the actions valid in the current phase
func (m *Model) renderHelp() string {
	var actions []string
	if m.phase == phasePlayerTurn {
		actions = append(actions,
			SuccessStyle.Render("[h]it"),
			WarningStyle.Render("[s]tand"))
		if hint := m.hint.Decide(m.view()); hint == game.Hit {
			actions = append(actions, InfoStyle.Render("(book says hit)"))
		} else {
			actions = append(actions, InfoStyle.Render("(book says stand)"))
		}
	} else {
		actions = append(actions, SuccessStyle.Render("[d]eal"))
	}
	actions = append(actions, ErrorStyle.Render("[q]uit"))
	return ActionsStyle.Render("Actions: ") + strings.Join(actions, " ")
}

// view builds the decision view the strategy hint sees
func (m *Model) view() game.View {
	return game.View{
		Player:        m.player,
		DealerUp:      m.dealer.Card(0),
		ShoeRemaining: m.shoe.Remaining(),
		Counter:       m.counter,
	}
}

// startRound deals a fresh round, replacing the shoe when it is short or past
// the penetration threshold.
func (m *Model) startRound() {
	if m.shoe == nil || m.shoe.NeedsShuffle(m.shuffleThreshold) || m.shoe.Remaining() < 22 {
		m.shoe = deck.NewShoe(m.numDecks, m.rng)
		m.counter.Reset()
		m.addLog(InfoStyle.Render("--- Shuffling a fresh shoe ---"))
	}

	m.betCount = m.counter.TrueCount(m.shoe.DecksRemaining())
	m.bet = simulator.BetSize(m.betCount)
	m.player = &game.Hand{}
	m.dealer = &game.Hand{}
	m.dealTo(m.player, true)
	m.dealTo(m.dealer, true)
	m.dealTo(m.player, true)
	m.dealTo(m.dealer, false)
	m.phase = phasePlayerTurn

	m.addLog("")
	m.addLog(ActionsStyle.Render(fmt.Sprintf("New round, betting %.0f unit(s)", m.bet)))
	m.addLog(fmt.Sprintf("Dealer shows %s", m.formatCard(m.dealer.Card(0))))
	m.addLog(fmt.Sprintf("You are dealt %s (%d)", m.formatHand(m.player), m.player.Value()))

	if m.player.IsBlackjack() || m.dealer.IsBlackjack() {
		m.revealHole()
		m.settle()
	}
}

// hit deals the player one more card, settling immediately on a bust. The
// hole card stays down on a player bust, so it is never counted.
func (m *Model) hit() {
	m.dealTo(m.player, true)
	card := m.player.Card(m.player.Len() - 1)
	m.addLog(fmt.Sprintf("You draw %s (%d)", m.formatCard(card), m.player.Value()))
	if m.player.IsBust() {
		m.settle()
	}
}

// stand plays out the dealer, hitting to hard 17
func (m *Model) stand() {
	m.revealHole()
	for m.dealer.Value() < 17 {
		m.dealTo(m.dealer, true)
		card := m.dealer.Card(m.dealer.Len() - 1)
		m.addLog(fmt.Sprintf("Dealer draws %s (%d)", m.formatCard(card), m.dealer.Value()))
	}
	m.settle()
}

// dealTo draws from the shoe into a hand, feeding the counter for face-up
// cards only. A short shoe is impossible here given the pre-deal guard.
func (m *Model) dealTo(hand *game.Hand, faceUp bool) {
	var obs deck.Observer
	if faceUp {
		obs = m.counter
	}
	card, err := m.shoe.Deal(obs)
	if err != nil {
		m.logger.Error("shoe exhausted mid-round", "error", err)
		return
	}
	hand.Add(card, faceUp)
}

// revealHole flips the dealer's hole card and counts it
func (m *Model) revealHole() {
	if card, flipped := m.dealer.Reveal(1); flipped {
		m.counter.Observe(card)
		m.addLog(fmt.Sprintf("Dealer reveals %s (%d)", m.formatCard(card), m.dealer.Value()))
	}
}

// settle resolves the round and updates the statistics
func (m *Model) settle() {
	outcome, line := m.resolve()
	m.stats.Add(statistics.RoundResult{
		Outcome:         outcome,
		Bet:             m.bet,
		PlayerBlackjack: m.player.IsBlackjack() && !m.dealer.IsBlackjack(),
		PlayerBust:      m.player.IsBust(),
		TrueCount:       m.betCount,
	})
	m.addLog(line)
	m.phase = phaseRoundOver
}

// resolve applies the outcome precedence: naturals first, then busts, then
// the value comparison.
func (m *Model) resolve() (game.Outcome, string) {
	p, d := m.player, m.dealer
	switch {
	case p.IsBlackjack() && d.IsBlackjack():
		return game.Push, WarningStyle.Render("Both have blackjack. Push.")
	case p.IsBlackjack():
		return game.PlayerWin, SuccessStyle.Render(fmt.Sprintf("Blackjack! You win %.1f units.", m.bet*1.5))
	case d.IsBlackjack():
		return game.DealerWin, ErrorStyle.Render("Dealer has blackjack. You lose.")
	case p.IsBust():
		return game.DealerWin, ErrorStyle.Render(fmt.Sprintf("Bust at %d. You lose.", p.Value()))
	case d.IsBust():
		return game.PlayerWin, SuccessStyle.Render(fmt.Sprintf("Dealer busts at %d. You win.", d.Value()))
	case p.Value() > d.Value():
		return game.PlayerWin, SuccessStyle.Render(fmt.Sprintf("%d beats %d. You win.", p.Value(), d.Value()))
	case p.Value() < d.Value():
		return game.DealerWin, ErrorStyle.Render(fmt.Sprintf("%d loses to %d.", p.Value(), d.Value()))
	default:
		return game.Push, WarningStyle.Render(fmt.Sprintf("Push at %d.", p.Value()))
	}
}

// formatHand renders a hand with suit colors, masking face-down cards
func (m *Model) formatHand(h *game.Hand) string {
	parts := make([]string, h.Len())
	for i := 0; i < h.Len(); i++ {
		if h.FaceUp(i) {
			parts[i] = m.formatCard(h.Card(i))
		} else {
			parts[i] = InfoStyle.Render("??")
		}
	}
	return strings.Join(parts, " ")
}

// formatCard renders a single card with its suit color
func (m *Model) formatCard(card deck.Card) string {
	if card.IsRed() {
		return RedCardStyle.Render(card.String())
	}
	return BlackCardStyle.Render(card.String())
}

// addLog appends an entry to the session log
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Stats returns the session statistics so the CLI can print a summary on exit
func (m *Model) Stats() *statistics.Statistics {
	return m.stats
}

// CapturedLog returns the captured log entries (test mode only)
func (m *Model) CapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}
