package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjacksim/internal/report"
	"github.com/lox/blackjacksim/internal/tui"
)

// PlayCmd runs an interactive session with a live Hi-Lo count
type PlayCmd struct {
	Decks            int     `kong:"default='6',help='Number of decks in the shoe'"`
	ShuffleThreshold float64 `kong:"default='75',help='Reshuffle past this penetration percentage'"`
	Seed             int64   `kong:"help='Deterministic RNG seed (0 picks one)'"`
	Verbose          bool    `kong:"short='v',help='Verbose logging'"`
}

func (c *PlayCmd) Run() error {
	logger := setupLogger(c.Verbose)

	model := tui.New(tui.Config{
		Decks:            c.Decks,
		ShuffleThreshold: c.ShuffleThreshold,
		Seed:             c.Seed,
		Logger:           logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	// Print the session summary once the alt screen is gone
	stats := model.Stats()
	if stats.Rounds > 0 {
		fmt.Print(report.Summary(stats.Snapshot()))
	}
	return nil
}
