package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"V" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run a blackjack simulation and print a summary"`
	Sweep    SweepCmd         `cmd:"" help:"Compare strategies across deck counts or hit thresholds"`
	Play     PlayCmd          `cmd:"" help:"Play blackjack interactively with a live count"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack simulator with Hi-Lo card counting"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// setupLogger configures logging for a subcommand
func setupLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}
