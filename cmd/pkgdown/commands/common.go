package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global holds state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command grammar.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the documentation site"`
	Clean   CleanCmd   `cmd:"" help:"Remove generated files from the output directory"`
	Init    InitCmd    `cmd:"" help:"Write a starter site configuration file"`
	Preview PreviewCmd `cmd:"" help:"Serve the site locally and rebuild on changes"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
