package commands

import (
	"fmt"

	"github.com/DataStrategist/pkgdown/internal/cleanup"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct {
	Source string `arg:"" optional:"" default:"." help:"Source package directory"`
	Dest   string `short:"d" help:"Override the output directory"`
}

func (c *CleanCmd) Run(_ *Global, _ *CLI) error {
	pc, err := loadPackage(c.Source, c.Dest)
	if err != nil {
		return err
	}
	removed, err := cleanup.Clean(pc.OutputPath)
	if err != nil {
		return err
	}
	fmt.Printf("removed %d generated files from %s\n", len(removed), pc.OutputPath)
	return nil
}
