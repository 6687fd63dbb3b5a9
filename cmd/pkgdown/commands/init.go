package commands

import (
	"fmt"
	"path/filepath"

	"github.com/DataStrategist/pkgdown/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Source string `arg:"" optional:"" default:"." help:"Source package directory"`
	Force  bool   `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, _ *CLI) error {
	path := filepath.Join(i.Source, config.FileName)
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
