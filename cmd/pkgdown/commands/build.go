package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/DataStrategist/pkgdown/internal/docs"
	"github.com/DataStrategist/pkgdown/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Source string `arg:"" optional:"" default:"." help:"Source package directory"`
	Dest   string `short:"d" help:"Override the output directory"`
}

func (b *BuildCmd) Run(_ *Global, _ *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pc, err := loadPackage(b.Source, b.Dest)
	if err != nil {
		return err
	}
	builder, err := site.NewBuilder(pc)
	if err != nil {
		return err
	}
	report, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Println(report.Summary())
	return nil
}

// loadPackage loads the package context, applying the destination override
// before any stage sees it.
func loadPackage(source, dest string) (*docs.PackageContext, error) {
	pc, err := docs.Load(source)
	if err != nil {
		return nil, err
	}
	if dest != "" {
		abs, err := filepath.Abs(dest)
		if err != nil {
			return nil, err
		}
		pc.OutputPath = abs
	}
	return pc, nil
}
