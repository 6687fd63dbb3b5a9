package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DataStrategist/pkgdown/internal/metrics"
	"github.com/DataStrategist/pkgdown/internal/preview"
	"github.com/DataStrategist/pkgdown/internal/site"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Source  string `arg:"" optional:"" default:"." help:"Source package directory"`
	Addr    string `default:"127.0.0.1:8787" help:"Listen address"`
	Dest    string `short:"d" help:"Override the output directory"`
	Metrics bool   `help:"Expose Prometheus metrics at /metrics"`
}

func (p *PreviewCmd) Run(_ *Global, _ *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recorder *metrics.PrometheusRecorder
	if p.Metrics {
		recorder = metrics.NewPrometheusRecorder(nil)
	}

	// Reload the whole package context on every rebuild so configuration
	// edits take effect without restarting the server.
	rebuild := func(ctx context.Context) error {
		pc, err := loadPackage(p.Source, p.Dest)
		if err != nil {
			return err
		}
		var opts []site.Option
		if recorder != nil {
			opts = append(opts, site.WithRecorder(recorder))
		}
		builder, err := site.NewBuilder(pc, opts...)
		if err != nil {
			return err
		}
		_, err = builder.Build(ctx)
		return err
	}

	if err := rebuild(ctx); err != nil {
		return err
	}
	pc, err := loadPackage(p.Source, p.Dest)
	if err != nil {
		return err
	}
	return preview.New(pc.SourcePath, pc.OutputPath, p.Addr, rebuild, recorder).Run(ctx)
}
