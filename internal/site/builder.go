// Package site orchestrates a full documentation-site build: home page,
// reference pages from topics, articles from vignettes, the changelog, and
// static assets, finished by writing the site manifest. The build runs as a
// fixed stage pipeline; missing optional inputs degrade to warnings while
// broken pages abort.
package site

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/DataStrategist/pkgdown/internal/config"
	"github.com/DataStrategist/pkgdown/internal/docs"
	"github.com/DataStrategist/pkgdown/internal/logfields"
	"github.com/DataStrategist/pkgdown/internal/metrics"
	"github.com/DataStrategist/pkgdown/internal/render"
)

// Builder runs site builds for one loaded package.
type Builder struct {
	pkg      *docs.PackageContext
	renderer *render.Renderer
	recorder metrics.Recorder
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRecorder attaches a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// NewBuilder prepares a builder for the loaded package context.
func NewBuilder(pkg *docs.PackageContext, opts ...Option) (*Builder, error) {
	site := render.SiteData{
		Title:   pkg.Config.Title,
		Version: pkg.Package.Version,
		URL:     pkg.Config.URL,
		Navbar:  navbarFor(pkg),
	}
	renderer, err := render.New(site, pkg.OutputPath, pkg.Config.Template)
	if err != nil {
		return nil, err
	}
	b := &Builder{
		pkg:      pkg,
		renderer: renderer,
		recorder: metrics.NoopRecorder{},
	}
	for _, o := range opts {
		o(b)
	}
	return b, nil
}

// navbarFor returns the configured navbar, or derives a default one from
// what the package actually contains.
func navbarFor(pkg *docs.PackageContext) config.Navbar {
	if pkg.Config.Navbar != nil {
		return *pkg.Config.Navbar
	}
	nb := config.Navbar{
		Left: []config.NavItem{
			{Text: "Home", Href: "index.html"},
		},
	}
	if len(pkg.Topics) > 0 {
		nb.Left = append(nb.Left, config.NavItem{Text: "Reference", Href: "reference/index.html"})
	}
	if len(pkg.Vignettes) > 0 {
		nb.Left = append(nb.Left, config.NavItem{Text: "Articles", Href: "articles/index.html"})
	}
	if pkg.NewsPath != "" {
		nb.Left = append(nb.Left, config.NavItem{Text: "Changelog", Href: "news/index.html"})
	}
	if pkg.Package.URL != "" {
		nb.Right = append(nb.Right, config.NavItem{Text: "Source", Href: pkg.Package.URL})
	}
	return nb
}

// Build runs the full stage pipeline. The returned report is always
// non-nil, even when the build aborts; the error mirrors the first fatal
// stage failure.
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport(b.pkg.Package.Name)
	report.Topics = len(b.pkg.Topics)
	report.Articles = len(b.pkg.Vignettes)

	bs := &BuildState{
		Pkg:      b.pkg,
		Renderer: b.renderer,
		Report:   report,
	}

	slog.Info("starting site build",
		logfields.Package(b.pkg.Package.Name),
		logfields.Path(b.pkg.OutputPath))

	err := runStages(ctx, b, bs, buildStages())

	report.finish()
	report.deriveOutcome()
	b.recorder.ObserveBuildDuration(report.End.Sub(report.Start))
	b.recorder.IncBuildOutcome(string(report.Outcome))
	b.recorder.AddPagesRendered(report.RenderedPages)

	slog.Info("site build finished", slog.String("summary", report.Summary()))
	return report, err
}

// OutputPath reports where the build writes the site.
func (b *Builder) OutputPath() string { return b.pkg.OutputPath }

// stagePrepare creates the output directory and seeds the manifest with
// build identity and provenance.
func stagePrepare(ctx context.Context, bs *BuildState) error {
	if err := os.MkdirAll(bs.Pkg.OutputPath, 0o755); err != nil {
		return newFatalStageError(StagePrepare, err)
	}
	bs.Manifest = newManifest(bs.Pkg, bs.Renderer.ConverterName(), time.Now())
	slog.Debug("output prepared",
		logfields.Stage(string(StagePrepare)),
		logfields.Path(bs.Pkg.OutputPath))
	return nil
}
