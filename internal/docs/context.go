// Package docs scans a source package once and produces the immutable
// PackageContext every later build stage reads from: parsed metadata,
// discovered topics and vignettes, and the merged site configuration.
package docs

import (
	"os"
	"path/filepath"

	"github.com/DataStrategist/pkgdown/internal/config"
	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
	"github.com/DataStrategist/pkgdown/internal/match"
	"github.com/DataStrategist/pkgdown/internal/pkgmeta"
)

// PackageContext is the per-build snapshot of one source package. It is
// created once at build start and never mutated afterwards; stages derive
// new values instead of writing back.
type PackageContext struct {
	SourcePath string
	OutputPath string
	Package    *pkgmeta.Package
	Config     *config.Config
	Topics     []Topic
	Vignettes  []Vignette
	ReadmePath string // empty when the package has no README.md
	NewsPath   string // empty when the package has no NEWS.md
}

// Load scans sourcePath and assembles the package context. It fails with a
// path error when sourcePath does not exist and a config error when the
// descriptor is absent or unparseable.
func Load(sourcePath string) (*PackageContext, error) {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityFatal, "cannot resolve source path").WithPath(sourcePath)
	}
	if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
		return nil, siterrors.New(siterrors.CategoryPath, siterrors.SeverityFatal, "source path does not exist").WithPath(abs)
	}

	pkg, err := pkgmeta.Load(abs)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(abs)
	if err != nil {
		return nil, err
	}
	if cfg.Title == "" {
		cfg.Title = pkg.Name
	}

	topics, err := discoverTopics(abs)
	if err != nil {
		return nil, err
	}
	vignettes, err := discoverVignettes(abs)
	if err != nil {
		return nil, err
	}

	pc := &PackageContext{
		SourcePath: abs,
		OutputPath: resolveOutput(abs, cfg.Destination),
		Package:    pkg,
		Config:     cfg,
		Topics:     topics,
		Vignettes:  vignettes,
	}
	if p := filepath.Join(abs, "README.md"); fileExists(p) {
		pc.ReadmePath = p
	}
	if p := filepath.Join(abs, "NEWS.md"); fileExists(p) {
		pc.NewsPath = p
	}
	return pc, nil
}

func resolveOutput(sourcePath, destination string) string {
	if filepath.IsAbs(destination) {
		return filepath.Clean(destination)
	}
	return filepath.Join(sourcePath, destination)
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// TopicCandidates adapts the topic list for the content selector.
func (pc *PackageContext) TopicCandidates() []match.Candidate {
	out := make([]match.Candidate, len(pc.Topics))
	for i, t := range pc.Topics {
		out[i] = match.Candidate{Name: t.Name, Aliases: t.Aliases, Internal: t.Internal}
	}
	return out
}

// VignetteCandidates adapts the vignette list for the content selector.
func (pc *PackageContext) VignetteCandidates() []match.Candidate {
	out := make([]match.Candidate, len(pc.Vignettes))
	for i, v := range pc.Vignettes {
		out[i] = match.Candidate{Name: v.Name, Aliases: []string{v.Name}}
	}
	return out
}
