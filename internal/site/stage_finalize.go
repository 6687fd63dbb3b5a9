package site

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DataStrategist/pkgdown/internal/docs"
	"github.com/DataStrategist/pkgdown/internal/logfields"
	"github.com/DataStrategist/pkgdown/internal/manifest"
	"github.com/DataStrategist/pkgdown/internal/provenance"
	"github.com/DataStrategist/pkgdown/internal/version"
)

// newManifest seeds the build manifest with identity and provenance. File
// entries accumulate as stages render.
func newManifest(pkg *docs.PackageContext, converter string, now time.Time) *manifest.Manifest {
	m := &manifest.Manifest{
		ID:           uuid.NewString(),
		Package:      pkg.Package.Name,
		Version:      pkg.Package.Version,
		ToolVersion:  version.Version,
		Converter:    converter,
		SourceCommit: provenance.SourceCommit(pkg.SourcePath),
		Generated:    now.UTC(),
		Articles:     make(map[string]string),
	}
	if pkg.Config.URL != "" {
		base := strings.TrimRight(pkg.Config.URL, "/")
		m.URLs = &manifest.URLs{
			Reference: base + "/reference/",
			Articles:  base + "/articles/",
		}
	}
	return m
}

// stageFinalize persists the manifest into the output directory.
func stageFinalize(ctx context.Context, bs *BuildState) error {
	if err := bs.Manifest.Write(bs.Pkg.OutputPath); err != nil {
		return newFatalStageError(StageFinalize, err)
	}
	slog.Info("manifest written",
		logfields.Stage(string(StageFinalize)),
		logfields.File(manifest.FileName),
		logfields.Count(len(bs.Manifest.Files)))
	return nil
}
