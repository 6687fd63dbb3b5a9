package site

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DataStrategist/pkgdown/internal/logfields"
	"github.com/DataStrategist/pkgdown/internal/render"
)

// stageAssets copies static assets into the output root: the built-in
// defaults first (unless disabled), then the configured extra assets
// directory, which may override same-named defaults.
func stageAssets(ctx context.Context, bs *BuildState) error {
	if bs.Pkg.Config.UseDefaultAssets() {
		if err := copyAssetFS(render.DefaultAssets(), bs); err != nil {
			return newFatalStageError(StageAssets, err)
		}
	}
	if dir := bs.Pkg.Config.Template.Assets; dir != "" {
		abs := dir
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(bs.Pkg.SourcePath, dir)
		}
		if _, err := os.Stat(abs); err != nil {
			return newWarnStageError(StageAssets, err)
		}
		if err := copyAssetFS(os.DirFS(abs), bs); err != nil {
			return newFatalStageError(StageAssets, err)
		}
	}
	return nil
}

// copyAssetFS copies every regular file in src into the output directory,
// preserving relative layout and recording each file in the manifest.
func copyAssetFS(src fs.FS, bs *BuildState) error {
	return fs.WalkDir(src, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(src, rel)
		if err != nil {
			return err
		}
		dst := filepath.Join(bs.Pkg.OutputPath, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return err
		}
		bs.Manifest.AddFile(rel)
		slog.Debug("asset copied",
			logfields.Stage(string(StageAssets)),
			logfields.File(rel))
		return nil
	})
}
