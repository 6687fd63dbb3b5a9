package site

import (
	"context"
	"log/slog"
	"path"

	"github.com/DataStrategist/pkgdown/internal/logfields"
	"github.com/DataStrategist/pkgdown/internal/news"
	"github.com/DataStrategist/pkgdown/internal/render"
)

// stageNews renders the changelog at news/index.html. Packages without a
// changelog skip the stage with a warning.
func stageNews(ctx context.Context, bs *BuildState) error {
	if bs.Pkg.NewsPath == "" {
		return newWarnStageError(StageNews, errNoNews)
	}
	entries, err := news.ParseFile(bs.Pkg.NewsPath)
	if err != nil {
		return newFatalStageError(StageNews, err)
	}

	outRel := path.Join("news", "index.html")
	if err := bs.Renderer.RenderPage("news", "Changelog", render.NewsData{Entries: entries}, outRel, 1); err != nil {
		return newFatalStageError(StageNews, err)
	}
	bs.Manifest.AddFile(outRel)
	bs.Report.RenderedPages++
	slog.Info("changelog rendered",
		logfields.Stage(string(StageNews)),
		logfields.Count(len(entries)))
	return nil
}
