package site

import (
	"context"
	"log/slog"
	"os"
	"path"

	"github.com/DataStrategist/pkgdown/internal/docs"
	"github.com/DataStrategist/pkgdown/internal/logfields"
	"github.com/DataStrategist/pkgdown/internal/render"
	"github.com/DataStrategist/pkgdown/internal/sections"
)

// stageArticles builds articles/index.html plus one page per vignette,
// mirroring the vignette directory layout below articles/. Packages without
// vignettes skip the stage with a warning.
func stageArticles(ctx context.Context, bs *BuildState) error {
	if len(bs.Pkg.Vignettes) == 0 {
		return newWarnStageError(StageArticles, errNoVignettes)
	}

	candidates := bs.Pkg.VignetteCandidates()
	lookup := func(i int) sections.Item {
		v := bs.Pkg.Vignettes[i]
		return sections.Item{Name: v.Name, Title: v.Title, Href: v.OutputFile}
	}
	resolved, warnings, err := sections.BuildIndex(bs.Pkg.Config.Articles, candidates, lookup, sections.Options{
		DefaultTitle: "All vignettes",
		Strict:       bs.Pkg.Config.Strict,
	})
	if err != nil {
		return newFatalStageError(StageArticles, err)
	}
	for _, w := range warnings {
		bs.Report.Warnings = append(bs.Report.Warnings, w)
		slog.Warn(w.Message, logfields.Stage(string(StageArticles)))
	}
	bs.ArticleIndex = resolved

	indexRel := path.Join("articles", "index.html")
	if err := bs.Renderer.RenderPage("article-index", "Articles", render.IndexData{Sections: resolved}, indexRel, 1); err != nil {
		return newFatalStageError(StageArticles, err)
	}
	bs.Manifest.AddFile(indexRel)
	bs.Report.RenderedPages++

	for _, v := range bs.Pkg.Vignettes {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageArticles, ctx.Err())
		default:
		}
		src, err := os.ReadFile(v.InputPath)
		if err != nil {
			return newFatalStageError(StageArticles, err)
		}
		body, err := bs.Renderer.Markdown(v.InputPath, docs.StripFrontmatter(src))
		if err != nil {
			return newFatalStageError(StageArticles, err)
		}
		outRel := path.Join("articles", v.OutputFile)
		data := render.ArticleData{Title: v.Title, BodyHTML: body}
		// Page depth below the site root is one (for articles/) plus the
		// vignette's own nesting.
		if err := bs.Renderer.RenderPage("article", v.Title, data, outRel, v.Depth+1); err != nil {
			return newFatalStageError(StageArticles, err)
		}
		bs.Manifest.AddFile(outRel)
		bs.Manifest.Articles[v.Name] = v.OutputFile
		bs.Report.RenderedPages++
		slog.Debug("article rendered",
			logfields.Stage(string(StageArticles)),
			logfields.Article(v.Name),
			logfields.File(outRel),
			logfields.Depth(v.Depth))
	}
	slog.Info("articles built",
		logfields.Stage(string(StageArticles)),
		logfields.Count(len(bs.Pkg.Vignettes)))
	return nil
}
