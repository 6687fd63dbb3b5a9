package site

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/DataStrategist/pkgdown/internal/logfields"
	"github.com/DataStrategist/pkgdown/internal/render"
	"github.com/DataStrategist/pkgdown/internal/sections"
)

// topicOutputFile maps a topic source file to its page name below
// reference/. Topic names can contain characters unfit for filenames, so
// the source file stem is the authority.
func topicOutputFile(topicPath string) string {
	base := filepath.Base(topicPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

// stageReference builds reference/index.html plus one page per selected
// topic. Packages without topic files skip the stage with a warning.
func stageReference(ctx context.Context, bs *BuildState) error {
	if len(bs.Pkg.Topics) == 0 {
		return newWarnStageError(StageReference, errNoTopics)
	}

	candidates := bs.Pkg.TopicCandidates()
	lookup := func(i int) sections.Item {
		t := bs.Pkg.Topics[i]
		return sections.Item{Name: t.Name, Title: t.Title, Href: topicOutputFile(t.Path)}
	}
	resolved, warnings, err := sections.BuildIndex(bs.Pkg.Config.Reference, candidates, lookup, sections.Options{
		DefaultTitle: "All functions",
		Strict:       bs.Pkg.Config.Strict,
	})
	if err != nil {
		return newFatalStageError(StageReference, err)
	}
	for _, w := range warnings {
		bs.Report.Warnings = append(bs.Report.Warnings, w)
		slog.Warn(w.Message, logfields.Stage(string(StageReference)))
	}
	bs.ReferenceIndex = resolved

	indexRel := path.Join("reference", "index.html")
	if err := bs.Renderer.RenderPage("reference-index", "Reference", render.IndexData{Sections: resolved}, indexRel, 1); err != nil {
		return newFatalStageError(StageReference, err)
	}
	bs.Manifest.AddFile(indexRel)
	bs.Report.RenderedPages++

	for _, t := range bs.Pkg.Topics {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageReference, ctx.Err())
		default:
		}
		outRel := path.Join("reference", topicOutputFile(t.Path))
		data := render.TopicData{
			Name:       t.Name,
			Title:      t.Title,
			Aliases:    t.Aliases,
			SourceFile: filepath.Base(t.Path),
		}
		if err := bs.Renderer.RenderPage("topic", t.Title, data, outRel, 1); err != nil {
			return newFatalStageError(StageReference, err)
		}
		bs.Manifest.AddFile(outRel)
		bs.Report.RenderedPages++
		slog.Debug("topic page rendered",
			logfields.Stage(string(StageReference)),
			logfields.Topic(t.Name),
			logfields.File(outRel))
	}
	slog.Info("reference built",
		logfields.Stage(string(StageReference)),
		logfields.Count(len(bs.Pkg.Topics)))
	return nil
}
