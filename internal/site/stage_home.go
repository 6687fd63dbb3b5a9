package site

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"

	"github.com/DataStrategist/pkgdown/internal/docs"
	"github.com/DataStrategist/pkgdown/internal/logfields"
	"github.com/DataStrategist/pkgdown/internal/render"
)

// stageHome renders the site home page at index.html. The body comes from
// the package README when one exists, otherwise from the descriptor's title
// and description.
func stageHome(ctx context.Context, bs *BuildState) error {
	var body string
	if bs.Pkg.ReadmePath != "" {
		src, err := os.ReadFile(bs.Pkg.ReadmePath)
		if err != nil {
			return newFatalStageError(StageHome, err)
		}
		body, err = bs.Renderer.Markdown(bs.Pkg.ReadmePath, docs.StripFrontmatter(src))
		if err != nil {
			return newFatalStageError(StageHome, err)
		}
	} else {
		body = descriptorBody(bs.Pkg)
	}

	data := render.HomeData{
		BodyHTML: body,
		License:  bs.Pkg.Package.License,
		Authors:  authorLines(bs.Pkg),
	}
	if err := bs.Renderer.RenderPage("home", bs.Pkg.Config.Title, data, "index.html", 0); err != nil {
		return newFatalStageError(StageHome, err)
	}
	bs.Manifest.AddFile("index.html")
	bs.Report.RenderedPages++
	slog.Info("home page rendered",
		logfields.Stage(string(StageHome)),
		logfields.File("index.html"))
	return nil
}

// descriptorBody synthesizes a minimal home body for packages without a
// README.
func descriptorBody(pkg *docs.PackageContext) string {
	body := fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(pkg.Config.Title))
	if pkg.Package.Description != "" {
		body += fmt.Sprintf("<p>%s</p>\n", html.EscapeString(pkg.Package.Description))
	}
	return body
}

func authorLines(pkg *docs.PackageContext) []string {
	out := make([]string, 0, len(pkg.Package.Authors))
	for _, a := range pkg.Package.Authors {
		line := a.Name
		if a.Email != "" {
			line = fmt.Sprintf("%s <%s>", a.Name, a.Email)
		}
		// Templates insert raw HTML, so author lines are escaped here.
		out = append(out, html.EscapeString(line))
	}
	return out
}
