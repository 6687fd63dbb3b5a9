// Package render wraps the templating and markup engines behind one
// "render page / render markdown file" contract. Every page render receives
// the shared site data plus an explicit nesting depth, from which the
// relative prefix back to the site root is derived.
package render

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/DataStrategist/pkgdown/internal/config"
	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
	"github.com/DataStrategist/pkgdown/internal/news"
	"github.com/DataStrategist/pkgdown/internal/sections"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

//go:embed assets/*
var defaultAssets embed.FS

// SiteData is injected into every page render.
type SiteData struct {
	Title   string
	Version string
	URL     string
	Navbar  config.Navbar
}

// PageData is the root template context for one page.
type PageData struct {
	Site      SiteData
	PageTitle string
	// Root is the relative prefix back to the site root ("", "../", ...).
	Root    string
	Content any
}

// HomeData is the payload for the home page template.
type HomeData struct {
	BodyHTML string
	License  string
	Authors  []string
}

// TopicData is the payload for one reference topic page.
type TopicData struct {
	Name       string
	Title      string
	Aliases    []string
	SourceFile string
}

// IndexData is the payload for reference and article index pages.
type IndexData struct {
	Sections []sections.Resolved
}

// ArticleData is the payload for one rendered article.
type ArticleData struct {
	Title    string
	BodyHTML string
}

// NewsData is the payload for the changelog page.
type NewsData struct {
	Entries []news.Entry
}

// Renderer renders pages into the output directory.
type Renderer struct {
	site      SiteData
	outDir    string
	tpl       *template.Template
	converter Converter
}

// New builds a renderer. Templates come from the embedded defaults; when
// template.path is configured, same-named templates found there override the
// defaults.
func New(site SiteData, outDir string, tcfg config.Template) (*Renderer, error) {
	tpl, err := template.New("pkgdown").Funcs(templateFuncs()).ParseFS(defaultTemplates, "templates/*.html")
	if err != nil {
		return nil, siterrors.WrapConfig(err, "parse built-in templates")
	}
	if tcfg.Path != "" {
		user := filepath.Join(tcfg.Path, "*.html")
		if matches, _ := filepath.Glob(user); len(matches) > 0 {
			tpl, err = tpl.ParseGlob(user)
			if err != nil {
				return nil, siterrors.WrapConfig(err, "parse user templates").WithPath(tcfg.Path)
			}
		}
	}
	return &Renderer{
		site:      site,
		outDir:    outDir,
		tpl:       tpl,
		converter: NewConverter(tcfg.Converter),
	}, nil
}

// navItemContext bundles the page's root prefix with one navigation entry so
// the recursive navitem template keeps both in scope.
type navItemContext struct {
	Root string
	Item config.NavItem
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"navctx": func(root string, item config.NavItem) navItemContext {
			return navItemContext{Root: root, Item: item}
		},
		"navhref": func(root, href string) string {
			if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") || strings.HasPrefix(href, "/") {
				return href
			}
			return root + href
		},
	}
}

// ConverterName identifies the active markup converter for the manifest.
func (r *Renderer) ConverterName() string { return r.converter.Name() }

// RelPrefix returns depth levels of "../".
func RelPrefix(depth int) string { return strings.Repeat("../", depth) }

// RenderPage expands the named page template with the shared site data and
// writes it to outRel below the output directory. depth is the number of
// directory levels outRel sits below the site root.
func (r *Renderer) RenderPage(name string, pageTitle string, content any, outRel string, depth int) error {
	t := r.tpl.Lookup("page/" + name)
	if t == nil {
		return siterrors.ConfigError("unknown page template " + name)
	}
	data := PageData{
		Site:      r.site,
		PageTitle: pageTitle,
		Root:      RelPrefix(depth),
		Content:   content,
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return siterrors.RenderError(err, outRel)
	}

	outPath := filepath.Join(r.outDir, filepath.FromSlash(outRel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityFatal, "create output directory").WithPath(filepath.Dir(outPath))
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityFatal, "write page").WithPath(outPath)
	}
	return nil
}

// Markdown converts markup source to an HTML fragment. path is only used in
// error reporting; on converter failure no partial output escapes.
func (r *Renderer) Markdown(path string, src []byte) (string, error) {
	out, err := r.converter.Convert(src)
	if err != nil {
		return "", siterrors.RenderError(err, path)
	}
	return string(out), nil
}

// MarkdownFile reads and converts one markup file.
func (r *Renderer) MarkdownFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", siterrors.RenderError(err, path)
	}
	return r.Markdown(path, data)
}

// DefaultAssets exposes the built-in static assets for the assets stage.
func DefaultAssets() fs.FS {
	sub, err := fs.Sub(defaultAssets, "assets")
	if err != nil {
		// The embedded tree always contains assets/.
		panic(err)
	}
	return sub
}
