package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DataStrategist/pkgdown/internal/config"
	"github.com/DataStrategist/pkgdown/internal/sections"
)

func testSite() SiteData {
	return SiteData{
		Title:   "quickplot",
		Version: "1.2.0",
		Navbar: config.Navbar{
			Left: []config.NavItem{
				{Text: "Reference", Href: "reference/index.html"},
				{Text: "More", Menu: []config.NavItem{{Text: "Changelog", Href: "news/index.html"}}},
			},
			Right: []config.NavItem{{Text: "Source", Href: "https://github.com/example/quickplot"}},
		},
	}
}

func TestRelPrefix(t *testing.T) {
	require.Equal(t, "", RelPrefix(0))
	require.Equal(t, "../", RelPrefix(1))
	require.Equal(t, "../../", RelPrefix(2))
}

func TestRenderPageDepthPrefixes(t *testing.T) {
	out := t.TempDir()
	r, err := New(testSite(), out, config.Template{})
	require.NoError(t, err)

	err = r.RenderPage("article", "Tuning", ArticleData{Title: "Tuning", BodyHTML: "<p>hi</p>"}, "articles/advanced/tuning.html", 2)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "articles", "advanced", "tuning.html"))
	require.NoError(t, err)
	page := string(data)
	// Site-root assets referenced through two levels of ../.
	require.Contains(t, page, `href="../../pkgdown.css"`)
	require.Contains(t, page, `href="../../reference/index.html"`)
	require.Contains(t, page, "<p>hi</p>")
}

func TestRenderPageNavbar(t *testing.T) {
	out := t.TempDir()
	r, err := New(testSite(), out, config.Template{})
	require.NoError(t, err)

	require.NoError(t, r.RenderPage("home", "quickplot", HomeData{BodyHTML: "<p>home</p>", License: "MIT"}, "index.html", 0))

	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	page := string(data)
	// Depth zero pages link without any prefix.
	require.Contains(t, page, `href="reference/index.html"`)
	// Menus nest and absolute links stay absolute.
	require.Contains(t, page, "dropdown-menu")
	require.Contains(t, page, `href="https://github.com/example/quickplot"`)
	require.Contains(t, page, "quickplot")
}

func TestRenderPageTitle(t *testing.T) {
	out := t.TempDir()
	r, err := New(testSite(), out, config.Template{})
	require.NoError(t, err)

	require.NoError(t, r.RenderPage("article", "My Article", ArticleData{Title: "My Article"}, "a.html", 0))
	data, _ := os.ReadFile(filepath.Join(out, "a.html"))
	require.Contains(t, string(data), "<title>My Article &bull; quickplot</title>")
}

func TestRenderPageUnknownTemplate(t *testing.T) {
	r, err := New(testSite(), t.TempDir(), config.Template{})
	require.NoError(t, err)
	require.Error(t, r.RenderPage("no-such-page", "x", nil, "x.html", 0))
}

func TestRenderReferenceIndex(t *testing.T) {
	out := t.TempDir()
	r, err := New(testSite(), out, config.Template{})
	require.NoError(t, err)

	idx := IndexData{Sections: []sections.Resolved{
		{Title: "Plotting", Desc: "Drawing things.", Contents: []sections.Item{
			{Name: "plot_bar", Title: "Draw a bar plot", Href: "plot_bar.html"},
		}},
	}}
	require.NoError(t, r.RenderPage("reference-index", "Reference", idx, "reference/index.html", 1))

	data, _ := os.ReadFile(filepath.Join(out, "reference", "index.html"))
	page := string(data)
	require.Contains(t, page, "<h2>Plotting</h2>")
	require.Contains(t, page, `<a href="plot_bar.html"><code>plot_bar</code></a>`)
	require.Contains(t, page, "Draw a bar plot")
}

func TestUserTemplateOverride(t *testing.T) {
	tplDir := t.TempDir()
	custom := `{{define "page/article"}}CUSTOM {{.Content.Title}}{{end}}`
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "article.html"), []byte(custom), 0o644))

	out := t.TempDir()
	r, err := New(testSite(), out, config.Template{Path: tplDir})
	require.NoError(t, err)

	require.NoError(t, r.RenderPage("article", "x", ArticleData{Title: "Override me"}, "a.html", 0))
	data, _ := os.ReadFile(filepath.Join(out, "a.html"))
	require.Equal(t, "CUSTOM Override me", strings.TrimSpace(string(data)))
}

func TestMarkdown(t *testing.T) {
	r, err := New(testSite(), t.TempDir(), config.Template{})
	require.NoError(t, err)
	require.Equal(t, "goldmark", r.ConverterName())

	out, err := r.Markdown("test.md", []byte("# Hello\n\nSome *text* and a [link](x.html).\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Hello</h1>")
	require.Contains(t, out, "<em>text</em>")
	require.Contains(t, out, `<a href="x.html">link</a>`)
}

func TestMarkdownGFMTable(t *testing.T) {
	r, err := New(testSite(), t.TempDir(), config.Template{})
	require.NoError(t, err)

	out, err := r.Markdown("t.md", []byte("a | b\n--- | ---\n1 | 2\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<table>")
}

func TestMarkdownFileMissing(t *testing.T) {
	r, err := New(testSite(), t.TempDir(), config.Template{})
	require.NoError(t, err)

	_, err = r.MarkdownFile(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "absent.md")
}

func TestExecConverter(t *testing.T) {
	// cat echoes the source back; output is trivially parseable HTML.
	r, err := New(testSite(), t.TempDir(), config.Template{Converter: []string{"cat"}})
	require.NoError(t, err)
	require.Equal(t, "cat", r.ConverterName())

	out, err := r.Markdown("x.md", []byte("raw body\n"))
	require.NoError(t, err)
	require.Contains(t, out, "raw body")
}

func TestExecConverterFailureCarriesPath(t *testing.T) {
	r, err := New(testSite(), t.TempDir(), config.Template{Converter: []string{"false"}})
	require.NoError(t, err)

	_, err = r.Markdown("vignettes/broken.Rmd", []byte("body\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "vignettes/broken.Rmd")
}

func TestDefaultAssets(t *testing.T) {
	data, err := os.ReadFile("assets/pkgdown.css")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	sub := DefaultAssets()
	f, err := sub.Open("pkgdown.css")
	require.NoError(t, err)
	f.Close()
}
