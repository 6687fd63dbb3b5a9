package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.Equal(t, "docs", cfg.Destination)
	require.True(t, cfg.UseDefaultAssets())
	require.Nil(t, cfg.Navbar)
}

func TestParseAppliesDefaultsForAbsentKeys(t *testing.T) {
	cfg, err := Parse([]byte("title: My Site\n"))
	require.NoError(t, err)
	require.Equal(t, "My Site", cfg.Title)
	require.Equal(t, "docs", cfg.Destination)
	require.True(t, cfg.UseDefaultAssets())
}

func TestParseShallowMergeReplacesTopLevelKey(t *testing.T) {
	doc := `
navbar:
  left:
    - text: Reference
      href: reference/index.html
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, cfg.Navbar)
	// The whole navbar is the user's: no default right-hand entries appear.
	require.Len(t, cfg.Navbar.Left, 1)
	require.Empty(t, cfg.Navbar.Right)
}

func TestParseTemplateDefaultAssetsPreserved(t *testing.T) {
	doc := `
template:
  path: pkgdown/templates
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, "pkgdown/templates", cfg.Template.Path)
	// default_assets untouched by the user keeps its default.
	require.True(t, cfg.UseDefaultAssets())

	no := `
template:
  default_assets: false
`
	cfg, err = Parse([]byte(no))
	require.NoError(t, err)
	require.False(t, cfg.UseDefaultAssets())
}

func TestParseSections(t *testing.T) {
	doc := `
reference:
  - title: Plotting
    desc: Functions that draw things.
    contents:
      - starts_with("plot_")
  - title: Summaries
    contents:
      - summary
articles:
  - title: Get started
    contents:
      - intro
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cfg.Reference, 2)
	require.Equal(t, "Plotting", cfg.Reference[0].Title)
	require.Equal(t, []string{`starts_with("plot_")`}, cfg.Reference[0].Contents)
	require.Len(t, cfg.Articles, 1)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("destination: [unclosed\n"))
	require.Error(t, err)
}

func TestParseExpandsEnvironment(t *testing.T) {
	t.Setenv("PKGDOWN_TEST_URL", "https://docs.example.org")
	cfg, err := Parse([]byte("url: ${PKGDOWN_TEST_URL}\n"))
	require.NoError(t, err)
	require.Equal(t, "https://docs.example.org", cfg.URL)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "docs", cfg.Destination)
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("destination: public\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "public", cfg.Destination)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, Init(path, false))

	// Refuses to overwrite without force.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, cfg.Reference, 1)
}
