package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
)

func TestWriteAndLoad(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{
		ID:          "b-1",
		Package:     "quickplot",
		Version:     "1.2.0",
		ToolVersion: "0.3.0",
		Converter:   "goldmark",
		Generated:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Articles:    map[string]string{"intro": "intro.html", "advanced/tuning": "advanced/tuning.html"},
	}
	m.AddFile("index.html")
	m.AddFile("reference/index.html")
	require.NoError(t, m.Write(dir))

	got, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "quickplot", got.Package)
	require.Equal(t, "goldmark", got.Converter)
	require.Equal(t, m.Articles, got.Articles)
	require.Equal(t, []string{"index.html", "reference/index.html"}, got.Files)
	require.True(t, m.Generated.Equal(got.Generated))
}

func TestFilesSortedOnWrite(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{ID: "b-2"}
	m.AddFile("z.html")
	m.AddFile("a.html")
	require.NoError(t, m.Write(dir))

	got, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a.html", "z.html"}, got.Files)
}

func TestAddFileNormalizesSeparators(t *testing.T) {
	m := &Manifest{}
	m.AddFile(filepath.Join("reference", "plot_bar.html"))
	require.Equal(t, []string{"reference/plot_bar.html"}, m.Files)
}

func TestLoadMissingIsManifestWarning(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	require.True(t, siterrors.IsCategory(err, siterrors.CategoryManifest))
	se := err.(*siterrors.SiteError)
	require.Equal(t, siterrors.SeverityWarning, se.Severity)
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("files: [unclosed"), 0o644))
	_, err := Load(dir)
	require.Error(t, err)
}

func TestURLsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{
		ID:   "b-3",
		URLs: &URLs{Reference: "https://x.org/p/reference", Articles: "https://x.org/p/articles"},
	}
	require.NoError(t, m.Write(dir))

	got, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, got.URLs)
	require.Equal(t, "https://x.org/p/reference", got.URLs.Reference)
}
