package news

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const changelog = `# quickplot 1.2.0

Bigger release notes paragraph.

* Added plot_line()
* Fixed axis labels

# quickplot 1.1.0

* Initial CRAN release
`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(changelog))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	require.Equal(t, "quickplot 1.2.0", first.Heading)
	require.Equal(t, "1.2.0", first.Version)
	require.Contains(t, first.HTML, "Bigger release notes paragraph.")
	require.Contains(t, first.HTML, "<li>")
	require.Equal(t, []string{"Added plot_line()", "Fixed axis labels"}, first.Items)

	// Document order preserved: newest first as written.
	require.Equal(t, "1.1.0", entries[1].Version)
	require.Equal(t, []string{"Initial CRAN release"}, entries[1].Items)
}

func TestParseLevelTwoHeadings(t *testing.T) {
	src := "## pkg 0.2.0\n\n* change\n\n## pkg 0.1.0\n\n* start\n"
	entries, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "0.2.0", entries[0].Version)
}

func TestParseUnversionedHeading(t *testing.T) {
	src := "# Development version\n\n* unreleased change\n"
	entries, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Empty(t, entries[0].Version)
	require.Equal(t, "Development version", entries[0].Heading)
}

func TestParseIgnoresPreamble(t *testing.T) {
	src := "Some preamble prose.\n\n# pkg 1.0.0\n\n* first\n"
	entries, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotContains(t, entries[0].HTML, "preamble")
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse(nil)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "NEWS.md")
	require.NoError(t, os.WriteFile(path, []byte(changelog), 0o644))

	entries, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	_, err = ParseFile(filepath.Join(dir, "missing.md"))
	require.Error(t, err)
}
