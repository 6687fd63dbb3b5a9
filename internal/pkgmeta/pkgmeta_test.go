package pkgmeta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
)

const sample = `Package: quickplot
Version: 1.2.0
Title: Quick Plotting Helpers
Description: A small set of helpers for
    producing standard plots with one call.
License: MIT
URL: https://quickplot.example.org, https://github.com/example/quickplot
Author: Ada Lovelace <ada@example.org>, Grace Hopper [ctb]
Maintainer: Ada Lovelace <ada@example.org>
`

func TestParse(t *testing.T) {
	pkg, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Equal(t, "quickplot", pkg.Name)
	require.Equal(t, "1.2.0", pkg.Version)
	require.Equal(t, "Quick Plotting Helpers", pkg.Title)
	require.Equal(t, "MIT", pkg.License)
	require.Equal(t, "https://quickplot.example.org", pkg.URL)
	// Continuation line folded into one field.
	require.Contains(t, pkg.Description, "standard plots with one call")
}

func TestParseAuthors(t *testing.T) {
	pkg, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Len(t, pkg.Authors, 2)
	require.Equal(t, "Ada Lovelace", pkg.Authors[0].Name)
	require.Equal(t, "ada@example.org", pkg.Authors[0].Email)
	// Role annotation stripped, maintainer deduplicated.
	require.Equal(t, "Grace Hopper", pkg.Authors[1].Name)
}

func TestParseMissingRequiredFields(t *testing.T) {
	_, err := Parse([]byte("Title: No Package Field\n"))
	require.Error(t, err)
	require.True(t, siterrors.IsCategory(err, siterrors.CategoryConfig))

	_, err = Parse([]byte("Package: x\n"))
	require.Error(t, err)
}

func TestParseMalformedLine(t *testing.T) {
	_, err := Parse([]byte("Package x no colon\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(sample), 0o644))

	pkg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "quickplot", pkg.Name)
}

func TestLoadMissingDescriptor(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	require.True(t, siterrors.IsCategory(err, siterrors.CategoryConfig))
}
