// Package cleanup removes generated files from a site output directory.
//
// Only files listed in the site manifest are removed. Anything else in the
// output directory is presumed user-owned (CNAME files, extra assets,
// hand-written pages) and left alone. This is what makes rebuilding into a
// non-empty directory safe.
package cleanup

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
	"github.com/DataStrategist/pkgdown/internal/logfields"
	"github.com/DataStrategist/pkgdown/internal/manifest"
)

// Clean deletes the files recorded in outDir's manifest, then the manifest
// itself, and returns the paths (relative to outDir) that were removed.
// A missing manifest means there is nothing to clean; that is logged and
// returns no error.
func Clean(outDir string) ([]string, error) {
	m, err := manifest.Load(outDir)
	if err != nil {
		if siterrors.IsCategory(err, siterrors.CategoryManifest) {
			slog.Warn("no site manifest found, nothing to clean", logfields.Path(outDir))
			return nil, nil
		}
		return nil, err
	}

	var removed []string
	for _, rel := range m.Files {
		if !withinOutput(rel) {
			slog.Warn("manifest entry escapes output directory, skipping", logfields.File(rel))
			continue
		}
		abs := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := os.Remove(abs); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityError, "removing generated file").WithPath(abs)
		}
		removed = append(removed, rel)
		slog.Debug("removed generated file", logfields.File(rel))
	}

	if err := os.Remove(filepath.Join(outDir, manifest.FileName)); err != nil && !os.IsNotExist(err) {
		return removed, siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityError, "removing site manifest").WithPath(outDir)
	}
	removed = append(removed, manifest.FileName)

	pruneEmptyDirs(outDir)

	sort.Strings(removed)
	slog.Info("cleanup complete", logfields.Path(outDir), logfields.Count(len(removed)))
	return removed, nil
}

// withinOutput reports whether a slash-separated manifest entry stays inside
// the output directory. Entries are written by us, but the manifest is a
// plain file anyone can edit.
func withinOutput(rel string) bool {
	if rel == "" || strings.HasPrefix(rel, "/") || filepath.IsAbs(filepath.FromSlash(rel)) {
		return false
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	return clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

// pruneEmptyDirs removes directories under root left empty by file removal.
// Best effort: a directory holding user files simply fails to remove.
func pruneEmptyDirs(root string) {
	var dirs []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	// Deepest first so nested empties collapse upward.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, d := range dirs {
		_ = os.Remove(d)
	}
}
