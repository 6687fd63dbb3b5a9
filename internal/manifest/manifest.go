// Package manifest reads and writes the site manifest (pkgdown.yml) placed
// in the output directory. The manifest records what one build generated so
// cleanup can later tell managed output apart from user-added files.
package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
)

// FileName is the manifest written at the root of the output directory.
const FileName = "pkgdown.yml"

// Manifest is the persisted record of one completed build.
type Manifest struct {
	ID           string    `yaml:"build_id"`
	Package      string    `yaml:"package"`
	Version      string    `yaml:"version"`
	ToolVersion  string    `yaml:"pkgdown_version"`
	Converter    string    `yaml:"converter"`
	SourceCommit string    `yaml:"source_commit,omitempty"`
	Generated    time.Time `yaml:"generated"`
	URLs         *URLs     `yaml:"urls,omitempty"`
	// Articles maps article name to its output path below articles/.
	Articles map[string]string `yaml:"articles,omitempty"`
	// Files lists every generated file relative to the output root. This is
	// the authority cleanup consults; anything not listed is user-owned.
	Files []string `yaml:"files"`
}

// URLs holds absolute base URLs, present only when the site URL is
// configured.
type URLs struct {
	Reference string `yaml:"reference"`
	Articles  string `yaml:"article"`
}

// AddFile records one generated output file (relative, slash-separated).
func (m *Manifest) AddFile(rel string) {
	m.Files = append(m.Files, filepath.ToSlash(rel))
}

// Write persists the manifest into outDir, listing files in sorted order so
// repeated builds produce identical manifests apart from id/timestamp.
func (m *Manifest) Write(outDir string) error {
	sort.Strings(m.Files)
	path := filepath.Join(outDir, FileName)
	data, err := yaml.Marshal(m)
	if err != nil {
		return siterrors.Wrap(err, siterrors.CategoryManifest, siterrors.SeverityFatal, "marshal manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return siterrors.Wrap(err, siterrors.CategoryManifest, siterrors.SeverityFatal, "write manifest").WithPath(path)
	}
	return nil
}

// Load reads a previously written manifest from outDir. A missing manifest
// returns a manifest-category warning error callers may treat as "nothing
// known to be generated".
func Load(outDir string) (*Manifest, error) {
	path := filepath.Join(outDir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, siterrors.ManifestWarning("no site manifest found").WithPath(path)
	}
	if err != nil {
		return nil, siterrors.Wrap(err, siterrors.CategoryManifest, siterrors.SeverityError, "read manifest").WithPath(path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, siterrors.Wrap(err, siterrors.CategoryManifest, siterrors.SeverityError, "unmarshal manifest").WithPath(path)
	}
	return &m, nil
}
