// Package pkgmeta reads the DESCRIPTION descriptor at the root of a source
// package: name, version, title, license and authors.
package pkgmeta

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
)

// FileName is the descriptor file expected at the package root.
const FileName = "DESCRIPTION"

// Package holds the parsed descriptor fields used across the site build.
type Package struct {
	Name        string
	Version     string
	Title       string
	Description string
	License     string
	URL         string
	Authors     []Author
}

// Author is a single entry from the Author/Maintainer fields.
type Author struct {
	Name  string
	Email string
}

var emailRe = regexp.MustCompile(`<([^>]+)>`)

// Load reads and parses the descriptor inside sourcePath.
func Load(sourcePath string) (*Package, error) {
	path := filepath.Join(sourcePath, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, siterrors.WrapConfig(err, "package descriptor not readable").WithPath(path)
	}
	pkg, err := Parse(data)
	if err != nil {
		if se, ok := err.(*siterrors.SiteError); ok {
			return nil, se.WithPath(path)
		}
		return nil, err
	}
	return pkg, nil
}

// Parse parses descriptor content. The format is "Key: value" with
// continuation lines indented by whitespace.
func Parse(data []byte) (*Package, error) {
	fields := map[string]string{}
	current := ""
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if current == "" {
				return nil, siterrors.ConfigError("descriptor continuation line before any field")
			}
			fields[current] += " " + strings.TrimSpace(line)
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, siterrors.ConfigError("malformed descriptor line: " + strings.TrimSpace(line))
		}
		current = strings.TrimSpace(key)
		fields[current] = strings.TrimSpace(value)
	}

	pkg := &Package{
		Name:        fields["Package"],
		Version:     fields["Version"],
		Title:       fields["Title"],
		Description: fields["Description"],
		License:     fields["License"],
		URL:         firstURL(fields["URL"]),
	}
	if pkg.Name == "" {
		return nil, siterrors.ConfigError("descriptor is missing the Package field")
	}
	if pkg.Version == "" {
		return nil, siterrors.ConfigError("descriptor is missing the Version field")
	}
	pkg.Authors = parseAuthors(fields["Author"], fields["Maintainer"])
	return pkg, nil
}

// firstURL keeps the first entry of a comma-separated URL field.
func firstURL(raw string) string {
	u, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(u)
}

// parseAuthors merges the Author and Maintainer fields, deduplicating the
// maintainer when already listed as an author.
func parseAuthors(authorField, maintainerField string) []Author {
	var out []Author
	seen := map[string]struct{}{}
	add := func(raw string) {
		a := parseAuthor(raw)
		if a.Name == "" {
			return
		}
		if _, dup := seen[a.Name]; dup {
			return
		}
		seen[a.Name] = struct{}{}
		out = append(out, a)
	}
	for _, part := range strings.Split(authorField, ",") {
		add(part)
	}
	add(maintainerField)
	return out
}

func parseAuthor(raw string) Author {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Author{}
	}
	a := Author{Name: raw}
	if m := emailRe.FindStringSubmatch(raw); m != nil {
		a.Email = m[1]
		a.Name = strings.TrimSpace(emailRe.ReplaceAllString(raw, ""))
	}
	// Strip role annotations like [aut, cre].
	if i := strings.Index(a.Name, "["); i > 0 {
		a.Name = strings.TrimSpace(a.Name[:i])
	}
	return a
}
