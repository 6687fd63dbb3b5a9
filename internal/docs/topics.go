package docs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
)

// TopicsDir is the documented-topics directory below the package root.
const TopicsDir = "man"

// Topic is one documented unit parsed from a topic file.
type Topic struct {
	Name     string   // primary name from \name{}
	Aliases  []string // lookup names from \alias{}, always includes Name
	Title    string   // from \title{}
	Internal bool     // \keyword{internal}
	Path     string   // source file path
}

// discoverTopics parses every .Rd file under man/, sorted by file name so
// discovery order is deterministic. A missing man/ directory is not an
// error; it yields no topics.
func discoverTopics(sourcePath string) ([]Topic, error) {
	dir := filepath.Join(sourcePath, TopicsDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityError, "cannot read topics directory").WithPath(dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".Rd") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	topics := make([]Topic, 0, len(names))
	seen := map[string]string{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityError, "cannot read topic file").WithPath(path)
		}
		t, err := parseTopic(data)
		if err != nil {
			if se, ok := err.(*siterrors.SiteError); ok {
				return nil, se.WithPath(path)
			}
			return nil, err
		}
		if prev, dup := seen[t.Name]; dup {
			return nil, siterrors.ConfigError("duplicate topic name " + t.Name + " (also defined in " + prev + ")").WithPath(path)
		}
		seen[t.Name] = name
		t.Path = path
		topics = append(topics, t)
	}
	return topics, nil
}

// parseTopic extracts the fields this site build needs from Rd markup:
// \name, \alias (repeatable), \title and \keyword{internal}.
func parseTopic(data []byte) (Topic, error) {
	src := string(data)
	t := Topic{}

	names := macroValues(src, "name")
	if len(names) == 0 || names[0] == "" {
		return t, siterrors.ConfigError("topic file has no \\name entry")
	}
	t.Name = names[0]
	t.Title = strings.Join(strings.Fields(firstOr(macroValues(src, "title"), "")), " ")

	// Alias set always contains the primary name; duplicates collapse
	// case-sensitively preserving first occurrence order.
	seen := map[string]struct{}{}
	add := func(a string) {
		if a == "" {
			return
		}
		if _, dup := seen[a]; dup {
			return
		}
		seen[a] = struct{}{}
		t.Aliases = append(t.Aliases, a)
	}
	add(t.Name)
	for _, a := range macroValues(src, "alias") {
		add(a)
	}

	for _, k := range macroValues(src, "keyword") {
		if k == "internal" {
			t.Internal = true
		}
	}
	return t, nil
}

// macroValues returns the brace-balanced argument of every \macro{...}
// occurrence, trimmed.
func macroValues(src, macro string) []string {
	marker := "\\" + macro + "{"
	var out []string
	for i := 0; ; {
		j := strings.Index(src[i:], marker)
		if j < 0 {
			break
		}
		start := i + j + len(marker)
		depth := 1
		end := start
		for end < len(src) && depth > 0 {
			switch src[end] {
			case '{':
				depth++
			case '}':
				depth--
			}
			end++
		}
		if depth != 0 {
			break
		}
		out = append(out, strings.TrimSpace(src[start:end-1]))
		i = end
	}
	return out
}

func firstOr(vals []string, fallback string) string {
	if len(vals) > 0 {
		return vals[0]
	}
	return fallback
}
