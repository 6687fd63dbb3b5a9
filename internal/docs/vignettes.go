package docs

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
)

// VignettesDir is the articles source directory below the package root.
const VignettesDir = "vignettes"

// Vignette is one article source file.
type Vignette struct {
	Name       string // relative name without extension, slash-separated
	Title      string
	InputPath  string // absolute source path
	OutputFile string // path relative to the articles output directory
	Depth      int    // directory levels below the vignettes root
}

var titleCaser = cases.Title(language.English)

// discoverVignettes walks vignettes/ collecting article sources. A missing
// directory yields no vignettes; callers treat that as "skip articles".
func discoverVignettes(sourcePath string) ([]Vignette, error) {
	root := filepath.Join(sourcePath, VignettesDir)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var out []Vignette
	byOutput := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Underscore-prefixed directories hold partials, not articles.
			if strings.HasPrefix(d.Name(), "_") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".rmd" && ext != ".md" {
			return nil
		}
		if strings.HasPrefix(d.Name(), "_") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		name := strings.TrimSuffix(rel, filepath.Ext(rel))

		v := Vignette{
			Name:       name,
			InputPath:  path,
			OutputFile: name + ".html",
			Depth:      strings.Count(name, "/"),
		}
		if prev, dup := byOutput[v.OutputFile]; dup {
			return siterrors.ConfigError("vignettes " + prev + " and " + rel + " map to the same output file").WithPath(path)
		}
		byOutput[v.OutputFile] = rel

		title, err := vignetteTitle(path)
		if err != nil {
			return err
		}
		if title == "" {
			title = titleCaser.String(strings.ReplaceAll(filepath.Base(name), "-", " "))
		}
		v.Title = title
		out = append(out, v)
		return nil
	})
	if err != nil {
		if se, ok := err.(*siterrors.SiteError); ok {
			return nil, se
		}
		return nil, siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityError, "cannot walk vignettes directory").WithPath(root)
	}
	return out, nil
}

// vignetteTitle reads the YAML frontmatter title, falling back to the first
// level-one heading.
func vignetteTitle(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityError, "cannot read vignette").WithPath(path)
	}
	if fm, ok := splitFrontmatter(data); ok {
		var meta struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal(fm, &meta); err == nil && meta.Title != "" {
			return meta.Title, nil
		}
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", nil
}

// splitFrontmatter returns the YAML block between leading --- fences.
func splitFrontmatter(data []byte) ([]byte, bool) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return nil, false
	}
	rest := data[bytes.IndexByte(data, '\n')+1:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, false
	}
	return rest[:end], true
}

// StripFrontmatter returns the body of a vignette with any leading YAML
// frontmatter removed, for handing to the markup converter.
func StripFrontmatter(data []byte) []byte {
	if _, ok := splitFrontmatter(data); !ok {
		return data
	}
	rest := data[bytes.IndexByte(data, '\n')+1:]
	end := bytes.Index(rest, []byte("\n---"))
	body := rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	}
	return body
}
