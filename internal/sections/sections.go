// Package sections resolves configured index groupings against a candidate
// set, producing the section tree the index pages render. Inconsistencies
// (unmatched expressions, candidates listed nowhere) are reported as
// warnings, not failures, unless strict mode is enabled.
package sections

import (
	"github.com/DataStrategist/pkgdown/internal/config"
	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
	"github.com/DataStrategist/pkgdown/internal/match"
	"github.com/DataStrategist/pkgdown/internal/util/sets"
)

// Item is one resolved entry inside a section.
type Item struct {
	Name  string
	Title string
	Href  string
}

// Resolved is a section ready for rendering: user order preserved for both
// sections and their contents.
type Resolved struct {
	Title    string
	Desc     string
	Class    string
	Contents []Item
}

// Options adjusts index resolution.
type Options struct {
	// DefaultTitle names the synthesized section used when no sections are
	// configured at all.
	DefaultTitle string
	// IncludeInternal admits internal-only candidates.
	IncludeInternal bool
	// Strict promotes the missing-from-index check from warning to error.
	Strict bool
}

// Lookup converts a candidate index into a renderable item (title and link
// are owned by the caller, which knows the output layout).
type Lookup func(i int) Item

// BuildIndex resolves the configured sections. The returned warnings are
// advisory; the error is non-nil only for malformed expressions or, in
// strict mode, an incomplete index.
func BuildIndex(specs []config.Section, candidates []match.Candidate, lookup Lookup, opts Options) ([]Resolved, []*siterrors.SiteError, error) {
	if len(specs) == 0 {
		return defaultIndex(candidates, lookup, opts), nil, nil
	}

	var warnings []*siterrors.SiteError
	listed := sets.New[string]()
	resolved := make([]Resolved, 0, len(specs))

	for _, spec := range specs {
		if spec.Title == "" {
			warnings = append(warnings, siterrors.SelectionWarning("section without a title dropped from index"))
			continue
		}
		exprs, err := match.ParseAll(spec.Contents)
		if err != nil {
			return nil, warnings, err
		}
		res := match.Select(exprs, candidates, match.Options{IncludeInternal: opts.IncludeInternal})
		for _, e := range res.Unmatched {
			warnings = append(warnings, siterrors.SelectionWarning("no match for "+e.String()+" in section "+spec.Title))
		}
		if len(res.Indices) == 0 {
			warnings = append(warnings, siterrors.SelectionWarning("section "+spec.Title+" has no contents and was dropped"))
			continue
		}
		sec := Resolved{Title: spec.Title, Desc: spec.Desc, Class: spec.Class}
		for _, i := range res.Indices {
			listed.Add(candidates[i].Name)
			sec.Contents = append(sec.Contents, lookup(i))
		}
		resolved = append(resolved, sec)
	}

	// Completeness check: every selectable candidate should appear somewhere.
	missing := sets.New[string]()
	for _, c := range candidates {
		if c.Internal && !opts.IncludeInternal {
			continue
		}
		if !listed.Has(c.Name) {
			missing.Add(c.Name)
		}
	}
	for _, name := range sets.SortedStrings(missing) {
		warnings = append(warnings, siterrors.SelectionWarning("item missing from index: "+name))
	}
	if opts.Strict && missing.Len() > 0 {
		return resolved, warnings, siterrors.New(siterrors.CategorySelection, siterrors.SeverityFatal,
			"index does not list every item (strict mode)")
	}
	return resolved, warnings, nil
}

// defaultIndex synthesizes a single section holding every selectable
// candidate in discovery order.
func defaultIndex(candidates []match.Candidate, lookup Lookup, opts Options) []Resolved {
	sec := Resolved{Title: opts.DefaultTitle}
	for i, c := range candidates {
		if c.Internal && !opts.IncludeInternal {
			continue
		}
		sec.Contents = append(sec.Contents, lookup(i))
	}
	if len(sec.Contents) == 0 {
		return nil
	}
	return []Resolved{sec}
}
