// Package news parses a NEWS.md changelog: one heading per release, with
// flat and bulleted text below it. Entries keep document order, which for a
// well-formed changelog is version-descending.
package news

import (
	"bytes"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
)

// Entry is one release section of the changelog.
type Entry struct {
	Version string // extracted from the heading, may be empty for unversioned headings
	Heading string
	HTML    string   // rendered body below the heading
	Items   []string // plain text of top-level bullet items
}

var versionRe = regexp.MustCompile(`[0-9]+(?:[.\-][0-9]+)+`)

// ParseFile reads and parses a changelog file.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, siterrors.Wrap(err, siterrors.CategoryPath, siterrors.SeverityError, "cannot read changelog").WithPath(path)
	}
	entries, err := Parse(data)
	if err != nil {
		if se, ok := err.(*siterrors.SiteError); ok {
			return nil, se.WithPath(path)
		}
		return nil, err
	}
	return entries, nil
}

// Parse splits the changelog at level-one and level-two headings and renders
// each release body to HTML.
func Parse(src []byte) ([]Entry, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	type section struct {
		heading    string
		start, end int
	}
	var secs []section
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*gmast.Heading); ok && h.Level <= 2 {
			secs = append(secs, section{heading: nodeText(h, src)})
			continue
		}
		if len(secs) == 0 {
			// Prose before the first release heading is not part of any entry.
			continue
		}
		start, end := nodeSpan(n, src)
		if start < 0 {
			continue
		}
		cur := &secs[len(secs)-1]
		if cur.start == 0 && cur.end == 0 {
			cur.start, cur.end = start, end
		} else if end > cur.end {
			cur.end = end
		}
	}

	entries := make([]Entry, 0, len(secs))
	for _, s := range secs {
		e := Entry{
			Heading: s.heading,
			Version: versionRe.FindString(s.heading),
		}
		if s.end > s.start {
			body := src[s.start:s.end]
			var buf bytes.Buffer
			if err := md.Convert(body, &buf); err != nil {
				return nil, siterrors.RenderError(err, "NEWS.md")
			}
			e.HTML = buf.String()
			e.Items = bulletItems(body)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// nodeSpan returns the byte range of a top-level block including nested
// children (container blocks carry no lines themselves).
func nodeSpan(n gmast.Node, src []byte) (int, int) {
	start, end := -1, -1
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		lines := c.Lines()
		if lines == nil || lines.Len() == 0 {
			return gmast.WalkContinue, nil
		}
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		if start < 0 || first.Start < start {
			start = first.Start
		}
		if last.Stop > end {
			end = last.Stop
		}
		return gmast.WalkContinue, nil
	})
	return start, end
}

// bulletItems extracts the plain text of top-level list items in a body
// chunk.
func bulletItems(body []byte) []string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))
	var items []string
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		list, ok := n.(*gmast.List)
		if !ok {
			continue
		}
		for li := list.FirstChild(); li != nil; li = li.NextSibling() {
			if txt := strings.TrimSpace(nodeText(li, body)); txt != "" {
				items = append(items, txt)
			}
		}
	}
	return items
}

// nodeText collects the raw text content beneath a node.
func nodeText(n gmast.Node, src []byte) string {
	var sb strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if t, ok := c.(*gmast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return gmast.WalkContinue, nil
	})
	return sb.String()
}
