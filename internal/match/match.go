// Package match implements the selection language used by index
// configuration: exact names plus starts_with, ends_with, contains and
// matches helpers, evaluated against a candidate's name and aliases.
package match

import (
	"fmt"
	"regexp"
	"strings"

	siterrors "github.com/DataStrategist/pkgdown/internal/errors"
)

// Kind enumerates the closed set of expression variants.
type Kind string

const (
	KindExact      Kind = "exact"
	KindStartsWith Kind = "starts_with"
	KindEndsWith   Kind = "ends_with"
	KindContains   Kind = "contains"
	KindMatches    Kind = "matches"
)

// Expression is one selection rule. Expressions are pure values; evaluation
// never mutates them.
type Expression struct {
	Kind  Kind
	Value string
	re    *regexp.Regexp
}

// Candidate is a named item an expression can select. Aliases participate in
// every comparison exactly like the primary name.
type Candidate struct {
	Name     string
	Aliases  []string
	Internal bool
}

// Exact selects the candidate whose name or alias equals name.
func Exact(name string) Expression { return Expression{Kind: KindExact, Value: name} }

// StartsWith selects candidates with a name or alias starting with prefix.
func StartsWith(prefix string) Expression { return Expression{Kind: KindStartsWith, Value: prefix} }

// EndsWith selects candidates with a name or alias ending with suffix.
func EndsWith(suffix string) Expression { return Expression{Kind: KindEndsWith, Value: suffix} }

// Contains selects candidates with a name or alias containing substr.
func Contains(substr string) Expression { return Expression{Kind: KindContains, Value: substr} }

// Matches selects candidates whose name or alias matches the regular expression.
func Matches(pattern string) (Expression, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Expression{}, siterrors.WrapConfig(err, "invalid matches() pattern "+pattern)
	}
	return Expression{Kind: KindMatches, Value: pattern, re: re}, nil
}

var helperRe = regexp.MustCompile(`^(starts_with|ends_with|contains|matches)\(\s*"([^"]*)"\s*\)$`)

// Parse converts one configuration entry into an Expression. Helper calls use
// the form helper("argument"); anything else is an exact name.
func Parse(raw string) (Expression, error) {
	raw = strings.TrimSpace(raw)
	m := helperRe.FindStringSubmatch(raw)
	if m == nil {
		if strings.Contains(raw, "(") {
			return Expression{}, siterrors.ConfigError("unrecognized selector helper: " + raw)
		}
		return Exact(raw), nil
	}
	switch Kind(m[1]) {
	case KindStartsWith:
		return StartsWith(m[2]), nil
	case KindEndsWith:
		return EndsWith(m[2]), nil
	case KindContains:
		return Contains(m[2]), nil
	case KindMatches:
		return Matches(m[2])
	}
	return Expression{}, siterrors.ConfigError("unrecognized selector helper: " + raw)
}

// ParseAll parses a contents list in order.
func ParseAll(raw []string) ([]Expression, error) {
	out := make([]Expression, 0, len(raw))
	for _, r := range raw {
		e, err := Parse(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// String renders the expression in configuration syntax, used in warnings.
func (e Expression) String() string {
	if e.Kind == KindExact {
		return e.Value
	}
	return fmt.Sprintf("%s(%q)", e.Kind, e.Value)
}

// Match reports whether the candidate's name or any alias satisfies the
// expression. Comparisons are case-sensitive.
func (e Expression) Match(c Candidate) bool {
	if e.matchString(c.Name) {
		return true
	}
	for _, a := range c.Aliases {
		if e.matchString(a) {
			return true
		}
	}
	return false
}

func (e Expression) matchString(s string) bool {
	switch e.Kind {
	case KindExact:
		return s == e.Value
	case KindStartsWith:
		return strings.HasPrefix(s, e.Value)
	case KindEndsWith:
		return strings.HasSuffix(s, e.Value)
	case KindContains:
		return strings.Contains(s, e.Value)
	case KindMatches:
		return e.re != nil && e.re.MatchString(s)
	}
	return false
}

// Options adjusts selection behavior.
type Options struct {
	// IncludeInternal admits candidates flagged internal-only.
	IncludeInternal bool
}

// Result is the outcome of resolving an expression list against candidates.
type Result struct {
	// Indices into the candidate slice, ordered by first match: expressions
	// are evaluated in input order and each scans candidates in input order.
	// A candidate matched by several expressions appears once.
	Indices []int
	// Unmatched holds expressions that selected no candidate. Never fatal;
	// callers surface these as warnings.
	Unmatched []Expression
}

// Select resolves expressions against candidates per the ordering rules
// documented on Result.
func Select(exprs []Expression, candidates []Candidate, opts Options) Result {
	res := Result{}
	seen := make(map[int]struct{}, len(candidates))
	for _, e := range exprs {
		matched := false
		for i, c := range candidates {
			if c.Internal && !opts.IncludeInternal {
				continue
			}
			if !e.Match(c) {
				continue
			}
			matched = true
			if _, dup := seen[i]; dup {
				continue
			}
			seen[i] = struct{}{}
			res.Indices = append(res.Indices, i)
		}
		if !matched {
			res.Unmatched = append(res.Unmatched, e)
		}
	}
	return res
}
