package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// quoteCutset contains the quote characters stripped from string boundaries,
// including the typographic variants agents tend to emit.
const quoteCutset = "\"'`“”‘’"

// String is a case- and quote-insensitive string value. An alternative whose
// normalized form looks like an anchored regular expression (^...$) matches
// the other side's literal form with full-string semantics.
type String struct {
	alts     []string
	patterns []*regexp.Regexp // parallel to alts; nil where the alternative is a literal
}

// NewString builds a String from a raw scalar or alternatives list.
// Non-string scalars are rendered with their default formatting first, so a
// numeric status code still compares against a string expectation.
func NewString(raw any) (*String, error) {
	items, err := alternatives(raw)
	if err != nil {
		return nil, err
	}
	s := &String{
		alts:     make([]string, 0, len(items)),
		patterns: make([]*regexp.Regexp, 0, len(items)),
	}
	for _, item := range items {
		norm := CanonicalString(stringify(item))
		s.alts = append(s.alts, norm)
		s.patterns = append(s.patterns, compilePattern(norm))
	}
	return s, nil
}

// CanonicalString strips surrounding whitespace and quote characters, then
// lowercases. Stripping happens before lowercasing so pattern detection runs
// on the fully normalized form.
func CanonicalString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, quoteCutset)
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// IsPattern reports whether s should be treated as an anchored regular
// expression: it starts with '^' and ends with '$' and is longer than two
// characters, or is exactly "^$" (matches only the empty string). A lone
// anchor or the empty string is not a pattern.
func IsPattern(s string) bool {
	if s == "^$" {
		return true
	}
	return len(s) > 2 && strings.HasPrefix(s, "^") && strings.HasSuffix(s, "$")
}

// compilePattern returns the compiled regex for a pattern-shaped string, or
// nil when s is not a pattern or fails to compile. A failed compile demotes
// the alternative to a literal.
func compilePattern(s string) *regexp.Regexp {
	if !IsPattern(s) {
		return nil
	}
	re, err := regexp.Compile(s)
	if err != nil {
		return nil
	}
	return re
}

func (s *String) Kind() Kind          { return KindString }
func (s *String) Primary() any        { return s.alts[0] }
func (s *String) Alternatives() []any { return anySlice(s.alts) }

// Match compares every pair of alternatives. A pattern on either side is
// matched against the other side's literal form; two patterns compare as
// literal pattern text.
func (s *String) Match(other Value) bool {
	o, ok := other.(*String)
	if !ok {
		return false
	}
	for i, a := range s.alts {
		for j, b := range o.alts {
			if matchStringPair(a, s.patterns[i], b, o.patterns[j]) {
				return true
			}
		}
	}
	return false
}

func matchStringPair(a string, aRe *regexp.Regexp, b string, bRe *regexp.Regexp) bool {
	switch {
	case aRe != nil && bRe != nil:
		return a == b
	case aRe != nil:
		return aRe.MatchString(b)
	case bRe != nil:
		return bRe.MatchString(a)
	default:
		return a == b
	}
}

// stringify renders a raw JSON scalar the way an agent would have written it.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
