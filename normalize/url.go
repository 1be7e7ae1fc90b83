package normalize

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode"
)

// URL is a canonicalized URL. Scheme and fragment are ignored, the path loses
// its trailing slash, and query parameters compare as an unordered multimap.
// Path segments that are base64-encoded query strings, a pattern some sites
// use to smuggle parameters past caches, are decoded and folded into the
// query set.
type URL struct {
	alts []urlParts
}

type urlParts struct {
	base  string
	query url.Values
}

// NewURL builds a URL from a raw scalar or alternatives list.
func NewURL(raw any) (*URL, error) {
	items, err := alternatives(raw)
	if err != nil {
		return nil, err
	}
	u := &URL{alts: make([]urlParts, 0, len(items))}
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("not a url: %v (%T)", item, item)
		}
		p, err := parseURL(s)
		if err != nil {
			return nil, err
		}
		u.alts = append(u.alts, p)
	}
	return u, nil
}

func parseURL(s string) (urlParts, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), quoteCutset)
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return urlParts{}, fmt.Errorf("not a url: %q", s)
	}

	path, embedded := ExtractBase64Query(parsed.EscapedPath())
	query := NormalizeQuery(parsed.RawQuery)
	for _, qs := range embedded {
		for k, vs := range NormalizeQuery(qs) {
			query[k] = append(query[k], vs...)
			sort.Strings(query[k])
		}
	}

	base := strings.ToLower(parsed.Host) + strings.TrimSuffix(path, "/")
	return urlParts{base: base, query: query}, nil
}

// NormalizeQuery parses a raw query string into a multimap with sorted values
// so order-insensitive comparison reduces to map equality.
func NormalizeQuery(rawQuery string) url.Values {
	vals, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Keep what did parse; a malformed pair should not void the rest.
		vals, _ = url.ParseQuery(strings.ReplaceAll(rawQuery, ";", "&"))
	}
	for _, vs := range vals {
		sort.Strings(vs)
	}
	return vals
}

// ExtractBase64Query splits a path into its plain form and any embedded
// query strings. A segment counts as an embedded query when it base64-decodes
// to printable text containing '='. "/api/dXNlcj1hZG1pbiZwYXNzPTEyMw/data"
// yields "/api/data" and ["user=admin&pass=123"].
func ExtractBase64Query(path string) (string, []string) {
	segments := strings.Split(path, "/")
	kept := segments[:0]
	var embedded []string
	for _, seg := range segments {
		if qs, ok := decodeBase64Query(seg); ok {
			embedded = append(embedded, qs)
			continue
		}
		kept = append(kept, seg)
	}
	cleaned := strings.Join(kept, "/")
	if cleaned == "" && strings.HasPrefix(path, "/") {
		cleaned = "/"
	}
	return cleaned, embedded
}

func decodeBase64Query(seg string) (string, bool) {
	if len(seg) < 4 {
		return "", false
	}
	trimmed := strings.TrimRight(seg, "=")
	decoded, err := base64.RawStdEncoding.DecodeString(trimmed)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(trimmed)
		if err != nil {
			return "", false
		}
	}
	text := strings.TrimLeft(string(decoded), "?&")
	if !strings.Contains(text, "=") {
		return "", false
	}
	for _, r := range text {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return "", false
		}
	}
	return text, true
}

func (u *URL) Kind() Kind   { return KindURL }
func (u *URL) Primary() any { return u.alts[0].String() }

func (u *URL) Alternatives() []any {
	out := make([]any, len(u.alts))
	for i, p := range u.alts {
		out[i] = p.String()
	}
	return out
}

func (u *URL) Match(other Value) bool {
	o, ok := other.(*URL)
	if !ok {
		return false
	}
	return crossMatch(u.alts, o.alts, func(a, b urlParts) bool { return a.equal(b) })
}

func (p urlParts) equal(o urlParts) bool {
	if p.base != o.base || len(p.query) != len(o.query) {
		return false
	}
	for k, vs := range p.query {
		ovs, ok := o.query[k]
		if !ok || len(vs) != len(ovs) {
			return false
		}
		for i := range vs {
			if vs[i] != ovs[i] {
				return false
			}
		}
	}
	return true
}

func (p urlParts) String() string {
	if len(p.query) == 0 {
		return p.base
	}
	return p.base + "?" + p.query.Encode()
}
