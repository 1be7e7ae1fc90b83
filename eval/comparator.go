package eval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/webarena-verified/sdk/normalize"
)

// Comparator recursively compares an expected value tree against raw actual
// data. It is pure: every call produces the same assertions for the same
// inputs, and no state is kept between calls.
type Comparator struct {
	// Strict makes map comparison reject actual keys that have no
	// counterpart in the expected map.
	Strict bool
}

// Compare walks expected and actual together and returns one assertion per
// leaf comparison plus one per structural check. The comparison passed only
// if every assertion is OK.
func (c *Comparator) Compare(expected *normalize.Node, actual any) []Assertion {
	var out []Assertion
	c.compare(&out, "root", expected, actual)
	return out
}

// Passed reports whether every assertion succeeded.
func Passed(assertions []Assertion) bool {
	for _, a := range assertions {
		if !a.OK {
			return false
		}
	}
	return true
}

func (c *Comparator) compare(out *[]Assertion, path string, expected *normalize.Node, actual any) {
	switch {
	case expected.IsLeaf():
		c.compareLeaf(out, path, expected, actual)
	case expected.Map != nil:
		c.compareMap(out, path, expected, actual)
	default:
		c.compareList(out, path, expected, actual)
	}
}

func (c *Comparator) compareLeaf(out *[]Assertion, path string, expected *normalize.Node, actual any) {
	actualValue, err := normalize.Parse(expected.Leaf.Kind(), actual)
	if err != nil {
		*out = append(*out, Assertion{
			Path:     path,
			Expected: expected.Leaf.Primary(),
			Actual:   actual,
			Message:  fmt.Sprintf("cannot read as %s: %v", expected.Leaf.Kind(), err),
		})
		return
	}
	*out = append(*out, Assertion{
		Path:     path,
		OK:       expected.Leaf.Match(actualValue),
		Expected: expected.Leaf.Primary(),
		Actual:   actualValue.Primary(),
	})
}

func (c *Comparator) compareList(out *[]Assertion, path string, expected *normalize.Node, actual any) {
	items, ok := actual.([]any)
	if !ok {
		// A bare scalar stands in for a single-element list.
		if len(expected.List) == 1 {
			c.compare(out, path+"[0]", expected.List[0], actual)
			return
		}
		*out = append(*out, Assertion{
			Path:    path,
			Message: fmt.Sprintf("expected a list of %d items, got %T", len(expected.List), actual),
		})
		return
	}
	if len(items) != len(expected.List) {
		*out = append(*out, Assertion{
			Path:     path,
			Expected: len(expected.List),
			Actual:   len(items),
			Message:  "list length mismatch",
		})
		return
	}
	if expected.Unordered {
		c.compareUnordered(out, path, expected.List, items)
		return
	}
	for i, child := range expected.List {
		c.compare(out, fmt.Sprintf("%s[%d]", path, i), child, items[i])
	}
}

// compareUnordered assigns expected elements to actual elements greedily:
// each expected element takes the first unused actual element it matches.
func (c *Comparator) compareUnordered(out *[]Assertion, path string, expected []*normalize.Node, items []any) {
	used := make([]bool, len(items))
	for i, child := range expected {
		childPath := fmt.Sprintf("%s[%d]", path, i)
		matched := false
		for j, item := range items {
			if used[j] {
				continue
			}
			var trial []Assertion
			c.compare(&trial, childPath, child, item)
			if Passed(trial) {
				used[j] = true
				matched = true
				*out = append(*out, trial...)
				break
			}
		}
		if !matched {
			*out = append(*out, Assertion{
				Path:     childPath,
				Expected: describeNode(child),
				Message:  "no unmatched element satisfies this value",
			})
		}
	}
}

func (c *Comparator) compareMap(out *[]Assertion, path string, expected *normalize.Node, actual any) {
	m, ok := actual.(map[string]any)
	if !ok {
		*out = append(*out, Assertion{
			Path:    path,
			Message: fmt.Sprintf("expected an object, got %T", actual),
		})
		return
	}

	// Actual keys resolve case-insensitively.
	lowered := make(map[string]any, len(m))
	for k, v := range m {
		lowered[strings.ToLower(k)] = v
	}

	keys := make([]string, 0, len(expected.Map))
	for k := range expected.Map {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		childPath := path + "." + k
		value, present := lowered[strings.ToLower(k)]
		if !present {
			*out = append(*out, Assertion{
				Path:    childPath,
				Message: "key missing",
			})
			continue
		}
		c.compare(out, childPath, expected.Map[k], value)
	}

	if c.Strict && len(m) > len(expected.Map) {
		expectedKeys := make(map[string]struct{}, len(expected.Map))
		for k := range expected.Map {
			expectedKeys[strings.ToLower(k)] = struct{}{}
		}
		extras := make([]string, 0, len(m))
		for k := range m {
			if _, ok := expectedKeys[strings.ToLower(k)]; !ok {
				extras = append(extras, k)
			}
		}
		sort.Strings(extras)
		for _, k := range extras {
			*out = append(*out, Assertion{
				Path:    path + "." + k,
				Actual:  m[k],
				Message: "unexpected key",
			})
		}
	}
}

// describeNode renders an expected node for diagnostics.
func describeNode(n *normalize.Node) any {
	switch {
	case n.IsLeaf():
		return n.Leaf.Primary()
	case n.Map != nil:
		return fmt.Sprintf("object with %d keys", len(n.Map))
	default:
		return fmt.Sprintf("list of %d items", len(n.List))
	}
}
