package normalize

import (
	"errors"
	"fmt"
)

// Kind identifies the comparison semantics of a normalized value.
type Kind string

const (
	KindString      Kind = "string"
	KindNumber      Kind = "number"
	KindBoolean     Kind = "boolean"
	KindDate        Kind = "date"
	KindCurrency    Kind = "currency"
	KindDistance    Kind = "distance"
	KindDuration    Kind = "duration"
	KindURL         Kind = "url"
	KindCoordinates Kind = "coordinates"
)

// ErrAlternatives indicates a value was constructed from a list that cannot
// represent an alternatives set. Alternatives always require two or more items;
// a single-item or empty list is a configuration mistake, not a degenerate set.
var ErrAlternatives = errors.New("alternatives require 2+ items")

// Value is a canonicalized value of a specific kind. A Value holds one or more
// alternatives, all of which are acceptable canonical forms.
type Value interface {
	// Kind returns the comparison semantics of this value.
	Kind() Kind

	// Primary returns the canonical form of the first supplied alternative.
	// It is the form used when the value is serialized.
	Primary() any

	// Alternatives returns the canonical forms of all alternatives, in the
	// order they were supplied. The result has at least one element and must
	// not be modified.
	Alternatives() []any

	// Match reports whether any alternative of this value matches any
	// alternative of other under this kind's equivalence rules. Match is
	// symmetric; it returns false when the kinds differ.
	Match(other Value) bool
}

// Parse constructs a Value of the given kind from a raw JSON-decoded value.
// A raw []any with two or more elements is interpreted as alternatives, except
// for kinds whose scalar form is itself a list (coordinates). A list of zero
// or one elements fails with ErrAlternatives.
func Parse(kind Kind, raw any) (Value, error) {
	switch kind {
	case KindString:
		return NewString(raw)
	case KindNumber:
		return NewNumber(raw)
	case KindBoolean:
		return NewBoolean(raw)
	case KindDate:
		return NewDate(raw)
	case KindCurrency:
		return NewCurrency(raw)
	case KindDistance:
		return NewDistance(raw)
	case KindDuration:
		return NewDuration(raw)
	case KindURL:
		return NewURL(raw)
	case KindCoordinates:
		return NewCoordinates(raw)
	default:
		return nil, fmt.Errorf("unknown value kind %q", kind)
	}
}

// Infer constructs a Value from a raw JSON-decoded scalar, picking the kind
// from the Go type: bool maps to boolean, numbers to number, everything else
// to string. Used when an expectation carries no schema information.
func Infer(raw any) (Value, error) {
	return Parse(inferKind(raw), raw)
}

func inferKind(raw any) Kind {
	switch v := raw.(type) {
	case bool:
		return KindBoolean
	case float64, int, int64, float32:
		return KindNumber
	case []any:
		if len(v) > 0 {
			return inferKind(v[0])
		}
		return KindString
	default:
		return KindString
	}
}

// alternatives splits a raw value into its scalar alternatives. A scalar
// becomes a single-element set; a list must carry 2+ items.
func alternatives(raw any) ([]any, error) {
	list, ok := raw.([]any)
	if !ok {
		return []any{raw}, nil
	}
	if len(list) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrAlternatives, len(list))
	}
	return list, nil
}

// crossMatch applies eq to every pair of alternatives from a and b, returning
// true on the first match. The result is symmetric for a symmetric eq.
func crossMatch[T any](a, b []T, eq func(x, y T) bool) bool {
	for _, x := range a {
		for _, y := range b {
			if eq(x, y) {
				return true
			}
		}
	}
	return false
}

// anySlice converts a typed alternatives slice for the Alternatives accessor.
func anySlice[T any](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
