package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAlternativesRule verifies the list-means-alternatives contract: scalars
// wrap to a single alternative, lists need two or more items.
func TestAlternativesRule(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		wantLen int
		wantErr bool
	}{
		{name: "scalar", raw: "x", wantLen: 1},
		{name: "two items", raw: []any{"a", "b"}, wantLen: 2},
		{name: "empty list", raw: []any{}, wantErr: true},
		{name: "single item list", raw: []any{"a"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := alternatives(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrAlternatives)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.wantLen)
		})
	}
}

// TestStringMatch covers canonicalization and anchored-pattern semantics.
func TestStringMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{name: "case insensitive", expected: "Space Needle", actual: "space needle", want: true},
		{name: "surrounding quotes stripped", expected: `"hello"`, actual: "hello", want: true},
		{name: "typographic quotes stripped", expected: "“hello”", actual: "hello", want: true},
		{name: "whitespace trimmed", expected: "  hello  ", actual: "hello", want: true},
		{name: "different strings", expected: "hello", actual: "world", want: false},
		{name: "pattern matches literal", expected: "^sea.*$", actual: "Seattle", want: true},
		{name: "pattern rejects literal", expected: "^sea.*$", actual: "Portland", want: false},
		{name: "empty pattern matches empty", expected: "^$", actual: "", want: true},
		{name: "lone caret is literal", expected: "^", actual: "^", want: true},
		{name: "invalid regex degrades to literal", expected: "^[$", actual: "^[$", want: true},
		{name: "alternatives any match", expected: []any{"red", "blue"}, actual: "Blue", want: true},
		{name: "alternatives no match", expected: []any{"red", "blue"}, actual: "green", want: false},
		{name: "number renders without decimal", expected: "200", actual: float64(200), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewString(tt.expected)
			require.NoError(t, err)
			a, err := NewString(tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Match(a))
			assert.Equal(t, tt.want, a.Match(e), "match must be symmetric")
		})
	}
}

// TestNumberMatch covers numeric coercion including English word forms.
func TestNumberMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{name: "int vs float", expected: float64(6), actual: "6.0", want: true},
		{name: "word form", expected: "six", actual: float64(6), want: true},
		{name: "comma separated", expected: "1,234", actual: float64(1234), want: true},
		{name: "exact mismatch", expected: float64(6), actual: float64(7), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewNumber(tt.expected)
			require.NoError(t, err)
			a, err := NewNumber(tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Match(a))
		})
	}
}

func TestNumberParseError(t *testing.T) {
	_, err := NewNumber("not a number")
	require.Error(t, err)
}

// TestBooleanMatch covers the accepted truth-value spellings.
func TestBooleanMatch(t *testing.T) {
	truthy := []any{true, "true", "Yes", "y", "on", "1", float64(1)}
	falsy := []any{false, "false", "No", "n", "off", "0", float64(0)}

	base, err := NewBoolean(true)
	require.NoError(t, err)
	for _, raw := range truthy {
		v, err := NewBoolean(raw)
		require.NoError(t, err, "raw %v", raw)
		assert.True(t, base.Match(v), "raw %v", raw)
	}
	for _, raw := range falsy {
		v, err := NewBoolean(raw)
		require.NoError(t, err, "raw %v", raw)
		assert.False(t, base.Match(v), "raw %v", raw)
	}

	_, err = NewBoolean("maybe")
	require.Error(t, err)
	_, err = NewBoolean(float64(2))
	require.Error(t, err)
}

// TestDateMatch verifies format-independent calendar-day comparison.
func TestDateMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{name: "iso vs textual", expected: "2024-01-15", actual: "January 15, 2024", want: true},
		{name: "abbreviated month", expected: "2024-01-15", actual: "Jan 15 2024", want: true},
		{name: "day first textual", expected: "2024-01-15", actual: "15 January 2024", want: true},
		{name: "us slash", expected: "2024-01-15", actual: "01/15/2024", want: true},
		{name: "day first slash", expected: "2024-01-15", actual: "15/01/2024", want: true},
		{name: "time of day ignored", expected: "2024-01-15", actual: "2024-01-15 09:30:00", want: true},
		{name: "different day", expected: "2024-01-15", actual: "2024-01-16", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewDate(tt.expected)
			require.NoError(t, err)
			a, err := NewDate(tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Match(a))
		})
	}

	_, err := NewDate("tomorrow")
	require.Error(t, err)
}

// TestInfer checks the schema-free kind mapping.
func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Kind
	}{
		{name: "bool", raw: true, want: KindBoolean},
		{name: "float", raw: 3.5, want: KindNumber},
		{name: "string", raw: "x", want: KindString},
		{name: "list of numbers", raw: []any{1.0, 2.0}, want: KindNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Infer(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Kind())
		})
	}
}

// TestKindMismatch verifies that values of different kinds never match.
func TestKindMismatch(t *testing.T) {
	s, err := NewString("1")
	require.NoError(t, err)
	n, err := NewNumber(float64(1))
	require.NoError(t, err)
	assert.False(t, s.Match(n))
	assert.False(t, n.Match(s))
}
