package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCurrencyMatch covers symbol stripping and separator styles.
func TestCurrencyMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{name: "symbol and commas", expected: "$1,234.50", actual: float64(1234.5), want: true},
		{name: "european format", expected: "1.234,50 €", actual: "1234.50", want: true},
		{name: "plain vs symbol", expected: "19.99", actual: "$19.99", want: true},
		{name: "pound", expected: "£10", actual: float64(10), want: true},
		{name: "thousands only comma", expected: "1,000", actual: float64(1000), want: true},
		{name: "decimal comma", expected: "19,99", actual: "19.99", want: true},
		{name: "negative", expected: "-$5.00", actual: float64(-5), want: true},
		{name: "off by a cent", expected: "19.99", actual: "19.98", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewCurrency(tt.expected)
			require.NoError(t, err)
			a, err := NewCurrency(tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Match(a))
		})
	}

	_, err := NewCurrency("free")
	require.Error(t, err)
}

// TestDistanceMatch covers unit conversion and the max(10 m, 2%) tolerance.
func TestDistanceMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{name: "km vs meters", expected: "5 km", actual: float64(5000), want: true},
		{name: "miles vs km", expected: "1 mile", actual: "1.609 km", want: true},
		{name: "within floor tolerance", expected: float64(100), actual: float64(109), want: true},
		{name: "beyond floor tolerance", expected: float64(100), actual: float64(111), want: false},
		{name: "within proportional tolerance", expected: "10 km", actual: "10.1 km", want: true},
		{name: "beyond proportional tolerance", expected: "10 km", actual: "10.5 km", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewDistance(tt.expected)
			require.NoError(t, err)
			a, err := NewDistance(tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Match(a))
		})
	}
}

// TestDurationMatch covers unit forms and the max(3 min, 10%) tolerance.
func TestDurationMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{name: "bare number is minutes", expected: float64(150), actual: "150 minutes", want: true},
		{name: "compound units", expected: "2h 30m", actual: "150 min", want: true},
		{name: "clock form", expected: "1:30:00", actual: "90 minutes", want: true},
		{name: "clock without seconds", expected: "1:30", actual: "90 minutes", want: true},
		{name: "within floor tolerance", expected: "10 minutes", actual: "12 minutes", want: true},
		{name: "beyond tolerance", expected: "10 minutes", actual: "15 minutes", want: false},
		{name: "proportional tolerance", expected: "10 hours", actual: "10.9 hours", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewDuration(tt.expected)
			require.NoError(t, err)
			a, err := NewDuration(tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Match(a))
		})
	}

	_, err := NewDuration("a while")
	require.Error(t, err)
}

// TestCoordinatesMatch covers pair forms and the per-axis tolerance.
func TestCoordinatesMatch(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{name: "pair vs string", expected: []any{47.6205, -122.3493}, actual: "47.6205, -122.3493", want: true},
		{name: "object form", expected: []any{47.6205, -122.3493}, actual: map[string]any{"Lat": 47.6205, "Lng": -122.3493}, want: true},
		{name: "within tolerance", expected: []any{47.6205, -122.3493}, actual: []any{47.6209, -122.3490}, want: true},
		{name: "beyond tolerance", expected: []any{47.6205, -122.3493}, actual: []any{47.64, -122.3493}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewCoordinates(tt.expected)
			require.NoError(t, err)
			a, err := NewCoordinates(tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Match(a))
		})
	}

	_, err := NewCoordinates([]any{47.6})
	require.Error(t, err)
}
