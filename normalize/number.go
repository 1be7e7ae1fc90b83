package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// wordNumbers maps English word forms (zero through twenty) to their numeric
// values. Agents answering "how many" questions frequently spell small counts.
var wordNumbers = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20,
}

// Number is a numeric value compared exactly after coercion to float64.
// Accepted raw forms: int, float, numeric string ("6", "6.0"), and English
// word form for zero through twenty.
type Number struct {
	alts []float64
}

// NewNumber builds a Number from a raw scalar or alternatives list.
func NewNumber(raw any) (*Number, error) {
	items, err := alternatives(raw)
	if err != nil {
		return nil, err
	}
	n := &Number{alts: make([]float64, 0, len(items))}
	for _, item := range items {
		f, err := parseNumber(item)
		if err != nil {
			return nil, err
		}
		n.alts = append(n.alts, f)
	}
	return n, nil
}

func parseNumber(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		s := CanonicalString(v)
		s = strings.ReplaceAll(s, ",", "")
		if f, ok := wordNumbers[s]; ok {
			return f, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("not a number: %v (%T)", raw, raw)
	}
}

func (n *Number) Kind() Kind          { return KindNumber }
func (n *Number) Primary() any        { return n.alts[0] }
func (n *Number) Alternatives() []any { return anySlice(n.alts) }

func (n *Number) Match(other Value) bool {
	o, ok := other.(*Number)
	if !ok {
		return false
	}
	return crossMatch(n.alts, o.alts, func(a, b float64) bool { return a == b })
}
