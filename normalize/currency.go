package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a monetary amount compared exactly as a decimal. Currency
// symbols, thousands separators, and European decimal commas are stripped
// during parsing, so "$1,234.50", "1234.50", and "1.234,50 €" are equal.
type Currency struct {
	alts []decimal.Decimal
}

// NewCurrency builds a Currency from a raw scalar or alternatives list.
func NewCurrency(raw any) (*Currency, error) {
	items, err := alternatives(raw)
	if err != nil {
		return nil, err
	}
	c := &Currency{alts: make([]decimal.Decimal, 0, len(items))}
	for _, item := range items {
		d, err := parseCurrency(item)
		if err != nil {
			return nil, err
		}
		c.alts = append(c.alts, d)
	}
	return c, nil
}

func parseCurrency(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		s := normalizeCurrencyString(v)
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("not a currency amount: %q", v)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("not a currency amount: %v (%T)", raw, raw)
	}
}

// normalizeCurrencyString strips symbols and resolves the separator style.
// When both '.' and ',' appear, the rightmost is the decimal separator. With a
// single separator, it is decimal unless exactly three digits follow it, the
// signature of a thousands group.
func normalizeCurrencyString(s string) string {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', '¥', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "USD"), "USD"))

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			// European style: 1.234,50
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if digitsAfter(s, comma) == 3 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	}
	if neg {
		s = "-" + s
	}
	return s
}

func digitsAfter(s string, idx int) int {
	return len(s) - idx - 1
}

func (c *Currency) Kind() Kind   { return KindCurrency }
func (c *Currency) Primary() any { return c.alts[0].String() }

func (c *Currency) Alternatives() []any {
	out := make([]any, len(c.alts))
	for i, d := range c.alts {
		out[i] = d.String()
	}
	return out
}

func (c *Currency) Match(other Value) bool {
	o, ok := other.(*Currency)
	if !ok {
		return false
	}
	return crossMatch(c.alts, o.alts, func(a, b decimal.Decimal) bool { return a.Equal(b) })
}
