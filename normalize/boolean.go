package normalize

import "fmt"

// booleanTokens maps the string spellings agents use for booleans to their
// values. Lookup is case-insensitive via CanonicalString.
var booleanTokens = map[string]bool{
	"true": true, "false": false,
	"yes": true, "no": false,
	"y": true, "n": false,
	"on": true, "off": false,
	"1": true, "0": false,
}

// Boolean is a truth value accepting bool, 0/1 numerics, and the common
// string spellings (true/false, yes/no, y/n, on/off, "1"/"0").
type Boolean struct {
	alts []bool
}

// NewBoolean builds a Boolean from a raw scalar or alternatives list.
func NewBoolean(raw any) (*Boolean, error) {
	items, err := alternatives(raw)
	if err != nil {
		return nil, err
	}
	b := &Boolean{alts: make([]bool, 0, len(items))}
	for _, item := range items {
		v, err := parseBoolean(item)
		if err != nil {
			return nil, err
		}
		b.alts = append(b.alts, v)
	}
	return b, nil
}

func parseBoolean(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case float64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case int:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case string:
		if b, ok := booleanTokens[CanonicalString(v)]; ok {
			return b, nil
		}
	}
	return false, fmt.Errorf("not a boolean: %v (%T)", raw, raw)
}

func (b *Boolean) Kind() Kind          { return KindBoolean }
func (b *Boolean) Primary() any        { return b.alts[0] }
func (b *Boolean) Alternatives() []any { return anySlice(b.alts) }

func (b *Boolean) Match(other Value) bool {
	o, ok := other.(*Boolean)
	if !ok {
		return false
	}
	return crossMatch(b.alts, o.alts, func(x, y bool) bool { return x == y })
}
