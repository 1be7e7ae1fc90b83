package normalize

import (
	"fmt"
	"strings"
)

// coordTolerance is the per-axis tolerance in degrees, roughly 100 m at the
// equator. Map sites round geocoding results differently past this precision.
const coordTolerance = 1e-3

// Coordinates is a latitude/longitude pair. The scalar form is a two-number
// list, a "lat, lon" string, or an object keyed latitude/longitude (lat, lon,
// and lng also accepted, any case); a list of such pairs is an alternatives
// set.
type Coordinates struct {
	alts [][2]float64
}

// NewCoordinates builds a Coordinates from a raw pair or alternatives list.
func NewCoordinates(raw any) (*Coordinates, error) {
	pairs, err := coordinateAlternatives(raw)
	if err != nil {
		return nil, err
	}
	c := &Coordinates{alts: make([][2]float64, 0, len(pairs))}
	for _, p := range pairs {
		pair, err := parseCoordinates(p)
		if err != nil {
			return nil, err
		}
		c.alts = append(c.alts, pair)
	}
	return c, nil
}

// coordinateAlternatives distinguishes a bare pair from a list of pairs: a
// list whose elements are themselves lists or strings is an alternatives set.
func coordinateAlternatives(raw any) ([]any, error) {
	list, ok := raw.([]any)
	if !ok {
		return []any{raw}, nil
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w, got 0", ErrAlternatives)
	}
	switch list[0].(type) {
	case []any, string, map[string]any:
		if len(list) < 2 {
			return nil, fmt.Errorf("%w, got %d", ErrAlternatives, len(list))
		}
		return list, nil
	default:
		return []any{raw}, nil
	}
}

func parseCoordinates(raw any) ([2]float64, error) {
	switch v := raw.(type) {
	case []any:
		if len(v) != 2 {
			return [2]float64{}, fmt.Errorf("coordinates need 2 components, got %d", len(v))
		}
		lat, err := parseNumber(v[0])
		if err != nil {
			return [2]float64{}, err
		}
		lon, err := parseNumber(v[1])
		if err != nil {
			return [2]float64{}, err
		}
		return [2]float64{lat, lon}, nil
	case string:
		parts := strings.Split(strings.Trim(strings.TrimSpace(v), quoteCutset), ",")
		if len(parts) != 2 {
			return [2]float64{}, fmt.Errorf("not coordinates: %q", v)
		}
		return parseCoordinates([]any{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])})
	case map[string]any:
		lat, latOK := coordKey(v, "latitude", "lat")
		lon, lonOK := coordKey(v, "longitude", "lon", "lng")
		if !latOK || !lonOK {
			return [2]float64{}, fmt.Errorf("coordinates object needs latitude and longitude keys")
		}
		return parseCoordinates([]any{lat, lon})
	default:
		return [2]float64{}, fmt.Errorf("not coordinates: %v (%T)", raw, raw)
	}
}

func (c *Coordinates) Kind() Kind { return KindCoordinates }

func (c *Coordinates) Primary() any {
	return []float64{c.alts[0][0], c.alts[0][1]}
}

func (c *Coordinates) Alternatives() []any {
	out := make([]any, len(c.alts))
	for i, p := range c.alts {
		out[i] = []float64{p[0], p[1]}
	}
	return out
}

func (c *Coordinates) Match(other Value) bool {
	o, ok := other.(*Coordinates)
	if !ok {
		return false
	}
	return crossMatch(c.alts, o.alts, func(a, b [2]float64) bool {
		return near(a[0], b[0]) && near(a[1], b[1])
	})
}

func coordKey(m map[string]any, names ...string) (any, bool) {
	for k, v := range m {
		lk := strings.ToLower(k)
		for _, name := range names {
			if lk == name {
				return v, true
			}
		}
	}
	return nil, false
}

func near(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= coordTolerance
}
