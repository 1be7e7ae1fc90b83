package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Distances canonicalize to meters, durations to seconds. Comparison is
// tolerant: measurements of the same quantity reported by different sites
// rarely agree to the last digit.
//
// Distance tolerance: max(10 m, 2% of the larger value).
// Duration tolerance: max(180 s, 10% of the larger value).

// distanceUnits maps unit spellings to their factor in meters.
var distanceUnits = map[string]float64{
	"m": 1, "meter": 1, "meters": 1, "metre": 1, "metres": 1,
	"km": 1000, "kilometer": 1000, "kilometers": 1000,
	"kilometre": 1000, "kilometres": 1000,
	"mi": 1609.344, "mile": 1609.344, "miles": 1609.344,
	"ft": 0.3048, "foot": 0.3048, "feet": 0.3048,
	"yd": 0.9144, "yard": 0.9144, "yards": 0.9144,
}

// durationUnits maps unit spellings to their factor in seconds.
var durationUnits = map[string]float64{
	"s": 1, "sec": 1, "secs": 1, "second": 1, "seconds": 1,
	"m": 60, "min": 60, "mins": 60, "minute": 60, "minutes": 60,
	"h": 3600, "hr": 3600, "hrs": 3600, "hour": 3600, "hours": 3600,
	"d": 86400, "day": 86400, "days": 86400,
}

var measureTokenRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*([a-z]+)?`)

// Distance is a length in meters with proportional tolerance.
type Distance struct {
	alts []float64
}

// NewDistance builds a Distance from a raw scalar or alternatives list.
// Bare numbers are meters; strings carry units ("5 km", "3.2 miles").
func NewDistance(raw any) (*Distance, error) {
	items, err := alternatives(raw)
	if err != nil {
		return nil, err
	}
	d := &Distance{alts: make([]float64, 0, len(items))}
	for _, item := range items {
		v, err := parseMeasure(item, distanceUnits, 1)
		if err != nil {
			return nil, fmt.Errorf("not a distance: %v", item)
		}
		d.alts = append(d.alts, v)
	}
	return d, nil
}

func (d *Distance) Kind() Kind          { return KindDistance }
func (d *Distance) Primary() any        { return d.alts[0] }
func (d *Distance) Alternatives() []any { return anySlice(d.alts) }

func (d *Distance) Match(other Value) bool {
	o, ok := other.(*Distance)
	if !ok {
		return false
	}
	return crossMatch(d.alts, o.alts, func(a, b float64) bool {
		return withinTolerance(a, b, 10, 0.02)
	})
}

// Duration is a time span in seconds with proportional tolerance.
type Duration struct {
	alts []float64
}

// NewDuration builds a Duration from a raw scalar or alternatives list.
// Bare numbers are minutes, the unit routing directions use; strings carry
// explicit units ("2h 30m", "150 minutes") or clock form ("1:30:00").
func NewDuration(raw any) (*Duration, error) {
	items, err := alternatives(raw)
	if err != nil {
		return nil, err
	}
	d := &Duration{alts: make([]float64, 0, len(items))}
	for _, item := range items {
		v, err := parseDuration(item)
		if err != nil {
			return nil, err
		}
		d.alts = append(d.alts, v)
	}
	return d, nil
}

func parseDuration(raw any) (float64, error) {
	if s, ok := raw.(string); ok {
		if secs, ok := parseClockDuration(CanonicalString(s)); ok {
			return secs, nil
		}
	}
	v, err := parseMeasure(raw, durationUnits, 60)
	if err != nil {
		return 0, fmt.Errorf("not a duration: %v", raw)
	}
	return v, nil
}

// parseClockDuration handles h:mm and h:mm:ss forms.
func parseClockDuration(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	total := 0.0
	for _, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, false
		}
		total = total*60 + n
	}
	if len(parts) == 2 {
		total *= 60 // h:mm has no seconds field
	}
	return total, true
}

func (d *Duration) Kind() Kind          { return KindDuration }
func (d *Duration) Primary() any        { return d.alts[0] }
func (d *Duration) Alternatives() []any { return anySlice(d.alts) }

func (d *Duration) Match(other Value) bool {
	o, ok := other.(*Duration)
	if !ok {
		return false
	}
	return crossMatch(d.alts, o.alts, func(a, b float64) bool {
		return withinTolerance(a, b, 180, 0.10)
	})
}

// parseMeasure converts a raw value to canonical units. Numbers are scaled by
// bareFactor; strings are split into number/unit tokens and summed, so
// compound forms like "2h 30m" work.
func parseMeasure(raw any, units map[string]float64, bareFactor float64) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v * bareFactor, nil
	case int:
		return float64(v) * bareFactor, nil
	case int64:
		return float64(v) * bareFactor, nil
	case string:
		s := strings.ReplaceAll(CanonicalString(v), ",", "")
		if s == "" {
			return 0, fmt.Errorf("empty measure")
		}
		matches := measureTokenRe.FindAllStringSubmatch(s, -1)
		if len(matches) == 0 {
			return 0, fmt.Errorf("unparseable measure %q", v)
		}
		total := 0.0
		for _, m := range matches {
			n, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return 0, err
			}
			if m[2] == "" {
				total += n * bareFactor
				continue
			}
			factor, ok := units[m[2]]
			if !ok {
				return 0, fmt.Errorf("unknown unit %q", m[2])
			}
			total += n * factor
		}
		return total, nil
	default:
		return 0, fmt.Errorf("unparseable measure %v (%T)", raw, raw)
	}
}

// withinTolerance reports whether a and b differ by no more than the larger
// of floor and frac times the larger magnitude.
func withinTolerance(a, b, floor, frac float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	scale := a
	if b > scale {
		scale = b
	}
	tol := floor
	if p := scale * frac; p > tol {
		tol = p
	}
	return diff <= tol
}
