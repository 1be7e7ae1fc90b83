package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// numericDateLayouts are tried in order against the trimmed input. Slash and
// textual dates are handled separately because day/month order and month-name
// casing vary by source.
var numericDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// monthNames maps lowercase full and abbreviated month names to their number.
var monthNames = map[string]time.Month{}

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		monthNames[name] = m
		monthNames[name[:3]] = m
	}
}

// Date is a calendar date compared irrespective of the input format. Time of
// day, when present, is parsed and discarded: two values on the same calendar
// day are equal.
type Date struct {
	alts []time.Time // normalized to midnight UTC
}

// NewDate builds a Date from a raw scalar or alternatives list.
func NewDate(raw any) (*Date, error) {
	items, err := alternatives(raw)
	if err != nil {
		return nil, err
	}
	d := &Date{alts: make([]time.Time, 0, len(items))}
	for _, item := range items {
		t, err := parseDate(item)
		if err != nil {
			return nil, err
		}
		d.alts = append(d.alts, t)
	}
	return d, nil
}

func parseDate(raw any) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("not a date: %v (%T)", raw, raw)
	}
	trimmed := strings.Trim(strings.TrimSpace(s), quoteCutset)

	for _, layout := range numericDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return truncateToDay(t), nil
		}
	}
	if t, ok := parseSlashDate(trimmed); ok {
		return t, nil
	}
	if t, ok := parseTextualDate(trimmed); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("not a date: %q", s)
}

// parseSlashDate handles numeric slash dates. The US month-first reading is
// preferred; when the first field exceeds 12 the date is read day-first.
func parseSlashDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	year, a, b := nums[2], nums[0], nums[1]
	month, day := a, b
	if a > 12 && b <= 12 {
		month, day = b, a
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// parseTextualDate handles month-name forms in either order: "January 15,
// 2024", "Jan 15 2024", "15 January 2024". Case and trailing commas or
// periods on fields are ignored.
func parseTextualDate(s string) (time.Time, bool) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 3 {
		return time.Time{}, false
	}
	for i, f := range fields {
		fields[i] = strings.Trim(f, ",.")
	}

	var month time.Month
	var nums []int
	for _, f := range fields {
		if m, ok := monthNames[f]; ok && month == 0 {
			month = m
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return time.Time{}, false
		}
		nums = append(nums, n)
	}
	if month == 0 || len(nums) != 2 {
		return time.Time{}, false
	}

	// The year is the larger field; the day must fit in a month.
	day, year := nums[0], nums[1]
	if day > 31 {
		day, year = year, day
	}
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (d *Date) Kind() Kind   { return KindDate }
func (d *Date) Primary() any { return d.alts[0].Format("2006-01-02") }

func (d *Date) Alternatives() []any {
	out := make([]any, len(d.alts))
	for i, t := range d.alts {
		out[i] = t.Format("2006-01-02")
	}
	return out
}

func (d *Date) Match(other Value) bool {
	o, ok := other.(*Date)
	if !ok {
		return false
	}
	return crossMatch(d.alts, o.alts, func(a, b time.Time) bool { return a.Equal(b) })
}
