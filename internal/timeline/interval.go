// Package timeline provides the interval arithmetic behind the reports:
// clipping raw event spans to a reporting window, merging overlapping
// spans, and splitting spans at shift boundaries.
package timeline

import (
	"sort"
	"time"
)

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start; zero or negative spans yield 0.
func (iv Interval) Duration() time.Duration {
	d := iv.End.Sub(iv.Start)
	if d < 0 {
		return 0
	}
	return d
}

// IsValid reports whether the span has positive length.
func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}

// Clip intersects the span with win. ok is false when the intersection
// is empty.
func (iv Interval) Clip(win Interval) (Interval, bool) {
	s, e := iv.Start, iv.End
	if s.Before(win.Start) {
		s = win.Start
	}
	if e.After(win.End) {
		e = win.End
	}
	clipped := Interval{Start: s, End: e}
	return clipped, clipped.IsValid()
}

// Merge unions a set of spans: the result is sorted by start, with
// overlapping or touching spans coalesced and invalid spans dropped.
// Merging an already-merged list returns an equal list.
func Merge(ivs []Interval) []Interval {
	valid := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.IsValid() {
			valid = append(valid, iv)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Start.Before(valid[j].Start) })

	out := make([]Interval, 0, len(valid))
	cur := valid[0]
	for _, iv := range valid[1:] {
		if iv.Start.After(cur.End) {
			out = append(out, cur)
			cur = iv
			continue
		}
		if iv.End.After(cur.End) {
			cur.End = iv.End
		}
	}
	return append(out, cur)
}

// TotalMs sums the lengths of the spans in milliseconds.
func TotalMs(ivs []Interval) int64 {
	var total int64
	for _, iv := range ivs {
		total += iv.Duration().Milliseconds()
	}
	return total
}
