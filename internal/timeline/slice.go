package timeline

import (
	"time"

	"production_board/internal/shiftcal"
)

// Slice is one piece of a span after splitting at shift boundaries.
// Shift is "" for minutes no rule covers (overtime).
type Slice struct {
	Shift string `json:"shift"`
	Interval
}

// boundarySnap absorbs sub-second residual slices produced by boundary
// arithmetic right before the span end.
const boundarySnap = time.Second

// SliceByShift splits [start, end) at every shift-boundary crossing of the
// exact calendar, walking forward day by day. The returned slices are
// contiguous, non-overlapping, and cover the span exactly; each carries the
// shift of its rule or "" when no rule applies. Adjacent uncovered minutes
// are coalesced into a single slice.
func SliceByShift(start, end time.Time) []Slice {
	if !start.Before(end) {
		return nil
	}
	loc := shiftcal.Location()

	var out []Slice
	cursor := start
	for cursor.Before(end) {
		lt := cursor.In(loc)
		minute := lt.Hour()*60 + lt.Minute()

		var (
			shift    string
			sliceEnd time.Time
		)
		if r, ok := shiftcal.RuleAt(lt.Weekday(), minute); ok {
			shift = r.Shift
			endMin := r.EndMin
			if endMin <= r.StartMin { // rule crosses midnight
				endMin += 24 * 60
			}
			day := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
			sliceEnd = day.Add(time.Duration(endMin) * time.Minute)
		} else {
			// No rule: advance one minute to guarantee forward progress.
			sliceEnd = cursor.Truncate(time.Minute).Add(time.Minute)
		}
		if !sliceEnd.After(cursor) {
			sliceEnd = cursor.Add(time.Minute)
		}
		if sliceEnd.After(end) || end.Sub(sliceEnd) < boundarySnap {
			sliceEnd = end
		}

		// Coalesce runs of uncovered minutes.
		if n := len(out); shift == "" && n > 0 && out[n-1].Shift == "" && out[n-1].End.Equal(cursor) {
			out[n-1].End = sliceEnd
		} else {
			out = append(out, Slice{Shift: shift, Interval: Interval{Start: cursor, End: sliceEnd}})
		}
		cursor = sliceEnd
	}
	return out
}
