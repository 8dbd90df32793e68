package timeline

import (
	"time"

	"production_board/internal/shiftcal"
)

// Period is a reporting window. Boundaries are computed on the plant's
// local calendar and carried as absolute instants.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Window returns the period as an Interval for clipping.
func (p Period) Window() Interval {
	return Interval{Start: p.Start, End: p.End}
}

// DurationMs is the wall-clock length of the period in milliseconds.
func (p Period) DurationMs() int64 {
	return Interval(p).Duration().Milliseconds()
}

// localMidnight truncates an instant to the start of its plant-local day.
func localMidnight(t time.Time) time.Time {
	lt := t.In(shiftcal.Location())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, lt.Location())
}

// Today spans local midnight to now.
func Today(now time.Time) Period {
	return Period{Start: localMidnight(now), End: now}
}

// Yesterday spans the full previous local calendar day.
func Yesterday(now time.Time) Period {
	end := localMidnight(now)
	return Period{Start: end.AddDate(0, 0, -1), End: end}
}

// ThisWeek spans Monday local midnight to now.
func ThisWeek(now time.Time) Period {
	day := localMidnight(now)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return Period{Start: day.AddDate(0, 0, -offset), End: now}
}

// ThisMonth spans the 1st local midnight to now.
func ThisMonth(now time.Time) Period {
	lt := now.In(shiftcal.Location())
	start := time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, lt.Location())
	return Period{Start: start, End: now}
}

// LastMonth spans the full previous calendar month.
func LastMonth(now time.Time) Period {
	lt := now.In(shiftcal.Location())
	end := time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, lt.Location())
	return Period{Start: end.AddDate(0, -1, 0), End: end}
}

// Day spans one explicit local calendar day.
func Day(date time.Time) Period {
	start := localMidnight(date)
	return Period{Start: start, End: start.AddDate(0, 0, 1)}
}
