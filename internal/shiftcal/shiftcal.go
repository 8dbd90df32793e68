// Package shiftcal owns the fixed shift-boundary tables of the plant.
//
// Two distinct policies exist and must not be merged: the exact table is
// authoritative for downtime accounting, while the tolerance table (every
// boundary pushed 15 minutes later) classifies "what shift is it right now"
// for data entry. All wall-clock decisions use the plant timezone.
package shiftcal

import (
	"sync"
	"time"
)

// Shift identifiers. A minute covered by no rule belongs to no shift
// ("Hora Extra") and is represented by the empty string throughout.
const (
	Shift1 = "1"
	Shift2 = "2"
	Shift3 = "3"
)

const plantTZ = "America/Sao_Paulo"

// minutesPerDay is the wall-clock length of one calendar day.
const minutesPerDay = 24 * 60

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location returns the plant timezone. Falls back to the fixed -03:00
// offset if the host has no tzdata for America/Sao_Paulo.
func Location() *time.Location {
	locOnce.Do(func() {
		l, err := time.LoadLocation(plantTZ)
		if err != nil {
			l = time.FixedZone("-03", -3*60*60)
		}
		loc = l
	})
	return loc
}

// Rule is one shift segment of a calendar day, in minutes of day,
// half-open [StartMin, EndMin). A shift crossing midnight appears as two
// rules on consecutive days rather than one rule with EndMin > 1440.
type Rule struct {
	Shift    string
	StartMin int
	EndMin   int
}

// Exact boundary tables, ordered by StartMin.
var (
	weekdayRules = []Rule{
		{Shift3, 0, 5 * 60},            // tail of the night shift
		{Shift1, 5 * 60, 13*60 + 30},   // 05:00-13:30
		{Shift2, 13*60 + 30, 22 * 60},  // 13:30-22:00
		{Shift3, 22 * 60, minutesPerDay}, // 22:00-24:00
	}
	saturdayRules = []Rule{
		{Shift3, 0, 5 * 60},
		{Shift1, 5 * 60, 9 * 60},
		{Shift2, 9 * 60, 13 * 60},
		// 13:00 onward is overtime
	}
	sundayRules = []Rule{
		{Shift3, 23 * 60, minutesPerDay},
	}
)

// Tolerance tables: every boundary 15 minutes later than the exact table,
// so an entry keyed right after a shift ends still lands on that shift.
var (
	weekdayToleranceRules = []Rule{
		{Shift3, 0, 5*60 + 15},
		{Shift1, 5*60 + 15, 13*60 + 45},
		{Shift2, 13*60 + 45, 22*60 + 15},
		{Shift3, 22*60 + 15, minutesPerDay},
	}
	saturdayToleranceRules = []Rule{
		{Shift3, 0, 5*60 + 15},
		{Shift1, 5*60 + 15, 9*60 + 15},
		{Shift2, 9*60 + 15, 13*60 + 15},
	}
	sundayToleranceRules = []Rule{
		{Shift3, 23*60 + 15, minutesPerDay},
	}
)

// DayRules returns the exact shift segments for the given weekday,
// ordered by start minute.
func DayRules(wd time.Weekday) []Rule {
	switch wd {
	case time.Saturday:
		return saturdayRules
	case time.Sunday:
		return sundayRules
	default:
		return weekdayRules
	}
}

// ToleranceDayRules returns the ±15-minute classification segments for the
// given weekday. Distinct from DayRules; see package doc.
func ToleranceDayRules(wd time.Weekday) []Rule {
	switch wd {
	case time.Saturday:
		return saturdayToleranceRules
	case time.Sunday:
		return sundayToleranceRules
	default:
		return weekdayToleranceRules
	}
}

// ruleAt finds the segment containing the minute, if any.
func ruleAt(rules []Rule, minute int) (Rule, bool) {
	for _, r := range rules {
		if minute >= r.StartMin && minute < r.EndMin {
			return r, true
		}
	}
	return Rule{}, false
}

// RuleAt resolves the exact rule covering a minute of the given weekday.
func RuleAt(wd time.Weekday, minute int) (Rule, bool) {
	return ruleAt(DayRules(wd), minute)
}

// MinuteOfDay converts an instant to its plant-local minute of day.
func MinuteOfDay(t time.Time) int {
	lt := t.In(Location())
	return lt.Hour()*60 + lt.Minute()
}

// ShiftAt classifies an instant against the exact table. ok is false for
// overtime minutes.
func ShiftAt(t time.Time) (shift string, ok bool) {
	lt := t.In(Location())
	r, ok := RuleAt(lt.Weekday(), lt.Hour()*60+lt.Minute())
	if !ok {
		return "", false
	}
	return r.Shift, true
}

// CurrentShift classifies an instant against the tolerance table. Used to
// attribute scans and scrap entries that carry no stored shift.
func CurrentShift(t time.Time) (shift string, ok bool) {
	lt := t.In(Location())
	r, ok := ruleAt(ToleranceDayRules(lt.Weekday()), lt.Hour()*60+lt.Minute())
	if !ok {
		return "", false
	}
	return r.Shift, true
}

// WindowMs sums the wall-clock duration the given shift occupies inside
// [start, end), walking the period day by day. Rules with EndMin <= StartMin
// are treated as crossing midnight.
func WindowMs(shift string, start, end time.Time) int64 {
	if !start.Before(end) {
		return 0
	}
	l := Location()
	day := midnight(start.In(l))
	var total int64
	for day.Before(end) {
		for _, r := range DayRules(day.Weekday()) {
			if r.Shift != shift {
				continue
			}
			endMin := r.EndMin
			if endMin <= r.StartMin {
				endMin += minutesPerDay
			}
			rs := day.Add(time.Duration(r.StartMin) * time.Minute)
			re := day.Add(time.Duration(endMin) * time.Minute)
			if rs.Before(start) {
				rs = start
			}
			if re.After(end) {
				re = end
			}
			if rs.Before(re) {
				total += re.Sub(rs).Milliseconds()
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return total
}

// midnight truncates a local time to the start of its calendar day.
func midnight(lt time.Time) time.Time {
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, lt.Location())
}
