package timeline

import (
	"testing"
	"time"

	"production_board/internal/shiftcal"
)

func at(h, m int) time.Time {
	// 2026-08-24 is a Monday on the plant calendar.
	return time.Date(2026, time.August, 24, h, m, 0, 0, shiftcal.Location())
}

func TestMerge(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{
			name: "empty input",
			in:   nil,
			want: nil,
		},
		{
			name: "overlapping stops collapse",
			in: []Interval{
				{at(10, 0), at(10, 30)},
				{at(10, 15), at(10, 45)},
			},
			want: []Interval{{at(10, 0), at(10, 45)}},
		},
		{
			name: "touching spans coalesce",
			in: []Interval{
				{at(8, 0), at(9, 0)},
				{at(9, 0), at(10, 0)},
			},
			want: []Interval{{at(8, 0), at(10, 0)}},
		},
		{
			name: "disjoint spans kept and sorted",
			in: []Interval{
				{at(12, 0), at(13, 0)},
				{at(8, 0), at(9, 0)},
			},
			want: []Interval{
				{at(8, 0), at(9, 0)},
				{at(12, 0), at(13, 0)},
			},
		},
		{
			name: "invalid spans dropped",
			in: []Interval{
				{at(10, 0), at(10, 0)},
				{at(11, 0), at(10, 0)},
				{at(9, 0), at(9, 30)},
			},
			want: []Interval{{at(9, 0), at(9, 30)}},
		},
		{
			name: "contained span absorbed",
			in: []Interval{
				{at(9, 0), at(12, 0)},
				{at(10, 0), at(11, 0)},
			},
			want: []Interval{{at(9, 0), at(12, 0)}},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Merge(tc.in)
			assertIntervalsEqual(t, tc.want, got)

			// Idempotence: merging a merged list is a no-op.
			assertIntervalsEqual(t, got, Merge(got))
		})
	}
}

func TestInterval_Clip(t *testing.T) {
	t.Parallel()

	win := Interval{at(9, 0), at(17, 0)}

	cases := []struct {
		name   string
		in     Interval
		want   Interval
		wantOK bool
	}{
		{"fully inside", Interval{at(10, 0), at(11, 0)}, Interval{at(10, 0), at(11, 0)}, true},
		{"overlaps start", Interval{at(8, 0), at(10, 0)}, Interval{at(9, 0), at(10, 0)}, true},
		{"overlaps end", Interval{at(16, 0), at(18, 0)}, Interval{at(16, 0), at(17, 0)}, true},
		{"covers window", Interval{at(7, 0), at(19, 0)}, win, true},
		{"entirely before", Interval{at(6, 0), at(7, 0)}, Interval{}, false},
		{"entirely after", Interval{at(18, 0), at(19, 0)}, Interval{}, false},
		{"inverted", Interval{at(12, 0), at(11, 0)}, Interval{}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tc.in.Clip(win)
			if ok != tc.wantOK {
				t.Fatalf("ok: want %v, got %v", tc.wantOK, ok)
			}
			if ok && (!got.Start.Equal(tc.want.Start) || !got.End.Equal(tc.want.End)) {
				t.Errorf("clip: want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTotalMs(t *testing.T) {
	t.Parallel()

	ivs := []Interval{
		{at(10, 0), at(10, 45)},
		{at(12, 0), at(12, 15)},
	}
	if got := TotalMs(ivs); got != int64(time.Hour)/int64(time.Millisecond) {
		t.Errorf("TotalMs: want 1h, got %dms", got)
	}
	if got := TotalMs(nil); got != 0 {
		t.Errorf("TotalMs(nil): want 0, got %d", got)
	}
}

func assertIntervalsEqual(t *testing.T, want, got []Interval) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("interval count: want %d (%v), got %d (%v)", len(want), want, len(got), got)
	}
	for i := range want {
		if !want[i].Start.Equal(got[i].Start) || !want[i].End.Equal(got[i].End) {
			t.Errorf("interval %d: want %v, got %v", i, want[i], got[i])
		}
	}
}
