// Package report computes the shift/period production reports: downtime,
// good and scrap pieces, valuation, and the derived percentages, per
// (shift, machine) bucket.
//
// Aggregate is pure and total: it never performs I/O, "now" is an explicit
// parameter, and malformed rows degrade to zero contribution instead of
// failing the pass.
package report

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"production_board/internal/models"
	"production_board/internal/shiftcal"
	"production_board/internal/timeline"
)

// Input is one snapshot of raw rows overlapping the reporting period,
// already fetched by the caller. The aggregator treats every row as a
// read-only value.
type Input struct {
	Machines   []models.Machine
	Stops      []models.MachineStop
	Spans      []models.StatusSpan
	Scans      []models.ProductionScan
	Scrap      []models.ScrapEntry
	Manual     []models.ManualEntry
	Orders     map[string]models.Order
	UnitValues map[string]decimal.Decimal
}

// Bucket accumulates totals for one (shift, machine) pair.
type Bucket struct {
	Shift         string          `json:"shift"`
	MachineID     string          `json:"machine_id"`
	GoodPieces    int             `json:"good_pieces"`
	ScrapPieces   int             `json:"scrap_pieces"`
	DowntimeMs    int64           `json:"downtime_ms"`
	Value         decimal.Decimal `json:"value"`
	ScrapPct      float64         `json:"scrap_pct"`
	EfficiencyPct float64         `json:"efficiency_pct"`
}

// Totals are the grand totals across all shift buckets.
type Totals struct {
	GoodPieces  int             `json:"good_pieces"`
	ScrapPieces int             `json:"scrap_pieces"`
	DowntimeMs  int64           `json:"downtime_ms"`
	Value       decimal.Decimal `json:"value"`
	ScrapPct    float64         `json:"scrap_pct"`
}

// Report is the result of one aggregation pass.
type Report struct {
	Period           timeline.Period               `json:"period"`
	Buckets          map[string]map[string]*Bucket `json:"buckets"` // shift -> machine -> bucket
	DowntimeByReason map[string]int64              `json:"downtime_by_reason"`
	ScrapByReason    map[string]int                `json:"scrap_by_reason"`
	NoScheduleMs     map[string]int64              `json:"no_schedule_ms"` // machine -> uncovered ms
	Totals           Totals                        `json:"totals"`
}

func emptyReport(period timeline.Period) Report {
	return Report{
		Period:           period,
		Buckets:          map[string]map[string]*Bucket{},
		DowntimeByReason: map[string]int64{},
		ScrapByReason:    map[string]int{},
		NoScheduleMs:     map[string]int64{},
		Totals:           Totals{Value: decimal.Zero},
	}
}

// Aggregate computes the full report for one period. A period with
// Start >= End is a caller error and yields an empty report.
func Aggregate(in Input, period timeline.Period, now time.Time) Report {
	rep := emptyReport(period)
	if !period.Start.Before(period.End) {
		return rep
	}

	bucket := func(shift, machineID string) *Bucket {
		byMachine, ok := rep.Buckets[shift]
		if !ok {
			byMachine = map[string]*Bucket{}
			rep.Buckets[shift] = byMachine
		}
		b, ok := byMachine[machineID]
		if !ok {
			b = &Bucket{Shift: shift, MachineID: machineID, Value: decimal.Zero}
			byMachine[machineID] = b
		}
		return b
	}

	// Every known machine gets a bucket for each shift scheduled in the
	// period, so idle machines still report 100% efficiency.
	for _, sh := range []string{shiftcal.Shift1, shiftcal.Shift2, shiftcal.Shift3} {
		if shiftcal.WindowMs(sh, period.Start, period.End) <= 0 {
			continue
		}
		for _, m := range in.Machines {
			bucket(sh, m.ID)
		}
	}

	occupied := aggregateStops(in, period, now, rep, bucket)
	aggregateProduction(in, rep, bucket)
	aggregateScrap(in, rep, bucket)
	finish(&rep, period, occupied)
	return rep
}

// aggregateStops clips, merges, and slices downtime, filling per-bucket
// downtime and the by-reason summary. It returns the per-machine occupied
// spans (stops plus status history) for the no-schedule complement.
func aggregateStops(in Input, period timeline.Period, now time.Time, rep Report, bucket func(string, string) *Bucket) map[string][]timeline.Interval {
	win := period.Window()

	stopsByMachine := map[string][]timeline.Interval{}
	byMachineReason := map[string]map[string][]timeline.Interval{}
	occupied := map[string][]timeline.Interval{}

	for _, st := range in.Stops {
		iv, ok := clipEvent(st.StartedAt, st.ResumedAt, win, now)
		if !ok {
			continue
		}
		stopsByMachine[st.MachineID] = append(stopsByMachine[st.MachineID], iv)
		occupied[st.MachineID] = append(occupied[st.MachineID], iv)

		byReason, ok := byMachineReason[st.MachineID]
		if !ok {
			byReason = map[string][]timeline.Interval{}
			byMachineReason[st.MachineID] = byReason
		}
		byReason[st.Reason] = append(byReason[st.Reason], iv)
	}

	for _, sp := range in.Spans {
		if iv, ok := clipEvent(sp.StartedAt, sp.EndedAt, win, now); ok {
			occupied[sp.MachineID] = append(occupied[sp.MachineID], iv)
		}
	}

	// Overlapping stop records are merged before slicing so one outage
	// recorded twice is counted once.
	for machineID, ivs := range stopsByMachine {
		for _, iv := range timeline.Merge(ivs) {
			for _, sl := range timeline.SliceByShift(iv.Start, iv.End) {
				if sl.Shift == "" {
					continue // overtime minutes belong to no shift
				}
				bucket(sl.Shift, machineID).DowntimeMs += sl.Duration().Milliseconds()
			}
		}
	}

	// Per reason, merge within the (machine, reason) group only: duplicate
	// records of an outage collapse, distinct reasons both count.
	for _, byReason := range byMachineReason {
		for reason, ivs := range byReason {
			rep.DowntimeByReason[reason] += timeline.TotalMs(timeline.Merge(ivs))
		}
	}
	return occupied
}

// aggregateProduction fills good pieces and valuation from scans and
// manual entries.
func aggregateProduction(in Input, rep Report, bucket func(string, string) *Bucket) {
	for _, sc := range in.Scans {
		shift, ok := attributeShift(sc.Shift, sc.CreatedAt)
		if !ok {
			continue
		}
		order, ok := in.Orders[sc.OrderID]
		if !ok {
			continue // missing order linkage: nothing to count
		}
		pieces := ParseStandard(order.Standard)
		if pieces <= 0 {
			continue
		}
		b := bucket(shift, sc.MachineID)
		b.GoodPieces += pieces
		b.Value = b.Value.Add(valueOf(in.UnitValues, order.Product, pieces))
	}

	for _, me := range in.Manual {
		shift, ok := attributeShift(me.Shift, me.CreatedAt)
		if !ok {
			continue
		}
		if me.GoodQty <= 0 {
			continue
		}
		product := me.Product
		if product == "" {
			if order, ok := in.Orders[me.OrderID]; ok {
				product = order.Product
			}
		}
		b := bucket(shift, me.MachineID)
		b.GoodPieces += me.GoodQty
		b.Value = b.Value.Add(valueOf(in.UnitValues, product, me.GoodQty))
	}
}

// aggregateScrap fills scrap pieces and the by-reason summary.
func aggregateScrap(in Input, rep Report, bucket func(string, string) *Bucket) {
	for _, se := range in.Scrap {
		shift, ok := attributeShift(se.Shift, se.CreatedAt)
		if !ok {
			continue
		}
		if se.Qty <= 0 {
			continue
		}
		bucket(shift, se.MachineID).ScrapPieces += se.Qty
		rep.ScrapByReason[se.Reason] += se.Qty
	}
}

// finish derives percentages, grand totals, and the no-schedule complement.
func finish(rep *Report, period timeline.Period, occupied map[string][]timeline.Interval) {
	windowMs := map[string]int64{}
	for shift, byMachine := range rep.Buckets {
		w, ok := windowMs[shift]
		if !ok {
			w = shiftcal.WindowMs(shift, period.Start, period.End)
			windowMs[shift] = w
		}
		for _, b := range byMachine {
			b.ScrapPct = scrapPct(b.GoodPieces, b.ScrapPieces)
			b.EfficiencyPct = efficiencyPct(w, b.DowntimeMs)

			rep.Totals.GoodPieces += b.GoodPieces
			rep.Totals.ScrapPieces += b.ScrapPieces
			rep.Totals.DowntimeMs += b.DowntimeMs
			rep.Totals.Value = rep.Totals.Value.Add(b.Value)
		}
	}
	rep.Totals.ScrapPct = scrapPct(rep.Totals.GoodPieces, rep.Totals.ScrapPieces)

	periodMs := period.DurationMs()
	for _, m := range rep.machineIDs(occupied) {
		used := timeline.TotalMs(timeline.Merge(occupied[m]))
		free := periodMs - used
		if free < 0 {
			free = 0
		}
		rep.NoScheduleMs[m] = free
	}
}

// machineIDs lists every machine appearing in buckets or occupancy.
func (r *Report) machineIDs(occupied map[string][]timeline.Interval) []string {
	seen := map[string]bool{}
	var ids []string
	for _, byMachine := range r.Buckets {
		for id := range byMachine {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	for id := range occupied {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// clipEvent clips [startedAt, endedAt) to the window. A nil end means the
// event is still open and runs until min(now, window end). Malformed or
// inverted spans report ok=false.
func clipEvent(startedAt time.Time, endedAt *time.Time, win timeline.Interval, now time.Time) (timeline.Interval, bool) {
	if startedAt.IsZero() {
		return timeline.Interval{}, false
	}
	end := win.End
	if endedAt != nil {
		end = *endedAt
	} else if now.Before(end) {
		end = now
	}
	return timeline.Interval{Start: startedAt, End: end}.Clip(win)
}

// attributeShift resolves the shift of a point event: the stored shift is
// authoritative; otherwise the tolerance calendar classifies the timestamp.
// ok is false for unassigned (overtime) events.
func attributeShift(stored string, at time.Time) (string, bool) {
	if stored != "" {
		return stored, true
	}
	if at.IsZero() {
		return "", false
	}
	return shiftcal.CurrentShift(at)
}

func scrapPct(good, scrap int) float64 {
	total := good + scrap
	if total == 0 {
		return 0
	}
	return round2(float64(scrap) / float64(total) * 100)
}

func efficiencyPct(windowMs, downtimeMs int64) float64 {
	if windowMs <= 0 {
		return 0
	}
	pct := float64(windowMs-downtimeMs) / float64(windowMs) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return round2(pct)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
