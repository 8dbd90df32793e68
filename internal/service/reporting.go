package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"production_board/internal/report"
	"production_board/internal/repository"
	"production_board/internal/timeline"
)

var errDateRequired = errors.New("period \"day\" requires a date")

type ReportingService struct {
	repos *repository.Repository

	now func() time.Time // swapped in tests
}

func NewReportingService(repos *repository.Repository) *ReportingService {
	return &ReportingService{repos: repos, now: time.Now}
}

// ShiftReport loads every event overlapping the requested period and
// folds it into per-shift, per-machine buckets.
func (s *ReportingService) ShiftReport(ctx context.Context, f ReportFilter) (*report.Report, error) {
	now := s.now()

	period, err := resolvePeriod(f, now)
	if err != nil {
		return nil, err
	}

	in, err := s.load(ctx, period)
	if err != nil {
		return nil, err
	}
	if f.MachineID != "" {
		filterMachine(&in, f.MachineID)
	}

	rep := report.Aggregate(in, period, now)
	return &rep, nil
}

func resolvePeriod(f ReportFilter, now time.Time) (timeline.Period, error) {
	switch f.Period {
	case "", PeriodToday:
		return timeline.Today(now), nil
	case PeriodYesterday:
		return timeline.Yesterday(now), nil
	case PeriodWeek:
		return timeline.ThisWeek(now), nil
	case PeriodMonth:
		return timeline.ThisMonth(now), nil
	case PeriodLastMonth:
		return timeline.LastMonth(now), nil
	case PeriodDay:
		if f.Date.IsZero() {
			return timeline.Period{}, errDateRequired
		}
		return timeline.Day(f.Date), nil
	default:
		return timeline.Period{}, fmt.Errorf("unknown period %q", f.Period)
	}
}

func (s *ReportingService) load(ctx context.Context, p timeline.Period) (report.Input, error) {
	var in report.Input
	var err error

	if in.Machines, err = s.repos.Machines.List(ctx); err != nil {
		return in, fmt.Errorf("list machines: %w", err)
	}
	if in.Stops, err = s.repos.Stops.ListOverlapping(ctx, p.Start, p.End); err != nil {
		return in, fmt.Errorf("list stops: %w", err)
	}
	if in.Spans, err = s.repos.Statuses.ListOverlapping(ctx, p.Start, p.End); err != nil {
		return in, fmt.Errorf("list status spans: %w", err)
	}
	if in.Scans, err = s.repos.Scans.ListInRange(ctx, p.Start, p.End); err != nil {
		return in, fmt.Errorf("list scans: %w", err)
	}
	if in.Scrap, err = s.repos.Scrap.ListInRange(ctx, p.Start, p.End); err != nil {
		return in, fmt.Errorf("list scrap: %w", err)
	}
	if in.Manual, err = s.repos.Manual.ListInRange(ctx, p.Start, p.End); err != nil {
		return in, fmt.Errorf("list manual entries: %w", err)
	}
	if in.Orders, err = s.repos.Orders.Map(ctx); err != nil {
		return in, fmt.Errorf("load orders: %w", err)
	}
	if in.UnitValues, err = s.repos.ItemValues.Map(ctx); err != nil {
		return in, fmt.Errorf("load item values: %w", err)
	}
	return in, nil
}

// filterMachine narrows the input to a single machine in place.
func filterMachine(in *report.Input, machineID string) {
	machines := in.Machines[:0]
	for _, m := range in.Machines {
		if m.ID == machineID {
			machines = append(machines, m)
		}
	}
	in.Machines = machines

	stops := in.Stops[:0]
	for _, s := range in.Stops {
		if s.MachineID == machineID {
			stops = append(stops, s)
		}
	}
	in.Stops = stops

	spans := in.Spans[:0]
	for _, sp := range in.Spans {
		if sp.MachineID == machineID {
			spans = append(spans, sp)
		}
	}
	in.Spans = spans

	scans := in.Scans[:0]
	for _, sc := range in.Scans {
		if sc.MachineID == machineID {
			scans = append(scans, sc)
		}
	}
	in.Scans = scans

	scrap := in.Scrap[:0]
	for _, e := range in.Scrap {
		if e.MachineID == machineID {
			scrap = append(scrap, e)
		}
	}
	in.Scrap = scrap

	manual := in.Manual[:0]
	for _, e := range in.Manual {
		if e.MachineID == machineID {
			manual = append(manual, e)
		}
	}
	in.Manual = manual
}
