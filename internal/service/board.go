package service

import (
	"context"
	"fmt"
	"time"

	"production_board/internal/models"
	"production_board/internal/report"
	"production_board/internal/repository"
)

// MachineTile is one machine's cell on the floor dashboard.
type MachineTile struct {
	Machine     models.Machine `json:"machine"`
	Status      string         `json:"status"`
	Reason      string         `json:"reason,omitempty"`
	Since       *time.Time     `json:"since,omitempty"`
	GoodPieces  int            `json:"good_pieces"`
	ScrapPieces int            `json:"scrap_pieces"`
	DowntimeMs  int64          `json:"downtime_ms"`
}

// BoardSnapshot is the payload pushed over the websocket: per-machine
// live status plus today's running totals.
type BoardSnapshot struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Machines    []MachineTile `json:"machines"`
	Totals      report.Totals `json:"totals"`
}

type BoardService struct {
	machines  repository.MachineRepo
	statuses  repository.StatusRepo
	reporting Reporting

	now func() time.Time
}

func NewBoardService(machines repository.MachineRepo, statuses repository.StatusRepo, reporting Reporting) *BoardService {
	return &BoardService{
		machines:  machines,
		statuses:  statuses,
		reporting: reporting,
		now:       time.Now,
	}
}

// Snapshot builds the dashboard state: current status per machine and
// today's counters folded out of the shift report.
func (s *BoardService) Snapshot(ctx context.Context) (BoardSnapshot, error) {
	machines, err := s.machines.List(ctx)
	if err != nil {
		return BoardSnapshot{}, fmt.Errorf("list machines: %w", err)
	}

	open, err := s.statuses.Current(ctx)
	if err != nil {
		return BoardSnapshot{}, fmt.Errorf("current statuses: %w", err)
	}
	current := make(map[string]models.StatusSpan, len(open))
	for _, sp := range open {
		current[sp.MachineID] = sp
	}

	today, err := s.reporting.ShiftReport(ctx, ReportFilter{Period: PeriodToday})
	if err != nil {
		return BoardSnapshot{}, err
	}

	snap := BoardSnapshot{
		GeneratedAt: s.now().UTC(),
		Machines:    make([]MachineTile, 0, len(machines)),
		Totals:      today.Totals,
	}
	for _, m := range machines {
		tile := MachineTile{Machine: m, Status: models.StatusWaiting}
		if sp, ok := current[m.ID]; ok {
			tile.Status = sp.Status
			tile.Reason = sp.Reason
			started := sp.StartedAt
			tile.Since = &started
		}
		for _, byMachine := range today.Buckets {
			if b, ok := byMachine[m.ID]; ok {
				tile.GoodPieces += b.GoodPieces
				tile.ScrapPieces += b.ScrapPieces
				tile.DowntimeMs += b.DowntimeMs
			}
		}
		snap.Machines = append(snap.Machines, tile)
	}
	return snap, nil
}
