package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"production_board/internal/models"
)

// trackingStopRepoStub is a local, uniquely named test stub that satisfies repository.StopRepo.
type trackingStopRepoStub struct {
	opened    []models.MachineStop
	resumed   []string
	resumedAt []time.Time
	openErr   error
	resumeErr error
}

func (s *trackingStopRepoStub) Open(ctx context.Context, stop models.MachineStop) error {
	s.opened = append(s.opened, stop)
	return s.openErr
}

func (s *trackingStopRepoStub) Resume(ctx context.Context, stopID string, at time.Time) error {
	s.resumed = append(s.resumed, stopID)
	s.resumedAt = append(s.resumedAt, at)
	return s.resumeErr
}

func (s *trackingStopRepoStub) ListOverlapping(ctx context.Context, from, to time.Time) ([]models.MachineStop, error) {
	return nil, nil
}

type trackingStatusRepoStub struct {
	set    []models.StatusSpan
	setErr error
}

func (s *trackingStatusRepoStub) Set(ctx context.Context, span models.StatusSpan) error {
	s.set = append(s.set, span)
	return s.setErr
}

func (s *trackingStatusRepoStub) Current(ctx context.Context) ([]models.StatusSpan, error) {
	return nil, nil
}

func (s *trackingStatusRepoStub) ListOverlapping(ctx context.Context, from, to time.Time) ([]models.StatusSpan, error) {
	return nil, nil
}

type trackingScanRepoStub struct {
	appended []models.ProductionScan
	err      error
}

func (s *trackingScanRepoStub) Append(ctx context.Context, scan models.ProductionScan) error {
	s.appended = append(s.appended, scan)
	return s.err
}

func (s *trackingScanRepoStub) ListInRange(ctx context.Context, from, to time.Time) ([]models.ProductionScan, error) {
	return nil, nil
}

type trackingScrapRepoStub struct {
	appended []models.ScrapEntry
	err      error
}

func (s *trackingScrapRepoStub) Append(ctx context.Context, e models.ScrapEntry) error {
	s.appended = append(s.appended, e)
	return s.err
}

func (s *trackingScrapRepoStub) ListInRange(ctx context.Context, from, to time.Time) ([]models.ScrapEntry, error) {
	return nil, nil
}

type trackingManualRepoStub struct {
	appended []models.ManualEntry
	err      error
}

func (s *trackingManualRepoStub) Append(ctx context.Context, e models.ManualEntry) error {
	s.appended = append(s.appended, e)
	return s.err
}

func (s *trackingManualRepoStub) ListInRange(ctx context.Context, from, to time.Time) ([]models.ManualEntry, error) {
	return nil, nil
}

var trackingTestNow = time.Date(2026, time.August, 24, 13, 0, 0, 0, time.UTC)

func newTestTracking() (*TrackingService, *trackingStopRepoStub, *trackingStatusRepoStub, *trackingScanRepoStub, *trackingScrapRepoStub, *trackingManualRepoStub) {
	stops := &trackingStopRepoStub{}
	statuses := &trackingStatusRepoStub{}
	scans := &trackingScanRepoStub{}
	scrap := &trackingScrapRepoStub{}
	manual := &trackingManualRepoStub{}
	svc := &TrackingService{
		stops:    stops,
		statuses: statuses,
		scans:    scans,
		scrap:    scrap,
		manual:   manual,
		now:      func() time.Time { return trackingTestNow },
	}
	return svc, stops, statuses, scans, scrap, manual
}

func TestTrackingService_OpenStop(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		params  StopParams
		openErr error
		wantErr bool
	}{
		{
			name:   "opens stop with generated id and UTC start",
			params: StopParams{MachineID: "M-01", Reason: "NO_MATERIAL", Notes: "waiting on resin"},
		},
		{
			name:    "rejects missing machine",
			params:  StopParams{Reason: "SETUP"},
			wantErr: true,
		},
		{
			name:    "rejects missing reason",
			params:  StopParams{MachineID: "M-01"},
			wantErr: true,
		},
		{
			name:    "propagates repo error",
			params:  StopParams{MachineID: "M-01", Reason: "MAINTENANCE"},
			openErr: errors.New("db down"),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, stops, _, _, _, _ := newTestTracking()
			stops.openErr = tc.openErr

			got, err := svc.OpenStop(context.Background(), tc.params)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID == "" {
				t.Errorf("expected generated stop id")
			}
			if !got.StartedAt.Equal(trackingTestNow) {
				t.Errorf("StartedAt: want %v, got %v", trackingTestNow, got.StartedAt)
			}
			if got.ResumedAt != nil {
				t.Errorf("new stop must be open, got resumed_at %v", got.ResumedAt)
			}
			if len(stops.opened) != 1 {
				t.Fatalf("expected 1 Open call, got %d", len(stops.opened))
			}
			if stops.opened[0].Reason != tc.params.Reason {
				t.Errorf("reason: want %q, got %q", tc.params.Reason, stops.opened[0].Reason)
			}
		})
	}
}

func TestTrackingService_ResumeStop(t *testing.T) {
	t.Parallel()

	svc, stops, _, _, _, _ := newTestTracking()
	if err := svc.ResumeStop(context.Background(), "stop-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops.resumed) != 1 || stops.resumed[0] != "stop-1" {
		t.Fatalf("expected Resume(stop-1), got %v", stops.resumed)
	}
	if !stops.resumedAt[0].Equal(trackingTestNow) {
		t.Errorf("resume time: want %v, got %v", trackingTestNow, stops.resumedAt[0])
	}

	if err := svc.ResumeStop(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty stop id")
	}
}

func TestTrackingService_SetStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		params  StatusParams
		wantErr bool
	}{
		{
			name:   "valid status opens a span",
			params: StatusParams{MachineID: "M-02", Status: models.StatusProducing},
		},
		{
			name:   "stopped with reason",
			params: StatusParams{MachineID: "M-02", Status: models.StatusStopped, Reason: "mold swap"},
		},
		{
			name:    "unknown status rejected",
			params:  StatusParams{MachineID: "M-02", Status: "EXPLODED"},
			wantErr: true,
		},
		{
			name:    "missing machine rejected",
			params:  StatusParams{Status: models.StatusWaiting},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, _, statuses, _, _, _ := newTestTracking()

			err := svc.SetStatus(context.Background(), tc.params)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if len(statuses.set) != 0 {
					t.Fatalf("expected no Set calls, got %d", len(statuses.set))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(statuses.set) != 1 {
				t.Fatalf("expected 1 Set call, got %d", len(statuses.set))
			}
			span := statuses.set[0]
			if span.Status != tc.params.Status {
				t.Errorf("status: want %q, got %q", tc.params.Status, span.Status)
			}
			if !span.StartedAt.Equal(trackingTestNow) {
				t.Errorf("StartedAt: want %v, got %v", trackingTestNow, span.StartedAt)
			}
			if span.EndedAt != nil {
				t.Errorf("new span must be open")
			}
		})
	}
}

func TestTrackingService_RecordScan(t *testing.T) {
	t.Parallel()

	svc, _, _, scans, _, _ := newTestTracking()

	got, err := svc.RecordScan(context.Background(), ScanParams{
		MachineID:  "M-03",
		OrderID:    "ord-7",
		ScannedBox: 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Shift != "" {
		t.Errorf("shift should stay empty when not supplied, got %q", got.Shift)
	}
	if !got.CreatedAt.Equal(trackingTestNow) {
		t.Errorf("CreatedAt: want %v, got %v", trackingTestNow, got.CreatedAt)
	}
	if len(scans.appended) != 1 {
		t.Fatalf("expected 1 Append call, got %d", len(scans.appended))
	}

	if _, err := svc.RecordScan(context.Background(), ScanParams{MachineID: "M-03"}); err == nil {
		t.Fatalf("expected error for missing order")
	}
	if _, err := svc.RecordScan(context.Background(), ScanParams{MachineID: "M-03", OrderID: "o", Shift: "4"}); err == nil {
		t.Fatalf("expected error for shift 4")
	}
}

func TestTrackingService_RecordScrap(t *testing.T) {
	t.Parallel()

	svc, _, _, _, scrap, _ := newTestTracking()

	err := svc.RecordScrap(context.Background(), ScrapParams{
		MachineID: "M-04",
		OrderID:   "ord-2",
		Qty:       5,
		Reason:    "Rebarba",
		Shift:     "2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scrap.appended) != 1 {
		t.Fatalf("expected 1 Append call, got %d", len(scrap.appended))
	}
	if scrap.appended[0].Qty != 5 {
		t.Errorf("qty: want 5, got %d", scrap.appended[0].Qty)
	}

	if err := svc.RecordScrap(context.Background(), ScrapParams{MachineID: "M-04", Qty: 0, Reason: "x"}); err == nil {
		t.Fatalf("expected error for zero qty")
	}
	if err := svc.RecordScrap(context.Background(), ScrapParams{MachineID: "M-04", Qty: 3}); err == nil {
		t.Fatalf("expected error for missing reason")
	}
}

func TestTrackingService_RecordManual(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, manual := newTestTracking()

	err := svc.RecordManual(context.Background(), ManualParams{
		MachineID: "M-05",
		OrderID:   "ord-9",
		GoodQty:   30,
		Shift:     "1",
		Product:   "4077 - TAMPA 38MM",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(manual.appended) != 1 {
		t.Fatalf("expected 1 Append call, got %d", len(manual.appended))
	}

	// Manual entries must carry an explicit shift.
	if err := svc.RecordManual(context.Background(), ManualParams{MachineID: "M-05", GoodQty: 30}); err == nil {
		t.Fatalf("expected error for missing shift")
	}
}
