package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"production_board/internal/models"
	"production_board/internal/repository"

	"github.com/google/uuid"
)

var (
	errMachineRequired = errors.New("machine_id is required")
	errReasonRequired  = errors.New("reason is required")
	errOrderRequired   = errors.New("order_id is required")
	errInvalidStatus   = errors.New("invalid status: must be PRODUCING, LOW_EFFICIENCY, STOPPED, or WAITING")
	errInvalidShift    = errors.New("invalid shift: must be 1, 2, or 3")
	errInvalidQty      = errors.New("qty must be > 0")
)

type TrackingService struct {
	stops    repository.StopRepo
	statuses repository.StatusRepo
	scans    repository.ScanRepo
	scrap    repository.ScrapRepo
	manual   repository.ManualRepo

	now func() time.Time // swapped in tests
}

func NewTrackingService(repos *repository.Repository) *TrackingService {
	return &TrackingService{
		stops:    repos.Stops,
		statuses: repos.Statuses,
		scans:    repos.Scans,
		scrap:    repos.Scrap,
		manual:   repos.Manual,
		now:      time.Now,
	}
}

// OpenStop records the start of a downtime interval. The stop stays open
// until ResumeStop closes it.
func (s *TrackingService) OpenStop(ctx context.Context, p StopParams) (models.MachineStop, error) {
	if p.MachineID == "" {
		return models.MachineStop{}, errMachineRequired
	}
	if p.Reason == "" {
		return models.MachineStop{}, errReasonRequired
	}

	stop := models.MachineStop{
		ID:        uuid.NewString(),
		MachineID: p.MachineID,
		StartedAt: s.now().UTC(),
		Reason:    p.Reason,
		Notes:     p.Notes,
	}
	if err := s.stops.Open(ctx, stop); err != nil {
		return models.MachineStop{}, fmt.Errorf("open stop: %w", err)
	}
	return stop, nil
}

// ResumeStop closes an open stop at the current time.
func (s *TrackingService) ResumeStop(ctx context.Context, stopID string) error {
	if stopID == "" {
		return errors.New("stop id is required")
	}
	return s.stops.Resume(ctx, stopID, s.now().UTC())
}

// SetStatus closes the machine's current status span and opens a new one.
func (s *TrackingService) SetStatus(ctx context.Context, p StatusParams) error {
	if p.MachineID == "" {
		return errMachineRequired
	}
	switch p.Status {
	case models.StatusProducing, models.StatusLowEfficiency, models.StatusStopped, models.StatusWaiting:
	default:
		return errInvalidStatus
	}

	return s.statuses.Set(ctx, models.StatusSpan{
		ID:        uuid.NewString(),
		MachineID: p.MachineID,
		Status:    p.Status,
		Reason:    p.Reason,
		StartedAt: s.now().UTC(),
	})
}

// RecordScan appends one completed box. Piece counts are resolved at
// report time from the order standard, so a scan is just a timestamped fact.
func (s *TrackingService) RecordScan(ctx context.Context, p ScanParams) (models.ProductionScan, error) {
	if p.MachineID == "" {
		return models.ProductionScan{}, errMachineRequired
	}
	if p.OrderID == "" {
		return models.ProductionScan{}, errOrderRequired
	}
	if err := checkShift(p.Shift, true); err != nil {
		return models.ProductionScan{}, err
	}

	scan := models.ProductionScan{
		ID:         uuid.NewString(),
		MachineID:  p.MachineID,
		OrderID:    p.OrderID,
		ScannedBox: p.ScannedBox,
		Shift:      p.Shift,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.scans.Append(ctx, scan); err != nil {
		return models.ProductionScan{}, fmt.Errorf("record scan: %w", err)
	}
	return scan, nil
}

// RecordScrap appends a batch of rejected pieces.
func (s *TrackingService) RecordScrap(ctx context.Context, p ScrapParams) error {
	if p.MachineID == "" {
		return errMachineRequired
	}
	if p.Qty <= 0 {
		return errInvalidQty
	}
	if p.Reason == "" {
		return errReasonRequired
	}
	if err := checkShift(p.Shift, true); err != nil {
		return err
	}

	return s.scrap.Append(ctx, models.ScrapEntry{
		ID:        uuid.NewString(),
		MachineID: p.MachineID,
		OrderID:   p.OrderID,
		Qty:       p.Qty,
		Reason:    p.Reason,
		Shift:     p.Shift,
		CreatedAt: s.now().UTC(),
	})
}

// RecordManual appends a hand-typed production count. Unlike scans the
// shift is mandatory: the operator states which shift did the work.
func (s *TrackingService) RecordManual(ctx context.Context, p ManualParams) error {
	if p.MachineID == "" {
		return errMachineRequired
	}
	if p.GoodQty <= 0 {
		return errInvalidQty
	}
	if err := checkShift(p.Shift, false); err != nil {
		return err
	}

	return s.manual.Append(ctx, models.ManualEntry{
		ID:        uuid.NewString(),
		MachineID: p.MachineID,
		OrderID:   p.OrderID,
		GoodQty:   p.GoodQty,
		Shift:     p.Shift,
		Product:   p.Product,
		CreatedAt: s.now().UTC(),
	})
}

func checkShift(shift string, optional bool) error {
	switch shift {
	case "1", "2", "3":
		return nil
	case "":
		if optional {
			return nil
		}
	}
	return errInvalidShift
}
