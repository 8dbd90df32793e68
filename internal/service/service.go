package service

import (
	"context"

	"production_board/internal/models"
	"production_board/internal/report"
	"production_board/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Tracking exposes the write side of the floor: stops, statuses,
// scans, scrap and manual counts.
type Tracking interface {
	OpenStop(ctx context.Context, p StopParams) (models.MachineStop, error)
	ResumeStop(ctx context.Context, stopID string) error
	SetStatus(ctx context.Context, p StatusParams) error
	RecordScan(ctx context.Context, p ScanParams) (models.ProductionScan, error)
	RecordScrap(ctx context.Context, p ScrapParams) error
	RecordManual(ctx context.Context, p ManualParams) error
}

// Reporting builds per-shift aggregates for a requested period.
type Reporting interface {
	ShiftReport(ctx context.Context, f ReportFilter) (*report.Report, error)
}

// Board exposes the live snapshot pushed to the floor dashboard.
type Board interface {
	Snapshot(ctx context.Context) (BoardSnapshot, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Tracking
	Reporting
	Board
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	reporting := NewReportingService(repos)
	return &Service{
		Tracking:      NewTrackingService(repos),
		Reporting:     reporting,
		Board:         NewBoardService(repos.Machines, repos.Statuses, reporting),
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
