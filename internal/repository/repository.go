package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"production_board/internal/models"
	"production_board/internal/repository/db"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// MachineRepo exposes the static machine list.
type MachineRepo interface {
	List(ctx context.Context) ([]models.Machine, error)
	Upsert(ctx context.Context, m models.Machine) error
}

// StopRepo stores downtime records. ListOverlapping returns every stop
// intersecting [from, to), including still-open ones.
type StopRepo interface {
	Open(ctx context.Context, s models.MachineStop) error
	Resume(ctx context.Context, stopID string, at time.Time) error
	ListOverlapping(ctx context.Context, from, to time.Time) ([]models.MachineStop, error)
}

// StatusRepo stores the operator status history. Set closes the machine's
// open span and opens a new one in one transaction.
type StatusRepo interface {
	Set(ctx context.Context, span models.StatusSpan) error
	Current(ctx context.Context) ([]models.StatusSpan, error)
	ListOverlapping(ctx context.Context, from, to time.Time) ([]models.StatusSpan, error)
}

// ScanRepo stores box scans.
type ScanRepo interface {
	Append(ctx context.Context, s models.ProductionScan) error
	ListInRange(ctx context.Context, from, to time.Time) ([]models.ProductionScan, error)
}

// ScrapRepo stores scrap entries.
type ScrapRepo interface {
	Append(ctx context.Context, e models.ScrapEntry) error
	ListInRange(ctx context.Context, from, to time.Time) ([]models.ScrapEntry, error)
}

// ManualRepo stores hand-typed production entries.
type ManualRepo interface {
	Append(ctx context.Context, e models.ManualEntry) error
	ListInRange(ctx context.Context, from, to time.Time) ([]models.ManualEntry, error)
}

// OrderRepo exposes order lookups for piece counts and valuation.
type OrderRepo interface {
	Save(ctx context.Context, o models.Order) error
	Map(ctx context.Context) (map[string]models.Order, error)
}

// ItemValueRepo exposes the item-code -> unit-value table.
type ItemValueRepo interface {
	Save(ctx context.Context, code string, unitValue decimal.Decimal) error
	Map(ctx context.Context) (map[string]decimal.Decimal, error)
}

type Repository struct {
	Machines   MachineRepo
	Stops      StopRepo
	Statuses   StatusRepo
	Scans      ScanRepo
	Scrap      ScrapRepo
	Manual     ManualRepo
	Orders     OrderRepo
	ItemValues ItemValueRepo
	Auth       Authorization
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		Machines:   NewMachineSQLite(database),
		Stops:      NewStopSQLite(database),
		Statuses:   NewStatusSQLite(database),
		Scans:      NewScanSQLite(database),
		Scrap:      NewScrapSQLite(database),
		Manual:     NewManualSQLite(database),
		Orders:     NewOrderSQLite(database),
		ItemValues: NewItemValueSQLite(database),
		Auth:       NewUserRepository(database),
	}
}

// InitDB opens the SQLite file and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
