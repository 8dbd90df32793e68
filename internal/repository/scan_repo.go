package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"production_board/internal/models"
)

type ScanSQLite struct {
	db *sql.DB
}

func NewScanSQLite(db *sql.DB) *ScanSQLite { return &ScanSQLite{db: db} }

var _ ScanRepo = (*ScanSQLite)(nil)

// Append inserts one box scan. If ID or CreatedAt are empty, they're set.
func (r *ScanSQLite) Append(ctx context.Context, s models.ProductionScan) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO production_scans (id, machine_id, order_id, scanned_box, shift, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		s.ID,
		s.MachineID,
		s.OrderID,
		s.ScannedBox,
		s.Shift,
		fmtTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert scan for order %q: %w", s.OrderID, err)
	}
	return nil
}

// ListInRange returns scans with created_at in [from, to), ordered ASC.
func (r *ScanSQLite) ListInRange(ctx context.Context, from, to time.Time) ([]models.ProductionScan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, machine_id, order_id, scanned_box, shift, created_at
		FROM production_scans
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC
	`, fmtTime(from), fmtTime(to))
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	out := make([]models.ProductionScan, 0, 64)
	for rows.Next() {
		var (
			sc    models.ProductionScan
			shift sql.NullString
		)
		if err := rows.Scan(&sc.ID, &sc.MachineID, &sc.OrderID, &sc.ScannedBox, &shift, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production row: %w", err)
		}
		sc.Shift = shift.String
		sc.CreatedAt = sc.CreatedAt.UTC()
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
