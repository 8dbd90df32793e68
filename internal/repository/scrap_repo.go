package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"production_board/internal/models"
)

type ScrapSQLite struct {
	db *sql.DB
}

func NewScrapSQLite(db *sql.DB) *ScrapSQLite { return &ScrapSQLite{db: db} }

var _ ScrapRepo = (*ScrapSQLite)(nil)

func (r *ScrapSQLite) Append(ctx context.Context, e models.ScrapEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scrap_entries (id, machine_id, order_id, qty, reason, shift, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.MachineID,
		e.OrderID,
		e.Qty,
		e.Reason,
		e.Shift,
		fmtTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert scrap for machine %q: %w", e.MachineID, err)
	}
	return nil
}

func (r *ScrapSQLite) ListInRange(ctx context.Context, from, to time.Time) ([]models.ScrapEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, machine_id, order_id, qty, reason, shift, created_at
		FROM scrap_entries
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC
	`, fmtTime(from), fmtTime(to))
	if err != nil {
		return nil, fmt.Errorf("list scrap: %w", err)
	}
	defer rows.Close()

	out := make([]models.ScrapEntry, 0, 32)
	for rows.Next() {
		var (
			se      models.ScrapEntry
			orderID sql.NullString
			shift   sql.NullString
		)
		if err := rows.Scan(&se.ID, &se.MachineID, &orderID, &se.Qty, &se.Reason, &shift, &se.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan scrap row: %w", err)
		}
		se.OrderID = orderID.String
		se.Shift = shift.String
		se.CreatedAt = se.CreatedAt.UTC()
		out = append(out, se)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
