package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"production_board/internal/models"
)

type ManualSQLite struct {
	db *sql.DB
}

func NewManualSQLite(db *sql.DB) *ManualSQLite { return &ManualSQLite{db: db} }

var _ ManualRepo = (*ManualSQLite)(nil)

func (r *ManualSQLite) Append(ctx context.Context, e models.ManualEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO manual_entries (id, machine_id, order_id, good_qty, shift, product, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.MachineID,
		e.OrderID,
		e.GoodQty,
		e.Shift,
		e.Product,
		fmtTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert manual entry for machine %q: %w", e.MachineID, err)
	}
	return nil
}

func (r *ManualSQLite) ListInRange(ctx context.Context, from, to time.Time) ([]models.ManualEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, machine_id, order_id, good_qty, shift, product, created_at
		FROM manual_entries
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC
	`, fmtTime(from), fmtTime(to))
	if err != nil {
		return nil, fmt.Errorf("list manual entries: %w", err)
	}
	defer rows.Close()

	out := make([]models.ManualEntry, 0, 32)
	for rows.Next() {
		var (
			me      models.ManualEntry
			orderID sql.NullString
			product sql.NullString
		)
		if err := rows.Scan(&me.ID, &me.MachineID, &orderID, &me.GoodQty, &me.Shift, &product, &me.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan manual row: %w", err)
		}
		me.OrderID = orderID.String
		me.Product = product.String
		me.CreatedAt = me.CreatedAt.UTC()
		out = append(out, me)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
