package repository

import (
	"context"
	"database/sql"
	"fmt"

	"production_board/internal/models"
)

type OrderSQLite struct {
	db *sql.DB
}

func NewOrderSQLite(db *sql.DB) *OrderSQLite { return &OrderSQLite{db: db} }

var _ OrderRepo = (*OrderSQLite)(nil)

func (r *OrderSQLite) Save(ctx context.Context, o models.Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, number, machine_id, product, standard)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			number=excluded.number,
			machine_id=excluded.machine_id,
			product=excluded.product,
			standard=excluded.standard
	`, o.ID, o.Number, o.MachineID, o.Product, o.Standard)
	if err != nil {
		return fmt.Errorf("save order %q: %w", o.ID, err)
	}
	return nil
}

// Map returns every order keyed by ID. The table is small (one row per
// production order) so the reports load it whole.
func (r *OrderSQLite) Map(ctx context.Context) (map[string]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, number, machine_id, product, standard FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.Order, 64)
	for rows.Next() {
		var (
			o         models.Order
			machineID sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.Number, &machineID, &o.Product, &o.Standard); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		o.MachineID = machineID.String
		out[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
