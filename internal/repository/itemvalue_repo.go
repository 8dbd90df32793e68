package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type ItemValueSQLite struct {
	db *sql.DB
}

func NewItemValueSQLite(db *sql.DB) *ItemValueSQLite { return &ItemValueSQLite{db: db} }

var _ ItemValueRepo = (*ItemValueSQLite)(nil)

func (r *ItemValueSQLite) Save(ctx context.Context, code string, unitValue decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO item_values (code, unit_value) VALUES (?, ?)
		ON CONFLICT(code) DO UPDATE SET unit_value=excluded.unit_value
	`, code, unitValue.String())
	if err != nil {
		return fmt.Errorf("save item value %q: %w", code, err)
	}
	return nil
}

// Map returns the full code -> unit-value table. Rows with unparseable
// values are skipped; a bad row must not break valuation.
func (r *ItemValueSQLite) Map(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, unit_value FROM item_values`)
	if err != nil {
		return nil, fmt.Errorf("list item values: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal, 64)
	for rows.Next() {
		var code, raw string
		if err := rows.Scan(&code, &raw); err != nil {
			return nil, fmt.Errorf("scan item value row: %w", err)
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		out[code] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
