package repository

import (
	"context"
	"database/sql"
	"fmt"

	"production_board/internal/models"
)

type MachineSQLite struct {
	db *sql.DB
}

func NewMachineSQLite(db *sql.DB) *MachineSQLite { return &MachineSQLite{db: db} }

var _ MachineRepo = (*MachineSQLite)(nil)

func (r *MachineSQLite) List(ctx context.Context) ([]models.Machine, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, kind FROM machines ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()

	out := make([]models.Machine, 0, 16)
	for rows.Next() {
		var m models.Machine
		if err := rows.Scan(&m.ID, &m.Name, &m.Kind); err != nil {
			return nil, fmt.Errorf("scan machine row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MachineSQLite) Upsert(ctx context.Context, m models.Machine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO machines (id, name, kind) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, kind=excluded.kind
	`, m.ID, m.Name, m.Kind)
	if err != nil {
		return fmt.Errorf("upsert machine %q: %w", m.ID, err)
	}
	return nil
}
