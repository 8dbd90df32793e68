package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"production_board/internal/models"
)

// timeLayout is the SQLite TIMESTAMP format used across the repositories.
const timeLayout = "2006-01-02 15:04:05"

// fmtTime renders an instant in the storage format, normalized to UTC.
func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

type StopSQLite struct {
	db *sql.DB
}

func NewStopSQLite(db *sql.DB) *StopSQLite { return &StopSQLite{db: db} }

var _ StopRepo = (*StopSQLite)(nil)

// Open inserts a new open stop. If ID or StartedAt are empty, they're set.
func (r *StopSQLite) Open(ctx context.Context, s models.MachineStop) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO machine_stops (id, machine_id, started_at, resumed_at, reason, notes)
		VALUES (?, ?, ?, NULL, ?, ?)
	`,
		s.ID,
		s.MachineID,
		fmtTime(s.StartedAt),
		s.Reason,
		s.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert stop for machine %q: %w", s.MachineID, err)
	}
	return nil
}

// Resume closes an open stop. Resuming an unknown or already-closed stop
// is reported as sql.ErrNoRows.
func (r *StopSQLite) Resume(ctx context.Context, stopID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE machine_stops SET resumed_at = ? WHERE id = ? AND resumed_at IS NULL
	`, fmtTime(at), stopID)
	if err != nil {
		return fmt.Errorf("resume stop %q: %w", stopID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resume stop %q: rows affected: %w", stopID, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListOverlapping returns stops intersecting [from, to), open stops included,
// ordered by start.
func (r *StopSQLite) ListOverlapping(ctx context.Context, from, to time.Time) ([]models.MachineStop, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, machine_id, started_at, resumed_at, reason, notes
		FROM machine_stops
		WHERE started_at < ? AND (resumed_at IS NULL OR resumed_at > ?)
		ORDER BY started_at ASC
	`, fmtTime(to), fmtTime(from))
	if err != nil {
		return nil, fmt.Errorf("list stops: %w", err)
	}
	defer rows.Close()

	out := make([]models.MachineStop, 0, 64)
	for rows.Next() {
		var (
			st      models.MachineStop
			resumed sql.NullTime
			notes   sql.NullString
		)
		if err := rows.Scan(&st.ID, &st.MachineID, &st.StartedAt, &resumed, &st.Reason, &notes); err != nil {
			return nil, fmt.Errorf("scan stop row: %w", err)
		}
		st.StartedAt = st.StartedAt.UTC()
		if resumed.Valid {
			t := resumed.Time.UTC()
			st.ResumedAt = &t
		}
		st.Notes = notes.String
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
