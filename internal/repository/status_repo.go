package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"production_board/internal/models"
)

type StatusSQLite struct {
	db *sql.DB
}

func NewStatusSQLite(db *sql.DB) *StatusSQLite { return &StatusSQLite{db: db} }

var _ StatusRepo = (*StatusSQLite)(nil)

// Set closes the machine's open span at the new span's start and inserts
// the new span, in one transaction.
func (r *StatusSQLite) Set(ctx context.Context, span models.StatusSpan) error {
	if span.ID == "" {
		span.ID = uuid.NewString()
	}
	if span.StartedAt.IsZero() {
		span.StartedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin status transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		UPDATE status_spans SET ended_at = ? WHERE machine_id = ? AND ended_at IS NULL
	`, fmtTime(span.StartedAt), span.MachineID); err != nil {
		return fmt.Errorf("close open span for machine %q: %w", span.MachineID, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO status_spans (id, machine_id, status, reason, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, NULL)
	`,
		span.ID,
		span.MachineID,
		span.Status,
		span.Reason,
		fmtTime(span.StartedAt),
	); err != nil {
		return fmt.Errorf("insert span for machine %q: %w", span.MachineID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit status transaction: %w", err)
	}
	return nil
}

// Current returns the open span of every machine that has one.
func (r *StatusSQLite) Current(ctx context.Context) ([]models.StatusSpan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, machine_id, status, reason, started_at, ended_at
		FROM status_spans
		WHERE ended_at IS NULL
		ORDER BY machine_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list current spans: %w", err)
	}
	defer rows.Close()
	return scanSpans(rows)
}

// ListOverlapping returns spans intersecting [from, to), open ones included.
func (r *StatusSQLite) ListOverlapping(ctx context.Context, from, to time.Time) ([]models.StatusSpan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, machine_id, status, reason, started_at, ended_at
		FROM status_spans
		WHERE started_at < ? AND (ended_at IS NULL OR ended_at > ?)
		ORDER BY started_at ASC
	`, fmtTime(to), fmtTime(from))
	if err != nil {
		return nil, fmt.Errorf("list spans: %w", err)
	}
	defer rows.Close()
	return scanSpans(rows)
}

func scanSpans(rows *sql.Rows) ([]models.StatusSpan, error) {
	out := make([]models.StatusSpan, 0, 32)
	for rows.Next() {
		var (
			sp     models.StatusSpan
			reason sql.NullString
			ended  sql.NullTime
		)
		if err := rows.Scan(&sp.ID, &sp.MachineID, &sp.Status, &reason, &sp.StartedAt, &ended); err != nil {
			return nil, fmt.Errorf("scan span row: %w", err)
		}
		sp.Reason = reason.String
		sp.StartedAt = sp.StartedAt.UTC()
		if ended.Valid {
			t := ended.Time.UTC()
			sp.EndedAt = &t
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
