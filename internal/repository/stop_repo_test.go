package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"production_board/internal/models"
)

func mustStop(id, machineID string, startedAt time.Time, reason string) models.MachineStop {
	return models.MachineStop{ID: id, MachineID: machineID, StartedAt: startedAt, Reason: reason}
}

func newMockStopRepo(t *testing.T) (*StopSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewStopSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestStopSQLite_Open(t *testing.T) {
	repo, mock, cleanup := newMockStopRepo(t)
	defer cleanup()

	started := time.Date(2026, 8, 24, 13, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO machine_stops").
		WithArgs("stop-1", "inj-01", "2026-08-24 13:00:00", "Troca de molde", "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Open(context.Background(), mustStop("stop-1", "inj-01", started, "Troca de molde"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStopSQLite_Open_GeneratesIDAndTimestamp(t *testing.T) {
	repo, mock, cleanup := newMockStopRepo(t)
	defer cleanup()

	// ID and started_at are filled in; only the fixed args are pinned.
	mock.ExpectExec("INSERT INTO machine_stops").
		WithArgs(sqlmock.AnyArg(), "inj-01", sqlmock.AnyArg(), "Falta de material", "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Open(context.Background(), mustStop("", "inj-01", time.Time{}, "Falta de material"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStopSQLite_Resume(t *testing.T) {
	cases := []struct {
		name    string
		expect  func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "closes open stop",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE machine_stops SET resumed_at").
					WithArgs("2026-08-24 14:00:00", "stop-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already closed reports ErrNoRows",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE machine_stops SET resumed_at").
					WithArgs("2026-08-24 14:00:00", "stop-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: sql.ErrNoRows,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := newMockStopRepo(t)
			defer cleanup()

			tc.expect(mock)

			at := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)
			err := repo.Resume(context.Background(), "stop-1", at)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestStopSQLite_ListOverlapping(t *testing.T) {
	repo, mock, cleanup := newMockStopRepo(t)
	defer cleanup()

	started := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	resumed := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "machine_id", "started_at", "resumed_at", "reason", "notes"}).
		AddRow("stop-1", "inj-01", started, resumed, "Troca de molde", "troca rápida").
		AddRow("stop-2", "inj-01", started.Add(time.Hour), nil, "Aguardando operador", nil)

	mock.ExpectQuery("SELECT id, machine_id, started_at, resumed_at, reason, notes").
		WithArgs("2026-08-25 00:00:00", "2026-08-24 00:00:00").
		WillReturnRows(rows)

	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	got, err := repo.ListOverlapping(context.Background(), from, from.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 stops, got %d", len(got))
	}
	if got[0].ResumedAt == nil || !got[0].ResumedAt.Equal(resumed) {
		t.Errorf("first stop resumed_at: got %v", got[0].ResumedAt)
	}
	if got[1].ResumedAt != nil {
		t.Errorf("open stop must have nil resumed_at, got %v", got[1].ResumedAt)
	}
	if got[1].Notes != "" {
		t.Errorf("null notes must scan empty, got %q", got[1].Notes)
	}
}

func TestStopSQLite_ListOverlapping_QueryError(t *testing.T) {
	repo, mock, cleanup := newMockStopRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, machine_id, started_at, resumed_at, reason, notes").
		WillReturnError(errors.New("db down"))

	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if _, err := repo.ListOverlapping(context.Background(), from, from.AddDate(0, 0, 1)); err == nil {
		t.Fatal("expected error, got nil")
	}
}
