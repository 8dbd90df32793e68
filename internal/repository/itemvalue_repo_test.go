package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestItemValueSQLite_Map(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"code", "unit_value"}).
		AddRow("500123", "1.50").
		AddRow("500941", "0.725").
		AddRow("bad", "not-a-number") // skipped, not fatal

	mock.ExpectQuery("SELECT code, unit_value FROM item_values").WillReturnRows(rows)

	repo := NewItemValueSQLite(db)
	got, err := repo.Map(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 parsed values, got %d", len(got))
	}
	if !got["500123"].Equal(decimal.RequireFromString("1.50")) {
		t.Errorf("500123: got %s", got["500123"])
	}
	if _, ok := got["bad"]; ok {
		t.Error("unparseable row must be skipped")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestItemValueSQLite_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO item_values").
		WithArgs("500123", "1.5").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewItemValueSQLite(db)
	if err := repo.Save(context.Background(), "500123", decimal.RequireFromString("1.5")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
