package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates the SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaMachines = `
CREATE TABLE IF NOT EXISTS machines (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    kind TEXT NOT NULL
);
`

const schemaMachineStops = `
CREATE TABLE IF NOT EXISTS machine_stops (
    id TEXT PRIMARY KEY,
    machine_id TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    resumed_at TIMESTAMP,
    reason TEXT NOT NULL,
    notes TEXT
);
`

const schemaStatusSpans = `
CREATE TABLE IF NOT EXISTS status_spans (
    id TEXT PRIMARY KEY,
    machine_id TEXT NOT NULL,
    status TEXT NOT NULL,
    reason TEXT,
    started_at TIMESTAMP NOT NULL,
    ended_at TIMESTAMP
);
`

const schemaProductionScans = `
CREATE TABLE IF NOT EXISTS production_scans (
    id TEXT PRIMARY KEY,
    machine_id TEXT NOT NULL,
    order_id TEXT NOT NULL,
    scanned_box INTEGER NOT NULL,
    shift TEXT,
    created_at TIMESTAMP NOT NULL
);
`

const schemaScrapEntries = `
CREATE TABLE IF NOT EXISTS scrap_entries (
    id TEXT PRIMARY KEY,
    machine_id TEXT NOT NULL,
    order_id TEXT,
    qty INTEGER NOT NULL,
    reason TEXT NOT NULL,
    shift TEXT,
    created_at TIMESTAMP NOT NULL
);
`

const schemaManualEntries = `
CREATE TABLE IF NOT EXISTS manual_entries (
    id TEXT PRIMARY KEY,
    machine_id TEXT NOT NULL,
    order_id TEXT,
    good_qty INTEGER NOT NULL,
    shift TEXT NOT NULL,
    product TEXT,
    created_at TIMESTAMP NOT NULL
);
`

const schemaOrders = `
CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    number TEXT NOT NULL,
    machine_id TEXT,
    product TEXT NOT NULL,
    standard TEXT NOT NULL
);
`

const schemaItemValues = `
CREATE TABLE IF NOT EXISTS item_values (
    code TEXT PRIMARY KEY,
    unit_value TEXT NOT NULL
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaMachines,
		schemaMachineStops,
		schemaStatusSpans,
		schemaProductionScans,
		schemaScrapEntries,
		schemaManualEntries,
		schemaOrders,
		schemaItemValues,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
