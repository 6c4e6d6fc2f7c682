package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates the SQLite DB file and ensures all tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite handles a single writer best. Capping the pool at one connection
	// also keeps the pragmas below in effect for every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range sqlitePragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
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

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
}

const schemaSimulationRuns = `
CREATE TABLE IF NOT EXISTS simulation_runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    duration_s REAL NOT NULL,
    setpoint_c REAL NOT NULL,
    humidity_pct REAL NOT NULL,
    q_extra_w REAL NOT NULL,
    t0_c REAL NOT NULL,
    steps INTEGER NOT NULL,
    final_temp_c REAL NOT NULL,
    final_fan_pct REAL NOT NULL,
    mean_fan_pct REAL NOT NULL,
    min_temp_c REAL NOT NULL,
    max_temp_c REAL NOT NULL
);
`

const schemaRunSamples = `
CREATE TABLE IF NOT EXISTS run_samples (
    run_id TEXT NOT NULL REFERENCES simulation_runs(id) ON DELETE CASCADE,
    idx INTEGER NOT NULL,
    time_s REAL NOT NULL,
    temp_c REAL NOT NULL,
    fan_pct REAL NOT NULL,
    fuzzy_pct REAL NOT NULL,
    q_cool_w REAL NOT NULL,
    q_dist_w REAL NOT NULL,
    PRIMARY KEY (run_id, idx)
);
`

const schemaLiveState = `
CREATE TABLE IF NOT EXISTS live_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    running BOOLEAN NOT NULL,
    setpoint_c REAL NOT NULL,
    humidity_pct REAL NOT NULL,
    q_extra_w REAL NOT NULL,
    time_s REAL NOT NULL,
    temp_c REAL NOT NULL,
    fan_pct REAL NOT NULL,
    fuzzy_pct REAL NOT NULL,
    q_cool_w REAL NOT NULL,
    q_dist_w REAL NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaSimEvents = `
CREATE TABLE IF NOT EXISTS sim_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
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
	schemas := []struct {
		table string
		ddl   string
	}{
		{"simulation_runs", schemaSimulationRuns},
		{"run_samples", schemaRunSamples},
		{"live_state", schemaLiveState},
		{"sim_events", schemaSimEvents},
		{"users", schemaUsers},
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range schemas {
		if _, err := tx.Exec(s.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", s.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
