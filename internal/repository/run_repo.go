package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hvacsim/internal/models"
	"hvacsim/internal/sim"

	"github.com/google/uuid"
)

// ErrRunNotFound reports a run id with no stored row.
var ErrRunNotFound = errors.New("simulation run not found")

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

// Ensure implementation of RunRepo interface at compile time.
var _ RunRepo = (*RunSQLite)(nil)

const (
	insertRunSQL = `
		INSERT INTO simulation_runs
			(id, created_at, duration_s, setpoint_c, humidity_pct, q_extra_w, t0_c,
			 steps, final_temp_c, final_fan_pct, mean_fan_pct, min_temp_c, max_temp_c)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertSampleSQL = `
		INSERT INTO run_samples (run_id, idx, time_s, temp_c, fan_pct, fuzzy_pct, q_cool_w, q_dist_w)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRunSQL = `
		SELECT id, created_at, duration_s, setpoint_c, humidity_pct, q_extra_w, t0_c,
		       steps, final_temp_c, final_fan_pct, mean_fan_pct, min_temp_c, max_temp_c
		FROM simulation_runs WHERE id = ?
	`

	listRunsSQL = `
		SELECT id, created_at, duration_s, setpoint_c, humidity_pct, q_extra_w, t0_c,
		       steps, final_temp_c, final_fan_pct, mean_fan_pct, min_temp_c, max_temp_c
		FROM simulation_runs ORDER BY created_at DESC LIMIT ?
	`

	selectSamplesSQL = `
		SELECT time_s, temp_c, fan_pct, fuzzy_pct, q_cool_w, q_dist_w
		FROM run_samples WHERE run_id = ? ORDER BY idx ASC
	`

	runExistsSQL = `SELECT 1 FROM simulation_runs WHERE id = ?`

	deleteRunSQL = `DELETE FROM simulation_runs WHERE id = ?`

	defaultListLimit = 50
)

// Insert stores the run row and its full sample series in one transaction.
// Missing RunID/CreatedAt are filled in.
func (r *RunSQLite) Insert(ctx context.Context, run models.SimulationRun, history *sim.History) error {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	} else {
		run.CreatedAt = run.CreatedAt.UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run insert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, insertRunSQL,
		run.RunID, run.CreatedAt, run.DurationS, run.SetpointC, run.HumidityPct,
		run.QExtraW, run.T0C, run.Steps, run.FinalTempC, run.FinalFanPct,
		run.MeanFanPct, run.MinTempC, run.MaxTempC,
	); err != nil {
		return fmt.Errorf("insert run %q: %w", run.RunID, err)
	}

	if history != nil {
		stmt, err := tx.PrepareContext(ctx, insertSampleSQL)
		if err != nil {
			return fmt.Errorf("prepare sample insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < history.Len(); i++ {
			s := history.At(i)
			if _, err := stmt.ExecContext(ctx, run.RunID, i,
				s.Time, s.Temperature, s.FanSpeed, s.FuzzyOutput, s.QCool, s.QDist,
			); err != nil {
				return fmt.Errorf("insert sample %d of run %q: %w", i, run.RunID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %q: %w", run.RunID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.SimulationRun, error) {
	var run models.SimulationRun
	if err := row.Scan(
		&run.RunID, &run.CreatedAt, &run.DurationS, &run.SetpointC, &run.HumidityPct,
		&run.QExtraW, &run.T0C, &run.Steps, &run.FinalTempC, &run.FinalFanPct,
		&run.MeanFanPct, &run.MinTempC, &run.MaxTempC,
	); err != nil {
		return models.SimulationRun{}, err
	}
	run.CreatedAt = run.CreatedAt.UTC()
	return run, nil
}

// Get fetches one run by id. Returns ErrRunNotFound when absent.
func (r *RunSQLite) Get(ctx context.Context, runID string) (models.SimulationRun, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRunSQL, runID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SimulationRun{}, ErrRunNotFound
		}
		return models.SimulationRun{}, fmt.Errorf("select run %q: %w", runID, err)
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (r *RunSQLite) List(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, listRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.SimulationRun, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// History reloads the sample series of a run, in recorded order. An empty
// series is disambiguated against the run table: every stored run has at
// least its initial snapshot, so no samples means no run.
func (r *RunSQLite) History(ctx context.Context, runID string) (*sim.History, error) {
	rows, err := r.db.QueryContext(ctx, selectSamplesSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("select samples of run %q: %w", runID, err)
	}
	defer rows.Close()

	h := &sim.History{}
	for rows.Next() {
		var s sim.State
		if err := rows.Scan(&s.Time, &s.Temperature, &s.FanSpeed, &s.FuzzyOutput, &s.QCool, &s.QDist); err != nil {
			return nil, fmt.Errorf("scan sample of run %q: %w", runID, err)
		}
		h.Append(s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if h.Len() == 0 {
		var one int
		switch err := r.db.QueryRowContext(ctx, runExistsSQL, runID).Scan(&one); {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRunNotFound
		case err != nil:
			return nil, fmt.Errorf("probe run %q: %w", runID, err)
		}
	}
	return h, nil
}

// Delete removes a run; its samples go with it via the cascade.
func (r *RunSQLite) Delete(ctx context.Context, runID string) error {
	res, err := r.db.ExecContext(ctx, deleteRunSQL, runID)
	if err != nil {
		return fmt.Errorf("delete run %q: %w", runID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for run %q: %w", runID, err)
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}
