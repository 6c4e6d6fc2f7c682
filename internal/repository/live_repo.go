package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hvacsim/internal/models"
)

type LiveSQLite struct {
	db *sql.DB
}

func NewLiveSQLite(db *sql.DB) *LiveSQLite {
	return &LiveSQLite{db: db}
}

// Ensure implementation of LiveRepo interface at compile time.
var _ LiveRepo = (*LiveSQLite)(nil)

const (
	liveStateRowID = 1

	insertOrUpdateLiveSQL = `
		INSERT INTO live_state
			(id, running, setpoint_c, humidity_pct, q_extra_w,
			 time_s, temp_c, fan_pct, fuzzy_pct, q_cool_w, q_dist_w, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			running=excluded.running,
			setpoint_c=excluded.setpoint_c,
			humidity_pct=excluded.humidity_pct,
			q_extra_w=excluded.q_extra_w,
			time_s=excluded.time_s,
			temp_c=excluded.temp_c,
			fan_pct=excluded.fan_pct,
			fuzzy_pct=excluded.fuzzy_pct,
			q_cool_w=excluded.q_cool_w,
			q_dist_w=excluded.q_dist_w,
			updated_at=excluded.updated_at
	`

	selectLiveSQL = `
		SELECT id, running, setpoint_c, humidity_pct, q_extra_w,
		       time_s, temp_c, fan_pct, fuzzy_pct, q_cool_w, q_dist_w, updated_at
		FROM live_state WHERE id=?
	`
)

// Save upserts the live_state row (id always 1). A zero UpdatedAt is
// replaced with the current UTC time.
func (r *LiveSQLite) Save(ctx context.Context, st models.LiveStatus) error {
	tsUTC := st.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateLiveSQL,
		liveStateRowID,
		st.IsRunning,
		st.SetpointC,
		st.HumidityPct,
		st.QExtraW,
		st.State.Time,
		st.State.Temperature,
		st.State.FanSpeed,
		st.State.FuzzyOutput,
		st.State.QCool,
		st.State.QDist,
		tsUTC,
	)
	return err
}

// Load fetches the single live_state row. A missing row yields the zero
// status and no error, so callers can detect "never started" via ID == 0.
func (r *LiveSQLite) Load(ctx context.Context) (models.LiveStatus, error) {
	row := r.db.QueryRowContext(ctx, selectLiveSQL, liveStateRowID)

	var st models.LiveStatus
	if err := row.Scan(
		&st.ID,
		&st.IsRunning,
		&st.SetpointC,
		&st.HumidityPct,
		&st.QExtraW,
		&st.State.Time,
		&st.State.Temperature,
		&st.State.FanSpeed,
		&st.State.FuzzyOutput,
		&st.State.QCool,
		&st.State.QDist,
		&st.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LiveStatus{}, nil
		}
		return models.LiveStatus{}, err
	}
	st.UpdatedAt = st.UpdatedAt.UTC()

	return st, nil
}
