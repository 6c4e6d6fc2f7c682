package repository

import (
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"hvacsim/internal/models"
	"hvacsim/internal/sim"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLiveSQLite_Save_FillsZeroTimestampWithUTCNow(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := NewLiveSQLite(db)

	st := models.LiveStatus{
		IsRunning:   true,
		SetpointC:   24,
		HumidityPct: 60,
		QExtraW:     3000,
		State: sim.State{
			Time:        120,
			Temperature: 27.4,
			FanSpeed:    55.2,
			FuzzyOutput: 58.1,
			QCool:       9936,
			QDist:       5500,
		},
		// UpdatedAt zero
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO live_state")).
		WithArgs(
			liveStateRowID,
			st.IsRunning, st.SetpointC, st.HumidityPct, st.QExtraW,
			st.State.Time, st.State.Temperature, st.State.FanSpeed,
			st.State.FuzzyOutput, st.State.QCool, st.State.QDist,
			isRecentUTC(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(ctx(t), st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestLiveSQLite_Save_ConvertsGivenTimeToUTC(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := NewLiveSQLite(db)

	locTokyo, _ := time.LoadLocation("Asia/Tokyo")
	original := time.Date(2025, 4, 2, 9, 30, 0, 0, locTokyo)
	expectedUTC := original.UTC()

	isExactUTC := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		return ok && tm.Equal(expectedUTC) && tm.Location() == time.UTC
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO live_state")).
		WithArgs(
			liveStateRowID,
			false, 22.0, 45.0, 0.0,
			0.0, 30.0, 0.0, 0.0, 0.0, 2500.0,
			isExactUTC,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Save(ctx(t), models.LiveStatus{
		SetpointC:   22,
		HumidityPct: 45,
		State:       sim.State{Temperature: 30, QDist: 2500},
		UpdatedAt:   original,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestLiveSQLite_Load_NoRowsReturnsZeroValueAndNilError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := NewLiveSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM live_state WHERE id=?")).
		WithArgs(liveStateRowID).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Load(ctx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != (models.LiveStatus{}) {
		t.Fatalf("expected zero status, got %+v", got)
	}
}

func TestLiveSQLite_Load_HappyPath(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	repo := NewLiveSQLite(db)

	locNY, _ := time.LoadLocation("America/New_York")
	nonUTC := time.Date(2025, 4, 2, 8, 30, 0, 0, locNY)

	cols := []string{
		"id", "running", "setpoint_c", "humidity_pct", "q_extra_w",
		"time_s", "temp_c", "fan_pct", "fuzzy_pct", "q_cool_w", "q_dist_w", "updated_at",
	}
	rows := sqlmock.NewRows(cols).
		AddRow(1, true, 24.0, 60.0, 3000.0, 120.0, 27.4, 55.2, 58.1, 9936.0, 5500.0, nonUTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM live_state WHERE id=?")).
		WithArgs(liveStateRowID).
		WillReturnRows(rows)

	got, err := repo.Load(ctx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != 1 || !got.IsRunning || got.SetpointC != 24 || got.State.Temperature != 27.4 {
		t.Fatalf("unexpected status: %+v", got)
	}
	if got.UpdatedAt.Location() != time.UTC {
		t.Fatalf("UpdatedAt not UTC: %v", got.UpdatedAt)
	}
}
