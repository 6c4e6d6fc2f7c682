package repository

import (
	"context"
	"database/sql"
	"time"

	"hvacsim/internal/models"
	"hvacsim/internal/repository/db"
	"hvacsim/internal/sim"
)

// InitDB opens/creates the SQLite file and ensures the schema exists.
// Thin forwarder so callers depend on this package only.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// RunRepo stores finished batch runs together with their full sample series.
type RunRepo interface {
	Insert(ctx context.Context, run models.SimulationRun, history *sim.History) error
	Get(ctx context.Context, runID string) (models.SimulationRun, error)
	List(ctx context.Context, limit int) ([]models.SimulationRun, error)
	History(ctx context.Context, runID string) (*sim.History, error)
	Delete(ctx context.Context, runID string) error
}

// LiveRepo persists the single live-loop snapshot.
type LiveRepo interface {
	Save(ctx context.Context, st models.LiveStatus) error
	Load(ctx context.Context) (models.LiveStatus, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.SimEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.SimEvent, error)
}

type Repository struct {
	Runs   RunRepo
	Live   LiveRepo
	Events EventRepo
	Auth   Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Runs:   NewRunSQLite(db),
		Live:   NewLiveSQLite(db),
		Events: NewEventSQLite(db),
		Auth:   NewUserRepository(db),
	}
}
