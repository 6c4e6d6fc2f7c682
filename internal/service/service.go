package service

import (
	"context"
	"time"

	"hvacsim/internal/models"
	"hvacsim/internal/repository"
	"hvacsim/internal/sim"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Simulation executes full batch runs and manages their stored results.
type Simulation interface {
	Execute(ctx context.Context, p RunParams) (models.SimulationRun, error)
	GetRun(ctx context.Context, runID string) (models.SimulationRun, error)
	ListRuns(ctx context.Context, limit int) ([]models.SimulationRun, error)
	RunHistory(ctx context.Context, runID string) (*sim.History, error)
	DeleteRun(ctx context.Context, runID string) error
}

// Live exposes control operations for the incremental loop:
// start/stop ticking, adjust targets, reset, and read a snapshot.
type Live interface {
	Start(ctx context.Context, t LiveTargets) error
	Stop(ctx context.Context) error
	SetTargets(ctx context.Context, t LiveTargets) error
	Reset(ctx context.Context) error
	Snapshot(ctx context.Context) (LiveSnapshot, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SimEvent, error)
}

// Simulator runs the background loop that advances the live state each tick.
// Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Simulation
	Live
	EventLog
	Simulator
	Authorization
}

// AuthOptions carries the token settings read from configuration.
type AuthOptions struct {
	SigningKey string
	TokenTTL   time.Duration
}

// NewService wires the repository layer and the simulation engine into
// concrete services. The engine is stateless and safely shared.
func NewService(repos *repository.Repository, eng *sim.Engine, auth AuthOptions) *Service {
	return &Service{
		Simulation:    NewSimulationService(repos.Runs, repos.Events, eng),
		Live:          NewLiveService(repos.Live, repos.Events, eng),
		EventLog:      NewEventLogService(repos.Events),
		Simulator:     NewSimulatorService(repos.Live, repos.Events, eng),
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
