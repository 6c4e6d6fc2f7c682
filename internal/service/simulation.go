package service

import (
	"context"
	"time"

	"hvacsim/internal/models"
	"hvacsim/internal/repository"
	"hvacsim/internal/sim"

	"github.com/google/uuid"
)

// SimulationService runs complete closed-loop simulations and persists
// their results as queryable runs.
type SimulationService struct {
	runRepo   repository.RunRepo
	eventRepo repository.EventRepo
	engine    *sim.Engine
}

func NewSimulationService(runRepo repository.RunRepo, eventRepo repository.EventRepo, engine *sim.Engine) *SimulationService {
	return &SimulationService{runRepo: runRepo, eventRepo: eventRepo, engine: engine}
}

// Execute validates the parameters, runs the whole loop to completion,
// stores the summary with its sample series, and logs RUN_COMPLETE.
func (s *SimulationService) Execute(ctx context.Context, p RunParams) (models.SimulationRun, error) {
	if err := p.validate(); err != nil {
		return models.SimulationRun{}, err
	}

	t0 := s.engine.Params().TInitial
	if p.T0C != nil {
		t0 = *p.T0C
	}

	final, history := s.engine.Run(p.DurationS, p.SetpointC, p.HumidityPct, p.QExtraW, t0)

	run := models.SimulationRun{
		RunID:       uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		DurationS:   p.DurationS,
		SetpointC:   p.SetpointC,
		HumidityPct: p.HumidityPct,
		QExtraW:     p.QExtraW,
		T0C:         t0,
		Steps:       history.Len() - 1,
		FinalTempC:  final.Temperature,
		FinalFanPct: final.FanSpeed,
		MeanFanPct:  meanOf(history.FanSpeed),
		MinTempC:    minOf(history.Temperature),
		MaxTempC:    maxOf(history.Temperature),
	}

	if err := s.runRepo.Insert(ctx, run, history); err != nil {
		return models.SimulationRun{}, err
	}

	err := s.eventRepo.Append(ctx, models.SimEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  run.CreatedAt,
		Type:        EventRunComplete,
		Description: "Batch simulation finished",
		Metadata: map[string]any{
			"run_id":       run.RunID,
			"duration_s":   run.DurationS,
			"final_temp_c": run.FinalTempC,
			"mean_fan_pct": run.MeanFanPct,
		},
	})
	if err != nil {
		return models.SimulationRun{}, err
	}

	return run, nil
}

func (s *SimulationService) GetRun(ctx context.Context, runID string) (models.SimulationRun, error) {
	return s.runRepo.Get(ctx, runID)
}

func (s *SimulationService) ListRuns(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	return s.runRepo.List(ctx, limit)
}

func (s *SimulationService) RunHistory(ctx context.Context, runID string) (*sim.History, error) {
	return s.runRepo.History(ctx, runID)
}

func (s *SimulationService) DeleteRun(ctx context.Context, runID string) error {
	return s.runRepo.Delete(ctx, runID)
}

// Series helpers. Every history holds at least the initial snapshot,
// so the slices are never empty here.

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
