package service

import (
	"context"
	"time"

	"hvacsim/internal/diagnostics"
	"hvacsim/internal/models"
	"hvacsim/internal/repository"
	"hvacsim/internal/sim"

	"github.com/google/uuid"
)

// SimulatorService advances the live loop. Each tick moves the simulated
// clock forward by exactly one engine step (DT seconds), regardless of
// wall time between ticks.
type SimulatorService struct {
	liveRepo  repository.LiveRepo
	eventRepo repository.EventRepo
	engine    *sim.Engine
}

func NewSimulatorService(liveRepo repository.LiveRepo, eventRepo repository.EventRepo, engine *sim.Engine) *SimulatorService {
	return &SimulatorService{liveRepo: liveRepo, eventRepo: eventRepo, engine: engine}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.advance(ctx, now.UTC())
		}
	}
}

// advance performs one engine step on the persisted loop state.
// Load/save errors skip the tick; the next one retries.
func (s *SimulatorService) advance(ctx context.Context, now time.Time) {
	st, err := s.liveRepo.Load(ctx)
	if err != nil || st.ID == 0 || !st.IsRunning {
		return
	}

	wasSaturated := diagnostics.Classify(st.State, st.SetpointC).Saturated

	st.State = s.engine.Step(st.State, st.SetpointC, st.HumidityPct, st.QExtraW)
	st.UpdatedAt = now
	if err := s.liveRepo.Save(ctx, st); err != nil {
		return
	}

	// Log only the rising edge, not every saturated tick.
	if !wasSaturated && diagnostics.Classify(st.State, st.SetpointC).Saturated {
		_ = s.eventRepo.Append(ctx, models.SimEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  now,
			Type:        EventSaturation,
			Description: "Fan entered saturation",
			Metadata: map[string]any{
				"fan_pct": st.State.FanSpeed,
				"temp_c":  st.State.Temperature,
				"time_s":  st.State.Time,
			},
		})
	}
}
