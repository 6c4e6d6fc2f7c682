package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hvacsim/internal/diagnostics"
	"hvacsim/internal/models"
	"hvacsim/internal/repository"
	"hvacsim/internal/sim"

	"github.com/google/uuid"
)

// Default targets for a loop that has never been configured.
const (
	DefaultSetpointC   = 24.0
	DefaultHumidityPct = 60.0
	DefaultQExtraW     = 3000.0
)

// ErrLoopNotRunning rejects target changes on a loop that is not ticking.
var ErrLoopNotRunning = errors.New("cannot change targets: live loop is not running, start it first")

// LiveService owns the control surface of the incremental loop. The loop
// itself is advanced by SimulatorService; both share the persisted row.
type LiveService struct {
	liveRepo  repository.LiveRepo
	eventRepo repository.EventRepo
	engine    *sim.Engine
}

func NewLiveService(liveRepo repository.LiveRepo, eventRepo repository.EventRepo, engine *sim.Engine) *LiveService {
	return &LiveService{liveRepo: liveRepo, eventRepo: eventRepo, engine: engine}
}

// Start sets IsRunning=true with the given targets and logs LIVE_START.
// If no loop state exists yet, it initializes one from the configured
// initial temperature. An already simulated state is resumed, not reset.
func (s *LiveService) Start(ctx context.Context, t LiveTargets) error {
	if err := t.validate(); err != nil {
		return err
	}
	now := time.Now().UTC()

	st, err := s.liveRepo.Load(ctx)
	if err != nil {
		return err
	}
	if st.ID == 0 {
		st = s.baseline(now)
	}
	st.IsRunning = true
	st.SetpointC = t.SetpointC
	st.HumidityPct = t.HumidityPct
	st.QExtraW = t.QExtraW
	st.UpdatedAt = now

	if err := s.liveRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.SimEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        EventLiveStart,
		Description: "Live loop started",
		Metadata: map[string]any{
			"setpoint_c":   t.SetpointC,
			"humidity_pct": t.HumidityPct,
			"q_extra_w":    t.QExtraW,
		},
	})
}

// Stop pauses the loop and logs LIVE_STOP. Targets and the simulated
// state are kept so a later Start resumes where it left off.
func (s *LiveService) Stop(ctx context.Context) error {
	now := time.Now().UTC()

	st, err := s.liveRepo.Load(ctx)
	if err != nil {
		return err
	}
	if st.ID == 0 {
		st = s.baseline(now)
	}
	st.IsRunning = false
	st.UpdatedAt = now

	if err := s.liveRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.SimEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        EventLiveStop,
		Description: "Live loop stopped",
		Metadata: map[string]any{
			"time_s": st.State.Time,
			"temp_c": st.State.Temperature,
		},
	})
}

// SetTargets updates the targets of a running loop and logs TARGETS_CHANGE.
func (s *LiveService) SetTargets(ctx context.Context, t LiveTargets) error {
	if err := t.validate(); err != nil {
		return err
	}
	now := time.Now().UTC()

	st, err := s.liveRepo.Load(ctx)
	if err != nil {
		return err
	}
	if st.ID == 0 || !st.IsRunning {
		return ErrLoopNotRunning
	}

	st.SetpointC = t.SetpointC
	st.HumidityPct = t.HumidityPct
	st.QExtraW = t.QExtraW
	st.UpdatedAt = now

	if err := s.liveRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.SimEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        EventTargetsChange,
		Description: fmt.Sprintf("Targets changed: setpoint %.1f °C, humidity %.0f %%, load %.0f W", t.SetpointC, t.HumidityPct, t.QExtraW),
		Metadata: map[string]any{
			"setpoint_c":   t.SetpointC,
			"humidity_pct": t.HumidityPct,
			"q_extra_w":    t.QExtraW,
		},
	})
}

// Reset puts the loop back to its initial state, paused, with default
// targets, and logs RESET.
func (s *LiveService) Reset(ctx context.Context) error {
	now := time.Now().UTC()

	st := s.baseline(now)
	if err := s.liveRepo.Save(ctx, st); err != nil {
		return err
	}

	return s.eventRepo.Append(ctx, models.SimEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        EventReset,
		Description: "Live loop reset to initial state",
	})
}

// Snapshot returns the current loop status together with its diagnostic
// classification. A never-started loop yields the baseline snapshot.
func (s *LiveService) Snapshot(ctx context.Context) (LiveSnapshot, error) {
	st, err := s.liveRepo.Load(ctx)
	if err != nil {
		return LiveSnapshot{}, err
	}
	if st.ID == 0 {
		st = s.baseline(time.Now().UTC())
	}
	return LiveSnapshot{
		Status: st,
		Report: diagnostics.Classify(st.State, st.SetpointC),
	}, nil
}

// baseline is a paused loop at the configured initial temperature with
// default targets. The schema enforces the single row id=1.
func (s *LiveService) baseline(now time.Time) models.LiveStatus {
	p := s.engine.Params()
	return models.LiveStatus{
		ID:          1,
		IsRunning:   false,
		SetpointC:   DefaultSetpointC,
		HumidityPct: DefaultHumidityPct,
		QExtraW:     DefaultQExtraW,
		State:       s.engine.InitialState(p.TInitial),
		UpdatedAt:   now,
	}
}
