// Package sim composes the fuzzy controller, the fan actuator and the
// thermal plant into one deterministic time-stepped loop.
package sim

import (
	"fmt"

	"hvacsim/internal/control"
	"hvacsim/internal/plant"
)

// Engine owns one controller instance plus the actuator and plant models.
// Construction is the expensive part; Step and Run are cheap and free of
// side effects, so one Engine serves any number of sequential runs.
type Engine struct {
	params     Params
	controller *control.FanController
	fan        plant.FanModel
	thermal    plant.ThermalModel
}

// NewEngine validates the parameter bundle and assembles the loop.
func NewEngine(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("simulation params: %w", err)
	}
	ctrl, err := control.NewFanController()
	if err != nil {
		return nil, fmt.Errorf("build fan controller: %w", err)
	}
	return &Engine{
		params:     p,
		controller: ctrl,
		fan:        plant.NewFanModel(p.DT, p.TauFan, p.QMax),
		thermal:    plant.NewThermalModel(p.DT, p.CThermal),
	}, nil
}

// Params returns the constants the engine was built with.
func (e *Engine) Params() Params { return e.params }

// InitialState is the snapshot before the first step: time zero, fan at
// rest, and the disturbance at its configured default level.
func (e *Engine) InitialState(t0 float64) State {
	return State{
		Temperature: t0,
		QDist:       e.params.QBase + e.params.QExtraDefault,
	}
}

// Step advances the loop by one tick. The ordering is part of the contract:
// the controller reads the pre-step temperature, the freshly advanced fan
// command feeds the cooling power, and the thermal update uses this step's
// disturbance. The input state is not modified.
func (e *Engine) Step(s State, setpoint, humidity, qExtra float64) State {
	uFuzzy := e.controller.ComputeFanReference(s.Temperature, setpoint, humidity)
	fanNext := e.fan.Advance(s.FanSpeed, uFuzzy)
	qCool := e.fan.CoolingPower(fanNext)
	qDist := e.params.QBase + qExtra
	return State{
		Time:        s.Time + e.params.DT,
		Temperature: e.thermal.Advance(s.Temperature, qDist, qCool),
		FanSpeed:    fanNext,
		FuzzyOutput: uFuzzy,
		QCool:       qCool,
		QDist:       qDist,
	}
}

// Run executes floor(duration/DT) steps from a fresh initial state at t0.
// The returned history holds every state including the initial snapshot,
// so its length is always the step count plus one. Runs are fully
// deterministic: same inputs, same series.
func (e *Engine) Run(duration, setpoint, humidity, qExtra, t0 float64) (State, *History) {
	state := e.InitialState(t0)
	history := &History{}
	history.Append(state)

	steps := int(duration / e.params.DT)
	for i := 0; i < steps; i++ {
		state = e.Step(state, setpoint, humidity, qExtra)
		history.Append(state)
	}
	return state, history
}
