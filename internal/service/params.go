package service

import (
	"errors"
	"fmt"
	"time"

	"hvacsim/internal/diagnostics"
	"hvacsim/internal/models"
)

// Event types recorded by the services.
const (
	EventRunComplete   = "RUN_COMPLETE"
	EventLiveStart     = "LIVE_START"
	EventLiveStop      = "LIVE_STOP"
	EventTargetsChange = "TARGETS_CHANGE"
	EventSaturation    = "SATURATION"
	EventReset         = "RESET"
)

// Accepted input ranges. Wider than any sensible room, narrow enough to
// keep the controller inside its tuned universes.
const (
	MinSetpointC   = 18.0
	MaxSetpointC   = 30.0
	MinHumidityPct = 20.0
	MaxHumidityPct = 90.0
	MaxQExtraW     = 8000.0
	MinInitialC    = 18.0
	MaxInitialC    = 35.0
	MaxDurationS   = 86400.0 // caps the stored sample series at one simulated day
)

// ErrInvalidParams is the base of every parameter validation error, so the
// HTTP layer can map the whole family to one status code.
var ErrInvalidParams = errors.New("invalid parameters")

var (
	errInvalidDuration = fmt.Errorf("%w: duration_s must be > 0 and <= 86400", ErrInvalidParams)
	errInvalidSetpoint = fmt.Errorf("%w: setpoint_c must be within [18, 30]", ErrInvalidParams)
	errInvalidHumidity = fmt.Errorf("%w: humidity_pct must be within [20, 90]", ErrInvalidParams)
	errInvalidLoad     = fmt.Errorf("%w: q_extra_w must be within [0, 8000]", ErrInvalidParams)
	errInvalidInitTemp = fmt.Errorf("%w: t0_c must be within [18, 35]", ErrInvalidParams)
)

// RunParams configures a full batch run.
type RunParams struct {
	DurationS   float64  // total simulated time, s
	SetpointC   float64  // target temperature, °C
	HumidityPct float64  // relative humidity, %RH
	QExtraW     float64  // extra heat load beyond the base load, W
	T0C         *float64 // initial temperature, °C; nil means the configured default
}

func (p RunParams) validate() error {
	if !(p.DurationS > 0 && p.DurationS <= MaxDurationS) {
		return errInvalidDuration
	}
	if err := validateTargets(p.SetpointC, p.HumidityPct, p.QExtraW); err != nil {
		return err
	}
	if p.T0C != nil && !(*p.T0C >= MinInitialC && *p.T0C <= MaxInitialC) {
		return errInvalidInitTemp
	}
	return nil
}

// LiveTargets carries the adjustable targets of the incremental loop.
type LiveTargets struct {
	SetpointC   float64
	HumidityPct float64
	QExtraW     float64
}

func (t LiveTargets) validate() error {
	return validateTargets(t.SetpointC, t.HumidityPct, t.QExtraW)
}

func validateTargets(setpoint, humidity, qExtra float64) error {
	if !(setpoint >= MinSetpointC && setpoint <= MaxSetpointC) {
		return errInvalidSetpoint
	}
	if !(humidity >= MinHumidityPct && humidity <= MaxHumidityPct) {
		return errInvalidHumidity
	}
	if !(qExtra >= 0 && qExtra <= MaxQExtraW) {
		return errInvalidLoad
	}
	return nil
}

// LiveSnapshot pairs the persisted live status with derived diagnostics.
type LiveSnapshot struct {
	Status models.LiveStatus  `json:"status"`
	Report diagnostics.Report `json:"report"`
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "" or one of the Event* constants
}
