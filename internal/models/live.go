package models

import (
	"time"

	"hvacsim/internal/sim"
)

// LiveStatus is the persisted snapshot of the real-time loop: the targets it
// is driven with plus the latest simulation state.
type LiveStatus struct {
	ID          int       `json:"id"`
	IsRunning   bool      `json:"is_running"`
	SetpointC   float64   `json:"setpoint_c"`   // °C
	HumidityPct float64   `json:"humidity_pct"` // %
	QExtraW     float64   `json:"q_extra_w"`    // W
	State       sim.State `json:"state"`
	UpdatedAt   time.Time `json:"updated_at"`
}
