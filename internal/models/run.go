package models

import "time"

// SimulationRun is one stored batch run: the inputs it was started with and
// the summary figures computed from its history.
type SimulationRun struct {
	RunID       string    `json:"run_id"`
	CreatedAt   time.Time `json:"created_at"`
	DurationS   float64   `json:"duration_s"`
	SetpointC   float64   `json:"setpoint_c"`    // °C
	HumidityPct float64   `json:"humidity_pct"`  // %
	QExtraW     float64   `json:"q_extra_w"`     // W
	T0C         float64   `json:"t0_c"`          // °C
	Steps       int       `json:"steps"`         // excludes the initial snapshot
	FinalTempC  float64   `json:"final_temp_c"`  // °C
	FinalFanPct float64   `json:"final_fan_pct"` // %
	MeanFanPct  float64   `json:"mean_fan_pct"`  // %
	MinTempC    float64   `json:"min_temp_c"`    // °C
	MaxTempC    float64   `json:"max_temp_c"`    // °C
}
