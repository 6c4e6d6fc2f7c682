// Package plant holds the discrete-time actuator and thermal models that
// close the loop around the fuzzy controller.
package plant

func clampPercent(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 100:
		return 100
	default:
		return x
	}
}

// FanModel applies first-order inertia to the fan command and maps the
// resulting command to cooling power.
//
//	u[k+1] = u[k] + alpha * (ref[k] - u[k])
//	Q_cool = Q_MAX * u / 100
type FanModel struct {
	alpha float64
	qMax  float64
}

// NewFanModel builds a fan model for the given step size, time constant and
// cooling capacity. A zero time constant makes the fan track its reference
// instantly. Inputs come from a validated parameter bundle.
func NewFanModel(dt, tauFan, qMax float64) FanModel {
	alpha := 1.0
	if tauFan > 0 {
		alpha = dt / tauFan
	}
	return FanModel{alpha: alpha, qMax: qMax}
}

// Advance moves the fan command one step toward the reference and saturates
// the result to [0,100] percent.
func (m FanModel) Advance(current, reference float64) float64 {
	return clampPercent(current + m.alpha*(reference-current))
}

// CoolingPower maps a fan command in percent to watts of cooling. The command
// is clamped before scaling, so the result stays in [0, Q_MAX].
func (m FanModel) CoolingPower(speed float64) float64 {
	return m.qMax * clampPercent(speed) / 100
}
