package plant

// ThermalModel integrates the room temperature as a single lumped thermal
// mass driven by the net heat balance:
//
//	T[k+1] = T[k] + (DT / C_THERMAL) * (Q_dist - Q_cool)
type ThermalModel struct {
	gain float64
}

// NewThermalModel builds the integrator for the given step size and thermal
// capacitance. Inputs come from a validated parameter bundle.
func NewThermalModel(dt, cThermal float64) ThermalModel {
	return ThermalModel{gain: dt / cThermal}
}

// Advance returns the next room temperature for the given disturbance and
// cooling powers. Temperature is left unbounded: keeping it in range is the
// controller's job, not the plant's.
func (m ThermalModel) Advance(current, qDist, qCool float64) float64 {
	return current + m.gain*(qDist-qCool)
}
