package sim

import "fmt"

// Params bundles every physical constant the simulation depends on. There
// are no fallback values: callers supply a complete bundle and Validate
// rejects anything physically meaningless at construction time.
type Params struct {
	DT            float64 // step size, seconds
	CThermal      float64 // thermal capacitance, J/degC
	TInitial      float64 // initial room temperature, degC
	QBase         float64 // baseline disturbance load, W
	QExtraDefault float64 // extra disturbance assumed before the first step, W
	QMax          float64 // maximum cooling capacity, W
	TauFan        float64 // fan time constant, seconds; 0 means instantaneous
}

// Validate reports the first physically meaningless constant, if any.
func (p Params) Validate() error {
	switch {
	case p.DT <= 0:
		return fmt.Errorf("step size must be positive, got %g", p.DT)
	case p.CThermal <= 0:
		return fmt.Errorf("thermal capacitance must be positive, got %g", p.CThermal)
	case p.QMax < 0:
		return fmt.Errorf("max cooling capacity must not be negative, got %g", p.QMax)
	case p.TauFan < 0:
		return fmt.Errorf("fan time constant must not be negative, got %g", p.TauFan)
	}
	return nil
}
