package sim

// State is a snapshot of the closed loop at one instant. Each step produces
// a fresh value; a State is never mutated after construction.
type State struct {
	Time        float64 `json:"time"`         // seconds since run start
	Temperature float64 `json:"temperature"`  // degC
	FanSpeed    float64 `json:"fan_speed"`    // percent, [0,100]
	FuzzyOutput float64 `json:"fuzzy_output"` // controller reference, percent
	QCool       float64 `json:"q_cool"`       // W
	QDist       float64 `json:"q_dist"`       // W
}
