package sim

// History accumulates a run as parallel time series. It grows by exactly one
// entry per step, plus the initial snapshot appended before the first step.
type History struct {
	Time        []float64 `json:"time"`
	Temperature []float64 `json:"temperature"`
	FanSpeed    []float64 `json:"fan_speed"`
	FuzzyOutput []float64 `json:"fuzzy_output"`
	QCool       []float64 `json:"q_cool"`
	QDist       []float64 `json:"q_dist"`
}

// Append records one snapshot at the end of every series.
func (h *History) Append(s State) {
	h.Time = append(h.Time, s.Time)
	h.Temperature = append(h.Temperature, s.Temperature)
	h.FanSpeed = append(h.FanSpeed, s.FanSpeed)
	h.FuzzyOutput = append(h.FuzzyOutput, s.FuzzyOutput)
	h.QCool = append(h.QCool, s.QCool)
	h.QDist = append(h.QDist, s.QDist)
}

// Len returns the number of recorded snapshots.
func (h *History) Len() int { return len(h.Time) }

// At reassembles the i-th snapshot. The index must be in [0, Len).
func (h *History) At(i int) State {
	return State{
		Time:        h.Time[i],
		Temperature: h.Temperature[i],
		FanSpeed:    h.FanSpeed[i],
		FuzzyOutput: h.FuzzyOutput[i],
		QCool:       h.QCool[i],
		QDist:       h.QDist[i],
	}
}
