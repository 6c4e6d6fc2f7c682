// Package diagnostics turns raw simulation snapshots into categorical
// readings: which error band the loop sits in, how hard the fan works and
// whether the cooling keeps up with the load.
package diagnostics

import "hvacsim/internal/sim"

// ErrorLabel names the temperature error band.
type ErrorLabel string

const (
	LabelNL ErrorLabel = "NL"
	LabelNS ErrorLabel = "NS"
	LabelZE ErrorLabel = "ZE"
	LabelPS ErrorLabel = "PS"
	LabelPL ErrorLabel = "PL"
)

// FanRegime names the operating band of the fan command.
type FanRegime string

const (
	FanOff       FanRegime = "off"
	FanLow       FanRegime = "low"
	FanMedium    FanRegime = "medium"
	FanHigh      FanRegime = "high"
	FanSaturated FanRegime = "saturated"
)

// LoadRegime names the disturbance load band.
type LoadRegime string

const (
	LoadLight    LoadRegime = "light"
	LoadModerate LoadRegime = "moderate"
	LoadHeavy    LoadRegime = "heavy"
)

// ComfortState locates the room temperature against the comfort band.
type ComfortState string

const (
	ComfortBelow  ComfortState = "below comfort"
	ComfortInside ComfortState = "inside comfort"
	ComfortAbove  ComfortState = "above comfort"
)

// Aggressiveness names how strongly the controller is pushing.
type Aggressiveness string

const (
	ControlWeak     Aggressiveness = "weak"
	ControlModerate Aggressiveness = "moderate"
	ControlStrong   Aggressiveness = "strong"
)

// EnergyBalance compares delivered cooling against the disturbance load.
type EnergyBalance string

const (
	EnergyDeficit  EnergyBalance = "deficit"
	EnergyBalanced EnergyBalance = "balanced"
	EnergySurplus  EnergyBalance = "surplus"
)

// Report is the categorical reading of one snapshot.
type Report struct {
	ErrorValue     float64        `json:"error_value"`
	ErrorLabel     ErrorLabel     `json:"error_label"`
	FanRegime      FanRegime      `json:"fan_regime"`
	LoadRegime     LoadRegime     `json:"load_regime"`
	Comfort        ComfortState   `json:"comfort_state"`
	Aggressiveness Aggressiveness `json:"control_aggressiveness"`
	EnergyBalance  EnergyBalance  `json:"energy_balance_state"`
	Saturated      bool           `json:"saturation_flag"`
}

// Classify reads one snapshot against the active setpoint.
func Classify(s sim.State, setpoint float64) Report {
	errValue := s.Temperature - setpoint
	fanRegime := classifyFan(s.FanSpeed)

	return Report{
		ErrorValue:     errValue,
		ErrorLabel:     classifyError(errValue),
		FanRegime:      fanRegime,
		LoadRegime:     classifyLoad(s.QDist),
		Comfort:        classifyComfort(s.Temperature, setpoint),
		Aggressiveness: classifyAggressiveness(s.FuzzyOutput),
		EnergyBalance:  classifyEnergyBalance(s.QCool, s.QDist),
		Saturated:      fanRegime == FanSaturated,
	}
}

func classifyError(e float64) ErrorLabel {
	switch {
	case e <= -5:
		return LabelNL
	case e <= -1.5:
		return LabelNS
	case e < 1.5:
		return LabelZE
	case e < 5:
		return LabelPS
	default:
		return LabelPL
	}
}

func classifyFan(u float64) FanRegime {
	switch {
	case u < 5:
		return FanOff
	case u < 30:
		return FanLow
	case u < 60:
		return FanMedium
	case u < 90:
		return FanHigh
	default:
		return FanSaturated
	}
}

func classifyLoad(qDist float64) LoadRegime {
	switch {
	case qDist < 3000:
		return LoadLight
	case qDist < 5500:
		return LoadModerate
	default:
		return LoadHeavy
	}
}

func classifyComfort(temp, setpoint float64) ComfortState {
	switch {
	case temp < setpoint-1:
		return ComfortBelow
	case temp > setpoint+1:
		return ComfortAbove
	default:
		return ComfortInside
	}
}

func classifyAggressiveness(uFuzzy float64) Aggressiveness {
	switch {
	case uFuzzy < 25:
		return ControlWeak
	case uFuzzy < 60:
		return ControlModerate
	default:
		return ControlStrong
	}
}

func classifyEnergyBalance(qCool, qDist float64) EnergyBalance {
	switch delta := qCool - qDist; {
	case delta < -500:
		return EnergyDeficit
	case delta > 500:
		return EnergySurplus
	default:
		return EnergyBalanced
	}
}
