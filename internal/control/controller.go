// Package control defines the fuzzy fan-speed controller for the HVAC loop.
//
// The controller maps the temperature error (sensed minus setpoint, degrees C)
// and the relative humidity (percent) to a target fan speed in percent. Rules
// lean toward stronger ventilation in humid air because evaporative comfort
// degrades as humidity rises.
package control

import (
	"fmt"

	"hvacsim/internal/fuzzy"
)

// Linguistic variable names.
const (
	VarError    = "error"
	VarHumidity = "humidity"
	VarFan      = "fan"
)

// Temperature error terms.
const (
	TermNegLarge = "NL"
	TermNegSmall = "NS"
	TermZero     = "ZE"
	TermPosSmall = "PS"
	TermPosLarge = "PL"
)

// Humidity terms.
const (
	TermDry   = "Dry"
	TermIdeal = "Ideal"
	TermHumid = "Humid"
)

// Fan speed terms.
const (
	TermFanOff    = "Off"
	TermFanLow    = "Low"
	TermFanMedium = "Medium"
	TermFanHigh   = "High"
)

// FanController wraps a fuzzy engine tuned for cooling-fan regulation.
type FanController struct {
	engine *fuzzy.Engine
}

type termDef struct {
	name string
	mf   fuzzy.Triangle
}

func buildVariable(name string, low, high, step float64, terms []termDef) (*fuzzy.Variable, error) {
	v, err := fuzzy.NewVariable(name, low, high, step)
	if err != nil {
		return nil, err
	}
	for _, td := range terms {
		if err := v.AddTerm(td.name, td.mf); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, td.name, err)
		}
	}
	return v, nil
}

// NewFanController builds the controller with its stock variables and rules.
func NewFanController() (*FanController, error) {
	errVar, err := buildVariable(VarError, -10, 10, 0.1, []termDef{
		{TermNegLarge, fuzzy.MustTriangle(-10, -10, -5)},
		{TermNegSmall, fuzzy.MustTriangle(-6, -3.75, -1.5)},
		{TermZero, fuzzy.MustTriangle(-2, 0, 2)},
		{TermPosSmall, fuzzy.MustTriangle(1.5, 3.75, 6)},
		{TermPosLarge, fuzzy.MustTriangle(5, 10, 10)},
	})
	if err != nil {
		return nil, fmt.Errorf("build error variable: %w", err)
	}

	humVar, err := buildVariable(VarHumidity, 0, 100, 1, []termDef{
		{TermDry, fuzzy.MustTriangle(0, 0, 40)},
		{TermIdeal, fuzzy.MustTriangle(30, 50, 70)},
		{TermHumid, fuzzy.MustTriangle(60, 100, 100)},
	})
	if err != nil {
		return nil, fmt.Errorf("build humidity variable: %w", err)
	}

	fanVar, err := buildVariable(VarFan, 0, 100, 1, []termDef{
		{TermFanOff, fuzzy.MustTriangle(0, 0, 20)},
		{TermFanLow, fuzzy.MustTriangle(15, 35, 45)},
		{TermFanMedium, fuzzy.MustTriangle(40, 57.5, 80)},
		{TermFanHigh, fuzzy.MustTriangle(75, 100, 100)},
	})
	if err != nil {
		return nil, fmt.Errorf("build fan variable: %w", err)
	}

	e := func(term string) fuzzy.Expr { return fuzzy.Term(VarError, term) }
	h := func(term string) fuzzy.Expr { return fuzzy.Term(VarHumidity, term) }

	rules := []fuzzy.Rule{
		{When: fuzzy.And(e(TermPosLarge), h(TermDry)), Then: TermFanMedium},
		{When: fuzzy.And(e(TermPosLarge), fuzzy.Or(h(TermIdeal), h(TermHumid))), Then: TermFanHigh},
		{When: fuzzy.And(e(TermPosSmall), h(TermDry)), Then: TermFanLow},
		{When: fuzzy.And(e(TermPosSmall), h(TermIdeal)), Then: TermFanMedium},
		{When: fuzzy.And(e(TermPosSmall), h(TermHumid)), Then: TermFanHigh},
		{When: e(TermZero), Then: TermFanLow},
		{When: fuzzy.Or(e(TermNegSmall), e(TermNegLarge)), Then: TermFanOff},
	}

	engine, err := fuzzy.NewEngine(fanVar, []*fuzzy.Variable{errVar, humVar}, rules)
	if err != nil {
		return nil, fmt.Errorf("assemble fan engine: %w", err)
	}
	return &FanController{engine: engine}, nil
}

// ComputeFanReference returns the target fan speed in [0,100] percent for the
// sensed temperature, the active setpoint and the relative humidity. Inputs
// outside the rule universes are treated as their nearest covered value.
func (c *FanController) ComputeFanReference(temperature, setpoint, humidity float64) float64 {
	return c.engine.Infer(map[string]float64{
		VarError:    temperature - setpoint,
		VarHumidity: humidity,
	})
}
