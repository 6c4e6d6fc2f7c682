// Package fuzzy implements a small Mamdani inference engine: triangular
// membership functions over sampled universes, min/max rule evaluation and
// centroid defuzzification. It covers exactly the shapes needed by the fan
// controller and is not a general fuzzy-logic toolkit.
package fuzzy

import "fmt"

// Engine evaluates a fixed rule base. Construction validates the
// definitions once; Infer can then run any number of times without
// rebuilding, and never fails at evaluation time.
type Engine struct {
	inputs map[string]*Variable
	output *Variable
	rules  []Rule
}

// NewEngine wires antecedent variables, one consequent variable and the
// rule base together. Every rule antecedent must reference declared input
// variables/terms and every consequent term must exist on the output
// variable.
func NewEngine(output *Variable, inputs []*Variable, rules []Rule) (*Engine, error) {
	if output == nil {
		return nil, fmt.Errorf("engine: output variable is nil")
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("engine: rule base is empty")
	}

	byName := make(map[string]*Variable, len(inputs))
	for _, v := range inputs {
		if v == nil {
			return nil, fmt.Errorf("engine: nil input variable")
		}
		if _, dup := byName[v.Name()]; dup {
			return nil, fmt.Errorf("engine: duplicate input variable %q", v.Name())
		}
		byName[v.Name()] = v
	}

	for i, r := range rules {
		if r.When == nil {
			return nil, fmt.Errorf("engine: rule %d has no antecedent", i)
		}
		if err := r.When.validate(byName); err != nil {
			return nil, fmt.Errorf("engine: rule %d: %w", i, err)
		}
		if _, ok := output.Term(r.Then); !ok {
			return nil, fmt.Errorf("engine: rule %d concludes unknown term %q of output %q", i, r.Then, output.Name())
		}
	}

	return &Engine{inputs: byName, output: output, rules: rules}, nil
}

// Infer runs one Mamdani pass over the crisp inputs (keyed by variable
// name) and returns the defuzzified output. Inputs beyond a universe are
// clamped during fuzzification; variables missing from the map fuzzify to
// zero for every term. If no rule fires the result falls back to the output
// universe midpoint, a guard that the exhaustive rule table never reaches
// in normal operation. The crisp result is clamped into the output range.
func (e *Engine) Infer(crisp map[string]float64) float64 {
	fz := make(Fuzzified, len(e.inputs))
	for name, v := range e.inputs {
		x, ok := crisp[name]
		if !ok {
			continue
		}
		fz[name] = v.Fuzzify(x)
	}

	universe := e.output.Universe()
	agg := make([]float64, len(universe))
	for _, r := range e.rules {
		s := r.When.Strength(fz)
		if s <= 0 {
			continue
		}
		mf, _ := e.output.Term(r.Then)
		for i, x := range universe {
			// Implication clips the consequent at the firing strength;
			// aggregation keeps the pointwise maximum across rules.
			d := mf.Degree(x)
			if d > s {
				d = s
			}
			if d > agg[i] {
				agg[i] = d
			}
		}
	}

	var num, den float64
	for i, x := range universe {
		num += x * agg[i]
		den += agg[i]
	}
	if den <= 0 {
		return e.output.Midpoint()
	}
	return e.output.Clamp(num / den)
}
