package fuzzy

import (
	"fmt"
	"math"
)

// Variable is a linguistic variable over a uniformly sampled universe
// [low, high]. The same type serves antecedents (fuzzified from a crisp
// input) and consequents (aggregated and defuzzified by the engine).
type Variable struct {
	name    string
	low     float64
	high    float64
	step    float64
	samples []float64
	terms   map[string]Triangle
	order   []string
}

// NewVariable builds a variable with an empty term set. The universe is
// sampled from low to high inclusive with the given step; step must be
// positive and high must be strictly above low.
func NewVariable(name string, low, high, step float64) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("variable name is empty")
	}
	if step <= 0 {
		return nil, fmt.Errorf("variable %q: step must be positive, got %g", name, step)
	}
	if high <= low {
		return nil, fmt.Errorf("variable %q: high %g must be above low %g", name, high, low)
	}

	n := int(math.Round((high-low)/step)) + 1
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = low + float64(i)*step
	}
	// Pin the last sample to the declared bound so accumulated float error
	// cannot push the universe past high.
	samples[n-1] = high

	return &Variable{
		name:    name,
		low:     low,
		high:    high,
		step:    step,
		samples: samples,
		terms:   make(map[string]Triangle),
	}, nil
}

// AddTerm registers a named membership function. Term names are unique per
// variable.
func (v *Variable) AddTerm(name string, mf Triangle) error {
	if name == "" {
		return fmt.Errorf("variable %q: term name is empty", v.name)
	}
	if _, exists := v.terms[name]; exists {
		return fmt.Errorf("variable %q: duplicate term %q", v.name, name)
	}
	v.terms[name] = mf
	v.order = append(v.order, name)
	return nil
}

// Name returns the variable name used in rule expressions.
func (v *Variable) Name() string { return v.name }

// Bounds returns the declared universe range.
func (v *Variable) Bounds() (low, high float64) { return v.low, v.high }

// Midpoint returns the center of the universe, the defuzzification
// fallback when no rule fires.
func (v *Variable) Midpoint() float64 { return (v.low + v.high) / 2 }

// Universe returns the sample grid. Callers must treat it as read-only.
func (v *Variable) Universe() []float64 { return v.samples }

// Term looks up a membership function by name.
func (v *Variable) Term(name string) (Triangle, bool) {
	mf, ok := v.terms[name]
	return mf, ok
}

// TermNames returns the term names in registration order.
func (v *Variable) TermNames() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Clamp pulls a crisp value into the universe range. Out-of-range inputs are
// accepted everywhere in the engine and clamped here rather than rejected,
// so edge terms stay active for values beyond the declared bounds.
func (v *Variable) Clamp(x float64) float64 {
	if x < v.low {
		return v.low
	}
	if x > v.high {
		return v.high
	}
	return x
}

// Fuzzify evaluates every term at the (clamped) crisp input and returns the
// degree per term name.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	x = v.Clamp(x)
	degrees := make(map[string]float64, len(v.terms))
	for name, mf := range v.terms {
		degrees[name] = mf.Degree(x)
	}
	return degrees
}
