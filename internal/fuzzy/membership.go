package fuzzy

import "fmt"

// Triangle is a triangular membership function with breakpoints a <= b <= c.
// Degenerate spans (a == b or b == c) are allowed and describe one-sided
// ramps: the collapsed side is treated as a plateau instead of a ramp, so
// evaluation never divides by zero.
type Triangle struct {
	A float64
	B float64
	C float64
}

// NewTriangle builds a triangular membership function and checks breakpoint
// ordering.
func NewTriangle(a, b, c float64) (Triangle, error) {
	if !(a <= b && b <= c) {
		return Triangle{}, fmt.Errorf("triangle breakpoints must satisfy a <= b <= c, got (%g, %g, %g)", a, b, c)
	}
	return Triangle{A: a, B: b, C: c}, nil
}

// MustTriangle is NewTriangle for static definitions; it panics on invalid
// breakpoints, which is a programming error rather than input data.
func MustTriangle(a, b, c float64) Triangle {
	t, err := NewTriangle(a, b, c)
	if err != nil {
		panic(err)
	}
	return t
}

// Degree evaluates the membership function at x. The result is always in
// [0, 1]: zero outside [a, c], one at the peak b, linear on both ramps.
func (t Triangle) Degree(x float64) float64 {
	switch {
	case x < t.A || x > t.C:
		return 0
	case x == t.B:
		return 1
	case x < t.B:
		// a < b is guaranteed here: x >= a and x < b rule out a == b.
		return (x - t.A) / (t.B - t.A)
	default:
		// b < c is guaranteed here for the same reason.
		return (t.C - x) / (t.C - t.B)
	}
}
