package fuzzy

import "fmt"

// Fuzzified holds the output of the fuzzification pass: degree per term,
// keyed by variable name then term name.
type Fuzzified map[string]map[string]float64

// Expr is one node of a rule antecedent tree. The three implementations are
// term references, fuzzy AND (minimum) and fuzzy OR (maximum); rules stay
// plain data evaluated by recursive descent.
type Expr interface {
	// Strength computes the firing degree of this node against fuzzified
	// inputs. Unknown variables or terms contribute degree zero.
	Strength(in Fuzzified) float64

	// validate checks that every referenced variable and term exists.
	validate(vars map[string]*Variable) error
}

type termRef struct {
	variable string
	term     string
}

type andExpr struct {
	left  Expr
	right Expr
}

type orExpr struct {
	left  Expr
	right Expr
}

// Term references a single antecedent term, e.g. Term("error", "PL").
func Term(variable, term string) Expr { return termRef{variable: variable, term: term} }

// And combines two antecedent expressions with fuzzy AND (minimum).
func And(left, right Expr) Expr { return andExpr{left: left, right: right} }

// Or combines two antecedent expressions with fuzzy OR (maximum).
func Or(left, right Expr) Expr { return orExpr{left: left, right: right} }

func (t termRef) Strength(in Fuzzified) float64 {
	degrees, ok := in[t.variable]
	if !ok {
		return 0
	}
	return degrees[t.term]
}

func (t termRef) validate(vars map[string]*Variable) error {
	v, ok := vars[t.variable]
	if !ok {
		return fmt.Errorf("rule references unknown variable %q", t.variable)
	}
	if _, ok := v.Term(t.term); !ok {
		return fmt.Errorf("rule references unknown term %q of variable %q", t.term, t.variable)
	}
	return nil
}

func (a andExpr) Strength(in Fuzzified) float64 {
	l := a.left.Strength(in)
	r := a.right.Strength(in)
	if l < r {
		return l
	}
	return r
}

func (a andExpr) validate(vars map[string]*Variable) error {
	if err := a.left.validate(vars); err != nil {
		return err
	}
	return a.right.validate(vars)
}

func (o orExpr) Strength(in Fuzzified) float64 {
	l := o.left.Strength(in)
	r := o.right.Strength(in)
	if l > r {
		return l
	}
	return r
}

func (o orExpr) validate(vars map[string]*Variable) error {
	if err := o.left.validate(vars); err != nil {
		return err
	}
	return o.right.validate(vars)
}

// Rule pairs an antecedent expression with one consequent term of the
// engine's output variable.
type Rule struct {
	When Expr
	Then string
}
