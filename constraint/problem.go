package constraint

import (
	"fmt"
	"math"
)

// Problem is a solver-independent MILP instance: variables, constraints and
// one objective. The zero value is an empty minimization problem.
//
// Variable indices are dense, zero-based, assigned in registration order and
// never reused.
type Problem struct {
	variables   []Variable
	constraints []Linear
	objective   Objective
}

// NewProblem returns an empty problem.
func NewProblem() *Problem {
	return &Problem{}
}

// AddVariable registers a decision variable and returns its index. Bounds may
// be ±Inf; NaN bounds are rejected. An inverted bound pair (lower > upper) is
// not rejected here -- it is a caller error the backend reports at
// registration time.
func (p *Problem) AddVariable(kind Kind, lower, upper float64) (int, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return -1, fmt.Errorf("variable bounds must not be NaN (got [%v, %v])", lower, upper)
	}
	p.variables = append(p.variables, Variable{Kind: kind, Lower: lower, Upper: upper})
	return len(p.variables) - 1, nil
}

// AddConstraint appends a linear constraint. The constraint may only
// reference variables already registered.
func (p *Problem) AddConstraint(l Linear) error {
	if max := l.MaxVar(); max >= len(p.variables) {
		return fmt.Errorf("constraint references unregistered variable %d (have %d variables)", max, len(p.variables))
	}
	for _, t := range l.Terms {
		if t.Var < 0 {
			return fmt.Errorf("constraint references negative variable index %d", t.Var)
		}
	}
	p.constraints = append(p.constraints, l)
	return nil
}

// SetObjective replaces the problem's objective.
func (p *Problem) SetObjective(o Objective) error {
	if max := o.MaxVar(); max >= len(p.variables) {
		return fmt.Errorf("objective references unregistered variable %d (have %d variables)", max, len(p.variables))
	}
	for _, t := range o.Terms {
		if t.Var < 0 {
			return fmt.Errorf("objective references negative variable index %d", t.Var)
		}
	}
	p.objective = o
	return nil
}

// NbVariables returns the number of registered variables.
func (p *Problem) NbVariables() int {
	return len(p.variables)
}

// NbConstraints returns the number of registered constraints.
func (p *Problem) NbConstraints() int {
	return len(p.constraints)
}

// Variables returns the registered variables in index order. The returned
// slice is owned by the problem and must not be modified.
func (p *Problem) Variables() []Variable {
	return p.variables
}

// Constraints returns the registered constraints in registration order. The
// returned slice is owned by the problem and must not be modified.
func (p *Problem) Constraints() []Linear {
	return p.constraints
}

// Objective returns the problem's objective.
func (p *Problem) Objective() Objective {
	return p.objective
}
