package gonum

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/funkelab/golp/backend"
	"github.com/funkelab/golp/constraint"
	"github.com/funkelab/golp/logger"
)

// intTol is the integrality tolerance: a relaxation value this close to an
// integer counts as integral.
const intTol = 1e-6

// node is one subproblem of the enumeration tree: the original problem with
// tightened per-variable bounds. bound is the parent relaxation objective, a
// lower limit on anything this subtree can achieve.
type node struct {
	lower []float64
	upper []float64
	bound float64
}

func (b *Backend) branchAndBound() (backend.Status, backend.Solution, string) {
	log := logger.Logger()
	n := len(b.vars)

	// normalize to minimization
	costs := make([]float64, n)
	for _, t := range b.obj.Terms {
		costs[t.Var] = t.Coeff
	}
	maximize := b.obj.Sense == constraint.Maximize
	if maximize {
		for i := range costs {
			costs[i] = -costs[i]
		}
	}

	// normalize constraints to equality or ≤ rows
	rows := make([]rowData, 0, len(b.cons))
	for _, c := range b.cons {
		row := rowData{coefs: make([]float64, n), rhs: c.RHS}
		for _, t := range c.Terms {
			row.coefs[t.Var] += t.Coeff
		}
		switch c.Relation {
		case constraint.LessEqual:
		case constraint.Equal:
			row.equality = true
		default: // ≥ becomes ≤ by sign flip
			for i := range row.coefs {
				row.coefs[i] = -row.coefs[i]
			}
			row.rhs = -row.rhs
		}
		rows = append(rows, row)
	}

	root := node{lower: make([]float64, n), upper: make([]float64, n), bound: math.Inf(-1)}
	for i, v := range b.vars {
		root.lower[i] = v.Lower
		root.upper[i] = v.Upper
	}

	var deadline time.Time
	if b.timeout > 0 {
		deadline = time.Now().Add(time.Duration(b.timeout * float64(time.Second)))
	}

	var (
		incumbent      []float64
		incumbentZ     = math.Inf(1)
		haveIncumbent  bool
		stack          = []node{root}
		nodesProcessed int
	)

	timedOut := func() (backend.Status, backend.Solution, string) {
		if haveIncumbent {
			return backend.StatusTimeoutWithIncumbent, b.finish(incumbent, maximize), ""
		}
		return backend.StatusTimeoutNoIncumbent, backend.Solution{}, "time limit reached before a feasible point was found"
	}

	for len(stack) > 0 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return timedOut()
		}

		// best open bound, for pruning and the gap criterion
		if haveIncumbent {
			bestBound := stack[len(stack)-1].bound
			for _, nd := range stack {
				if nd.bound < bestBound {
					bestBound = nd.bound
				}
			}
			if b.gapReached(incumbentZ, bestBound) {
				log.Debug().Int("nodes", nodesProcessed).Msg("gap limit reached")
				return backend.StatusOptimal, b.finish(incumbent, maximize), ""
			}
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if haveIncumbent && nd.bound >= incumbentZ {
			continue
		}
		nodesProcessed++

		x, err := newRelaxation(nd.lower, nd.upper, rows, costs).solve()
		if err != nil {
			if errors.Is(err, lp.ErrInfeasible) {
				continue
			}
			if errors.Is(err, lp.ErrUnbounded) {
				return backend.StatusUnbounded, backend.Solution{}, ""
			}
			return backend.StatusError, backend.Solution{}, err.Error()
		}

		z := dot(costs, x)
		if haveIncumbent && z >= incumbentZ {
			continue
		}

		branchOn := -1
		worst := intTol
		for i, v := range b.vars {
			if !v.IsInteger() {
				continue
			}
			frac := math.Abs(x[i] - math.Round(x[i]))
			if frac > worst {
				worst = frac
				branchOn = i
			}
		}

		if branchOn < 0 {
			incumbent = x
			incumbentZ = z
			haveIncumbent = true
			continue
		}

		down := node{lower: append([]float64(nil), nd.lower...), upper: append([]float64(nil), nd.upper...), bound: z}
		down.upper[branchOn] = math.Floor(x[branchOn])
		up := node{lower: append([]float64(nil), nd.lower...), upper: append([]float64(nil), nd.upper...), bound: z}
		up.lower[branchOn] = math.Ceil(x[branchOn])
		stack = append(stack, down, up)
	}

	if !haveIncumbent {
		return backend.StatusInfeasible, backend.Solution{}, ""
	}
	log.Debug().Int("nodes", nodesProcessed).Msg("enumeration exhausted")
	return backend.StatusOptimal, b.finish(incumbent, maximize), ""
}

// finish rounds integer variables to their nearest integer and recomputes
// the objective in the original sense.
func (b *Backend) finish(x []float64, maximize bool) backend.Solution {
	values := make([]float64, len(x))
	copy(values, x)
	for i, v := range b.vars {
		if v.IsInteger() {
			values[i] = math.Round(values[i])
		}
	}
	objective := 0.0
	for _, t := range b.obj.Terms {
		objective += t.Coeff * values[t.Var]
	}
	return backend.Solution{Values: values, Objective: objective}
}

// gapReached reports whether the configured optimality gap is satisfied by
// the incumbent (minimization) against the best open bound.
func (b *Backend) gapReached(incumbentZ, bestBound float64) bool {
	if !b.gapSet || math.IsInf(bestBound, -1) {
		return false
	}
	gap := incumbentZ - bestBound
	if gap <= 0 {
		return true
	}
	if b.gapAbs {
		return gap <= b.gap
	}
	return gap <= b.gap*math.Max(math.Abs(incumbentZ), 1e-10)
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
