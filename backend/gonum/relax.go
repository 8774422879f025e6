package gonum

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// An LP relaxation in the original variable space:
//
//	minimize  c·x
//	s.t.      terms of each constraint, relation, rhs
//	          lower ≤ x ≤ upper  (entries may be ±Inf)
//
// lp.Simplex wants standard form (min ĉ·y, Āy = b̄, y ≥ 0), so each variable
// is substituted by a shifted, sign-flipped or split non-negative variable,
// remaining upper bounds and inequality rows get slack variables, and the
// solution is mapped back afterwards.

// column describes how original variable i is reconstructed from the
// standard-form vector y: x_i = offset + sign*y[col] - y[neg] (neg < 0 when
// the variable was not split).
type column struct {
	offset float64
	sign   float64
	col    int
	neg    int
}

type relaxation struct {
	cols   []column
	nbCols int         // standard-form columns before slacks
	ineq   [][]float64 // rows of Gy ≤ h
	h      []float64
	eq     [][]float64 // rows of Ay = b
	b      []float64
	c      []float64 // minimization costs on the standard-form columns
}

// newRelaxation builds the standard-form translation of the problem under
// the given per-variable bounds. costs is the minimization objective on the
// original variables.
func newRelaxation(lower, upper []float64, cons []rowData, costs []float64) *relaxation {
	n := len(lower)
	r := &relaxation{cols: make([]column, n)}

	for i := 0; i < n; i++ {
		switch {
		case !math.IsInf(lower[i], -1):
			// x = l + y, y ≥ 0
			r.cols[i] = column{offset: lower[i], sign: 1, col: r.nbCols, neg: -1}
			r.nbCols++
		case !math.IsInf(upper[i], 1):
			// x = u - y, y ≥ 0
			r.cols[i] = column{offset: upper[i], sign: -1, col: r.nbCols, neg: -1}
			r.nbCols++
		default:
			// free: x = y⁺ - y⁻
			r.cols[i] = column{offset: 0, sign: 1, col: r.nbCols, neg: r.nbCols + 1}
			r.nbCols += 2
		}
	}

	// bound rows for doubly-bounded variables
	for i := 0; i < n; i++ {
		if math.IsInf(lower[i], -1) || math.IsInf(upper[i], 1) {
			continue
		}
		row := make([]float64, r.nbCols)
		row[r.cols[i].col] = 1
		r.ineq = append(r.ineq, row)
		r.h = append(r.h, upper[i]-lower[i])
	}

	// constraint rows
	for _, cn := range cons {
		row := make([]float64, r.nbCols)
		rhs := cn.rhs
		for j, a := range cn.coefs {
			if a == 0 {
				continue
			}
			cm := r.cols[j]
			row[cm.col] += a * cm.sign
			if cm.neg >= 0 {
				row[cm.neg] -= a
			}
			rhs -= a * cm.offset
		}
		if cn.equality {
			r.eq = append(r.eq, row)
			r.b = append(r.b, rhs)
		} else {
			// one ≤ row; callers negate ≥ rows beforehand
			r.ineq = append(r.ineq, row)
			r.h = append(r.h, rhs)
		}
	}

	// objective
	r.c = make([]float64, r.nbCols)
	for i, a := range costs {
		if a == 0 {
			continue
		}
		cm := r.cols[i]
		r.c[cm.col] += a * cm.sign
		if cm.neg >= 0 {
			r.c[cm.neg] -= a
		}
	}

	return r
}

// rowData is one constraint normalized to either equality or ≤ form on the
// original variables.
type rowData struct {
	coefs    []float64
	rhs      float64
	equality bool
}

// solve runs the simplex and maps the solution back to the original
// variables. Returns lp.ErrInfeasible / lp.ErrUnbounded as the engine
// reports them.
func (r *relaxation) solve() ([]float64, error) {
	nIneq := len(r.ineq)
	nEq := len(r.eq)
	nRows := nEq + nIneq
	nCols := r.nbCols + nIneq // one slack per inequality

	if nRows == 0 {
		// minimize c·y over y ≥ 0: either 0 is optimal or the problem has
		// no lower limit
		for _, ci := range r.c {
			if ci < 0 {
				return nil, lp.ErrUnbounded
			}
		}
		return r.reconstruct(make([]float64, r.nbCols)), nil
	}

	flat := make([]float64, nRows*nCols)
	bOut := make([]float64, nRows)
	for i, row := range r.eq {
		copy(flat[i*nCols:], row)
		bOut[i] = r.b[i]
	}
	for k, row := range r.ineq {
		i := nEq + k
		copy(flat[i*nCols:], row)
		flat[i*nCols+r.nbCols+k] = 1 // slack
		bOut[i] = r.h[k]
	}

	cOut := make([]float64, nCols)
	copy(cOut, r.c)

	_, y, err := lp.Simplex(cOut, mat.NewDense(nRows, nCols, flat), bOut, 0, nil)
	if err != nil {
		return nil, err
	}
	return r.reconstruct(y), nil
}

// reconstruct maps a standard-form point back to the original variables.
func (r *relaxation) reconstruct(y []float64) []float64 {
	x := make([]float64, len(r.cols))
	for i, cm := range r.cols {
		x[i] = cm.offset + cm.sign*y[cm.col]
		if cm.neg >= 0 {
			x[i] -= y[cm.neg]
		}
	}
	return x
}
