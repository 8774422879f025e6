package gurobi

import (
	"fmt"

	"github.com/funkelab/golp/backend"
	"github.com/funkelab/golp/constraint"
	"github.com/funkelab/golp/logger"
)

// Backend solves MILP problems with Gurobi. Single problem, single use: one
// instance per solve, not safe for concurrent use.
type Backend struct {
	guard  backend.Guard
	napi   api
	status backend.Status
	solved bool
}

// New returns an unconnected Gurobi backend. Initialize loads the native
// environment and performs the license check.
func New() *Backend {
	return &Backend{napi: newAPI()}
}

// Initialize allocates the native environment and model. A missing library
// or failing license check is fatal and non-retryable.
func (b *Backend) Initialize() error {
	if err := b.napi.init(); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrBackendInit, err)
	}
	return b.guard.MarkInitialized()
}

// AddVariable registers one variable with the native model.
func (b *Backend) AddVariable(kind constraint.Kind, lower, upper float64) (int, error) {
	if err := b.guard.RequireMutable(); err != nil {
		return -1, err
	}
	if err := backend.CheckBounds(lower, upper); err != nil {
		return -1, err
	}

	var vtype byte
	switch kind {
	case constraint.Continuous:
		vtype = typeContinuous
	case constraint.Integer:
		vtype = typeInteger
	case constraint.Binary:
		vtype = typeBinary
	default:
		return -1, fmt.Errorf("%w: unknown variable kind %v", backend.ErrInvalidBounds, kind)
	}

	b.must(b.napi.addVar(vtype, toNative(lower), toNative(upper)), "GRBaddvar")
	return b.guard.NextVariable(), nil
}

// AddConstraint registers one linear constraint. Duplicate variable
// references are summed before hitting the native API.
func (b *Backend) AddConstraint(c constraint.Linear) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := b.guard.CheckTerms(c.Terms); err != nil {
		return err
	}

	c = c.Canonical()
	inds := make([]int32, len(c.Terms))
	coefs := make([]float64, len(c.Terms))
	for i, t := range c.Terms {
		inds[i] = int32(t.Var)
		coefs[i] = t.Coeff
	}

	var sense byte
	switch c.Relation {
	case constraint.LessEqual:
		sense = senseLess
	case constraint.Equal:
		sense = senseEqual
	case constraint.GreaterEqual:
		sense = senseGreater
	default:
		return fmt.Errorf("%w: unknown relation %v", backend.ErrConstraintRejected, c.Relation)
	}

	b.must(b.napi.addConstr(inds, coefs, sense, c.RHS), "GRBaddconstr")
	return nil
}

// SetObjective replaces the model's objective.
func (b *Backend) SetObjective(o constraint.Objective) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := b.guard.CheckTerms(o.Terms); err != nil {
		return err
	}

	o = o.Canonical()
	coefs := make([]float64, b.guard.NbVariables())
	for _, t := range o.Terms {
		coefs[t.Var] = t.Coeff
	}
	b.must(b.napi.setObjective(coefs, o.Sense == constraint.Maximize), "set objective")
	return nil
}

// SetTimeout sets the TimeLimit parameter (double-typed).
func (b *Backend) SetTimeout(seconds float64) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := backend.ValidateTimeout(seconds); err != nil {
		return err
	}
	b.must(b.napi.setDblParam(paramTimeLimit, seconds), paramTimeLimit)
	return nil
}

// SetOptimalityGap sets MIPGapAbs or MIPGap (both double-typed), depending
// on the absolute flag. Only the selected key is touched.
func (b *Backend) SetOptimalityGap(gap float64, absolute bool) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := backend.ValidateGap(gap); err != nil {
		return err
	}
	key := paramMIPGap
	if absolute {
		key = paramMIPGapAbs
	}
	b.must(b.napi.setDblParam(key, gap), key)
	return nil
}

// SetNumThreads sets the Threads parameter (integer-typed). 0 lets Gurobi
// decide.
func (b *Backend) SetNumThreads(n int) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := backend.ValidateThreads(n); err != nil {
		return err
	}
	b.must(b.napi.setIntParam(paramThreads, int32(n)), paramThreads)
	return nil
}

// Solve runs GRBoptimize and translates the native termination status.
func (b *Backend) Solve() (backend.Status, string) {
	if err := b.guard.RequireInitialized(); err != nil {
		return backend.StatusError, err.Error()
	}
	b.guard.Freeze()
	b.solved = true

	if code := b.napi.optimize(); code != 0 {
		b.status = backend.StatusError
		return b.status, b.napi.errorMessage()
	}

	native, code := b.napi.intAttr(attrStatus)
	if code != 0 {
		b.status = backend.StatusError
		return b.status, b.napi.errorMessage()
	}

	switch native {
	case statusOptimal:
		b.status = backend.StatusOptimal
	case statusInfeasible:
		b.status = backend.StatusInfeasible
	case statusUnbounded, statusInfOrUnbd:
		// disambiguating INF_OR_UNBD needs a re-solve with dual reductions
		// disabled; reported as unbounded.
		b.status = backend.StatusUnbounded
	case statusTimeLimit:
		solCount, code := b.napi.intAttr(attrSolCount)
		if code != 0 {
			b.status = backend.StatusError
			return b.status, b.napi.errorMessage()
		}
		if solCount > 0 {
			b.status = backend.StatusTimeoutWithIncumbent
		} else {
			b.status = backend.StatusTimeoutNoIncumbent
		}
	default:
		b.status = backend.StatusError
		return b.status, fmt.Sprintf("gurobi terminated with native status %d", native)
	}

	log := logger.Logger()
	log.Debug().Stringer("status", b.status).Int32("native", native).Msg("gurobi solve finished")
	return b.status, ""
}

// Solution returns the values of the last solve.
func (b *Backend) Solution() (backend.Solution, error) {
	if !b.solved || !b.status.HasSolution() {
		return backend.Solution{}, fmt.Errorf("%w: solve status is %s", backend.ErrNoSolution, b.status)
	}

	values, code := b.napi.dblAttrArray(attrX, b.guard.NbVariables())
	b.must(code, attrX)
	objective, code := b.napi.dblAttr(attrObjVal)
	b.must(code, attrObjVal)

	return backend.Solution{Values: values, Objective: objective}, nil
}

// Release frees the native model and environment.
func (b *Backend) Release() {
	b.napi.free()
}

// must aborts on a non-success native code from a registration or
// configuration call. Such codes mean the adapter's type or encoding mapping
// is wrong; they are never runtime conditions to recover from.
func (b *Backend) must(code int32, call string) {
	if code != 0 {
		panic(fmt.Sprintf("gurobi: %s failed with native code %d: %s", call, code, b.napi.errorMessage()))
	}
}

// toNative maps ±Inf to Gurobi's infinity sentinel.
func toNative(bound float64) float64 {
	if bound > grbInfinity {
		return grbInfinity
	}
	if bound < -grbInfinity {
		return -grbInfinity
	}
	return bound
}
