package scip

import (
	"fmt"

	"github.com/funkelab/golp/backend"
	"github.com/funkelab/golp/constraint"
	"github.com/funkelab/golp/logger"
)

// Backend solves MILP problems with SCIP. Single problem, single use: one
// instance per solve, not safe for concurrent use.
type Backend struct {
	guard  backend.Guard
	napi   api
	status backend.Status
	solved bool
}

// New returns an unconnected SCIP backend.
func New() *Backend {
	return &Backend{napi: newAPI()}
}

// Initialize creates the native SCIP instance with default plugins and an
// empty problem.
func (b *Backend) Initialize() error {
	if err := b.napi.init(); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrBackendInit, err)
	}
	return b.guard.MarkInitialized()
}

// AddVariable registers one variable with the native problem.
func (b *Backend) AddVariable(kind constraint.Kind, lower, upper float64) (int, error) {
	if err := b.guard.RequireMutable(); err != nil {
		return -1, err
	}
	if err := backend.CheckBounds(lower, upper); err != nil {
		return -1, err
	}

	var vtype int32
	switch kind {
	case constraint.Continuous:
		vtype = vartypeContinuous
	case constraint.Integer:
		vtype = vartypeInteger
	case constraint.Binary:
		vtype = vartypeBinary
	default:
		return -1, fmt.Errorf("%w: unknown variable kind %v", backend.ErrInvalidBounds, kind)
	}

	b.must(b.napi.addVar(vtype, toNative(lower), toNative(upper)), "SCIPcreateVarBasic")
	return b.guard.NextVariable(), nil
}

// AddConstraint registers one linear constraint. SCIP expresses the relation
// as a [lhs, rhs] range; one-sided relations use the infinity sentinel on
// the open side.
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

	var lhs, rhs float64
	switch c.Relation {
	case constraint.LessEqual:
		lhs, rhs = -scipInfinity, c.RHS
	case constraint.Equal:
		lhs, rhs = c.RHS, c.RHS
	case constraint.GreaterEqual:
		lhs, rhs = c.RHS, scipInfinity
	default:
		return fmt.Errorf("%w: unknown relation %v", backend.ErrConstraintRejected, c.Relation)
	}

	b.must(b.napi.addConstr(inds, coefs, lhs, rhs), "SCIPcreateConsBasicLinear")
	return nil
}

// SetObjective replaces the problem's objective. SCIP stores objective
// coefficients on the variables, so a replacement rewrites every
// coefficient, including the ones the new objective no longer references.
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
	for j, coeff := range coefs {
		b.must(b.napi.setVarObj(int32(j), coeff), "SCIPchgVarObj")
	}
	b.must(b.napi.setObjSense(o.Sense == constraint.Maximize), "SCIPsetObjsense")
	return nil
}

// SetTimeout sets limits/time (real-typed).
func (b *Backend) SetTimeout(seconds float64) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := backend.ValidateTimeout(seconds); err != nil {
		return err
	}
	b.must(b.napi.setRealParam(paramTimeLimit, seconds), paramTimeLimit)
	return nil
}

// SetOptimalityGap sets limits/absgap or limits/gap (both real-typed),
// depending on the absolute flag. Only the selected key is touched.
func (b *Backend) SetOptimalityGap(gap float64, absolute bool) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := backend.ValidateGap(gap); err != nil {
		return err
	}
	key := paramGapRel
	if absolute {
		key = paramGapAbs
	}
	b.must(b.napi.setRealParam(key, gap), key)
	return nil
}

// SetNumThreads sets parallel/maxnthreads (integer-typed). 0 lets SCIP
// decide.
func (b *Backend) SetNumThreads(n int) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := backend.ValidateThreads(n); err != nil {
		return err
	}
	b.must(b.napi.setIntParam(paramMaxThreads, int32(n)), paramMaxThreads)
	return nil
}

// Solve runs SCIPsolve and translates the native termination status.
func (b *Backend) Solve() (backend.Status, string) {
	if err := b.guard.RequireInitialized(); err != nil {
		return backend.StatusError, err.Error()
	}
	b.guard.Freeze()
	b.solved = true

	if code := b.napi.solve(); code != scipOkay {
		b.status = backend.StatusError
		return b.status, fmt.Sprintf("SCIPsolve failed with retcode %d", code)
	}

	native := b.napi.status()
	switch native {
	case statusOptimal, statusGapLimit:
		// a gap-limit stop means the incumbent satisfies the requested
		// tolerance, which is what optimal means under a configured gap
		b.status = backend.StatusOptimal
	case statusInfeasible:
		b.status = backend.StatusInfeasible
	case statusUnbounded, statusInfOrUnbd:
		b.status = backend.StatusUnbounded
	case statusTimeLimit:
		if b.napi.nbSolutions() > 0 {
			b.status = backend.StatusTimeoutWithIncumbent
		} else {
			b.status = backend.StatusTimeoutNoIncumbent
		}
	default:
		b.status = backend.StatusError
		return b.status, fmt.Sprintf("scip terminated with native status %d", native)
	}

	log := logger.Logger()
	log.Debug().Stringer("status", b.status).Int32("native", native).Msg("scip solve finished")
	return b.status, ""
}

// Solution returns the values of the best solution found.
func (b *Backend) Solution() (backend.Solution, error) {
	if !b.solved || !b.status.HasSolution() {
		return backend.Solution{}, fmt.Errorf("%w: solve status is %s", backend.ErrNoSolution, b.status)
	}

	values, code := b.napi.solutionValues(b.guard.NbVariables())
	b.must(code, "SCIPgetSolVals")

	return backend.Solution{Values: values, Objective: b.napi.objectiveValue()}, nil
}

// Release frees the native SCIP instance.
func (b *Backend) Release() {
	b.napi.free()
}

// must aborts on a non-success native retcode from a registration or
// configuration call. Such codes mean the adapter's type or encoding mapping
// is wrong; they are never runtime conditions to recover from.
func (b *Backend) must(code int32, call string) {
	if code != scipOkay {
		panic(fmt.Sprintf("scip: %s failed with retcode %d", call, code))
	}
}

// toNative maps ±Inf to SCIP's infinity sentinel.
func toNative(bound float64) float64 {
	if bound > scipInfinity {
		return scipInfinity
	}
	if bound < -scipInfinity {
		return -scipInfinity
	}
	return bound
}
