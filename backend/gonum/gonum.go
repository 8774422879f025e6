// Package gonum implements the golp backend contract in pure Go, delegating
// LP relaxations to gonum's simplex implementation
// (gonum.org/v1/gonum/optimize/convex/lp) and exploring integrality through
// branch and bound. It needs no native library and is always available, which
// makes it the default engine for tools and tests. For large problems, prefer
// a commercial engine.
package gonum

import (
	"fmt"
	"math"

	"github.com/funkelab/golp/backend"
	"github.com/funkelab/golp/constraint"
)

// Backend solves MILP problems in-process. Single problem, single use: one
// instance per solve, not safe for concurrent use.
type Backend struct {
	guard backend.Guard

	vars []constraint.Variable
	cons []constraint.Linear
	obj  constraint.Objective

	timeout float64 // seconds, 0 = unlimited
	gap     float64
	gapAbs  bool
	gapSet  bool
	threads int

	status backend.Status
	sol    backend.Solution
	solved bool
}

// New returns an empty in-process backend.
func New() *Backend {
	return &Backend{}
}

// Initialize marks the instance ready. There is no native context to
// allocate, so this never fails.
func (b *Backend) Initialize() error {
	return b.guard.MarkInitialized()
}

// AddVariable registers one variable. Binary variables are narrowed to the
// intersection of the given bounds with [0, 1].
func (b *Backend) AddVariable(kind constraint.Kind, lower, upper float64) (int, error) {
	if err := b.guard.RequireMutable(); err != nil {
		return -1, err
	}
	if err := backend.CheckBounds(lower, upper); err != nil {
		return -1, err
	}

	if kind == constraint.Binary {
		lower = math.Max(lower, 0)
		upper = math.Min(upper, 1)
		if lower > upper {
			return -1, fmt.Errorf("%w: binary variable bounds [%v, %v] exclude both 0 and 1", backend.ErrInvalidBounds, lower, upper)
		}
	}

	b.vars = append(b.vars, constraint.Variable{Kind: kind, Lower: lower, Upper: upper})
	return b.guard.NextVariable(), nil
}

// AddConstraint registers one linear constraint, duplicate references
// summed.
func (b *Backend) AddConstraint(c constraint.Linear) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := b.guard.CheckTerms(c.Terms); err != nil {
		return err
	}
	b.cons = append(b.cons, c.Canonical())
	return nil
}

// SetObjective replaces the objective.
func (b *Backend) SetObjective(o constraint.Objective) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := b.guard.CheckTerms(o.Terms); err != nil {
		return err
	}
	b.obj = o.Canonical()
	return nil
}

// SetTimeout bounds the solve wall time. The clock is checked between
// branch-and-bound nodes, so the limit is honored best-effort, like the
// native engines do.
func (b *Backend) SetTimeout(seconds float64) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := backend.ValidateTimeout(seconds); err != nil {
		return err
	}
	b.timeout = seconds
	return nil
}

// SetOptimalityGap sets the stopping tolerance between the incumbent and the
// best open bound, absolute or relative.
func (b *Backend) SetOptimalityGap(gap float64, absolute bool) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := backend.ValidateGap(gap); err != nil {
		return err
	}
	b.gap = gap
	b.gapAbs = absolute
	b.gapSet = true
	return nil
}

// SetNumThreads records the requested parallelism. The engine itself is
// single-threaded; the value is validated and otherwise left to the engine,
// which decides to use one thread.
func (b *Backend) SetNumThreads(n int) error {
	if err := b.guard.RequireMutable(); err != nil {
		return err
	}
	if err := backend.ValidateThreads(n); err != nil {
		return err
	}
	b.threads = n
	return nil
}

// Solve runs branch and bound over simplex relaxations.
func (b *Backend) Solve() (backend.Status, string) {
	if err := b.guard.RequireInitialized(); err != nil {
		return backend.StatusError, err.Error()
	}
	b.guard.Freeze()
	b.solved = true

	status, sol, message := b.branchAndBound()
	b.status = status
	b.sol = sol
	return status, message
}

// Solution returns the best point of the last solve.
func (b *Backend) Solution() (backend.Solution, error) {
	if !b.solved || !b.status.HasSolution() {
		return backend.Solution{}, fmt.Errorf("%w: solve status is %s", backend.ErrNoSolution, b.status)
	}
	return b.sol, nil
}
