// Package backend defines the contract every solver adapter implements: it
// consumes problems described with golp/constraint and normalizes engine
// parameters, statuses and solutions.
package backend

import (
	"github.com/funkelab/golp/constraint"
)

// ID represent a unique ID for a solver engine
type ID uint16

const (
	UNKNOWN ID = iota
	GUROBI
	SCIP
	GONUM
)

// Implemented return the list of solver engines golp has adapters for
func Implemented() []ID {
	return []ID{GUROBI, SCIP, GONUM}
}

// String returns the string representation of a solver engine
func (id ID) String() string {
	switch id {
	case GUROBI:
		return "gurobi"
	case SCIP:
		return "scip"
	case GONUM:
		return "gonum"
	default:
		return "unknown"
	}
}

// IDFromString is the inverse of ID.String.
func IDFromString(s string) ID {
	switch s {
	case "gurobi":
		return GUROBI
	case "scip":
		return SCIP
	case "gonum":
		return GONUM
	default:
		return UNKNOWN
	}
}

// Backend is the minimal operation set a solver adapter supports. An
// instance binds to exactly one problem for its lifetime: registration
// calls after Solve fail with ErrBackendFrozen.
//
// A Backend is not safe for concurrent use; give each concurrent solve its
// own instance.
//
// The parameter setters (SetTimeout, SetOptimalityGap, SetNumThreads) each
// set exactly one native parameter, using the parameter's declared native
// numeric type. A native non-success code on a registration or configuration
// call indicates a bug in the adapter's type/encoding mapping and panics;
// it is never returned as a recoverable error.
type Backend interface {
	// Initialize allocates the native solver context. It fails with
	// ErrBackendInit if the native library cannot be loaded or licensed.
	Initialize() error

	// AddVariable registers one decision variable and returns its index.
	// Indices are dense, zero-based and assigned in registration order,
	// matching the shared model. Inverted (lower > upper) or NaN bounds fail
	// with ErrInvalidBounds.
	AddVariable(kind constraint.Kind, lower, upper float64) (int, error)

	// AddConstraint registers one linear constraint. Duplicate variable
	// references are accumulated. A constraint referencing an unregistered
	// variable fails with ErrConstraintRejected.
	AddConstraint(c constraint.Linear) error

	// SetObjective replaces any previously set objective.
	SetObjective(o constraint.Objective) error

	// SetTimeout bounds the solve wall time. Engines honor the limit
	// best-effort, not exactly. Seconds must be finite and positive;
	// otherwise fails with ErrInvalidConfiguration.
	SetTimeout(seconds float64) error

	// SetOptimalityGap sets the stopping tolerance. The absolute flag
	// selects the engine's absolute-gap parameter; otherwise the relative
	// one. Exactly one of the two native keys is set, never both.
	SetOptimalityGap(gap float64, absolute bool) error

	// SetNumThreads bounds the engine's internal parallelism. n == 0 lets
	// the engine decide; the exact meaning is engine-specific.
	SetNumThreads(n int) error

	// Solve invokes the native solve and blocks until it terminates. A
	// failed solve is not an error: engine failures surface as StatusError
	// with the native message captured verbatim.
	Solve() (Status, string)

	// Solution returns the solution found by Solve. It fails with
	// ErrNoSolution unless the solve status indicates a feasible point
	// (StatusOptimal or StatusTimeoutWithIncumbent).
	Solution() (Solution, error)
}

// Solution is the normalized result of a solve: one value per variable,
// aligned by variable index, plus the objective value at that point.
type Solution struct {
	Values    []float64
	Objective float64
}

// Value returns the solution value of variable i.
func (s Solution) Value(i int) float64 {
	return s.Values[i]
}
