package backend

// Status is the normalized outcome of a solve. Callers depend on this exact
// six-way partition; adapters must not invent additional states.
type Status uint8

const (
	// StatusError is the zero value: the engine failed to solve, or
	// terminated for a reason outside the taxonomy. The diagnostic message
	// carries the native explanation.
	StatusError Status = iota
	// StatusOptimal means a provably optimal solution was found (within the
	// configured optimality gap, if any).
	StatusOptimal
	// StatusInfeasible means no feasible point exists.
	StatusInfeasible
	// StatusUnbounded means the objective can be improved without limit.
	StatusUnbounded
	// StatusTimeoutWithIncumbent means the time limit was hit with a feasible
	// incumbent available; the incumbent is returned as a valid,
	// lower-confidence solution.
	StatusTimeoutWithIncumbent
	// StatusTimeoutNoIncumbent means the time limit was hit before any
	// feasible point was found.
	StatusTimeoutNoIncumbent
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusTimeoutWithIncumbent:
		return "timeout with incumbent"
	case StatusTimeoutNoIncumbent:
		return "timeout without incumbent"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// HasSolution reports whether a solve with this status produced a feasible
// point retrievable through Backend.Solution.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusTimeoutWithIncumbent
}
