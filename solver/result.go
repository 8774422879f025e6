package solver

import "github.com/funkelab/golp/backend"

// Result is the normalized outcome of one solve: the terminal status, the
// engine's diagnostic message (verbatim, possibly empty) and, when the
// status indicates a feasible point, the solution.
type Result struct {
	Status   backend.Status
	Message  string
	Solution backend.Solution
}

// HasSolution reports whether Solution holds a feasible point.
func (r *Result) HasSolution() bool {
	return r.Status.HasSolution()
}
