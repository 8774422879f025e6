// Package golp provides a uniform abstraction layer over mixed-integer
// linear programming (MILP) solver engines. A problem is built once --
// typed variables, linear constraints and a linear objective -- and can be
// dispatched to any of the interchangeable solver backends.
//
// golp has adapters for the following engines:
//   - Gurobi (requires the native library, build with -tags gurobi)
//   - SCIP (requires the native library, build with -tags scip)
//   - Gonum (pure Go, always available)
//
// The entry point is the solver package; see solver.Solve.
package golp

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.1.0")
