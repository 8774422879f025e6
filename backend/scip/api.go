// Package scip implements the golp backend contract on top of the SCIP C
// API. The native library is linked only when building with the scip build
// tag; without it, Initialize fails.
package scip

// api is the slice of the SCIP C API the adapter relies on. Methods return
// the native SCIP_RETCODE (scipOkay on success) except init, which wraps
// loading failures. Keeping this an interface lets tests intercept every
// native call.
//
// The parameter setters are strictly typed: SCIP real parameters go through
// setRealParam (SCIPsetRealParam), integer ones through setIntParam
// (SCIPsetIntParam). SCIPsetParam's type-erased void pointer is never used;
// passing an int where SCIP declared a real silently corrupts the value.
type api interface {
	init() error
	addVar(vtype int32, lower, upper float64) int32
	addConstr(inds []int32, coefs []float64, lhs, rhs float64) int32
	setVarObj(j int32, coeff float64) int32
	setObjSense(maximize bool) int32
	setRealParam(name string, value float64) int32
	setIntParam(name string, value int32) int32
	solve() int32
	status() int32
	nbSolutions() int32
	solutionValues(n int) ([]float64, int32)
	objectiveValue() float64
	free()
}

// scipOkay is SCIP_OKAY, the retcode of a successful native call.
const scipOkay int32 = 1

// Native parameter keys, case-sensitive, with their declared native types.
// Each is set exclusively through the setter matching its type.
const (
	paramTimeLimit  = "limits/time"          // real
	paramGapRel     = "limits/gap"           // real, relative gap
	paramGapAbs     = "limits/absgap"        // real, absolute gap
	paramMaxThreads = "parallel/maxnthreads" // int
)

// Native variable types (SCIP_VARTYPE).
const (
	vartypeBinary     int32 = 0
	vartypeInteger    int32 = 1
	vartypeContinuous int32 = 3
)

// scipInfinity is SCIP's default infinity sentinel. Unbounded sides and
// one-sided constraint ranges are expressed with it.
const scipInfinity = 1e20

// Native solve statuses (SCIP_STATUS).
const (
	statusTimeLimit  int32 = 5
	statusGapLimit   int32 = 7
	statusOptimal    int32 = 11
	statusInfeasible int32 = 12
	statusUnbounded  int32 = 13
	statusInfOrUnbd  int32 = 14
)
