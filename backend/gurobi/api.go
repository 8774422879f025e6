// Package gurobi implements the golp backend contract on top of the Gurobi
// C API. The native library is linked only when building with the gurobi
// build tag; without it, Initialize fails.
package gurobi

// api is the slice of the Gurobi C API the adapter relies on. Methods return
// the native error code (0 on success) except init, which wraps license and
// loading failures. Keeping this an interface lets tests intercept every
// native call.
//
// The parameter setters are strictly typed: a double-typed parameter goes
// through setDblParam, an integer-typed one through setIntParam. Gurobi's
// generic GRBsetparam accepts a string for any parameter and silently parses
// it; it is never used here.
type api interface {
	init() error
	addVar(vtype byte, lower, upper float64) int32
	addConstr(inds []int32, coefs []float64, sense byte, rhs float64) int32
	setObjective(coefs []float64, maximize bool) int32
	setDblParam(name string, value float64) int32
	setIntParam(name string, value int32) int32
	optimize() int32
	intAttr(name string) (int32, int32)
	dblAttr(name string) (float64, int32)
	dblAttrArray(name string, n int) ([]float64, int32)
	errorMessage() string
	free()
}

// Native parameter keys, case-sensitive, with their declared native types.
// Each is set exclusively through the setter matching its type.
const (
	paramTimeLimit = "TimeLimit" // double
	paramMIPGap    = "MIPGap"    // double, relative gap
	paramMIPGapAbs = "MIPGapAbs" // double, absolute gap
	paramThreads   = "Threads"   // integer
)

// Native attribute keys.
const (
	attrStatus   = "Status"
	attrSolCount = "SolCount"
	attrObjVal   = "ObjVal"
	attrX        = "X"
)

// Native variable type and constraint sense encodings.
const (
	typeContinuous byte = 'C'
	typeInteger    byte = 'I'
	typeBinary     byte = 'B'

	senseLess    byte = '<'
	senseEqual   byte = '='
	senseGreater byte = '>'
)

// grbInfinity is Gurobi's infinity sentinel (GRB_INFINITY). Unbounded sides
// are expressed with it, never with an arbitrary large finite number.
const grbInfinity = 1e100

// Native termination codes of GRBoptimize's Status attribute.
const (
	statusOptimal    int32 = 2
	statusInfeasible int32 = 3
	statusInfOrUnbd  int32 = 4
	statusUnbounded  int32 = 5
	statusTimeLimit  int32 = 9
)
