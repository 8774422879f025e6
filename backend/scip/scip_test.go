package scip

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funkelab/golp/backend"
	"github.com/funkelab/golp/constraint"
)

// fakeAPI records every native call, so tests can assert that each solver
// parameter is set through the setter matching its declared native type.
type fakeAPI struct {
	initErr error
	fail    string // name of the call that returns a non-success retcode

	vars       []fakeVar
	constrs    []fakeConstr
	objCoefs   map[int32]float64
	maximize   bool
	realParams map[string]float64
	intParams  map[string]int32

	solveStatus int32
	nbSols      int32
	x           []float64
	objVal      float64
}

type fakeVar struct {
	vtype        int32
	lower, upper float64
}

type fakeConstr struct {
	inds     []int32
	coefs    []float64
	lhs, rhs float64
}

func newFake() *fakeAPI {
	return &fakeAPI{
		objCoefs:    make(map[int32]float64),
		realParams:  make(map[string]float64),
		intParams:   make(map[string]int32),
		solveStatus: statusOptimal,
	}
}

func (f *fakeAPI) code(call string) int32 {
	if f.fail == call {
		return -6 // SCIP_ERROR
	}
	return scipOkay
}

func (f *fakeAPI) init() error { return f.initErr }

func (f *fakeAPI) addVar(vtype int32, lower, upper float64) int32 {
	f.vars = append(f.vars, fakeVar{vtype, lower, upper})
	return f.code("addVar")
}

func (f *fakeAPI) addConstr(inds []int32, coefs []float64, lhs, rhs float64) int32 {
	f.constrs = append(f.constrs, fakeConstr{inds, coefs, lhs, rhs})
	return f.code("addConstr")
}

func (f *fakeAPI) setVarObj(j int32, coeff float64) int32 {
	f.objCoefs[j] = coeff
	return f.code("setVarObj")
}

func (f *fakeAPI) setObjSense(maximize bool) int32 {
	f.maximize = maximize
	return f.code("setObjSense")
}

func (f *fakeAPI) setRealParam(name string, value float64) int32 {
	f.realParams[name] = value
	return f.code("setRealParam")
}

func (f *fakeAPI) setIntParam(name string, value int32) int32 {
	f.intParams[name] = value
	return f.code("setIntParam")
}

func (f *fakeAPI) solve() int32  { return f.code("solve") }
func (f *fakeAPI) status() int32 { return f.solveStatus }

func (f *fakeAPI) nbSolutions() int32 { return f.nbSols }

func (f *fakeAPI) solutionValues(n int) ([]float64, int32) {
	if n != len(f.x) {
		return nil, -6
	}
	return f.x, f.code("solutionValues")
}

func (f *fakeAPI) objectiveValue() float64 { return f.objVal }
func (f *fakeAPI) free()                   {}

func newTestBackend(t *testing.T, f *fakeAPI) *Backend {
	t.Helper()
	b := &Backend{napi: f}
	require.NoError(t, b.Initialize())
	return b
}

func TestInitializeFailure(t *testing.T) {
	f := newFake()
	f.initErr = errors.New("SCIPcreate failed")
	b := &Backend{napi: f}
	require.ErrorIs(t, b.Initialize(), backend.ErrBackendInit)
}

func TestVariableMapping(t *testing.T) {
	assert := require.New(t)
	f := newFake()
	b := newTestBackend(t, f)

	_, err := b.AddVariable(constraint.Continuous, math.Inf(-1), math.Inf(1))
	assert.NoError(err)
	_, err = b.AddVariable(constraint.Integer, -2, 9)
	assert.NoError(err)
	_, err = b.AddVariable(constraint.Binary, 0, 1)
	assert.NoError(err)

	assert.Equal([]fakeVar{
		{vartypeContinuous, -scipInfinity, scipInfinity},
		{vartypeInteger, -2, 9},
		{vartypeBinary, 0, 1},
	}, f.vars)

	_, err = b.AddVariable(constraint.Continuous, 5, 2)
	assert.ErrorIs(err, backend.ErrInvalidBounds)
	assert.Len(f.vars, 3)
}

func TestConstraintRangeEncoding(t *testing.T) {
	assert := require.New(t)
	f := newFake()
	b := newTestBackend(t, f)
	for range 2 {
		_, err := b.AddVariable(constraint.Continuous, 0, 10)
		assert.NoError(err)
	}

	assert.NoError(b.AddConstraint(constraint.NewLinear([]constraint.Term{{Var: 0, Coeff: 1}}, constraint.LessEqual, 4)))
	assert.NoError(b.AddConstraint(constraint.NewLinear([]constraint.Term{{Var: 1, Coeff: 2}}, constraint.Equal, 3)))
	assert.NoError(b.AddConstraint(constraint.NewLinear([]constraint.Term{{Var: 0, Coeff: -1}}, constraint.GreaterEqual, -1)))

	// one-sided relations leave the open side at the infinity sentinel
	assert.Equal(-scipInfinity, f.constrs[0].lhs)
	assert.Equal(4.0, f.constrs[0].rhs)
	assert.Equal(3.0, f.constrs[1].lhs)
	assert.Equal(3.0, f.constrs[1].rhs)
	assert.Equal(-1.0, f.constrs[2].lhs)
	assert.Equal(scipInfinity, f.constrs[2].rhs)
}

func TestObjectiveRewritesEveryCoefficient(t *testing.T) {
	assert := require.New(t)
	f := newFake()
	b := newTestBackend(t, f)
	for range 3 {
		_, err := b.AddVariable(constraint.Continuous, 0, 1)
		assert.NoError(err)
	}

	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: 0, Coeff: 2}, {Var: 2, Coeff: 1}}, constraint.Minimize)))
	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: 1, Coeff: -1}}, constraint.Maximize)))

	// replacing the objective must clear coefficients it no longer references
	assert.Equal(map[int32]float64{0: 0, 1: -1, 2: 0}, f.objCoefs)
	assert.True(f.maximize)
}

func TestTypedParameterSetters(t *testing.T) {
	assert := require.New(t)
	f := newFake()
	b := newTestBackend(t, f)

	assert.NoError(b.SetTimeout(120))
	assert.NoError(b.SetNumThreads(8))

	assert.Equal(map[string]float64{paramTimeLimit: 120}, f.realParams,
		"limits/time is real-typed and must go through the real setter only")
	assert.Equal(map[string]int32{paramMaxThreads: 8}, f.intParams,
		"parallel/maxnthreads is integer-typed and must go through the integer setter only")
}

func TestGapKeyExclusivity(t *testing.T) {
	assert := require.New(t)

	t.Run("relative", func(t *testing.T) {
		f := newFake()
		b := newTestBackend(t, f)
		assert.NoError(b.SetOptimalityGap(0.02, false))
		assert.Equal(map[string]float64{paramGapRel: 0.02}, f.realParams)
	})

	t.Run("absolute", func(t *testing.T) {
		f := newFake()
		b := newTestBackend(t, f)
		assert.NoError(b.SetOptimalityGap(1.5, true))
		assert.Equal(map[string]float64{paramGapAbs: 1.5}, f.realParams)
	})
}

func TestInvalidConfigurationNeverReachesNative(t *testing.T) {
	assert := require.New(t)
	f := newFake()
	b := newTestBackend(t, f)

	assert.ErrorIs(b.SetTimeout(0), backend.ErrInvalidConfiguration)
	assert.ErrorIs(b.SetOptimalityGap(math.NaN(), true), backend.ErrInvalidConfiguration)
	assert.ErrorIs(b.SetNumThreads(-1), backend.ErrInvalidConfiguration)

	assert.Empty(f.realParams)
	assert.Empty(f.intParams)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		native int32
		nbSols int32
		want   backend.Status
	}{
		{"optimal", statusOptimal, 1, backend.StatusOptimal},
		// stopping at the gap limit means the tolerance is satisfied
		{"gap_limit", statusGapLimit, 1, backend.StatusOptimal},
		{"infeasible", statusInfeasible, 0, backend.StatusInfeasible},
		{"unbounded", statusUnbounded, 0, backend.StatusUnbounded},
		{"inf_or_unbd", statusInfOrUnbd, 0, backend.StatusUnbounded},
		{"time_limit_with_incumbent", statusTimeLimit, 1, backend.StatusTimeoutWithIncumbent},
		{"time_limit_without_incumbent", statusTimeLimit, 0, backend.StatusTimeoutNoIncumbent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFake()
			f.solveStatus = tc.native
			f.nbSols = tc.nbSols
			b := newTestBackend(t, f)

			status, message := b.Solve()
			require.Equal(t, tc.want, status)
			require.Empty(t, message)
		})
	}
}

func TestSolveErrors(t *testing.T) {
	assert := require.New(t)

	t.Run("native_failure_is_a_status", func(t *testing.T) {
		f := newFake()
		f.fail = "solve"
		b := newTestBackend(t, f)
		status, message := b.Solve()
		assert.Equal(backend.StatusError, status)
		assert.Contains(message, "retcode")
	})

	t.Run("unknown_native_status", func(t *testing.T) {
		f := newFake()
		f.solveStatus = 99
		b := newTestBackend(t, f)
		status, message := b.Solve()
		assert.Equal(backend.StatusError, status)
		assert.Contains(message, "99")
	})
}

func TestFrozenAfterSolve(t *testing.T) {
	assert := require.New(t)
	f := newFake()
	b := newTestBackend(t, f)
	_, err := b.AddVariable(constraint.Continuous, 0, 1)
	assert.NoError(err)
	f.x = []float64{1}

	status, _ := b.Solve()
	assert.Equal(backend.StatusOptimal, status)

	_, err = b.AddVariable(constraint.Continuous, 0, 1)
	assert.ErrorIs(err, backend.ErrBackendFrozen)
	assert.ErrorIs(b.SetTimeout(10), backend.ErrBackendFrozen)
}

func TestSolutionGating(t *testing.T) {
	assert := require.New(t)

	t.Run("infeasible", func(t *testing.T) {
		f := newFake()
		f.solveStatus = statusInfeasible
		b := newTestBackend(t, f)
		b.Solve()
		_, err := b.Solution()
		assert.ErrorIs(err, backend.ErrNoSolution)
	})

	t.Run("timeout_with_incumbent", func(t *testing.T) {
		f := newFake()
		f.solveStatus = statusTimeLimit
		f.nbSols = 1
		f.x = []float64{0, 2}
		f.objVal = 2
		b := newTestBackend(t, f)
		for range 2 {
			_, err := b.AddVariable(constraint.Integer, 0, 5)
			assert.NoError(err)
		}
		b.Solve()
		sol, err := b.Solution()
		assert.NoError(err)
		assert.Equal([]float64{0, 2}, sol.Values)
		assert.Equal(2.0, sol.Objective)
	})
}

func TestNativeRegistrationFailurePanics(t *testing.T) {
	f := newFake()
	f.fail = "setRealParam"
	b := newTestBackend(t, f)
	require.Panics(t, func() { _ = b.SetTimeout(10) })

	f = newFake()
	f.fail = "setVarObj"
	b = newTestBackend(t, f)
	_, err := b.AddVariable(constraint.Continuous, 0, 1)
	require.NoError(t, err)
	require.Panics(t, func() {
		_ = b.SetObjective(constraint.NewObjective([]constraint.Term{{Var: 0, Coeff: 1}}, constraint.Minimize))
	})
}
