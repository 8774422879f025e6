package gonum

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/funkelab/golp/backend"
	"github.com/funkelab/golp/constraint"
)

func addVariable(t *testing.T, b *Backend, kind constraint.Kind, lower, upper float64) int {
	t.Helper()
	i, err := b.AddVariable(kind, lower, upper)
	require.NoError(t, err)
	return i
}

func TestSolveOptimalMixed(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())

	x := addVariable(t, b, constraint.Integer, 0, 1)
	y := addVariable(t, b, constraint.Continuous, 0, 10)
	assert.NoError(b.AddConstraint(constraint.NewLinear(
		[]constraint.Term{{Var: x, Coeff: 1}, {Var: y, Coeff: 1}}, constraint.LessEqual, 5)))
	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: x, Coeff: 2}, {Var: y, Coeff: 1}}, constraint.Maximize)))

	status, message := b.Solve()
	assert.Equal(backend.StatusOptimal, status, message)

	sol, err := b.Solution()
	assert.NoError(err)
	assert.InDelta(1, sol.Value(x), 1e-6)
	assert.InDelta(4, sol.Value(y), 1e-6)
	assert.InDelta(6, sol.Objective, 1e-6)
}

func TestSolveInfeasible(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())

	x := addVariable(t, b, constraint.Continuous, 0, 10)
	assert.NoError(b.AddConstraint(constraint.NewLinear(
		[]constraint.Term{{Var: x, Coeff: 1}}, constraint.GreaterEqual, 5)))
	assert.NoError(b.AddConstraint(constraint.NewLinear(
		[]constraint.Term{{Var: x, Coeff: 1}}, constraint.LessEqual, 1)))
	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: x, Coeff: 1}}, constraint.Minimize)))

	status, _ := b.Solve()
	assert.Equal(backend.StatusInfeasible, status)

	_, err := b.Solution()
	assert.ErrorIs(err, backend.ErrNoSolution)
}

func TestSolveUnbounded(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())

	x := addVariable(t, b, constraint.Continuous, 0, math.Inf(1))
	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: x, Coeff: 1}}, constraint.Maximize)))

	status, _ := b.Solve()
	assert.Equal(backend.StatusUnbounded, status)
}

func TestSolveKnapsack(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())

	weights := []float64{2, 3, 4}
	values := []float64{3, 4, 5}
	capacity := 6.0

	items := make([]int, len(weights))
	weightTerms := make([]constraint.Term, len(weights))
	valueTerms := make([]constraint.Term, len(weights))
	for i := range weights {
		items[i] = addVariable(t, b, constraint.Binary, 0, 1)
		weightTerms[i] = constraint.Term{Var: items[i], Coeff: weights[i]}
		valueTerms[i] = constraint.Term{Var: items[i], Coeff: values[i]}
	}
	assert.NoError(b.AddConstraint(constraint.NewLinear(weightTerms, constraint.LessEqual, capacity)))
	assert.NoError(b.SetObjective(constraint.NewObjective(valueTerms, constraint.Maximize)))

	status, message := b.Solve()
	assert.Equal(backend.StatusOptimal, status, message)

	sol, err := b.Solution()
	assert.NoError(err)
	assert.InDelta(8, sol.Objective, 1e-6)
	assert.Equal(1.0, sol.Value(items[0]))
	assert.Equal(0.0, sol.Value(items[1]))
	assert.Equal(1.0, sol.Value(items[2]))
}

func TestSolveEqualityAndFreeVariable(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())

	x := addVariable(t, b, constraint.Continuous, math.Inf(-1), math.Inf(1))
	y := addVariable(t, b, constraint.Continuous, 0, 10)
	assert.NoError(b.AddConstraint(constraint.NewLinear(
		[]constraint.Term{{Var: x, Coeff: 1}}, constraint.GreaterEqual, -7)))
	assert.NoError(b.AddConstraint(constraint.NewLinear(
		[]constraint.Term{{Var: y, Coeff: 1}}, constraint.Equal, 2)))
	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: x, Coeff: 1}, {Var: y, Coeff: 1}}, constraint.Minimize)))

	status, message := b.Solve()
	assert.Equal(backend.StatusOptimal, status, message)

	sol, err := b.Solution()
	assert.NoError(err)
	assert.InDelta(-7, sol.Value(x), 1e-6)
	assert.InDelta(2, sol.Value(y), 1e-6)
	assert.InDelta(-5, sol.Objective, 1e-6)
}

func TestDuplicateTermsAccumulate(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())

	x := addVariable(t, b, constraint.Continuous, 0, 10)
	// x + x <= 1, i.e. x <= 0.5
	assert.NoError(b.AddConstraint(constraint.NewLinear(
		[]constraint.Term{{Var: x, Coeff: 1}, {Var: x, Coeff: 1}}, constraint.LessEqual, 1)))
	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: x, Coeff: 1}}, constraint.Maximize)))

	status, message := b.Solve()
	assert.Equal(backend.StatusOptimal, status, message)

	sol, err := b.Solution()
	assert.NoError(err)
	assert.InDelta(0.5, sol.Value(x), 1e-6)
}

func TestBinaryBoundsNarrowed(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())

	x := addVariable(t, b, constraint.Binary, -5, 3)
	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: x, Coeff: 1}}, constraint.Maximize)))

	status, _ := b.Solve()
	assert.Equal(backend.StatusOptimal, status)
	sol, err := b.Solution()
	assert.NoError(err)
	assert.Equal(1.0, sol.Value(x))

	b2 := New()
	assert.NoError(b2.Initialize())
	_, err = b2.AddVariable(constraint.Binary, 2, 3)
	assert.ErrorIs(err, backend.ErrInvalidBounds)
}

func TestSolveTimeout(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())

	x := addVariable(t, b, constraint.Integer, 0, 100)
	assert.NoError(b.AddConstraint(constraint.NewLinear(
		[]constraint.Term{{Var: x, Coeff: 2}}, constraint.LessEqual, 99)))
	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: x, Coeff: 1}}, constraint.Maximize)))
	assert.NoError(b.SetTimeout(1e-9))

	status, message := b.Solve()
	assert.Equal(backend.StatusTimeoutNoIncumbent, status)
	assert.NotEmpty(message)

	_, err := b.Solution()
	assert.ErrorIs(err, backend.ErrNoSolution)
}

func TestSolveWithAbsoluteGap(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())

	x := addVariable(t, b, constraint.Integer, 0, 10)
	assert.NoError(b.AddConstraint(constraint.NewLinear(
		[]constraint.Term{{Var: x, Coeff: 3}}, constraint.LessEqual, 20)))
	assert.NoError(b.SetObjective(constraint.NewObjective(
		[]constraint.Term{{Var: x, Coeff: 1}}, constraint.Maximize)))
	assert.NoError(b.SetOptimalityGap(2, true))

	status, message := b.Solve()
	assert.Equal(backend.StatusOptimal, status, message)

	// the incumbent must be within the configured gap of the true optimum 6
	sol, err := b.Solution()
	assert.NoError(err)
	assert.GreaterOrEqual(sol.Objective, 4.0)
	assert.LessOrEqual(sol.Value(x), 20.0/3+1e-6)
}

func TestFrozenAfterSolve(t *testing.T) {
	assert := require.New(t)
	b := New()
	assert.NoError(b.Initialize())
	addVariable(t, b, constraint.Continuous, 0, 1)

	b.Solve()
	_, err := b.AddVariable(constraint.Continuous, 0, 1)
	assert.ErrorIs(err, backend.ErrBackendFrozen)
	assert.ErrorIs(b.SetNumThreads(2), backend.ErrBackendFrozen)
}

func TestIntegerBoundsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	properties.Property("an integer variable lands exactly on its maximized bound", prop.ForAll(
		func(lower, span int) bool {
			upper := lower + span
			b := New()
			if err := b.Initialize(); err != nil {
				return false
			}
			x, err := b.AddVariable(constraint.Integer, float64(lower), float64(upper))
			if err != nil {
				return false
			}
			if err := b.SetObjective(constraint.NewObjective(
				[]constraint.Term{{Var: x, Coeff: 1}}, constraint.Maximize)); err != nil {
				return false
			}
			status, _ := b.Solve()
			if status != backend.StatusOptimal {
				return false
			}
			sol, err := b.Solution()
			if err != nil {
				return false
			}
			v := sol.Value(x)
			return v == math.Round(v) && v >= float64(lower) && v <= float64(upper) && v == float64(upper)
		},
		gen.IntRange(-50, 50),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
