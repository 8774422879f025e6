package backend

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/funkelab/golp/constraint"
)

// Guard tracks the lifecycle of a backend instance (uninitialized →
// initialized → solved) and the set of registered variable indices.
// Adapters embed it to share the contract checks that do not depend on the
// native engine.
type Guard struct {
	initialized bool
	frozen      bool
	registered  *bitset.BitSet
	nbVars      int
}

// MarkInitialized records a successful Initialize. Initializing twice is an
// adapter usage error.
func (g *Guard) MarkInitialized() error {
	if g.initialized {
		return fmt.Errorf("%w: already initialized", ErrBackendInit)
	}
	g.initialized = true
	g.registered = bitset.New(64)
	return nil
}

// RequireMutable fails unless the instance is initialized and not yet solved.
func (g *Guard) RequireMutable() error {
	if !g.initialized {
		return fmt.Errorf("%w: not initialized", ErrBackendInit)
	}
	if g.frozen {
		return ErrBackendFrozen
	}
	return nil
}

// RequireInitialized fails unless Initialize succeeded.
func (g *Guard) RequireInitialized() error {
	if !g.initialized {
		return fmt.Errorf("%w: not initialized", ErrBackendInit)
	}
	return nil
}

// NextVariable records one more registered variable and returns its index.
func (g *Guard) NextVariable() int {
	i := g.nbVars
	g.registered.Set(uint(i))
	g.nbVars++
	return i
}

// NbVariables returns the number of variables registered so far.
func (g *Guard) NbVariables() int {
	return g.nbVars
}

// CheckTerms fails with ErrConstraintRejected if any term references a
// variable that was not registered with this instance.
func (g *Guard) CheckTerms(terms []constraint.Term) error {
	for _, t := range terms {
		if t.Var < 0 || !g.registered.Test(uint(t.Var)) {
			return fmt.Errorf("%w: unregistered variable index %d", ErrConstraintRejected, t.Var)
		}
	}
	return nil
}

// Freeze marks the instance as solved; further registration or
// configuration calls fail with ErrBackendFrozen.
func (g *Guard) Freeze() {
	g.frozen = true
}

// Frozen reports whether Solve was called.
func (g *Guard) Frozen() bool {
	return g.frozen
}

// CheckBounds validates a bound pair at variable registration time.
func CheckBounds(lower, upper float64) error {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return fmt.Errorf("%w: NaN bound", ErrInvalidBounds)
	}
	if lower > upper {
		return fmt.Errorf("%w: lower %v > upper %v", ErrInvalidBounds, lower, upper)
	}
	return nil
}
