package backend

import (
	"fmt"
	"math"
)

// Configuration validation shared by adapters and the orchestrator. Values
// below their valid domain are rejected here, before any native call, to
// avoid undefined native-engine behavior.

// ValidateTimeout checks a solve time limit: finite and strictly positive.
// An unbounded solve is expressed by not setting a timeout at all.
func ValidateTimeout(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return fmt.Errorf("%w: timeout must be finite and positive, got %v", ErrInvalidConfiguration, seconds)
	}
	return nil
}

// ValidateGap checks an optimality gap: finite and non-negative.
func ValidateGap(gap float64) error {
	if math.IsNaN(gap) || math.IsInf(gap, 0) || gap < 0 {
		return fmt.Errorf("%w: optimality gap must be finite and non-negative, got %v", ErrInvalidConfiguration, gap)
	}
	return nil
}

// ValidateThreads checks a thread count: non-negative (0 lets the engine
// decide; the exact meaning is engine-specific).
func ValidateThreads(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: thread count must be non-negative, got %d", ErrInvalidConfiguration, n)
	}
	return nil
}
