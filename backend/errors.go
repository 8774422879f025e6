package backend

import "errors"

// Error taxonomy shared by all adapters. All are caller-correctable and
// reported synchronously at the call that triggered them; native-call
// failures on registration or configuration are adapter bugs and panic
// instead.
var (
	// ErrInvalidBounds is returned when a variable's bound combination
	// cannot be represented (lower > upper, or NaN).
	ErrInvalidBounds = errors.New("invalid variable bounds")

	// ErrConstraintRejected is returned when the engine cannot represent a
	// constraint, e.g. one referencing an unregistered variable.
	ErrConstraintRejected = errors.New("constraint rejected")

	// ErrInvalidConfiguration is returned for configuration values below
	// their valid domain, before any native call is made.
	ErrInvalidConfiguration = errors.New("invalid solver configuration")

	// ErrBackendInit is returned when the native library cannot be loaded
	// or licensed. Fatal and non-retryable.
	ErrBackendInit = errors.New("backend initialization failed")

	// ErrBackendFrozen is returned for registration or configuration calls
	// after Solve.
	ErrBackendFrozen = errors.New("backend is frozen after solve")

	// ErrNoSolution is returned by Solution when the solve status does not
	// indicate a feasible point.
	ErrNoSolution = errors.New("no solution available")
)
