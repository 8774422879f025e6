package solver

import (
	"github.com/rs/zerolog"

	"github.com/funkelab/golp/backend"
	"github.com/funkelab/golp/logger"
)

// Option defines option for altering the behavior of a solve. See the
// descriptions of functions returning instances of this type for implemented
// options.
type Option func(*Config) error

// Config is the solve configuration with the options applied. Only settings
// that were explicitly given are forwarded to the backend.
type Config struct {
	Timeout     float64 // seconds; 0 = no limit requested
	Gap         float64
	GapAbsolute bool
	Threads     int
	Logger      zerolog.Logger

	gapSet     bool
	threadsSet bool
}

// NewConfig returns a default Config with the given options applied. Values
// below their valid domain fail with ErrInvalidConfiguration here, before
// any backend call is made.
func NewConfig(opts ...Option) (Config, error) {
	cfg := Config{Logger: logger.Logger()}
	for _, option := range opts {
		if err := option(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// WithTimeout bounds the solve wall time, in seconds. Engines honor the
// limit best-effort; a timeout with a feasible incumbent yields
// StatusTimeoutWithIncumbent, not an error.
func WithTimeout(seconds float64) Option {
	return func(cfg *Config) error {
		if err := backend.ValidateTimeout(seconds); err != nil {
			return err
		}
		cfg.Timeout = seconds
		return nil
	}
}

// WithAbsoluteGap stops the solve once the incumbent is within gap of the
// proven bound, as an absolute difference.
func WithAbsoluteGap(gap float64) Option {
	return func(cfg *Config) error {
		if err := backend.ValidateGap(gap); err != nil {
			return err
		}
		cfg.Gap = gap
		cfg.GapAbsolute = true
		cfg.gapSet = true
		return nil
	}
}

// WithRelativeGap stops the solve once the incumbent is within gap of the
// proven bound, as a fraction of the incumbent.
func WithRelativeGap(gap float64) Option {
	return func(cfg *Config) error {
		if err := backend.ValidateGap(gap); err != nil {
			return err
		}
		cfg.Gap = gap
		cfg.GapAbsolute = false
		cfg.gapSet = true
		return nil
	}
}

// WithNumThreads bounds the engine's internal parallelism. 0 lets the engine
// decide; the exact meaning is engine-specific.
func WithNumThreads(n int) Option {
	return func(cfg *Config) error {
		if err := backend.ValidateThreads(n); err != nil {
			return err
		}
		cfg.Threads = n
		cfg.threadsSet = true
		return nil
	}
}

// WithLogger specifies a zerolog.Logger as the destination for solve
// progress logs. By default, uses golp/logger. zerolog.Nop() will disable
// logging.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *Config) error {
		cfg.Logger = l
		return nil
	}
}
