// Package solver drives a backend through one full solve: register the
// problem, apply the configuration, solve, extract the result.
package solver

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/funkelab/golp/backend"
	"github.com/funkelab/golp/constraint"
)

// Solve dispatches the problem to the given backend and blocks until the
// engine terminates. The backend must be fresh: one backend instance per
// solve.
//
// A failed solve is not an error: infeasible, unbounded and engine-failure
// outcomes are reported through Result.Status. Errors are reserved for
// caller-correctable conditions (invalid configuration, invalid bounds, a
// backend that cannot initialize).
func Solve(p *constraint.Problem, b backend.Backend, opts ...Option) (*Result, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger

	if err := b.Initialize(); err != nil {
		return nil, err
	}

	for i, v := range p.Variables() {
		j, err := b.AddVariable(v.Kind, v.Lower, v.Upper)
		if err != nil {
			return nil, fmt.Errorf("registering variable %d: %w", i, err)
		}
		if j != i {
			// the backend contract requires indices to mirror the model's;
			// a mismatch is an adapter bug, not a runtime condition
			panic(fmt.Sprintf("backend assigned index %d to variable %d", j, i))
		}
	}
	for i, c := range p.Constraints() {
		if err := b.AddConstraint(c); err != nil {
			return nil, fmt.Errorf("registering constraint %d: %w", i, err)
		}
	}
	if err := b.SetObjective(p.Objective()); err != nil {
		return nil, fmt.Errorf("setting objective: %w", err)
	}

	if cfg.Timeout > 0 {
		if err := b.SetTimeout(cfg.Timeout); err != nil {
			return nil, err
		}
	}
	if cfg.gapSet {
		if err := b.SetOptimalityGap(cfg.Gap, cfg.GapAbsolute); err != nil {
			return nil, err
		}
	}
	if cfg.threadsSet {
		if err := b.SetNumThreads(cfg.Threads); err != nil {
			return nil, err
		}
	}

	log.Debug().Int("variables", p.NbVariables()).Int("constraints", p.NbConstraints()).Msg("solving")
	start := time.Now()
	status, message := b.Solve()
	log.Info().Stringer("status", status).Dur("took", time.Since(start)).Msg("solve finished")

	result := &Result{Status: status, Message: message}
	if status.HasSolution() {
		sol, err := b.Solution()
		if err != nil {
			return nil, err
		}
		result.Solution = sol
	}
	return result, nil
}

// SolveAll solves the same problem once per option set, each solve on its
// own backend instance from factory, concurrently. Results are ordered like
// configs. The context bounds the whole batch: when it is canceled, solves
// that have not started yet are skipped; running ones finish (engines offer
// no mid-solve cancel beyond their timeout).
func SolveAll(ctx context.Context, p *constraint.Problem, factory func() backend.Backend, configs [][]Option) ([]*Result, error) {
	results := make([]*Result, len(configs))

	g, ctx := errgroup.WithContext(ctx)
	for i, opts := range configs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			r, err := Solve(p, factory(), opts...)
			if err != nil {
				return fmt.Errorf("configuration %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
