package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/funkelab/golp/backend"
	"github.com/funkelab/golp/backend/gonum"
	"github.com/funkelab/golp/backend/gurobi"
	"github.com/funkelab/golp/backend/scip"
	"github.com/funkelab/golp/constraint"
	"github.com/funkelab/golp/solver"
)

var solveCmd = &cobra.Command{
	Use:   "solve <problem file>",
	Short: "solve a MILP problem file (.json or .golp)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().String("backend", "gonum", "solver engine: gonum, gurobi or scip")
	solveCmd.Flags().Float64("timeout", 0, "solve time limit in seconds (0 = no limit)")
	solveCmd.Flags().Float64("gap", -1, "optimality gap (-1 = engine default)")
	solveCmd.Flags().Bool("absolute-gap", false, "interpret --gap as an absolute difference instead of a fraction")
	solveCmd.Flags().Int("threads", 0, "engine threads (0 = engine decides)")

	for _, key := range []string{"backend", "timeout", "gap", "absolute-gap", "threads"} {
		if err := viper.BindPFlag(key, solveCmd.Flags().Lookup(key)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	problem, err := readProblem(args[0])
	if err != nil {
		return err
	}

	var b backend.Backend
	switch id := backend.IDFromString(viper.GetString("backend")); id {
	case backend.GUROBI:
		b = gurobi.New()
	case backend.SCIP:
		b = scip.New()
	case backend.GONUM:
		b = gonum.New()
	default:
		return fmt.Errorf("unknown backend %q (have: %v)", viper.GetString("backend"), backend.Implemented())
	}

	var opts []solver.Option
	if timeout := viper.GetFloat64("timeout"); timeout != 0 {
		opts = append(opts, solver.WithTimeout(timeout))
	}
	if gap := viper.GetFloat64("gap"); gap >= 0 {
		if viper.GetBool("absolute-gap") {
			opts = append(opts, solver.WithAbsoluteGap(gap))
		} else {
			opts = append(opts, solver.WithRelativeGap(gap))
		}
	}
	if threads := viper.GetInt("threads"); threads != 0 {
		opts = append(opts, solver.WithNumThreads(threads))
	}

	result, err := solver.Solve(problem, b, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("status: %s\n", result.Status)
	if result.Message != "" {
		fmt.Printf("message: %s\n", result.Message)
	}
	if result.HasSolution() {
		fmt.Printf("objective: %g\n", result.Solution.Objective)
		for i, v := range result.Solution.Values {
			fmt.Printf("x%d = %g\n", i, v)
		}
	}
	return nil
}

// readProblem loads a problem file: JSON for hand-written files, CBOR
// (Problem.WriteTo) for anything else.
func readProblem(path string) (*constraint.Problem, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	problem := constraint.NewProblem()
	if filepath.Ext(path) == ".json" {
		if err := json.NewDecoder(f).Decode(problem); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return problem, nil
	}
	if _, err := problem.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return problem, nil
}
