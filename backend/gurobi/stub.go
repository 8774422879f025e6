//go:build !gurobi

package gurobi

import "errors"

// Stub used when building without the gurobi tag: the package compiles and
// links everywhere, Initialize reports the missing engine.

type stubAPI struct{}

func newAPI() api {
	return stubAPI{}
}

func (stubAPI) init() error {
	return errors.New("golp was built without gurobi support (build with -tags gurobi)")
}

func (stubAPI) addVar(byte, float64, float64) int32 { panic("gurobi backend not initialized") }
func (stubAPI) addConstr([]int32, []float64, byte, float64) int32 {
	panic("gurobi backend not initialized")
}
func (stubAPI) setObjective([]float64, bool) int32          { panic("gurobi backend not initialized") }
func (stubAPI) setDblParam(string, float64) int32           { panic("gurobi backend not initialized") }
func (stubAPI) setIntParam(string, int32) int32             { panic("gurobi backend not initialized") }
func (stubAPI) optimize() int32                             { panic("gurobi backend not initialized") }
func (stubAPI) intAttr(string) (int32, int32)               { panic("gurobi backend not initialized") }
func (stubAPI) dblAttr(string) (float64, int32)             { panic("gurobi backend not initialized") }
func (stubAPI) dblAttrArray(string, int) ([]float64, int32) { panic("gurobi backend not initialized") }
func (stubAPI) errorMessage() string                        { return "" }
func (stubAPI) free()                                       {}
