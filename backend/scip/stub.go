//go:build !scip

package scip

import "errors"

// Stub used when building without the scip tag: the package compiles and
// links everywhere, Initialize reports the missing engine.

type stubAPI struct{}

func newAPI() api {
	return stubAPI{}
}

func (stubAPI) init() error {
	return errors.New("golp was built without scip support (build with -tags scip)")
}

func (stubAPI) addVar(int32, float64, float64) int32 { panic("scip backend not initialized") }
func (stubAPI) addConstr([]int32, []float64, float64, float64) int32 {
	panic("scip backend not initialized")
}
func (stubAPI) setVarObj(int32, float64) int32        { panic("scip backend not initialized") }
func (stubAPI) setObjSense(bool) int32                { panic("scip backend not initialized") }
func (stubAPI) setRealParam(string, float64) int32    { panic("scip backend not initialized") }
func (stubAPI) setIntParam(string, int32) int32       { panic("scip backend not initialized") }
func (stubAPI) solve() int32                          { panic("scip backend not initialized") }
func (stubAPI) status() int32                         { panic("scip backend not initialized") }
func (stubAPI) nbSolutions() int32                    { panic("scip backend not initialized") }
func (stubAPI) solutionValues(int) ([]float64, int32) { panic("scip backend not initialized") }
func (stubAPI) objectiveValue() float64               { panic("scip backend not initialized") }
func (stubAPI) free()                                 {}
