//go:build scip

package scip

/*
#cgo LDFLAGS: -lscip
#include <stdlib.h>
#include <scip/scip.h>
#include <scip/scipdefplugins.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

type scipAPI struct {
	scip *C.SCIP
	vars []*C.SCIP_VAR
}

func newAPI() api {
	return &scipAPI{}
}

func (s *scipAPI) init() error {
	if code := C.SCIPcreate(&s.scip); code != C.SCIP_OKAY {
		return fmt.Errorf("SCIPcreate failed with retcode %d", int(code))
	}
	if code := C.SCIPincludeDefaultPlugins(s.scip); code != C.SCIP_OKAY {
		return fmt.Errorf("SCIPincludeDefaultPlugins failed with retcode %d", int(code))
	}

	name := C.CString("golp")
	defer C.free(unsafe.Pointer(name))
	if code := C.SCIPcreateProbBasic(s.scip, name); code != C.SCIP_OKAY {
		return fmt.Errorf("SCIPcreateProbBasic failed with retcode %d", int(code))
	}

	// engine output off; diagnostics flow through the status message
	C.SCIPsetMessagehdlrQuiet(s.scip, C.TRUE)
	return nil
}

func (s *scipAPI) addVar(vtype int32, lower, upper float64) int32 {
	name := C.CString(fmt.Sprintf("x%d", len(s.vars)))
	defer C.free(unsafe.Pointer(name))

	var v *C.SCIP_VAR
	code := C.SCIPcreateVarBasic(s.scip, &v, name, C.SCIP_Real(lower), C.SCIP_Real(upper), 0, C.SCIP_VARTYPE(vtype))
	if code != C.SCIP_OKAY {
		return int32(code)
	}
	if code := C.SCIPaddVar(s.scip, v); code != C.SCIP_OKAY {
		return int32(code)
	}
	s.vars = append(s.vars, v)
	return scipOkay
}

func (s *scipAPI) addConstr(inds []int32, coefs []float64, lhs, rhs float64) int32 {
	name := C.CString("c")
	defer C.free(unsafe.Pointer(name))

	vars := make([]*C.SCIP_VAR, len(inds))
	vals := make([]C.SCIP_Real, len(inds))
	for i, j := range inds {
		vars[i] = s.vars[j]
		vals[i] = C.SCIP_Real(coefs[i])
	}
	var varsPtr **C.SCIP_VAR
	var valsPtr *C.SCIP_Real
	if len(inds) > 0 {
		varsPtr = &vars[0]
		valsPtr = &vals[0]
	}

	var cons *C.SCIP_CONS
	code := C.SCIPcreateConsBasicLinear(s.scip, &cons, name, C.int(len(inds)), varsPtr, valsPtr, C.SCIP_Real(lhs), C.SCIP_Real(rhs))
	if code != C.SCIP_OKAY {
		return int32(code)
	}
	if code := C.SCIPaddCons(s.scip, cons); code != C.SCIP_OKAY {
		return int32(code)
	}
	return int32(C.SCIPreleaseCons(s.scip, &cons))
}

func (s *scipAPI) setVarObj(j int32, coeff float64) int32 {
	return int32(C.SCIPchgVarObj(s.scip, s.vars[j], C.SCIP_Real(coeff)))
}

func (s *scipAPI) setObjSense(maximize bool) int32 {
	sense := C.SCIP_OBJSENSE_MINIMIZE
	if maximize {
		sense = C.SCIP_OBJSENSE_MAXIMIZE
	}
	return int32(C.SCIPsetObjsense(s.scip, C.SCIP_OBJSENSE(sense)))
}

func (s *scipAPI) setRealParam(name string, value float64) int32 {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return int32(C.SCIPsetRealParam(s.scip, cname, C.SCIP_Real(value)))
}

func (s *scipAPI) setIntParam(name string, value int32) int32 {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return int32(C.SCIPsetIntParam(s.scip, cname, C.int(value)))
}

func (s *scipAPI) solve() int32 {
	return int32(C.SCIPsolve(s.scip))
}

func (s *scipAPI) status() int32 {
	return int32(C.SCIPgetStatus(s.scip))
}

func (s *scipAPI) nbSolutions() int32 {
	return int32(C.SCIPgetNSols(s.scip))
}

func (s *scipAPI) solutionValues(n int) ([]float64, int32) {
	sol := C.SCIPgetBestSol(s.scip)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = float64(C.SCIPgetSolVal(s.scip, sol, s.vars[i]))
	}
	return out, scipOkay
}

func (s *scipAPI) objectiveValue() float64 {
	return float64(C.SCIPgetSolOrigObj(s.scip, C.SCIPgetBestSol(s.scip)))
}

func (s *scipAPI) free() {
	for i := range s.vars {
		C.SCIPreleaseVar(s.scip, &s.vars[i])
	}
	s.vars = nil
	if s.scip != nil {
		C.SCIPfree(&s.scip)
		s.scip = nil
	}
}
