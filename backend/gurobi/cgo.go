//go:build gurobi

package gurobi

/*
#cgo CFLAGS: -I${SRCDIR}/include
#cgo LDFLAGS: -lgurobi110
#include <stdlib.h>
#include <gurobi_c.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

type grbAPI struct {
	env   *C.GRBenv
	model *C.GRBmodel
}

func newAPI() api {
	return &grbAPI{}
}

func (g *grbAPI) init() error {
	if code := C.GRBloadenv(&g.env, nil); code != 0 {
		return fmt.Errorf("GRBloadenv failed with code %d: %s", int(code), C.GoString(C.GRBgeterrormsg(g.env)))
	}
	// no console chatter from the engine; diagnostics flow through the
	// status message instead
	outputFlag := C.CString("OutputFlag")
	defer C.free(unsafe.Pointer(outputFlag))
	if code := C.GRBsetintparam(g.env, outputFlag, 0); code != 0 {
		return fmt.Errorf("disabling OutputFlag failed with code %d", int(code))
	}

	name := C.CString("golp")
	defer C.free(unsafe.Pointer(name))
	if code := C.GRBnewmodel(g.env, &g.model, name, 0, nil, nil, nil, nil, nil); code != 0 {
		return fmt.Errorf("GRBnewmodel failed with code %d: %s", int(code), C.GoString(C.GRBgeterrormsg(g.env)))
	}
	return nil
}

func (g *grbAPI) addVar(vtype byte, lower, upper float64) int32 {
	return int32(C.GRBaddvar(g.model, 0, nil, nil, 0, C.double(lower), C.double(upper), C.char(vtype), nil))
}

func (g *grbAPI) addConstr(inds []int32, coefs []float64, sense byte, rhs float64) int32 {
	var indPtr *C.int
	var coefPtr *C.double
	if len(inds) > 0 {
		indPtr = (*C.int)(unsafe.Pointer(&inds[0]))
		coefPtr = (*C.double)(unsafe.Pointer(&coefs[0]))
	}
	return int32(C.GRBaddconstr(g.model, C.int(len(inds)), indPtr, coefPtr, C.char(sense), C.double(rhs), nil))
}

func (g *grbAPI) setObjective(coefs []float64, maximize bool) int32 {
	sense := C.int(C.GRB_MINIMIZE)
	if maximize {
		sense = C.int(C.GRB_MAXIMIZE)
	}
	attr := C.CString("ModelSense")
	defer C.free(unsafe.Pointer(attr))
	if code := C.GRBsetintattr(g.model, attr, sense); code != 0 {
		return int32(code)
	}

	obj := C.CString("Obj")
	defer C.free(unsafe.Pointer(obj))
	var coefPtr *C.double
	if len(coefs) > 0 {
		coefPtr = (*C.double)(unsafe.Pointer(&coefs[0]))
	}
	return int32(C.GRBsetdblattrarray(g.model, obj, 0, C.int(len(coefs)), coefPtr))
}

func (g *grbAPI) setDblParam(name string, value float64) int32 {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return int32(C.GRBsetdblparam(C.GRBgetenv(g.model), cname, C.double(value)))
}

func (g *grbAPI) setIntParam(name string, value int32) int32 {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return int32(C.GRBsetintparam(C.GRBgetenv(g.model), cname, C.int(value)))
}

func (g *grbAPI) optimize() int32 {
	return int32(C.GRBoptimize(g.model))
}

func (g *grbAPI) intAttr(name string) (int32, int32) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var out C.int
	code := C.GRBgetintattr(g.model, cname, &out)
	return int32(out), int32(code)
}

func (g *grbAPI) dblAttr(name string) (float64, int32) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var out C.double
	code := C.GRBgetdblattr(g.model, cname, &out)
	return float64(out), int32(code)
}

func (g *grbAPI) dblAttrArray(name string, n int) ([]float64, int32) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	out := make([]float64, n)
	var outPtr *C.double
	if n > 0 {
		outPtr = (*C.double)(unsafe.Pointer(&out[0]))
	}
	code := C.GRBgetdblattrarray(g.model, cname, 0, C.int(n), outPtr)
	return out, int32(code)
}

func (g *grbAPI) errorMessage() string {
	if g.env == nil {
		return ""
	}
	return C.GoString(C.GRBgeterrormsg(g.env))
}

func (g *grbAPI) free() {
	if g.model != nil {
		C.GRBfreemodel(g.model)
		g.model = nil
	}
	if g.env != nil {
		C.GRBfreeenv(g.env)
		g.env = nil
	}
}
