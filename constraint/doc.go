// Package constraint describes a MILP problem independently of any solver
// engine: typed decision variables with bounds, linear constraints expressed
// as coefficient-variable terms, and a linear objective.
//
// The package is pure data; solver calls happen in golp/backend adapters.
package constraint
