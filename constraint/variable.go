package constraint

import "fmt"

// Kind is the type of a decision variable.
type Kind uint8

const (
	// Continuous is a real-valued variable.
	Continuous Kind = iota
	// Integer is a variable restricted to integer values.
	Integer
	// Binary is a variable restricted to {0, 1}.
	Binary
)

// String returns the string representation of a variable kind.
func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// KindFromString is the inverse of Kind.String.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "continuous":
		return Continuous, nil
	case "integer":
		return Integer, nil
	case "binary":
		return Binary, nil
	default:
		return 0, fmt.Errorf("unknown variable kind %q", s)
	}
}

// Variable is a decision variable. Bounds may be ±Inf for unbounded sides.
// A variable is immutable once registered with a backend.
type Variable struct {
	Kind  Kind
	Lower float64
	Upper float64
}

// IsInteger reports whether the variable takes integer values only.
func (v Variable) IsInteger() bool {
	return v.Kind == Integer || v.Kind == Binary
}
