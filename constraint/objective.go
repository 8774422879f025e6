package constraint

import "fmt"

// Sense is the optimization direction of an objective.
type Sense uint8

const (
	// Minimize searches for the smallest objective value.
	Minimize Sense = iota
	// Maximize searches for the largest objective value.
	Maximize
)

// String returns the string representation of an objective sense.
func (s Sense) String() string {
	switch s {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return "unknown"
	}
}

// SenseFromString is the inverse of Sense.String.
func SenseFromString(s string) (Sense, error) {
	switch s {
	case "minimize":
		return Minimize, nil
	case "maximize":
		return Maximize, nil
	default:
		return 0, fmt.Errorf("unknown objective sense %q", s)
	}
}

// Objective is a linear objective function: a coefficient vector expressed
// as terms, plus an optimization sense. A problem has exactly one objective;
// it may be replaced any time before solving.
type Objective struct {
	Terms []Term
	Sense Sense
}

// NewObjective returns a linear objective over the given terms.
func NewObjective(terms []Term, sense Sense) Objective {
	return Objective{Terms: terms, Sense: sense}
}

// Canonical returns an equivalent objective with duplicate variable
// references summed, mirroring Linear.Canonical.
func (o Objective) Canonical() Objective {
	l := Linear{Terms: o.Terms}.Canonical()
	return Objective{Terms: l.Terms, Sense: o.Sense}
}

// MaxVar returns the largest variable index referenced, or -1 for an empty
// objective.
func (o Objective) MaxVar() int {
	return Linear{Terms: o.Terms}.MaxVar()
}
