package constraint

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Relation is the comparison of a linear expression against its bound.
type Relation uint8

const (
	// LessEqual constrains the expression to be ≤ the right-hand side.
	LessEqual Relation = iota
	// Equal constrains the expression to be = the right-hand side.
	Equal
	// GreaterEqual constrains the expression to be ≥ the right-hand side.
	GreaterEqual
)

// String returns the string representation of a relation.
func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case Equal:
		return "="
	case GreaterEqual:
		return ">="
	default:
		return "unknown"
	}
}

// RelationFromString is the inverse of Relation.String.
func RelationFromString(s string) (Relation, error) {
	switch s {
	case "<=":
		return LessEqual, nil
	case "=":
		return Equal, nil
	case ">=":
		return GreaterEqual, nil
	default:
		return 0, fmt.Errorf("unknown relation %q", s)
	}
}

// Term is one coefficient-variable pair of a linear expression.
type Term struct {
	Var   int
	Coeff float64
}

// Linear is a single linear constraint: an ordered set of terms, a relation
// and a right-hand-side bound. Terms may reference the same variable more
// than once; backends accumulate duplicate references, they never overwrite.
type Linear struct {
	Terms    []Term
	Relation Relation
	RHS      float64
}

// NewLinear returns a linear constraint over the given terms. Terms are kept
// in the order given; duplicates are legal.
func NewLinear(terms []Term, rel Relation, rhs float64) Linear {
	return Linear{Terms: terms, Relation: rel, RHS: rhs}
}

// Canonical returns an equivalent constraint in which every variable appears
// at most once, coefficients of duplicate references summed. Variables keep
// their first-occurrence order. The receiver is not modified.
func (l Linear) Canonical() Linear {
	seen := bitset.New(uint(len(l.Terms)))
	hasDup := false
	for _, t := range l.Terms {
		if t.Var >= 0 && seen.Test(uint(t.Var)) {
			hasDup = true
			break
		}
		if t.Var >= 0 {
			seen.Set(uint(t.Var))
		}
	}
	if !hasDup {
		return l
	}

	out := Linear{
		Terms:    make([]Term, 0, len(l.Terms)),
		Relation: l.Relation,
		RHS:      l.RHS,
	}
	at := make(map[int]int, len(l.Terms)) // variable → position in out.Terms
	for _, t := range l.Terms {
		if i, ok := at[t.Var]; ok {
			out.Terms[i].Coeff += t.Coeff
			continue
		}
		at[t.Var] = len(out.Terms)
		out.Terms = append(out.Terms, t)
	}
	return out
}

// MaxVar returns the largest variable index referenced, or -1 for an empty
// constraint.
func (l Linear) MaxVar() int {
	max := -1
	for _, t := range l.Terms {
		if t.Var > max {
			max = t.Var
		}
	}
	return max
}
