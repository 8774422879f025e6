package constraint

import (
	"encoding/json"
	"math"
)

// The JSON form is meant for hand-written problem files (see cmd/golp). Kinds,
// relations and senses appear as strings; an omitted lower bound means -Inf,
// an omitted upper bound means +Inf.

// MarshalJSON implements json.Marshaler.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := KindFromString(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Relation) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Relation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := RelationFromString(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Sense) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Sense) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := SenseFromString(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type jsonVariable struct {
	Kind  Kind     `json:"kind"`
	Lower *float64 `json:"lower,omitempty"`
	Upper *float64 `json:"upper,omitempty"`
}

type jsonTerm struct {
	Var   int     `json:"var"`
	Coeff float64 `json:"coeff"`
}

type jsonConstraint struct {
	Terms    []jsonTerm `json:"terms"`
	Relation Relation   `json:"relation"`
	RHS      float64    `json:"rhs"`
}

type jsonObjective struct {
	Terms []jsonTerm `json:"terms"`
	Sense Sense      `json:"sense"`
}

type jsonProblem struct {
	Variables   []jsonVariable   `json:"variables"`
	Constraints []jsonConstraint `json:"constraints"`
	Objective   jsonObjective    `json:"objective"`
}

// MarshalJSON implements json.Marshaler.
func (p *Problem) MarshalJSON() ([]byte, error) {
	jp := jsonProblem{
		Variables:   make([]jsonVariable, len(p.variables)),
		Constraints: make([]jsonConstraint, len(p.constraints)),
		Objective: jsonObjective{
			Terms: jsonTerms(p.objective.Terms),
			Sense: p.objective.Sense,
		},
	}
	for i, v := range p.variables {
		jv := jsonVariable{Kind: v.Kind}
		if !math.IsInf(v.Lower, -1) {
			lower := v.Lower
			jv.Lower = &lower
		}
		if !math.IsInf(v.Upper, 1) {
			upper := v.Upper
			jv.Upper = &upper
		}
		jp.Variables[i] = jv
	}
	for i, c := range p.constraints {
		jp.Constraints[i] = jsonConstraint{
			Terms:    jsonTerms(c.Terms),
			Relation: c.Relation,
			RHS:      c.RHS,
		}
	}
	return json.Marshal(jp)
}

// UnmarshalJSON implements json.Unmarshaler. The decoded problem replaces the
// receiver's content.
func (p *Problem) UnmarshalJSON(data []byte) error {
	var jp jsonProblem
	if err := json.Unmarshal(data, &jp); err != nil {
		return err
	}

	decoded := Problem{}
	for _, jv := range jp.Variables {
		lower, upper := math.Inf(-1), math.Inf(1)
		if jv.Lower != nil {
			lower = *jv.Lower
		}
		if jv.Upper != nil {
			upper = *jv.Upper
		}
		if _, err := decoded.AddVariable(jv.Kind, lower, upper); err != nil {
			return err
		}
	}
	for _, jc := range jp.Constraints {
		if err := decoded.AddConstraint(NewLinear(terms(jc.Terms), jc.Relation, jc.RHS)); err != nil {
			return err
		}
	}
	if err := decoded.SetObjective(NewObjective(terms(jp.Objective.Terms), jp.Objective.Sense)); err != nil {
		return err
	}

	*p = decoded
	return nil
}

func jsonTerms(in []Term) []jsonTerm {
	out := make([]jsonTerm, len(in))
	for i, t := range in {
		out[i] = jsonTerm{Var: t.Var, Coeff: t.Coeff}
	}
	return out
}

func terms(in []jsonTerm) []Term {
	out := make([]Term, len(in))
	for i, t := range in {
		out[i] = Term{Var: t.Var, Coeff: t.Coeff}
	}
	return out
}
