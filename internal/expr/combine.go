package expr

import "github.com/davidd12/tatamgo/internal/types"

// Combiner is a mixed-radix odometer over a list of finite value lists,
// used to enumerate every assignment of a quantifier's bound parameters.
// Grounded on DavidD12/tatam's src/expr/combine.rs Combine<T>.
type Combiner struct {
	elements [][]Expr
	index    []int
}

// NewCombiner builds a Combiner starting at the all-zero index.
func NewCombiner(elements [][]Expr) *Combiner {
	return &Combiner{elements: elements, index: make([]int, len(elements))}
}

// Values returns the expression tuple at the current index.
func (c *Combiner) Values() []Expr {
	v := make([]Expr, len(c.elements))
	for i, col := range c.elements {
		v[i] = col[c.index[i]]
	}
	return v
}

// Step advances the odometer by one and reports whether it did not wrap
// around past the last combination.
func (c *Combiner) Step() bool {
	for i := 0; i < len(c.index); i++ {
		if c.index[i] < len(c.elements[i])-1 {
			c.index[i]++
			return true
		}
		if i != len(c.index)-1 {
			for j := 0; j <= i; j++ {
				c.index[j] = 0
			}
		}
	}
	return false
}

// TypeInhabitants lists every ground value of a Bool or IntInterval type
// as an Expr, mirroring DavidD12/tatam's Type::all used to seed a
// Combiner's columns. Any other type, including a named Interval not yet
// resolved and an Enumerate, gives nil.
func TypeInhabitants(t types.Type) []Expr {
	switch t.Kind {
	case types.Bool:
		return []Expr{Bool(false), Bool(true)}
	case types.IntInterval:
		out := make([]Expr, 0, t.Max-t.Min+1)
		for v := t.Min; v <= t.Max; v++ {
			out = append(out, Int(v))
		}
		return out
	default:
		return nil
	}
}

// EnumerateElements lists every element of an Enumerate type as an Expr.
type EnumerateLister interface {
	EnumerateElements(t types.Type) []Expr
}

// CombineAll expands a quantifier body over every assignment of params,
// substituting each parameter reference by its bound value in turn.
// Grounded on DavidD12/tatam's combine_all.
func CombineAll(lister EnumerateLister, params []Parameter, body Expr) []Expr {
	columns := make([][]Expr, len(params))
	for i, p := range params {
		if p.Typ.Kind == types.Enumerate {
			columns[i] = lister.EnumerateElements(p.Typ)
		} else {
			columns[i] = TypeInhabitants(p.Typ)
		}
	}
	paramExprs := make([]Expr, len(params))
	for i, p := range params {
		paramExprs[i] = ParameterRef(p)
	}

	c := NewCombiner(columns)
	var out []Expr
	for {
		values := c.Values()
		pairs := make([][2]Expr, len(params))
		for i := range params {
			pairs[i] = [2]Expr{paramExprs[i], values[i]}
		}
		out = append(out, body.SubstituteAll(pairs))
		if !c.Step() {
			break
		}
	}
	return out
}
