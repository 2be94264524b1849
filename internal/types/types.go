// Package types implements the type lattice described in the model
// checker's data model: ground and derived types, subtype and
// compatibility relations, and enumeration of a bounded type's
// inhabitants. It is grounded on DavidD12/tatam's src/typing/typ.rs,
// translated into an idiomatic Go value type instead of a Rust enum.
package types

import (
	"fmt"

	"github.com/davidd12/tatamgo/internal/ids"
	"github.com/davidd12/tatamgo/internal/lexer"
)

// Kind tags the shape of a Type.
type Kind int

const (
	Undefined Kind = iota
	Unresolved
	Bool
	Int
	Real
	Enumerate
	Interval
	IntInterval
	Function
)

// Type is a value type representing one of the declarable shapes: Bool,
// Int, Real, an Enumerate, or an Interval/IntInterval bound. Only the
// fields relevant to Kind are meaningful; the zero Type is Undefined.
type Type struct {
	Kind Kind

	// Unresolved
	Name string
	Pos  lexer.Position

	// Enumerate
	EnumID ids.EnumerateHandle

	// Interval (named)
	IntervalID ids.IntervalHandle

	// IntInterval
	Min, Max int64

	// Function
	Params []Type
	Result *Type
}

func T(k Kind) Type { return Type{Kind: k} }

func NewUnresolved(name string, pos lexer.Position) Type {
	return Type{Kind: Unresolved, Name: name, Pos: pos}
}

func NewEnumerate(id ids.EnumerateHandle) Type {
	return Type{Kind: Enumerate, EnumID: id}
}

func NewInterval(id ids.IntervalHandle) Type {
	return Type{Kind: Interval, IntervalID: id}
}

func NewIntInterval(min, max int64) Type {
	return Type{Kind: IntInterval, Min: min, Max: max}
}

func NewFunction(params []Type, result Type) Type {
	return Type{Kind: Function, Params: params, Result: &result}
}

func (t Type) IsUndefined() bool  { return t.Kind == Undefined }
func (t Type) IsUnresolved() bool { return t.Kind == Unresolved }
func (t Type) IsBool() bool       { return t.Kind == Bool }
func (t Type) IsEnumerate() bool  { return t.Kind == Enumerate }
func (t Type) IsReal() bool       { return t.Kind == Real }

// IsInteger reports whether t is shaped like an integer: unbounded Int or
// a bounded IntInterval.
func (t Type) IsInteger() bool {
	return t.Kind == Int || t.Kind == IntInterval
}

// IsBounded reports whether t has finitely many inhabitants: Bool, an
// Enumerate, a named Interval, or a finite IntInterval. Unbounded Int,
// Real, and Function types are not bounded.
func (t Type) IsBounded() bool {
	switch t.Kind {
	case Bool, Enumerate, Interval, IntInterval:
		return true
	default:
		return false
	}
}

// IsSubtypeOf implements the GLOSSARY's Subtype relation: an IntInterval
// is a subtype of Int and of any wider IntInterval; every other type is
// a subtype only of itself.
func (t Type) IsSubtypeOf(other Type) bool {
	if t.Equal(other) {
		return true
	}
	switch {
	case t.Kind == IntInterval && other.Kind == Int:
		return true
	case t.Kind == IntInterval && other.Kind == IntInterval:
		return t.Min >= other.Min && t.Max <= other.Max
	default:
		return false
	}
}

// IsCompatibleWith implements the GLOSSARY's Compatibility relation.
func (t Type) IsCompatibleWith(other Type) bool {
	switch {
	case t.Kind == IntInterval && other.Kind == IntInterval:
		return true
	case t.Kind == IntInterval && other.Kind == Int:
		return true
	case t.Kind == Int && other.Kind == IntInterval:
		return true
	default:
		return t.Equal(other)
	}
}

// CommonType computes the GLOSSARY's Common type: the narrowest supertype
// of t and other, or Undefined when they are incompatible.
func (t Type) CommonType(other Type) Type {
	if t.Equal(other) {
		return t
	}
	switch {
	case t.Kind == IntInterval && other.Kind == Int, t.Kind == Int && other.Kind == IntInterval:
		return T(Int)
	case t.Kind == IntInterval && other.Kind == IntInterval:
		min := t.Min
		if other.Min < min {
			min = other.Min
		}
		max := t.Max
		if other.Max > max {
			max = other.Max
		}
		return NewIntInterval(min, max)
	case t.Kind == Real && other.Kind == IntInterval, t.Kind == IntInterval && other.Kind == Real:
		return T(Real)
	default:
		return T(Undefined)
	}
}

// Equal is structural equality over Type values.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Unresolved:
		return t.Name == other.Name
	case Enumerate:
		return t.EnumID == other.EnumID
	case Interval:
		return t.IntervalID == other.IntervalID
	case IntInterval:
		return t.Min == other.Min && t.Max == other.Max
	case Function:
		if len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return t.Result.Equal(*other.Result)
	default:
		return true
	}
}

// Lookup resolves Interval and Function-parameter types that are stored as
// handles into their ground shape. Implemented by model.Model.
type Lookup interface {
	IntervalBounds(ids.IntervalHandle) (int64, int64)
}

// Resolve replaces an Interval handle by its ground IntInterval bounds and
// recurses into Function parameter/result types. It mirrors
// DavidD12/tatam's Type::get_type.
func (t Type) Resolve(l Lookup) Type {
	switch t.Kind {
	case Interval:
		min, max := l.IntervalBounds(t.IntervalID)
		return NewIntInterval(min, max)
	case Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.Resolve(l)
		}
		result := t.Result.Resolve(l)
		return NewFunction(params, result)
	default:
		return t
	}
}

// NameResolve replaces an Unresolved placeholder by its ground type from
// names; it reports false when the name is unknown.
func (t Type) NameResolve(names map[string]Type) (Type, bool) {
	if t.Kind != Unresolved {
		return t, true
	}
	resolved, ok := names[t.Name]
	return resolved, ok
}

func (t Type) String() string {
	switch t.Kind {
	case Undefined:
		return "undef"
	case Unresolved:
		return fmt.Sprintf("%s?", t.Name)
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Real:
		return "Real"
	case Enumerate:
		return fmt.Sprintf("enum#%d", t.EnumID)
	case Interval:
		return fmt.Sprintf("interval#%d", t.IntervalID)
	case IntInterval:
		return fmt.Sprintf("%d..%d", t.Min, t.Max)
	case Function:
		s := "("
		for i, p := range t.Params {
			if i > 0 {
				s += ", "
			}
			s += p.String()
		}
		return s + "): " + t.Result.String()
	default:
		return "?"
	}
}
