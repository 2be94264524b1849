// Package model implements the registry that owns every entity of a
// parsed transition system: enumerated types, named intervals, constant
// and variable declarations, macro definitions, uninterpreted and
// defined functions, the initial/invariant/transition predicates, the
// property under search, and the auxiliary LTL variables introduced by
// flattening. It is grounded on DavidD12/tatam's src/model/model.rs,
// translated from a struct-of-Vec arena into the same shape using
// internal/ids handles instead of newtype indices.
package model

import (
	"fmt"

	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/ids"
	"github.com/davidd12/tatamgo/internal/lexer"
	"github.com/davidd12/tatamgo/internal/types"
)

// EnumerateElement is one named member of an Enumerate.
type EnumerateElement struct {
	Name string
	Pos  lexer.Position
}

// Enumerate is a closed, ordered set of named elements.
type Enumerate struct {
	ID       ids.EnumerateHandle
	Name     string
	Elements []EnumerateElement
	Pos      lexer.Position
}

// Interval is a named, bounded range of integers.
type Interval struct {
	ID   ids.IntervalHandle
	Name string
	Min  int64
	Max  int64
	Pos  lexer.Position
}

// Declaration is a constant ("cst") or variable ("var") of a declared type.
type Declaration struct {
	ID       ids.DeclarationHandle
	Constant bool
	Name     string
	Typ      types.Type
	Pos      lexer.Position
}

// Definition is a substitutable named macro: a type and an expression that
// stands for it everywhere the name is referenced.
type Definition struct {
	ID   ids.DefinitionHandle
	Name string
	Typ  types.Type
	Expr expr.Expr
	Pos  lexer.Position
}

// FunDec is an uninterpreted constant or variable function signature.
type FunDec struct {
	ID         ids.FunDecHandle
	Constant   bool
	Name       string
	Params     []expr.Parameter
	ReturnType types.Type
	Pos        lexer.Position
}

// FunDef is a function defined by a body expression over its parameters.
type FunDef struct {
	ID         ids.FunDefHandle
	Name       string
	Params     []expr.Parameter
	ReturnType types.Type
	Expr       expr.Expr
	Pos        lexer.Position
}

// Initial is one predicate a state must satisfy to start a path.
type Initial struct {
	ID   ids.InitialHandle
	Name string
	Expr expr.Expr
	Pos  lexer.Position
}

// Invariant is one predicate every state of a path must satisfy.
type Invariant struct {
	ID   ids.InvariantHandle
	Name string
	Expr expr.Expr
	Pos  lexer.Position
}

// Transition is one disjunct of the relation between consecutive states;
// the full transition relation is the disjunction of every Transition.
type Transition struct {
	ID   ids.TransitionHandle
	Name string
	Expr expr.Expr
	Pos  lexer.Position
}

// LTLVariable is an auxiliary Boolean introduced by LTL flattening,
// standing for one future or loop-variant subformula.
type LTLVariable struct {
	ID   ids.LTLVariableHandle
	Expr expr.Expr
}

func (v LTLVariable) Name() string { return fmt.Sprintf("_%d", v.ID) }

// IsLoop reports whether v corresponds to a loop-variant (hatted) LTL
// operator, which is only meaningful once a lasso loop point is fixed.
func (v LTLVariable) IsLoop() bool {
	switch v.Expr.Kind {
	case expr.KLTLUnary:
		return v.Expr.LTLUOp == expr.FHat || v.Expr.LTLUOp == expr.GHat
	case expr.KLTLBinary:
		return v.Expr.LTLBOp == expr.UHat || v.Expr.LTLBOp == expr.RHat
	default:
		return false
	}
}

// Model is the single owner of every entity in a parsed transition
// system. Expressions elsewhere in the tree reference entities by the
// ids.*Handle values assigned when they are added, never by pointer.
type Model struct {
	Enumerates   []Enumerate
	Intervals    []Interval
	Declarations []Declaration
	Definitions  []Definition
	FunDecs      []FunDec
	FunDefs      []FunDef

	Initials    []Initial
	Invariants  []Invariant
	Transitions []Transition

	Property *expr.Expr

	Search Search

	LTLVariables []LTLVariable
}

// New returns an empty Model with the default search configuration:
// a truncated path, plain satisfiability search, unbounded depth.
func New() *Model {
	return &Model{
		Search: Search{Transitions: TransitionNumber{Min: 0, Max: -1}, PathType: Truncated, SearchType: Solve, MaxDepth: -1},
	}
}

func (m *Model) AddEnumerate(e Enumerate) ids.EnumerateHandle {
	e.ID = ids.EnumerateHandle(len(m.Enumerates))
	m.Enumerates = append(m.Enumerates, e)
	return e.ID
}

func (m *Model) AddInterval(i Interval) ids.IntervalHandle {
	i.ID = ids.IntervalHandle(len(m.Intervals))
	m.Intervals = append(m.Intervals, i)
	return i.ID
}

func (m *Model) AddDeclaration(d Declaration) ids.DeclarationHandle {
	d.ID = ids.DeclarationHandle(len(m.Declarations))
	m.Declarations = append(m.Declarations, d)
	return d.ID
}

func (m *Model) AddDefinition(d Definition) ids.DefinitionHandle {
	d.ID = ids.DefinitionHandle(len(m.Definitions))
	m.Definitions = append(m.Definitions, d)
	return d.ID
}

func (m *Model) AddFunDec(f FunDec) ids.FunDecHandle {
	f.ID = ids.FunDecHandle(len(m.FunDecs))
	m.FunDecs = append(m.FunDecs, f)
	return f.ID
}

func (m *Model) AddFunDef(f FunDef) ids.FunDefHandle {
	f.ID = ids.FunDefHandle(len(m.FunDefs))
	m.FunDefs = append(m.FunDefs, f)
	return f.ID
}

func (m *Model) AddInitial(i Initial) ids.InitialHandle {
	i.ID = ids.InitialHandle(len(m.Initials))
	m.Initials = append(m.Initials, i)
	return i.ID
}

func (m *Model) AddInvariant(i Invariant) ids.InvariantHandle {
	i.ID = ids.InvariantHandle(len(m.Invariants))
	m.Invariants = append(m.Invariants, i)
	return i.ID
}

func (m *Model) AddTransition(t Transition) ids.TransitionHandle {
	t.ID = ids.TransitionHandle(len(m.Transitions))
	m.Transitions = append(m.Transitions, t)
	return t.ID
}

// AddLTLVariable appends v and returns its handle, used by the LTL
// flattening pass to intern one auxiliary variable per distinct
// subformula (see Model.InternLTLVariable).
func (m *Model) AddLTLVariable(e expr.Expr) ids.LTLVariableHandle {
	h := ids.LTLVariableHandle(len(m.LTLVariables))
	m.LTLVariables = append(m.LTLVariables, LTLVariable{ID: h, Expr: e})
	return h
}

// InternLTLVariable returns the handle of an existing LTLVariable whose
// expression IsSame as e, or appends a new one. Flattening relies on this
// to avoid introducing duplicate auxiliary variables for repeated
// subformulas (see DavidD12/tatam's flatten_ltl dedup via is_same).
func (m *Model) InternLTLVariable(e expr.Expr) ids.LTLVariableHandle {
	for _, v := range m.LTLVariables {
		if v.Expr.IsSame(e) {
			return v.ID
		}
	}
	return m.AddLTLVariable(e)
}

// CstDeclarationHandles returns the handles of every constant declaration,
// in declaration order.
func (m *Model) CstDeclarationHandles() []ids.DeclarationHandle {
	var out []ids.DeclarationHandle
	for _, d := range m.Declarations {
		if d.Constant {
			out = append(out, d.ID)
		}
	}
	return out
}

// VarDeclarationHandles returns the handles of every variable declaration,
// in declaration order.
func (m *Model) VarDeclarationHandles() []ids.DeclarationHandle {
	var out []ids.DeclarationHandle
	for _, d := range m.Declarations {
		if !d.Constant {
			out = append(out, d.ID)
		}
	}
	return out
}

// VarFunDecHandles returns the handles of every uninterpreted variable
// function (as opposed to a constant, time-invariant function).
func (m *Model) VarFunDecHandles() []ids.FunDecHandle {
	var out []ids.FunDecHandle
	for _, f := range m.FunDecs {
		if !f.Constant {
			out = append(out, f.ID)
		}
	}
	return out
}

// Snapshot returns a deep-enough copy of m for a parallel search worker:
// the entity slices are copied so that worker-local mutation (e.g. none
// today, but future per-depth caching) can never be observed by another
// worker or the coordinator.
func (m *Model) Snapshot() *Model {
	cp := *m
	cp.Enumerates = append([]Enumerate(nil), m.Enumerates...)
	cp.Intervals = append([]Interval(nil), m.Intervals...)
	cp.Declarations = append([]Declaration(nil), m.Declarations...)
	cp.Definitions = append([]Definition(nil), m.Definitions...)
	cp.FunDecs = append([]FunDec(nil), m.FunDecs...)
	cp.FunDefs = append([]FunDef(nil), m.FunDefs...)
	cp.Initials = append([]Initial(nil), m.Initials...)
	cp.Invariants = append([]Invariant(nil), m.Invariants...)
	cp.Transitions = append([]Transition(nil), m.Transitions...)
	cp.LTLVariables = append([]LTLVariable(nil), m.LTLVariables...)
	return &cp
}
