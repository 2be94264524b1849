// Package expr implements the pure-functional expression intermediate
// representation shared by every model entity body: initial predicates,
// invariants, transition relations, and LTL properties. It is grounded
// on DavidD12/tatam's src/expr/expression.rs, translated from a Rust
// enum-of-boxes into a single tagged Go struct so that values can be
// copied and compared without heap indirection for the common leaf
// cases (Bool, Int, references).
package expr

import (
	"github.com/davidd12/tatamgo/internal/ids"
	"github.com/davidd12/tatamgo/internal/types"
)

// Kind tags the shape of an Expr.
type Kind int

const (
	KBool Kind = iota
	KInt
	KReal
	KPrefixUnary
	KBinary
	KNary
	KEnumerateElement
	KDeclaration
	KDefinition
	KFunDec
	KFunDef
	KParameter
	KApply
	KAs
	KFollowing
	KState
	KScope
	KIfThenElse
	KQuantifier
	KLTLUnary
	KLTLBinary
	KLTLVariable
	KUnresolved
)

var kindText = map[Kind]string{
	KBool: "Bool", KInt: "Int", KReal: "Real", KPrefixUnary: "PrefixUnary", KBinary: "Binary",
	KNary: "Nary", KEnumerateElement: "EnumerateElement", KDeclaration: "Declaration",
	KDefinition: "Definition", KFunDec: "FunDec", KFunDef: "FunDef", KParameter: "Parameter",
	KApply: "Apply", KAs: "As", KFollowing: "Following", KState: "State", KScope: "Scope",
	KIfThenElse: "IfThenElse", KQuantifier: "Quantifier", KLTLUnary: "LTLUnary",
	KLTLBinary: "LTLBinary", KLTLVariable: "LTLVariable", KUnresolved: "Unresolved",
}

func (k Kind) String() string { return kindText[k] }

type PrefixUnaryOp int

const (
	Not PrefixUnaryOp = iota
	Neg
)

func (o PrefixUnaryOp) String() string {
	if o == Not {
		return "not"
	}
	return "-"
}

type BinaryOp int

const (
	Eq BinaryOp = iota
	Ne
	Lt
	Le
	Ge
	Gt
	Implies
	BinMin
	BinMax
)

var binaryOpText = map[BinaryOp]string{
	Eq: "=", Ne: "!=", Lt: "<", Le: "<=", Ge: ">=", Gt: ">",
	Implies: "=>", BinMin: "min", BinMax: "max",
}

func (o BinaryOp) String() string { return binaryOpText[o] }

type NaryOp int

const (
	And NaryOp = iota
	Or
	Add
	Sub
	Mul
)

var naryOpText = map[NaryOp]string{And: "and", Or: "or", Add: "+", Sub: "-", Mul: "*"}

func (o NaryOp) String() string { return naryOpText[o] }

type QtOp int

const (
	Forall QtOp = iota
	Exists
	QtSum
	QtProd
	QtMin
	QtMax
)

var qtOpText = map[QtOp]string{
	Forall: "forall", Exists: "exists", QtSum: "sum", QtProd: "prod", QtMin: "min", QtMax: "max",
}

func (o QtOp) String() string { return qtOpText[o] }

type LTLUnaryOp int

const (
	X LTLUnaryOp = iota
	F
	G
	FHat // loop-variant F used inside loop flattening
	GHat // loop-variant G used inside loop flattening
)

var ltlUnaryText = map[LTLUnaryOp]string{X: "X", F: "F", G: "G", FHat: "F^", GHat: "G^"}

func (o LTLUnaryOp) String() string { return ltlUnaryText[o] }

type LTLBinaryOp int

const (
	U LTLBinaryOp = iota
	R
	UHat
	RHat
)

var ltlBinaryText = map[LTLBinaryOp]string{U: "U", R: "R", UHat: "U^", RHat: "R^"}

func (o LTLBinaryOp) String() string { return ltlBinaryText[o] }

// StateKind selects an anchor along a solved path: the first state, the
// state the enclosing expression is evaluated at, or the last state of a
// finite/truncated path.
type StateKind int

const (
	First StateKind = iota
	Current
	Last
)

func (s StateKind) String() string {
	switch s {
	case First:
		return "first"
	case Current:
		return "current"
	default:
		return "last"
	}
}

// Parameter is a quantifier- or function-bound name with a declared type.
type Parameter struct {
	Name string
	Typ  types.Type
}

func (p Parameter) IsSame(o Parameter) bool { return p.Name == o.Name }

// ElifBranch is one elif arm of an IfThenElse.
type ElifBranch struct {
	Cond Expr
	Then Expr
}

// Expr is a node of the expression tree. Only the fields relevant to Kind
// are meaningful. Expr is a value type: trees are built bottom-up and
// shared by copying, matching the immutable-by-convention style the rest
// of this package's callers (internal/semantic, internal/solver) expect.
type Expr struct {
	Kind Kind

	BoolVal bool
	IntVal  int64
	// RealNum/RealDen hold an exact rational, mirroring the Rust
	// implementation's use of a Fraction rather than a float.
	RealNum int64
	RealDen int64

	PrefixOp PrefixUnaryOp
	BinOp    BinaryOp
	NaryOp   NaryOp
	LTLUOp   LTLUnaryOp
	LTLBOp   LTLBinaryOp

	Sub         *Expr  // PrefixUnary operand, Following operand, LTLunary operand
	Left, Right *Expr  // Binary, LTLbinary operands
	Operands    []Expr // Nary operands

	EnumElem  ids.EnumerateElementHandle
	Decl      ids.DeclarationHandle
	Def       ids.DefinitionHandle
	FunDecRef ids.FunDecHandle
	FunDefRef ids.FunDefHandle
	Param     *Parameter

	Func *Expr  // Apply target
	Args []Expr // Apply arguments

	AsType    types.Type
	AsSub     *Expr
	AsDefault *Expr

	StateSub     *Expr
	StateKind    StateKind
	Shift        int
	StateDefault *Expr

	ScopeBindings []Expr
	ScopeBody     *Expr

	Cond  *Expr
	Then  *Expr
	Elifs []ElifBranch
	Else  *Expr

	QtOp    QtOp
	Params  []Parameter
	QtBody  *Expr

	LTLVar ids.LTLVariableHandle

	UnresolvedName string
}

func Bool(v bool) Expr { return Expr{Kind: KBool, BoolVal: v} }
func Int(v int64) Expr { return Expr{Kind: KInt, IntVal: v} }
func Real(num, den int64) Expr {
	if den == 0 {
		den = 1
	}
	return Expr{Kind: KReal, RealNum: num, RealDen: den}
}

func PrefixUnary(op PrefixUnaryOp, e Expr) Expr {
	return Expr{Kind: KPrefixUnary, PrefixOp: op, Sub: &e}
}

func Binary(l Expr, op BinaryOp, r Expr) Expr {
	return Expr{Kind: KBinary, BinOp: op, Left: &l, Right: &r}
}

func Nary(op NaryOp, operands []Expr) Expr {
	return Expr{Kind: KNary, NaryOp: op, Operands: operands}
}

func EnumerateElement(h ids.EnumerateElementHandle) Expr {
	return Expr{Kind: KEnumerateElement, EnumElem: h}
}

func Declaration(h ids.DeclarationHandle) Expr { return Expr{Kind: KDeclaration, Decl: h} }
func Definition(h ids.DefinitionHandle) Expr    { return Expr{Kind: KDefinition, Def: h} }
func FunDec(h ids.FunDecHandle) Expr            { return Expr{Kind: KFunDec, FunDecRef: h} }
func FunDef(h ids.FunDefHandle) Expr            { return Expr{Kind: KFunDef, FunDefRef: h} }

func ParameterRef(p Parameter) Expr { return Expr{Kind: KParameter, Param: &p} }

func Apply(fn Expr, args []Expr) Expr { return Expr{Kind: KApply, Func: &fn, Args: args} }

func As(sub Expr, t types.Type, def Expr) Expr {
	return Expr{Kind: KAs, AsSub: &sub, AsType: t, AsDefault: &def}
}

func Following(sub Expr) Expr { return Expr{Kind: KFollowing, Sub: &sub} }

func State(sub Expr, kind StateKind, shift int, def *Expr) Expr {
	return Expr{Kind: KState, StateSub: &sub, StateKind: kind, Shift: shift, StateDefault: def}
}

func Scope(bindings []Expr, body Expr) Expr {
	return Expr{Kind: KScope, ScopeBindings: bindings, ScopeBody: &body}
}

func IfThenElse(cond, then Expr, elifs []ElifBranch, els Expr) Expr {
	return Expr{Kind: KIfThenElse, Cond: &cond, Then: &then, Elifs: elifs, Else: &els}
}

func Quantifier(op QtOp, params []Parameter, body Expr) Expr {
	return Expr{Kind: KQuantifier, QtOp: op, Params: params, QtBody: &body}
}

func LTLUnary(op LTLUnaryOp, e Expr) Expr {
	return Expr{Kind: KLTLUnary, LTLUOp: op, Sub: &e}
}

func LTLBinary(l Expr, op LTLBinaryOp, r Expr) Expr {
	return Expr{Kind: KLTLBinary, LTLBOp: op, Left: &l, Right: &r}
}

func LTLVariable(h ids.LTLVariableHandle) Expr { return Expr{Kind: KLTLVariable, LTLVar: h} }

func Unresolved(name string) Expr { return Expr{Kind: KUnresolved, UnresolvedName: name} }

// IsSame is structural equality over resolved trees: two expressions built
// from the same declarations, literals and operators regardless of their
// originating source position. It mirrors DavidD12/tatam's Expr::is_same.
func (e Expr) IsSame(o Expr) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case KBool:
		return e.BoolVal == o.BoolVal
	case KInt:
		return e.IntVal == o.IntVal
	case KReal:
		return e.RealNum*o.RealDen == o.RealNum*e.RealDen
	case KPrefixUnary:
		return e.PrefixOp == o.PrefixOp && e.Sub.IsSame(*o.Sub)
	case KBinary:
		return e.BinOp == o.BinOp && e.Left.IsSame(*o.Left) && e.Right.IsSame(*o.Right)
	case KNary:
		return e.NaryOp == o.NaryOp && allSame(e.Operands, o.Operands)
	case KEnumerateElement:
		return e.EnumElem == o.EnumElem
	case KDeclaration:
		return e.Decl == o.Decl
	case KDefinition:
		return e.Def == o.Def
	case KFunDec:
		return e.FunDecRef == o.FunDecRef
	case KFunDef:
		return e.FunDefRef == o.FunDefRef
	case KParameter:
		return e.Param.IsSame(*o.Param)
	case KApply:
		return e.Func.IsSame(*o.Func) && allSame(e.Args, o.Args)
	case KAs:
		return e.AsSub.IsSame(*o.AsSub) && e.AsType.Equal(o.AsType) && e.AsDefault.IsSame(*o.AsDefault)
	case KFollowing:
		return e.Sub.IsSame(*o.Sub)
	case KState:
		return e.StateKind == o.StateKind && e.Shift == o.Shift && e.StateSub.IsSame(*o.StateSub)
	case KScope:
		return allSame(e.ScopeBindings, o.ScopeBindings) && e.ScopeBody.IsSame(*o.ScopeBody)
	case KIfThenElse:
		if !e.Cond.IsSame(*o.Cond) || !e.Then.IsSame(*o.Then) || !e.Else.IsSame(*o.Else) {
			return false
		}
		if len(e.Elifs) != len(o.Elifs) {
			return false
		}
		for i := range e.Elifs {
			if !e.Elifs[i].Cond.IsSame(o.Elifs[i].Cond) || !e.Elifs[i].Then.IsSame(o.Elifs[i].Then) {
				return false
			}
		}
		return true
	case KQuantifier:
		if e.QtOp != o.QtOp || len(e.Params) != len(o.Params) {
			return false
		}
		for i := range e.Params {
			if !e.Params[i].IsSame(o.Params[i]) {
				return false
			}
		}
		return e.QtBody.IsSame(*o.QtBody)
	case KLTLVariable:
		return e.LTLVar == o.LTLVar
	case KLTLUnary:
		return e.LTLUOp == o.LTLUOp && e.Sub.IsSame(*o.Sub)
	case KLTLBinary:
		return e.LTLBOp == o.LTLBOp && e.Left.IsSame(*o.Left) && e.Right.IsSame(*o.Right)
	case KUnresolved:
		return e.UnresolvedName == o.UnresolvedName
	default:
		return false
	}
}

func allSame(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].IsSame(b[i]) {
			return false
		}
	}
	return true
}

