package solver

import (
	"fmt"
	"strings"

	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/model"
)

// Encoder translates the expressions of one model into SMT-LIB terms
// over a bounded unrolling: depth 0 is the initial state, depth k is
// the last state a given check considers. A "var" declaration gets one
// constant per depth (x!0, x!1, ...); a "cst" declaration is a single
// depth-independent constant, matching the data model's distinction
// between state that a transition can change and state that cannot.
type Encoder struct {
	M *model.Model

	// Last is the bound a State(..., Last, ...) surface reference
	// resolves against. It stays pinned to the check's bound even when
	// Infinite mode adds a loop-successor state past it (spec 4.9 open
	// question: Last does not follow the loop).
	Last int

	// LTLBoundary is the depth at which the one-step LTL unfolding
	// recurrence (ltlUnaryFormulaAt/ltlBinaryFormulaAt) stops recursing
	// and applies the finite-semantics boundary case instead. Equal to
	// Last for Truncated/Finite/Complete; equal to the loop-successor
	// state for Infinite, where a separate equation (ltlLoopBoundary)
	// defines the symbol there.
	LTLBoundary int
}

// StateVar names the SMT constant backing a variable declaration at a
// given depth, or the single constant backing a constant declaration.
func (enc *Encoder) StateVar(name string, constant bool, depth int) string {
	if constant {
		return name
	}
	return fmt.Sprintf("%s!%d", name, depth)
}

// DeclareConstants emits declare-const commands for every "cst"
// declaration, depth-independent.
func (enc *Encoder) DeclareConstants() []string {
	var out []string
	for _, d := range enc.M.Declarations {
		if d.Constant {
			out = append(out, fmt.Sprintf("(declare-const %s %s)", d.Name, SortName(d.Typ.Resolve(enc.M))))
		}
	}
	for _, f := range enc.M.FunDecs {
		sorts := make([]string, len(f.Params))
		for i, prm := range f.Params {
			sorts[i] = SortName(prm.Typ.Resolve(enc.M))
		}
		out = append(out, fmt.Sprintf("(declare-fun %s (%s) %s)", f.Name, strings.Join(sorts, " "), SortName(f.ReturnType.Resolve(enc.M))))
	}
	return out
}

// DeclareStateVars emits declare-const commands for every "var"
// declaration at the given depth.
func (enc *Encoder) DeclareStateVars(depth int) []string {
	var out []string
	for _, d := range enc.M.Declarations {
		if !d.Constant {
			out = append(out, fmt.Sprintf("(declare-const %s %s)", enc.StateVar(d.Name, false, depth), SortName(d.Typ.Resolve(enc.M))))
		}
	}
	return out
}

// Term encodes e as an SMT-LIB term evaluated at the given depth.
// LTLVariable references must already have per-depth boolean symbols
// declared by declareLTLSymbols or declareAllLTLSymbols; Term just names
// them.
func (enc *Encoder) Term(e expr.Expr, depth int) string {
	switch e.Kind {
	case expr.KBool:
		if e.BoolVal {
			return "true"
		}
		return "false"
	case expr.KInt:
		return fmt.Sprintf("%d", e.IntVal)
	case expr.KReal:
		return fmt.Sprintf("(/ %d %d)", e.RealNum, e.RealDen)
	case expr.KPrefixUnary:
		sub := enc.Term(*e.Sub, depth)
		if e.PrefixOp == expr.Not {
			return fmt.Sprintf("(not %s)", sub)
		}
		return fmt.Sprintf("(- %s)", sub)
	case expr.KBinary:
		return enc.binary(e, depth)
	case expr.KNary:
		return enc.nary(e, depth)
	case expr.KEnumerateElement:
		en := enc.M.Enumerates[e.EnumElem.Enum]
		return elementSymbol(en.Name, en.Elements[e.EnumElem.Index].Name)
	case expr.KDeclaration:
		d := enc.M.Declarations[e.Decl]
		return enc.StateVar(d.Name, d.Constant, depth)
	case expr.KDefinition:
		return enc.Term(enc.M.Definitions[e.Def].Expr, depth)
	case expr.KFunDec:
		return enc.M.FunDecs[e.FunDecRef].Name
	case expr.KFunDef:
		return enc.Term(enc.M.FunDefs[e.FunDefRef].Expr, depth)
	case expr.KParameter:
		return e.Param.Name
	case expr.KApply:
		return enc.apply(e, depth)
	case expr.KAs:
		return enc.Term(*e.AsSub, depth)
	case expr.KFollowing:
		return enc.Term(*e.Sub, depth+1)
	case expr.KState:
		return enc.Term(*e.StateSub, enc.stateDepth(e, depth))
	case expr.KScope:
		return enc.Term(*e.ScopeBody, depth)
	case expr.KIfThenElse:
		return enc.ifThenElse(e, depth)
	case expr.KLTLVariable:
		return ltlSymbol(int(e.LTLVar), depth)
	default:
		return "false"
	}
}

// apply encodes a function call. A FunDec call is a direct SMT-LIB
// function application; a FunDef call is beta-reduced in place by
// substituting each parameter reference in the body with its argument,
// the same substitution CombineAll uses to instantiate quantifier
// bodies.
func (enc *Encoder) apply(e expr.Expr, depth int) string {
	if e.Func.Kind == expr.KFunDef {
		fdef := enc.M.FunDefs[e.Func.FunDefRef]
		pairs := make([][2]expr.Expr, len(fdef.Params))
		for i, prm := range fdef.Params {
			pairs[i] = [2]expr.Expr{expr.ParameterRef(prm), e.Args[i]}
		}
		return enc.Term(fdef.Expr.SubstituteAll(pairs), depth)
	}
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = enc.Term(a, depth)
	}
	return fmt.Sprintf("(%s %s)", enc.Term(*e.Func, depth), strings.Join(args, " "))
}

func (enc *Encoder) stateDepth(e expr.Expr, depth int) int {
	base := 0
	switch e.StateKind {
	case expr.First:
		base = 0
	case expr.Current:
		base = depth
	case expr.Last:
		base = enc.Last
	}
	d := base + e.Shift
	if d < 0 {
		d = 0
	}
	if d > enc.Last {
		d = enc.Last
	}
	return d
}

func (enc *Encoder) binary(e expr.Expr, depth int) string {
	l := enc.Term(*e.Left, depth)
	r := enc.Term(*e.Right, depth)
	switch e.BinOp {
	case expr.Eq:
		return fmt.Sprintf("(= %s %s)", l, r)
	case expr.Ne:
		return fmt.Sprintf("(not (= %s %s))", l, r)
	case expr.Lt:
		return fmt.Sprintf("(< %s %s)", l, r)
	case expr.Le:
		return fmt.Sprintf("(<= %s %s)", l, r)
	case expr.Ge:
		return fmt.Sprintf("(>= %s %s)", l, r)
	case expr.Gt:
		return fmt.Sprintf("(> %s %s)", l, r)
	case expr.Implies:
		return fmt.Sprintf("(=> %s %s)", l, r)
	case expr.BinMin:
		return fmt.Sprintf("(ite (<= %s %s) %s %s)", l, r, l, r)
	default: // BinMax
		return fmt.Sprintf("(ite (>= %s %s) %s %s)", l, r, l, r)
	}
}

func (enc *Encoder) nary(e expr.Expr, depth int) string {
	terms := make([]string, len(e.Operands))
	for i, o := range e.Operands {
		terms[i] = enc.Term(o, depth)
	}
	switch e.NaryOp {
	case expr.And:
		return fmt.Sprintf("(and %s)", strings.Join(terms, " "))
	case expr.Or:
		return fmt.Sprintf("(or %s)", strings.Join(terms, " "))
	case expr.Mul:
		return fmt.Sprintf("(* %s)", strings.Join(terms, " "))
	case expr.Add:
		return fmt.Sprintf("(+ %s)", strings.Join(terms, " "))
	default: // Sub: first minus the sum of the rest
		if len(terms) == 1 {
			return fmt.Sprintf("(- %s)", terms[0])
		}
		return fmt.Sprintf("(- %s (+ %s))", terms[0], strings.Join(terms[1:], " "))
	}
}

func (enc *Encoder) ifThenElse(e expr.Expr, depth int) string {
	branches := []struct{ cond, then expr.Expr }{{*e.Cond, *e.Then}}
	for _, br := range e.Elifs {
		branches = append(branches, struct{ cond, then expr.Expr }{br.Cond, br.Then})
	}
	result := enc.Term(*e.Else, depth)
	for i := len(branches) - 1; i >= 0; i-- {
		result = fmt.Sprintf("(ite %s %s %s)", enc.Term(branches[i].cond, depth), enc.Term(branches[i].then, depth), result)
	}
	return result
}

func ltlSymbol(id, depth int) string {
	return fmt.Sprintf("ltl!%d!%d", id, depth)
}
