package solver

import (
	"fmt"
	"strings"

	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/model"
)

// EncodeInfinite builds the Infinite (lasso) check (spec 4.5
// "Infinite (lasso)"): the shared path prefix over states 0..bound, one
// extra loop-successor state at bound+1, loop indicators constrained to
// a pseudo-boolean exactly-one, and loop-variant (hatted) LTL semantics
// alongside the plain ones. Grounded on DavidD12/tatam's
// SolverForBounded::create_infinite / declare_loop / define_loop, with
// z3's native pseudo-boolean `pb_eq` (no raw SMT-LIB 2 equivalent)
// replaced by a sum-of-ite equality (see DESIGN.md).
func (enc *Encoder) EncodeInfinite(bound int) Check {
	loop := bound + 1
	// Last stays at bound: a State(..., Last, ...) surface reference
	// must resolve against the real last state of the path, not the
	// synthetic loop-successor state (spec 4.9 open question). Only
	// LTLBoundary moves to the loop state, since that is purely an
	// artifact of how the one-step LTL recurrence is terminated here.
	enc.Last = bound
	enc.LTLBoundary = loop

	var c Check
	c.Declarations = append(c.Declarations, DeclareSorts(enc.M)...)
	c.Declarations = append(c.Declarations, enc.DeclareConstants()...)
	for depth := 0; depth <= loop; depth++ {
		c.Declarations = append(c.Declarations, enc.DeclareStateVars(depth)...)
	}
	c.Declarations = append(c.Declarations, enc.declareAllLTLSymbols(loop)...)
	c.Declarations = append(c.Declarations, enc.declareLoopIndicators(bound)...)

	for _, in := range enc.M.Initials {
		c.Assertions = append(c.Assertions, fmt.Sprintf("(assert %s)", enc.Term(in.Expr, 0)))
	}
	for depth := 0; depth <= bound; depth++ {
		for _, inv := range enc.M.Invariants {
			c.Assertions = append(c.Assertions, fmt.Sprintf("(assert %s)", enc.Term(inv.Expr, depth)))
		}
	}
	for depth := 0; depth < bound; depth++ {
		c.Assertions = append(c.Assertions, enc.transitionAssertion(depth))
	}

	// Standard one-step unfolding for every LTL variable (loop and
	// non-loop alike) across states 0..bound; enc.LTLBoundary (bound+1)
	// is the loop state, so depth never reaches it here and the recurrence
	// always refers to depth+1, up to and including the loop state.
	for _, v := range enc.M.LTLVariables {
		for depth := bound; depth >= 0; depth-- {
			c.Assertions = append(c.Assertions, enc.ltlDefinitionAt(v, depth))
		}
	}
	// The boundary equation at the loop state replaces what would
	// otherwise be an (bound+2)th unfolding: a fixed tautology for
	// loop-variant variables, an OR over loop indicators for the
	// plain ones.
	for _, v := range enc.M.LTLVariables {
		c.Assertions = append(c.Assertions, enc.ltlLoopBoundary(v, loop))
	}

	c.Assertions = append(c.Assertions, enc.exactlyOneLoopIndicator(bound))
	c.Assertions = append(c.Assertions, enc.loopEqualityAssertions(bound)...)

	if enc.M.Property != nil {
		c.Assertions = append(c.Assertions, fmt.Sprintf("(assert %s)", enc.Term(*enc.M.Property, 0)))
	}
	return c
}

func (enc *Encoder) declareAllLTLSymbols(loop int) []string {
	var out []string
	for _, v := range enc.M.LTLVariables {
		for depth := 0; depth <= loop; depth++ {
			out = append(out, fmt.Sprintf("(declare-const %s Bool)", ltlSymbol(int(v.ID), depth)))
		}
	}
	return out
}

func loopIndicator(i int) string { return fmt.Sprintf("_l_%d", i) }

// LoopIndicatorName exposes the declared name of the loop indicator for
// candidate loop-entry state i, for a search driver reading back which
// index ended up true after a satisfying Infinite-mode check (the Go
// equivalent of DavidD12/tatam's Solver::get_loop_index).
func LoopIndicatorName(i int) string { return loopIndicator(i) }

func (enc *Encoder) declareLoopIndicators(bound int) []string {
	out := make([]string, 0, bound+1)
	for i := 0; i <= bound; i++ {
		out = append(out, fmt.Sprintf("(declare-const %s Bool)", loopIndicator(i)))
	}
	return out
}

// exactlyOneLoopIndicator is the pseudo-boolean "exactly one of _l_0.._l_bound
// is true" constraint, expressed as a sum of 0/1 ite terms since SMT-LIB
// 2 text has no equivalent of z3's native pb_eq builder.
func (enc *Encoder) exactlyOneLoopIndicator(bound int) string {
	terms := make([]string, bound+1)
	for i := 0; i <= bound; i++ {
		terms[i] = fmt.Sprintf("(ite %s 1 0)", loopIndicator(i))
	}
	return fmt.Sprintf("(assert (= (+ %s) 1))", strings.Join(terms, " "))
}

// loopEqualityAssertions equates each loop indicator to the structural
// equality between its candidate loop-entry state and the loop-successor
// state, over every variable declaration and non-loop LTL variable.
func (enc *Encoder) loopEqualityAssertions(bound int) []string {
	loop := bound + 1
	out := make([]string, 0, bound+1)
	for s := 0; s <= bound; s++ {
		out = append(out, fmt.Sprintf("(assert (= %s %s))", loopIndicator(s), enc.stateEquality(s, loop)))
	}
	return out
}

func (enc *Encoder) stateEquality(i, j int) string {
	var terms []string
	for _, d := range enc.M.Declarations {
		if d.Constant {
			continue
		}
		terms = append(terms, fmt.Sprintf("(= %s %s)", enc.StateVar(d.Name, false, i), enc.StateVar(d.Name, false, j)))
	}
	for _, v := range enc.M.LTLVariables {
		if v.IsLoop() {
			continue
		}
		terms = append(terms, fmt.Sprintf("(= %s %s)", ltlSymbol(int(v.ID), i), ltlSymbol(int(v.ID), j)))
	}
	if len(terms) == 0 {
		return "true"
	}
	return fmt.Sprintf("(and %s)", strings.Join(terms, " "))
}

// ltlLoopBoundary defines v's symbol at the loop state. A loop-variant
// variable resolves tautologically (FHat/UHat to false, GHat/RHat to
// true); a plain variable ORs over every loop indicator, recursing into
// the loop-variant counterpart of its child subformula at the
// corresponding loop-entry state (X has no loop-variant counterpart, so
// it recurses directly into its child).
func (enc *Encoder) ltlLoopBoundary(v model.LTLVariable, loop int) string {
	sym := ltlSymbol(int(v.ID), loop)
	if v.IsLoop() {
		return fmt.Sprintf("(assert (= %s %s))", sym, loopBoundaryConstant(v))
	}
	var disjuncts []string
	for i := 0; i < loop; i++ {
		disjuncts = append(disjuncts, fmt.Sprintf("(and %s %s)", loopIndicator(i), enc.loopTargetTerm(v, i)))
	}
	return fmt.Sprintf("(assert (= %s (or %s)))", sym, strings.Join(disjuncts, " "))
}

func loopBoundaryConstant(v model.LTLVariable) string {
	switch v.Expr.Kind {
	case expr.KLTLUnary:
		if v.Expr.LTLUOp == expr.FHat {
			return "false"
		}
		return "true" // GHat
	default: // KLTLBinary
		if v.Expr.LTLBOp == expr.UHat {
			return "false"
		}
		return "true" // RHat
	}
}

// loopTargetTerm is the subformula the OR-over-loop-indicators
// disjunction recurses into at loop-entry candidate i: the child itself
// for X, or the hatted counterpart's symbol for F/G/U/R.
func (enc *Encoder) loopTargetTerm(v model.LTLVariable, i int) string {
	if v.Expr.Kind == expr.KLTLUnary && v.Expr.LTLUOp == expr.X {
		return enc.Term(*v.Expr.Sub, i)
	}
	if hat, ok := enc.hattedOf(v); ok {
		return ltlSymbol(int(hat.ID), i)
	}
	return "false"
}

// hattedOf looks up the loop-variant counterpart Pass B interned for v,
// by structural equality on the same children under the hatted
// operator, mirroring DavidD12/tatam's Model::get_ltl_expr.
func (enc *Encoder) hattedOf(v model.LTLVariable) (model.LTLVariable, bool) {
	var target expr.Expr
	switch v.Expr.Kind {
	case expr.KLTLUnary:
		var hatOp expr.LTLUnaryOp
		switch v.Expr.LTLUOp {
		case expr.F:
			hatOp = expr.FHat
		case expr.G:
			hatOp = expr.GHat
		default:
			return model.LTLVariable{}, false
		}
		target = expr.LTLUnary(hatOp, *v.Expr.Sub)
	case expr.KLTLBinary:
		var hatOp expr.LTLBinaryOp
		switch v.Expr.LTLBOp {
		case expr.U:
			hatOp = expr.UHat
		case expr.R:
			hatOp = expr.RHat
		default:
			return model.LTLVariable{}, false
		}
		target = expr.LTLBinary(*v.Expr.Left, hatOp, *v.Expr.Right)
	default:
		return model.LTLVariable{}, false
	}
	for _, c := range enc.M.LTLVariables {
		if c.Expr.IsSame(target) {
			return c, true
		}
	}
	return model.LTLVariable{}, false
}
