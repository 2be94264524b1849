package solver

import (
	"fmt"
	"strings"
)

// Check is the complete SMT-LIB 2 text for one bounded unrolling of a
// model, split into declarations (sorts, constants, per-depth state
// variables, LTL auxiliary booleans) and assertions (initial, invariant,
// transition and LTL definitional constraints plus the negated or plain
// goal, depending on what the caller is checking). Declarations and
// assertions are kept apart so a caller using internal/smt can push a
// fresh scope and only retract the assertions between depths while
// re-using declarations already sent to the solver.
type Check struct {
	Declarations []string
	Assertions   []string
}

// encodePathPrefix builds the prefix every mode shares (spec 4.5 steps
// 1-7): sorts, constants, per-depth state variables, non-loop LTL
// symbols, initials at state 0, invariants at every state, the
// transition disjunction between consecutive states, and the recursive
// non-loop LTL definitions. Grounded on DavidD12/tatam's
// SolverForBounded::create_path, generalized to an explicit depth
// parameter instead of the original's internal mutable bound field.
func (enc *Encoder) encodePathPrefix(bound int) Check {
	enc.Last = bound
	enc.LTLBoundary = bound

	var c Check
	c.Declarations = append(c.Declarations, DeclareSorts(enc.M)...)
	c.Declarations = append(c.Declarations, enc.DeclareConstants()...)
	for depth := 0; depth <= bound; depth++ {
		c.Declarations = append(c.Declarations, enc.DeclareStateVars(depth)...)
	}
	c.Declarations = append(c.Declarations, enc.declareLTLSymbols(bound)...)

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
	c.Assertions = append(c.Assertions, enc.BuildLTLDefinitions()...)
	return c
}

// Encode builds the Truncated-mode check (spec 4.5 "Truncated"): the
// shared path prefix, whose non-loop LTL variables already carry the
// finite-semantics boundary at the bound, plus the property asserted at
// state 0.
func (enc *Encoder) Encode(bound int) Check {
	c := enc.encodePathPrefix(bound)
	if enc.M.Property != nil {
		c.Assertions = append(c.Assertions, fmt.Sprintf("(assert %s)", enc.Term(*enc.M.Property, 0)))
	}
	return c
}

// EncodeComplete builds the Completeness check (spec 4.5
// "Completeness / Future"): the shared path prefix plus uniqueness
// among all states, but no property assertion — Complete asks whether
// a path of this depth can still visit a state distinct from every
// earlier one, not whether the property holds. Unsat means the
// reachable state space has been exhausted at this depth (spec 4.7).
func (enc *Encoder) EncodeComplete(bound int) Check {
	c := enc.encodePathPrefix(bound)
	c.Assertions = append(c.Assertions, enc.uniquenessAssertions(bound)...)
	return c
}

// EncodeFinite builds one iteration of the Finite "bag of distinct
// witnesses" search (spec 4.5 "Finite"): the Truncated check, plus an
// assertion excluding every previously confirmed or rejected witness at
// this depth so the solver is forced to propose a genuinely new one.
func (enc *Encoder) EncodeFinite(bound int, excluded []Witness) Check {
	c := enc.Encode(bound)
	for _, w := range excluded {
		c.Assertions = append(c.Assertions, enc.excludeWitness(w))
	}
	return c
}

// Witness is a candidate solution's per-declaration, per-depth raw SMT
// value text, used to exclude it from further Finite search or to pin
// it for finiteness confirmation.
type Witness struct {
	Bound  int
	Values map[string]map[int]string
}

// excludeWitness asserts that at least one variable declaration differs
// from w's value at some depth within w's bound, so a solver re-solving
// at the same depth cannot return w again.
func (enc *Encoder) excludeWitness(w Witness) string {
	var terms []string
	for _, d := range enc.M.Declarations {
		if d.Constant {
			continue
		}
		perDepth, ok := w.Values[d.Name]
		if !ok {
			continue
		}
		for depth := 0; depth <= w.Bound && depth <= enc.Last; depth++ {
			v, ok := perDepth[depth]
			if !ok {
				continue
			}
			terms = append(terms, fmt.Sprintf("(not (= %s %s))", enc.StateVar(d.Name, false, depth), v))
		}
	}
	if len(terms) == 0 {
		return "(assert false)"
	}
	return fmt.Sprintf("(assert (or %s))", strings.Join(terms, " "))
}

// EncodeFiniteConfirmation builds the depth w.Bound+1 instance that
// confirms whether w can be extended (spec 4.5 "Finite"): the shared
// path prefix at the larger depth, with every one of w's values pinned
// by equality. If this check is unsat, no extension exists and w is a
// genuine finite witness.
func (enc *Encoder) EncodeFiniteConfirmation(w Witness) Check {
	c := enc.encodePathPrefix(w.Bound + 1)
	for _, d := range enc.M.Declarations {
		if d.Constant {
			continue
		}
		perDepth, ok := w.Values[d.Name]
		if !ok {
			continue
		}
		for depth := 0; depth <= w.Bound; depth++ {
			v, ok := perDepth[depth]
			if !ok {
				continue
			}
			c.Assertions = append(c.Assertions, fmt.Sprintf("(assert (= %s %s))", enc.StateVar(d.Name, false, depth), v))
		}
	}
	return c
}

// transitionAssertion asserts that at least one transition relation
// holds between depth and depth+1. A model with no declared transitions
// gets "(assert true)", which leaves consecutive states unconstrained.
func (enc *Encoder) transitionAssertion(depth int) string {
	if len(enc.M.Transitions) == 0 {
		return "(assert true)"
	}
	terms := make([]string, len(enc.M.Transitions))
	for i, tr := range enc.M.Transitions {
		terms[i] = enc.Term(tr.Expr, depth)
	}
	if len(terms) == 1 {
		return fmt.Sprintf("(assert %s)", terms[0])
	}
	joined := terms[0]
	for _, t := range terms[1:] {
		joined = fmt.Sprintf("(or %s %s)", joined, t)
	}
	return fmt.Sprintf("(assert %s)", joined)
}

// declareLTLSymbols declares one boolean per non-loop LTL variable per
// depth. Loop-variant (hatted) variables are declared separately by
// EncodeInfinite, over the wider 0..loop range they need.
func (enc *Encoder) declareLTLSymbols(bound int) []string {
	var out []string
	for _, v := range enc.M.LTLVariables {
		if v.IsLoop() {
			continue
		}
		for depth := 0; depth <= bound; depth++ {
			out = append(out, fmt.Sprintf("(declare-const %s Bool)", ltlSymbol(int(v.ID), depth)))
		}
	}
	return out
}
