package solver

import (
	"fmt"
	"strings"

	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/ids"
)

// uniquenessAssertions asserts, for every pair of distinct state
// indices, that the two states differ (spec 4.5 "Uniqueness among
// states"). Used by Complete mode: unsat means every pair of states
// necessarily coincides somewhere, i.e. no state beyond those already
// explored can be new.
func (enc *Encoder) uniquenessAssertions(bound int) []string {
	var out []string
	for i := 0; i <= bound; i++ {
		for j := i + 1; j <= bound; j++ {
			out = append(out, enc.stateDifferenceAssertion(i, j))
		}
	}
	return out
}

func (enc *Encoder) stateDifferenceAssertion(i, j int) string {
	var terms []string
	for _, d := range enc.M.Declarations {
		if d.Constant {
			continue
		}
		terms = append(terms, fmt.Sprintf("(not (= %s %s))", enc.StateVar(d.Name, false, i), enc.StateVar(d.Name, false, j)))
	}
	for _, v := range enc.M.LTLVariables {
		if v.IsLoop() {
			continue
		}
		terms = append(terms, fmt.Sprintf("(not (= %s %s))", ltlSymbol(int(v.ID), i), ltlSymbol(int(v.ID), j)))
	}
	for _, f := range enc.M.VarFunDecHandles() {
		if d := enc.funDiffersAssertion(f, i, j); d != "" {
			terms = append(terms, d)
		}
	}
	if len(terms) == 0 {
		return "(assert false)"
	}
	return fmt.Sprintf("(assert (or %s))", strings.Join(terms, " "))
}

// funDiffersAssertion expresses "some application of the bounded
// variable function f differs between states i and j" as a plain OR
// over every concrete argument tuple, since the function's parameters
// are already required to be bounded (spec 4.1(7)) and CombineAll has
// already expanded comparable existentials elsewhere (spec 4.5
// "Uniqueness among states").
func (enc *Encoder) funDiffersAssertion(h ids.FunDecHandle, i, j int) string {
	fd := enc.M.FunDecs[h]
	paramRefs := make([]expr.Expr, len(fd.Params))
	for k, p := range fd.Params {
		paramRefs[k] = expr.ParameterRef(p)
	}
	call := expr.Apply(expr.FunDec(h), paramRefs)
	combos := expr.CombineAll(enc.M, fd.Params, call)
	if len(combos) == 0 {
		return ""
	}
	terms := make([]string, len(combos))
	for k, c := range combos {
		terms[k] = fmt.Sprintf("(not (= %s %s))", enc.Term(c, i), enc.Term(c, j))
	}
	return fmt.Sprintf("(or %s)", strings.Join(terms, " "))
}
