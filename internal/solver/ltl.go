package solver

import (
	"fmt"

	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/model"
)

// BuildLTLDefinitions emits one definitional assertion per depth for
// every non-loop interned LTL variable, grounded on flatten.rs's
// operator set (X, F, G, U, R). Loop-variant (hatted) variables are
// only meaningful once a lasso loop point is fixed, so they are defined
// separately by EncodeInfinite. LTLVariables are interned bottom-up by
// FlattenPass, so processing them in ID order guarantees that any
// nested LTLVariable reference inside one variable's formula is already
// defined by a lower ID - no forward references occur.
func (enc *Encoder) BuildLTLDefinitions() []string {
	var out []string
	for _, v := range enc.M.LTLVariables {
		if v.IsLoop() {
			continue
		}
		for depth := enc.LTLBoundary; depth >= 0; depth-- {
			out = append(out, enc.ltlDefinitionAt(v, depth))
		}
	}
	return out
}

func (enc *Encoder) ltlDefinitionAt(v model.LTLVariable, depth int) string {
	sym := ltlSymbol(int(v.ID), depth)
	return fmt.Sprintf("(assert (= %s %s))", sym, enc.ltlFormulaAt(v, depth))
}

func (enc *Encoder) ltlFormulaAt(v model.LTLVariable, depth int) string {
	switch v.Expr.Kind {
	case expr.KLTLUnary:
		return enc.ltlUnaryFormulaAt(v, depth)
	case expr.KLTLBinary:
		return enc.ltlBinaryFormulaAt(v, depth)
	default:
		return "false"
	}
}

// ltlUnaryFormulaAt and ltlBinaryFormulaAt encode the standard one-step
// unfolding shared by every mode (spec 4.5 step 7): at any depth short
// of enc.LTLBoundary they recurse into the variable's own symbol at
// depth+1. At enc.LTLBoundary they apply the finite-semantics boundary
// case (X ≡ false, F ≡ ψ, G ≡ ψ, U ≡ χ, R ≡ χ), used as-is by
// Truncated, Finite, and Complete. Infinite mode (EncodeInfinite) calls
// these same functions with LTLBoundary set to the loop-successor
// state (distinct from Last, which stays at the bound for State(Last)
// purposes), so depth never reaches the boundary branch here; it
// asserts its own boundary equation at the successor separately.
func (enc *Encoder) ltlUnaryFormulaAt(v model.LTLVariable, depth int) string {
	sub := *v.Expr.Sub
	switch v.Expr.LTLUOp {
	case expr.X:
		if depth == enc.LTLBoundary {
			return "false"
		}
		return enc.Term(sub, depth+1)
	case expr.G, expr.GHat:
		if depth == enc.LTLBoundary {
			return enc.Term(sub, depth)
		}
		return fmt.Sprintf("(and %s %s)", enc.Term(sub, depth), ltlSymbol(int(v.ID), depth+1))
	default: // F, FHat
		if depth == enc.LTLBoundary {
			return enc.Term(sub, depth)
		}
		return fmt.Sprintf("(or %s %s)", enc.Term(sub, depth), ltlSymbol(int(v.ID), depth+1))
	}
}

func (enc *Encoder) ltlBinaryFormulaAt(v model.LTLVariable, depth int) string {
	phi := enc.Term(*v.Expr.Left, depth)
	psi := enc.Term(*v.Expr.Right, depth)
	switch v.Expr.LTLBOp {
	case expr.U, expr.UHat:
		if depth == enc.LTLBoundary {
			return psi
		}
		return fmt.Sprintf("(or %s (and %s %s))", psi, phi, ltlSymbol(int(v.ID), depth+1))
	default: // R, RHat
		if depth == enc.LTLBoundary {
			return psi
		}
		return fmt.Sprintf("(and %s (or %s %s))", psi, phi, ltlSymbol(int(v.ID), depth+1))
	}
}
