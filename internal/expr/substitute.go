package expr

// Substitute replaces every subtree structurally equal to old by new,
// rebuilding every ancestor on the path. Grounded on DavidD12/tatam's
// Expr::substitute.
func (e Expr) Substitute(old, new Expr) Expr {
	if e.IsSame(old) {
		return new
	}
	switch e.Kind {
	case KPrefixUnary:
		return PrefixUnary(e.PrefixOp, e.Sub.Substitute(old, new))
	case KBinary:
		return Binary(e.Left.Substitute(old, new), e.BinOp, e.Right.Substitute(old, new))
	case KNary:
		return Nary(e.NaryOp, substituteAll(e.Operands, old, new))
	case KApply:
		return Apply(e.Func.Substitute(old, new), substituteAll(e.Args, old, new))
	case KAs:
		return As(e.AsSub.Substitute(old, new), e.AsType, e.AsDefault.Substitute(old, new))
	case KFollowing:
		return Following(e.Sub.Substitute(old, new))
	case KState:
		var def *Expr
		if e.StateDefault != nil {
			d := e.StateDefault.Substitute(old, new)
			def = &d
		}
		return State(e.StateSub.Substitute(old, new), e.StateKind, e.Shift, def)
	case KScope:
		return Scope(substituteAll(e.ScopeBindings, old, new), e.ScopeBody.Substitute(old, new))
	case KIfThenElse:
		elifs := make([]ElifBranch, len(e.Elifs))
		for i, br := range e.Elifs {
			elifs[i] = ElifBranch{Cond: br.Cond.Substitute(old, new), Then: br.Then.Substitute(old, new)}
		}
		return IfThenElse(e.Cond.Substitute(old, new), e.Then.Substitute(old, new), elifs, e.Else.Substitute(old, new))
	case KQuantifier:
		return Quantifier(e.QtOp, e.Params, e.QtBody.Substitute(old, new))
	case KLTLUnary:
		return LTLUnary(e.LTLUOp, e.Sub.Substitute(old, new))
	case KLTLBinary:
		return LTLBinary(e.Left.Substitute(old, new), e.LTLBOp, e.Right.Substitute(old, new))
	default:
		return e
	}
}

func substituteAll(v []Expr, old, new Expr) []Expr {
	out := make([]Expr, len(v))
	for i, e := range v {
		out[i] = e.Substitute(old, new)
	}
	return out
}

// SubstituteAll applies a list of (old, new) pairs in order, matching
// DavidD12/tatam's Expr::substitute_all used to instantiate quantifier
// bodies and inline function-call bodies.
func (e Expr) SubstituteAll(pairs [][2]Expr) Expr {
	result := e
	for _, p := range pairs {
		result = result.Substitute(p[0], p[1])
	}
	return result
}
