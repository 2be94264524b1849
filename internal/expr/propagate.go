package expr

import "github.com/davidd12/tatamgo/internal/types"

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func reduceFrac(num, den int64) (int64, int64) {
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(num, den)
	return num / g, den / g
}

func addFrac(n1, d1, n2, d2 int64) (int64, int64) {
	return reduceFrac(n1*d2+n2*d1, d1*d2)
}

func subFrac(n1, d1, n2, d2 int64) (int64, int64) {
	return reduceFrac(n1*d2-n2*d1, d1*d2)
}

func mulFrac(n1, d1, n2, d2 int64) (int64, int64) {
	return reduceFrac(n1*n2, d1*d2)
}

func isZeroFrac(n, d int64) bool { return n == 0 }

// Propagate performs constant folding over a fully resolved tree:
// Boolean short-circuit, integer/rational arithmetic reduction, and
// IfThenElse branch pruning when a guard is statically known. Grounded on
// DavidD12/tatam's Expr::propagate.
func (e Expr) Propagate(m ModelLookup) Expr {
	switch e.Kind {
	case KBool, KInt, KReal, KEnumerateElement, KDeclaration, KFunDec, KFunDef, KParameter, KLTLVariable, KUnresolved:
		return e

	case KPrefixUnary:
		kid := e.Sub.Propagate(m)
		switch e.PrefixOp {
		case Not:
			if kid.Kind == KBool {
				return Bool(!kid.BoolVal)
			}
			return PrefixUnary(Not, kid)
		default: // Neg
			switch kid.Kind {
			case KInt:
				return Int(-kid.IntVal)
			case KReal:
				return Real(-kid.RealNum, kid.RealDen)
			default:
				if t := kid.GetType(m); t.Kind == types.IntInterval && t.Min == t.Max {
					return Int(-t.Min)
				}
				return PrefixUnary(Neg, kid)
			}
		}

	case KBinary:
		left := e.Left.Propagate(m)
		right := e.Right.Propagate(m)
		return propagateBinary(m, left, e.BinOp, right)

	case KNary:
		return propagateNary(m, e.NaryOp, e.Operands)

	case KDefinition:
		t := m.DefinitionType(e.Def)
		if t.Kind == types.IntInterval && t.Min == t.Max {
			return Int(t.Min)
		}
		return m.DefinitionExpr(e.Def).Propagate(m)

	case KApply:
		fn := e.Func.Propagate(m)
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.Propagate(m)
		}
		if fn.Kind == KFunDef {
			params := m.FunDefParams(fn.FunDefRef)
			body := m.FunDefExpr(fn.FunDefRef)
			pairs := make([][2]Expr, len(params))
			for i, p := range params {
				pairs[i] = [2]Expr{ParameterRef(p), args[i]}
			}
			return body.SubstituteAll(pairs)
		}
		return Apply(fn, args)

	case KAs:
		return As(e.AsSub.Propagate(m), e.AsType, e.AsDefault.Propagate(m))

	case KFollowing:
		return Following(e.Sub.Propagate(m))

	case KState:
		var def *Expr
		if e.StateDefault != nil {
			d := e.StateDefault.Propagate(m)
			def = &d
		}
		return State(e.StateSub.Propagate(m), e.StateKind, e.Shift, def)

	case KScope:
		bindings := make([]Expr, len(e.ScopeBindings))
		for i, b := range e.ScopeBindings {
			bindings[i] = b.Propagate(m)
		}
		return Scope(bindings, e.ScopeBody.Propagate(m))

	case KIfThenElse:
		return propagateIfThenElse(m, e)

	case KQuantifier:
		return Quantifier(e.QtOp, e.Params, e.QtBody.Propagate(m))

	case KLTLUnary:
		return LTLUnary(e.LTLUOp, e.Sub.Propagate(m))

	case KLTLBinary:
		return LTLBinary(e.Left.Propagate(m), e.LTLBOp, e.Right.Propagate(m))

	default:
		return e
	}
}

func propagateBinary(m ModelLookup, left Expr, op BinaryOp, right Expr) Expr {
	intervalOverlap := func() (bool, bool) {
		lt, rt := left.GetType(m), right.GetType(m)
		if lt.Kind == types.IntInterval && rt.Kind == types.IntInterval {
			return true, lt.Max < rt.Min || rt.Max < lt.Min
		}
		return false, false
	}
	switch op {
	case Eq:
		switch {
		case left.Kind == KBool && right.Kind == KBool:
			return Bool(left.BoolVal == right.BoolVal)
		case left.Kind == KInt && right.Kind == KInt:
			return Bool(left.IntVal == right.IntVal)
		case left.Kind == KReal && right.Kind == KReal:
			n, _ := subFrac(left.RealNum, left.RealDen, right.RealNum, right.RealDen)
			return Bool(n == 0)
		case left.Kind == KEnumerateElement && right.Kind == KEnumerateElement:
			return Bool(left.EnumElem == right.EnumElem)
		}
		if ok, disjoint := intervalOverlap(); ok && disjoint {
			return Bool(false)
		}
		return Binary(left, Eq, right)
	case Ne:
		switch {
		case left.Kind == KBool && right.Kind == KBool:
			return Bool(left.BoolVal != right.BoolVal)
		case left.Kind == KInt && right.Kind == KInt:
			return Bool(left.IntVal != right.IntVal)
		case left.Kind == KReal && right.Kind == KReal:
			n, _ := subFrac(left.RealNum, left.RealDen, right.RealNum, right.RealDen)
			return Bool(n != 0)
		case left.Kind == KEnumerateElement && right.Kind == KEnumerateElement:
			return Bool(left.EnumElem != right.EnumElem)
		}
		if ok, disjoint := intervalOverlap(); ok && disjoint {
			return Bool(true)
		}
		return Binary(left, Ne, right)
	case Lt:
		if left.Kind == KInt && right.Kind == KInt {
			return Bool(left.IntVal < right.IntVal)
		}
		lt, rt := left.GetType(m), right.GetType(m)
		if lt.Kind == types.IntInterval && rt.Kind == types.IntInterval {
			if lt.Max < rt.Min {
				return Bool(true)
			}
			if lt.Min >= rt.Max {
				return Bool(false)
			}
		}
		return Binary(left, Lt, right)
	case Le:
		if left.Kind == KInt && right.Kind == KInt {
			return Bool(left.IntVal <= right.IntVal)
		}
		lt, rt := left.GetType(m), right.GetType(m)
		if lt.Kind == types.IntInterval && rt.Kind == types.IntInterval {
			if lt.Max <= rt.Min {
				return Bool(true)
			}
			if lt.Min > rt.Max {
				return Bool(false)
			}
		}
		return Binary(left, Le, right)
	case Ge:
		if left.Kind == KInt && right.Kind == KInt {
			return Bool(left.IntVal >= right.IntVal)
		}
		lt, rt := left.GetType(m), right.GetType(m)
		if lt.Kind == types.IntInterval && rt.Kind == types.IntInterval {
			if lt.Min >= rt.Max {
				return Bool(true)
			}
			if lt.Max < rt.Min {
				return Bool(false)
			}
		}
		return Binary(left, Ge, right)
	case Gt:
		if left.Kind == KInt && right.Kind == KInt {
			return Bool(left.IntVal > right.IntVal)
		}
		lt, rt := left.GetType(m), right.GetType(m)
		if lt.Kind == types.IntInterval && rt.Kind == types.IntInterval {
			if lt.Min > rt.Max {
				return Bool(true)
			}
			if lt.Max <= rt.Min {
				return Bool(false)
			}
		}
		return Binary(left, Gt, right)
	default: // Implies
		if left.Kind == KBool && !left.BoolVal {
			return Bool(true)
		}
		if right.Kind == KBool && right.BoolVal {
			return Bool(true)
		}
		if left.Kind == KBool && left.BoolVal && right.Kind == KBool && !right.BoolVal {
			return Bool(false)
		}
		return Binary(left, Implies, right)
	}
}

func propagateNary(m ModelLookup, op NaryOp, kids []Expr) Expr {
	switch op {
	case And:
		var kept []Expr
		for _, e := range kids {
			kid := e.Propagate(m)
			if kid.Kind == KBool && !kid.BoolVal {
				return Bool(false)
			}
			if !(kid.Kind == KBool && kid.BoolVal) {
				kept = append(kept, kid)
			}
		}
		if len(kept) == 0 {
			return Bool(true)
		}
		if len(kept) == 1 {
			return kept[0]
		}
		return Nary(And, kept)

	case Or:
		var kept []Expr
		for _, e := range kids {
			kid := e.Propagate(m)
			if kid.Kind == KBool && kid.BoolVal {
				return Bool(true)
			}
			if !(kid.Kind == KBool && !kid.BoolVal) {
				kept = append(kept, kid)
			}
		}
		if len(kept) == 0 {
			return Bool(false)
		}
		if len(kept) == 1 {
			return kept[0]
		}
		return Nary(Or, kept)

	case Add:
		return propagateAddMul(m, kids, Add, 0, 1, addFrac, func(a, b int64) int64 { return a + b })

	case Mul:
		return propagateAddMul(m, kids, Mul, 1, 1, mulFrac, func(a, b int64) int64 { return a * b })

	default: // Sub
		return propagateSub(m, kids)
	}
}

func propagateAddMul(m ModelLookup, kids []Expr, op NaryOp, identN, identD int64, fracOp func(int64, int64, int64, int64) (int64, int64), intOp func(int64, int64) int64) Expr {
	intVal := identN
	hasInt := false
	realN, realD := identN, identD
	hasReal := false
	var rest []Expr
	for _, e := range kids {
		kid := e.Propagate(m)
		switch kid.Kind {
		case KInt:
			intVal = intOp(intVal, kid.IntVal)
			hasInt = true
		case KReal:
			realN, realD = fracOp(realN, realD, kid.RealNum, kid.RealDen)
			hasReal = true
		default:
			rest = append(rest, kid)
		}
	}
	if len(rest) == 0 && hasInt && !hasReal {
		return Int(intVal)
	}
	if len(rest) == 0 && hasReal && !hasInt {
		return Real(realN, realD)
	}
	if (op == Add && intVal != 0) || (op == Mul && intVal != 1) {
		rest = append(rest, Int(intVal))
	}
	if (op == Add && !isZeroFrac(realN, realD)) || (op == Mul && !(realN == realD)) {
		rest = append(rest, Real(realN, realD))
	}
	if len(rest) == 0 {
		if op == Add {
			return Int(0)
		}
		return Int(1)
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return Nary(op, rest)
}

func propagateSub(m ModelLookup, kids []Expr) Expr {
	if len(kids) == 0 {
		return Nary(Sub, nil)
	}
	first := kids[0].Propagate(m)
	firstType := first.GetType(m)

	switch {
	case firstType.Kind == types.Real:
		var rest []Expr
		valN, valD := int64(0), int64(1)
		for _, e := range kids[1:] {
			kid := e.Propagate(m)
			if kid.Kind == KReal {
				valN, valD = addFrac(valN, valD, kid.RealNum, kid.RealDen)
			} else {
				rest = append(rest, kid)
			}
		}
		if len(rest) == 0 {
			if isZeroFrac(valN, valD) {
				return first
			}
			if first.Kind == KReal {
				n, d := subFrac(first.RealNum, first.RealDen, valN, valD)
				return Real(n, d)
			}
		}
		if !isZeroFrac(valN, valD) {
			rest = append(rest, Real(valN, valD))
		}
		return Nary(Sub, append([]Expr{first}, rest...))

	case firstType.IsInteger():
		var rest []Expr
		val := int64(0)
		for _, e := range kids[1:] {
			kid := e.Propagate(m)
			if kid.Kind == KInt {
				val += kid.IntVal
			} else {
				rest = append(rest, kid)
			}
		}
		if len(rest) == 0 {
			if val == 0 {
				return first
			}
			if first.Kind == KInt {
				return Int(first.IntVal - val)
			}
		}
		if val != 0 {
			rest = append(rest, Int(val))
		}
		return Nary(Sub, append([]Expr{first}, rest...))

	default:
		rest := []Expr{first}
		for _, e := range kids[1:] {
			rest = append(rest, e.Propagate(m))
		}
		return Nary(Sub, rest)
	}
}

func propagateIfThenElse(m ModelLookup, e Expr) Expr {
	cond := e.Cond.Propagate(m)
	if cond.Kind == KBool && cond.BoolVal {
		return e.Then.Propagate(m)
	}

	var kept []ElifBranch
	for _, br := range e.Elifs {
		c := br.Cond.Propagate(m)
		if c.Kind == KBool && !c.BoolVal {
			continue
		}
		kept = append(kept, ElifBranch{Cond: c, Then: br.Then.Propagate(m)})
	}

	allFalse := cond.Kind == KBool && !cond.BoolVal
	for _, br := range kept {
		if br.Cond.Kind == KBool && br.Cond.BoolVal {
			if allFalse {
				return br.Then
			}
		} else {
			allFalse = false
		}
	}

	els := e.Else.Propagate(m)
	if allFalse {
		return els
	}
	then := e.Then.Propagate(m)
	return IfThenElse(cond, then, kept, els)
}
