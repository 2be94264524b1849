package expr

import "github.com/davidd12/tatamgo/internal/types"

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// GetType infers the type of e, resolving named Interval bounds and
// reference kinds through m. It mirrors DavidD12/tatam's
// Expression::get_type, including the narrowed-interval arithmetic for
// Add/Sub/Mul/Min/Max over IntInterval operands.
func (e Expr) GetType(m ModelLookup) types.Type {
	switch e.Kind {
	case KBool:
		return types.T(types.Bool)
	case KInt:
		return types.NewIntInterval(e.IntVal, e.IntVal)
	case KReal:
		return types.T(types.Real)
	case KPrefixUnary:
		t := e.Sub.GetType(m)
		switch e.PrefixOp {
		case Not:
			if t.IsBool() {
				return t
			}
			return types.T(types.Undefined)
		default: // Neg
			switch t.Kind {
			case types.Int, types.Real:
				return t
			case types.IntInterval:
				return types.NewIntInterval(-t.Max, -t.Min)
			default:
				return types.T(types.Undefined)
			}
		}
	case KBinary:
		switch e.BinOp {
		case Eq, Ne, Lt, Le, Ge, Gt, Implies:
			return types.T(types.Bool)
		case BinMin:
			return combineMinMax(e.Left.GetType(m), e.Right.GetType(m), true)
		default: // BinMax
			return combineMinMax(e.Left.GetType(m), e.Right.GetType(m), false)
		}
	case KNary:
		switch e.NaryOp {
		case And, Or:
			return types.T(types.Bool)
		case Add:
			return foldArith(m, e.Operands, func(a, b int64) int64 { return a + b }, func(a, b int64) int64 { return a + b })
		case Sub:
			return foldArith(m, e.Operands, func(a, b int64) int64 { return a - b }, func(a, b int64) int64 { return a - b })
		default: // Mul
			return foldArithMul(m, e.Operands)
		}
	case KEnumerateElement:
		return types.NewEnumerate(e.EnumElem.Enum)
	case KDeclaration:
		return m.DeclarationType(e.Decl)
	case KDefinition:
		return m.DefinitionType(e.Def)
	case KFunDec:
		return m.FunDecType(e.FunDecRef)
	case KFunDef:
		return m.FunDefType(e.FunDefRef)
	case KParameter:
		return e.Param.Typ
	case KApply:
		ft := e.Func.GetType(m)
		if ft.Kind == types.Function {
			return *ft.Result
		}
		return types.T(types.Undefined)
	case KAs:
		return e.AsType
	case KFollowing:
		return e.Sub.GetType(m)
	case KState:
		return e.StateSub.GetType(m)
	case KScope:
		return e.ScopeBody.GetType(m)
	case KIfThenElse:
		res := e.Then.GetType(m)
		for _, br := range e.Elifs {
			res = res.CommonType(br.Then.GetType(m))
		}
		return res.CommonType(e.Else.GetType(m))
	case KQuantifier:
		switch e.QtOp {
		case Forall, Exists:
			return types.T(types.Bool)
		case QtSum, QtProd:
			t := e.QtBody.GetType(m)
			switch t.Kind {
			case types.Real, types.Int:
				return t
			case types.Interval, types.IntInterval:
				return types.T(types.Int)
			default:
				return types.T(types.Undefined)
			}
		default: // QtMin, QtMax
			return e.QtBody.GetType(m)
		}
	case KLTLUnary, KLTLBinary, KLTLVariable:
		return types.T(types.Bool)
	default: // KUnresolved
		return types.T(types.Undefined)
	}
}

func combineMinMax(l, r types.Type, isMin bool) types.Type {
	pick := min64
	if !isMin {
		pick = max64
	}
	switch {
	case l.Kind == types.Int && r.Kind == types.Int:
		return types.T(types.Int)
	case l.Kind == types.Real && r.Kind == types.Real:
		return types.T(types.Real)
	case l.Kind == types.IntInterval && r.Kind == types.IntInterval:
		return types.NewIntInterval(pick(l.Min, r.Min), pick(l.Max, r.Max))
	case l.Kind == types.IntInterval && (r.Kind == types.Int || r.Kind == types.Real):
		return types.NewIntInterval(l.Min, l.Max)
	case r.Kind == types.IntInterval && (l.Kind == types.Int || l.Kind == types.Real):
		return types.NewIntInterval(r.Min, r.Max)
	default:
		return types.T(types.Undefined)
	}
}

func foldArith(m ModelLookup, operands []Expr, combine func(a, b int64) int64, combineInterval func(a, b int64) int64) types.Type {
	if len(operands) == 0 {
		return types.T(types.Undefined)
	}
	t := operands[0].GetType(m)
	for _, e := range operands[1:] {
		u := e.GetType(m)
		switch {
		case t.Kind == types.Int:
		case t.Kind == types.Real:
		case t.Kind == types.IntInterval && u.Kind == types.Int:
			t = types.T(types.Int)
		case t.Kind == types.IntInterval && u.Kind == types.IntInterval:
			corners := []int64{combineInterval(t.Min, u.Min), combineInterval(t.Min, u.Max), combineInterval(t.Max, u.Min), combineInterval(t.Max, u.Max)}
			lo, hi := corners[0], corners[0]
			for _, c := range corners[1:] {
				lo, hi = min64(lo, c), max64(hi, c)
			}
			t = types.NewIntInterval(lo, hi)
		default:
			return types.T(types.Undefined)
		}
	}
	return t
}

func foldArithMul(m ModelLookup, operands []Expr) types.Type {
	if len(operands) == 0 {
		return types.T(types.Undefined)
	}
	t := operands[0].GetType(m)
	for _, e := range operands[1:] {
		u := e.GetType(m)
		switch {
		case t.Kind == types.Int:
		case t.Kind == types.Real:
		case t.Kind == types.IntInterval && u.Kind == types.Int:
			t = types.T(types.Int)
		case t.Kind == types.IntInterval && u.Kind == types.IntInterval:
			corners := []int64{t.Min * u.Min, t.Min * u.Max, t.Max * u.Min, t.Max * u.Max}
			lo, hi := corners[0], corners[0]
			for _, c := range corners[1:] {
				lo, hi = min64(lo, c), max64(hi, c)
			}
			t = types.NewIntInterval(lo, hi)
		default:
			return types.T(types.Undefined)
		}
	}
	return t
}
