package semantic

import (
	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/model"
)

// FlattenPass decomposes every LTL subformula into a DAG of auxiliary
// Boolean variables, one per LTL operator node, grounded on
// DavidD12/tatam's Expr::flatten_ltl. It walks bottom-up: an LTLUnary
// or LTLBinary node's operands are flattened first (so any LTL operator
// nested inside them is already an LTLVariable reference by the time
// the outer node is interned), then the node itself is interned into
// model.LTLVariables and replaced by a reference to that slot. This
// runs last, after every other pass, since the solver only ever walks
// the flattened property.
type FlattenPass struct{}

func (p *FlattenPass) Name() string { return "flatten" }

func (p *FlattenPass) Run(ctx *Context) {
	m := ctx.Model
	if m.Property != nil {
		flattened := p.flatten(m, *m.Property)
		m.Property = &flattened
	}
	if opt := m.Search.Optimization; opt != nil {
		opt.Objective = p.flatten(m, opt.Objective)
		if opt.Bound != nil {
			flattened := p.flatten(m, *opt.Bound)
			opt.Bound = &flattened
		}
	}
	p.flattenLoopVariants(m)
}

// flattenLoopVariants is Pass B: for every LTL variable Pass A interned
// whose operator is F, G, U, or R, register the matching loop-variant
// (hatted) counterpart over the same children, reusing the already
// flattened kids so no sub-formula is walked twice. Only the infinite
// (lasso) encoding ever reads these; grounded on DavidD12/tatam's
// Model::flatten_ltl second half. Unlike that original, the R case here
// registers the R-hat variant rather than mistakenly reusing U-hat's
// constructor.
func (p *FlattenPass) flattenLoopVariants(m *model.Model) {
	existing := m.LTLVariables
	for _, v := range existing {
		switch v.Expr.Kind {
		case expr.KLTLUnary:
			var hatOp expr.LTLUnaryOp
			switch v.Expr.LTLUOp {
			case expr.F:
				hatOp = expr.FHat
			case expr.G:
				hatOp = expr.GHat
			default:
				continue
			}
			m.InternLTLVariable(expr.LTLUnary(hatOp, *v.Expr.Sub))
		case expr.KLTLBinary:
			var hatOp expr.LTLBinaryOp
			switch v.Expr.LTLBOp {
			case expr.U:
				hatOp = expr.UHat
			case expr.R:
				hatOp = expr.RHat
			default:
				continue
			}
			m.InternLTLVariable(expr.LTLBinary(*v.Expr.Left, hatOp, *v.Expr.Right))
		}
	}
}

func (p *FlattenPass) flatten(m *model.Model, e expr.Expr) expr.Expr {
	f := func(sub expr.Expr) expr.Expr { return p.flatten(m, sub) }
	switch e.Kind {
	case expr.KBool, expr.KInt, expr.KReal,
		expr.KEnumerateElement, expr.KDeclaration, expr.KDefinition,
		expr.KFunDec, expr.KFunDef, expr.KParameter, expr.KLTLVariable, expr.KUnresolved:
		return e
	case expr.KPrefixUnary:
		return expr.PrefixUnary(e.PrefixOp, f(*e.Sub))
	case expr.KBinary:
		return expr.Binary(f(*e.Left), e.BinOp, f(*e.Right))
	case expr.KNary:
		ops := make([]expr.Expr, len(e.Operands))
		for i, o := range e.Operands {
			ops[i] = f(o)
		}
		return expr.Nary(e.NaryOp, ops)
	case expr.KApply:
		args := make([]expr.Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = f(a)
		}
		return expr.Apply(f(*e.Func), args)
	case expr.KAs:
		return expr.As(f(*e.AsSub), e.AsType, f(*e.AsDefault))
	case expr.KFollowing:
		return expr.Following(f(*e.Sub))
	case expr.KState:
		var def *expr.Expr
		if e.StateDefault != nil {
			d := f(*e.StateDefault)
			def = &d
		}
		return expr.State(f(*e.StateSub), e.StateKind, e.Shift, def)
	case expr.KScope:
		bindings := make([]expr.Expr, len(e.ScopeBindings))
		for i, b := range e.ScopeBindings {
			bindings[i] = f(b)
		}
		return expr.Scope(bindings, f(*e.ScopeBody))
	case expr.KIfThenElse:
		elifs := make([]expr.ElifBranch, len(e.Elifs))
		for i, br := range e.Elifs {
			elifs[i] = expr.ElifBranch{Cond: f(br.Cond), Then: f(br.Then)}
		}
		return expr.IfThenElse(f(*e.Cond), f(*e.Then), elifs, f(*e.Else))
	case expr.KQuantifier:
		return expr.Quantifier(e.QtOp, e.Params, f(*e.QtBody))
	case expr.KLTLUnary:
		kid := f(*e.Sub)
		h := m.InternLTLVariable(expr.LTLUnary(e.LTLUOp, kid))
		return expr.LTLVariable(h)
	case expr.KLTLBinary:
		left := f(*e.Left)
		right := f(*e.Right)
		h := m.InternLTLVariable(expr.LTLBinary(left, e.LTLBOp, right))
		return expr.LTLVariable(h)
	default:
		return e
	}
}
