package semantic

import (
	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/lexer"
	"github.com/davidd12/tatamgo/internal/types"
)

// TypeNamePass grounds every named type reference (an interval or
// enumerate name parsed as types.Unresolved) into its concrete
// types.Type, mirroring DavidD12/tatam's Type::resolve(&HashMap). It
// must run before ResolvePass and TypeCheckPass: both need to compare
// and narrow concrete types, not name placeholders.
type TypeNamePass struct{}

func (p *TypeNamePass) Name() string { return "type-name" }

func (p *TypeNamePass) Run(ctx *Context) {
	m := ctx.Model
	names := map[string]types.Type{}
	for _, en := range m.Enumerates {
		names[en.Name] = types.NewEnumerate(en.ID)
	}
	for _, iv := range m.Intervals {
		names[iv.Name] = types.NewInterval(iv.ID)
	}

	resolve := func(t types.Type, pos lexer.Position) types.Type {
		return p.resolveType(ctx, t, names, pos)
	}

	for i := range m.Declarations {
		m.Declarations[i].Typ = resolve(m.Declarations[i].Typ, m.Declarations[i].Pos)
	}
	for i := range m.Definitions {
		m.Definitions[i].Typ = resolve(m.Definitions[i].Typ, m.Definitions[i].Pos)
		m.Definitions[i].Expr = p.resolveInExpr(ctx, m.Definitions[i].Expr, names)
	}
	for i := range m.FunDecs {
		for j := range m.FunDecs[i].Params {
			m.FunDecs[i].Params[j].Typ = resolve(m.FunDecs[i].Params[j].Typ, m.FunDecs[i].Pos)
		}
		m.FunDecs[i].ReturnType = resolve(m.FunDecs[i].ReturnType, m.FunDecs[i].Pos)
	}
	for i := range m.FunDefs {
		for j := range m.FunDefs[i].Params {
			m.FunDefs[i].Params[j].Typ = resolve(m.FunDefs[i].Params[j].Typ, m.FunDefs[i].Pos)
		}
		m.FunDefs[i].ReturnType = resolve(m.FunDefs[i].ReturnType, m.FunDefs[i].Pos)
		m.FunDefs[i].Expr = p.resolveInExpr(ctx, m.FunDefs[i].Expr, names)
	}
	for i := range m.Initials {
		m.Initials[i].Expr = p.resolveInExpr(ctx, m.Initials[i].Expr, names)
	}
	for i := range m.Invariants {
		m.Invariants[i].Expr = p.resolveInExpr(ctx, m.Invariants[i].Expr, names)
	}
	for i := range m.Transitions {
		m.Transitions[i].Expr = p.resolveInExpr(ctx, m.Transitions[i].Expr, names)
	}
	if m.Property != nil {
		resolved := p.resolveInExpr(ctx, *m.Property, names)
		m.Property = &resolved
	}
	if opt := m.Search.Optimization; opt != nil {
		opt.Objective = p.resolveInExpr(ctx, opt.Objective, names)
		if opt.Bound != nil {
			resolved := p.resolveInExpr(ctx, *opt.Bound, names)
			opt.Bound = &resolved
		}
	}
}

func (p *TypeNamePass) resolveType(ctx *Context, t types.Type, names map[string]types.Type, pos lexer.Position) types.Type {
	switch t.Kind {
	case types.Unresolved:
		resolved, ok := t.NameResolve(names)
		if !ok {
			ctx.addError(errors.NewResolveError("type", t.Name, pos, ctx.File))
			return types.T(types.Undefined)
		}
		return resolved
	case types.Function:
		params := make([]types.Type, len(t.Params))
		for i, pt := range t.Params {
			params[i] = p.resolveType(ctx, pt, names, pos)
		}
		result := p.resolveType(ctx, *t.Result, names, pos)
		return types.NewFunction(params, result)
	default:
		return t
	}
}

// resolveInExpr rewrites every nested type reference an expression
// carries directly: a quantifier's bound-parameter types and an As
// coercion's target type. Every other node is rebuilt unchanged so the
// tree keeps sharing structure where nothing needed resolving.
func (p *TypeNamePass) resolveInExpr(ctx *Context, e expr.Expr, names map[string]types.Type) expr.Expr {
	r := func(c expr.Expr) expr.Expr { return p.resolveInExpr(ctx, c, names) }
	switch e.Kind {
	case expr.KPrefixUnary:
		return expr.PrefixUnary(e.PrefixOp, r(*e.Sub))
	case expr.KBinary:
		return expr.Binary(r(*e.Left), e.BinOp, r(*e.Right))
	case expr.KNary:
		ops := make([]expr.Expr, len(e.Operands))
		for i, o := range e.Operands {
			ops[i] = r(o)
		}
		return expr.Nary(e.NaryOp, ops)
	case expr.KApply:
		args := make([]expr.Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = r(a)
		}
		return expr.Apply(r(*e.Func), args)
	case expr.KAs:
		t := p.resolveType(ctx, e.AsType, names, lexer.Position{})
		return expr.As(r(*e.AsSub), t, r(*e.AsDefault))
	case expr.KFollowing:
		return expr.Following(r(*e.Sub))
	case expr.KState:
		var def *expr.Expr
		if e.StateDefault != nil {
			d := r(*e.StateDefault)
			def = &d
		}
		return expr.State(r(*e.StateSub), e.StateKind, e.Shift, def)
	case expr.KScope:
		bindings := make([]expr.Expr, len(e.ScopeBindings))
		for i, b := range e.ScopeBindings {
			bindings[i] = r(b)
		}
		return expr.Scope(bindings, r(*e.ScopeBody))
	case expr.KIfThenElse:
		elifs := make([]expr.ElifBranch, len(e.Elifs))
		for i, br := range e.Elifs {
			elifs[i] = expr.ElifBranch{Cond: r(br.Cond), Then: r(br.Then)}
		}
		return expr.IfThenElse(r(*e.Cond), r(*e.Then), elifs, r(*e.Else))
	case expr.KQuantifier:
		params := make([]expr.Parameter, len(e.Params))
		for i, prm := range e.Params {
			params[i] = expr.Parameter{Name: prm.Name, Typ: p.resolveType(ctx, prm.Typ, names, lexer.Position{})}
		}
		return expr.Quantifier(e.QtOp, params, r(*e.QtBody))
	case expr.KLTLUnary:
		return expr.LTLUnary(e.LTLUOp, r(*e.Sub))
	case expr.KLTLBinary:
		return expr.LTLBinary(r(*e.Left), e.LTLBOp, r(*e.Right))
	default:
		return e
	}
}
