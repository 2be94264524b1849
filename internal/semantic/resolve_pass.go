package semantic

import (
	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/lexer"
)

// ResolvePass replaces every expr.Unresolved name with a reference to
// the entity or parameter it names, grounded on DavidD12/tatam's
// Expr::resolve. It runs after TypeNamePass so every entry it might
// bind already carries a concrete type, and before TypeCheckPass so
// type checking never has to see a name placeholder.
type ResolvePass struct{}

func (p *ResolvePass) Name() string { return "resolve" }

func (p *ResolvePass) Run(ctx *Context) {
	m := ctx.Model
	base := globalEntries(m)

	for i := range m.Definitions {
		m.Definitions[i].Expr = p.resolve(ctx, m.Definitions[i].Expr, base, m.Definitions[i].Pos)
	}
	for i := range m.FunDefs {
		entries := append(append([]entry{}, base...), paramEntries(m.FunDefs[i].Params)...)
		m.FunDefs[i].Expr = p.resolve(ctx, m.FunDefs[i].Expr, entries, m.FunDefs[i].Pos)
	}
	for i := range m.Initials {
		m.Initials[i].Expr = p.resolve(ctx, m.Initials[i].Expr, base, m.Initials[i].Pos)
	}
	for i := range m.Invariants {
		m.Invariants[i].Expr = p.resolve(ctx, m.Invariants[i].Expr, base, m.Invariants[i].Pos)
	}
	for i := range m.Transitions {
		m.Transitions[i].Expr = p.resolve(ctx, m.Transitions[i].Expr, base, m.Transitions[i].Pos)
	}
	if m.Property != nil {
		resolved := p.resolve(ctx, *m.Property, base, lexer.Position{})
		m.Property = &resolved
	}
	if opt := m.Search.Optimization; opt != nil {
		opt.Objective = p.resolve(ctx, opt.Objective, base, lexer.Position{})
		if opt.Bound != nil {
			resolved := p.resolve(ctx, *opt.Bound, base, lexer.Position{})
			opt.Bound = &resolved
		}
	}
}

func paramEntries(params []expr.Parameter) []entry {
	out := make([]entry, len(params))
	for i, prm := range params {
		out[i] = entry{name: prm.Name, kind: entryParameter, param: prm}
	}
	return out
}

func (p *ResolvePass) resolve(ctx *Context, e expr.Expr, entries []entry, pos lexer.Position) expr.Expr {
	r := func(c expr.Expr) expr.Expr { return p.resolve(ctx, c, entries, pos) }
	switch e.Kind {
	case expr.KBool, expr.KInt, expr.KReal,
		expr.KEnumerateElement, expr.KDeclaration, expr.KDefinition,
		expr.KFunDec, expr.KFunDef, expr.KParameter, expr.KLTLVariable:
		return e
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
		return expr.As(r(*e.AsSub), e.AsType, r(*e.AsDefault))
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
		inner := append(append([]entry{}, entries...), paramEntries(e.Params)...)
		body := p.resolve(ctx, *e.QtBody, inner, pos)
		return expr.Quantifier(e.QtOp, e.Params, body)
	case expr.KLTLUnary:
		return expr.LTLUnary(e.LTLUOp, r(*e.Sub))
	case expr.KLTLBinary:
		return expr.LTLBinary(r(*e.Left), e.LTLBOp, r(*e.Right))
	case expr.KUnresolved:
		if found, ok := lookupEntry(e.UnresolvedName, entries); ok {
			return found.toExpr()
		}
		ctx.addError(errors.NewResolveError("identifier", e.UnresolvedName, pos, ctx.File))
		return e
	default:
		return e
	}
}
