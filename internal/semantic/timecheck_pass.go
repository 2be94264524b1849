package semantic

import (
	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/lexer"
)

// TimeCheckPass enforces the temporal-nesting restrictions of the data
// model, grounded on DavidD12/tatam's Expr::check_time: a Following
// operand may never itself contain another Following (directly, through
// a function application, or inside an LTL operator), and a State
// expression may never appear in user-parsed content at all — in the
// solved encoding State is built only by the solver when it indexes a
// concrete path position, never written by a model author. Following is
// accepted only in transitions and the property: definitions, function
// bodies, initials, invariants and the search objective/bound reject it.
type TimeCheckPass struct{}

func (p *TimeCheckPass) Name() string { return "time-check" }

func (p *TimeCheckPass) Run(ctx *Context) {
	noFollowing := func(e expr.Expr, pos lexer.Position) {
		if offender := getFollowing(e); offender != nil {
			p.fail(ctx, e, *offender, "Following not allowed in an initial, invariant, definition, function or search expression", pos)
		}
	}
	for _, d := range ctx.Model.Definitions {
		p.check(ctx, d.Expr, d.Pos)
		noFollowing(d.Expr, d.Pos)
	}
	for _, f := range ctx.Model.FunDefs {
		p.check(ctx, f.Expr, f.Pos)
		noFollowing(f.Expr, f.Pos)
	}
	for _, i := range ctx.Model.Initials {
		p.check(ctx, i.Expr, i.Pos)
		noFollowing(i.Expr, i.Pos)
	}
	for _, i := range ctx.Model.Invariants {
		p.check(ctx, i.Expr, i.Pos)
		noFollowing(i.Expr, i.Pos)
	}
	for _, t := range ctx.Model.Transitions {
		p.check(ctx, t.Expr, t.Pos)
	}
	if ctx.Model.Property != nil {
		p.check(ctx, *ctx.Model.Property, lexer.Position{})
	}
	if opt := ctx.Model.Search.Optimization; opt != nil {
		p.check(ctx, opt.Objective, lexer.Position{})
		noFollowing(opt.Objective, lexer.Position{})
		if opt.Bound != nil {
			p.check(ctx, *opt.Bound, lexer.Position{})
			noFollowing(*opt.Bound, lexer.Position{})
		}
	}
}

func (p *TimeCheckPass) fail(ctx *Context, self, offender expr.Expr, message string, pos lexer.Position) {
	ctx.addError(errors.NewTimeError(message, self.ToLang(ctx.Model), offender.ToLang(ctx.Model), pos, ctx.File))
}

func (p *TimeCheckPass) check(ctx *Context, e expr.Expr, pos lexer.Position) {
	c := func(sub expr.Expr) { p.check(ctx, sub, pos) }
	switch e.Kind {
	case expr.KBool, expr.KInt, expr.KReal,
		expr.KEnumerateElement, expr.KDeclaration, expr.KDefinition,
		expr.KFunDec, expr.KFunDef, expr.KParameter, expr.KLTLVariable, expr.KUnresolved:
		return
	case expr.KPrefixUnary:
		c(*e.Sub)
	case expr.KBinary:
		c(*e.Left)
		c(*e.Right)
	case expr.KNary:
		for _, o := range e.Operands {
			c(o)
		}
	case expr.KApply:
		c(*e.Func)
		for _, a := range e.Args {
			c(a)
		}
		if offender := getFollowing(*e.Func); offender != nil {
			p.fail(ctx, e, *offender, "Following not allowed in 'Function'", pos)
		}
	case expr.KAs:
		c(*e.AsSub)
		c(*e.AsDefault)
	case expr.KFollowing:
		if offender := getFollowing(*e.Sub); offender != nil {
			p.fail(ctx, e, *offender, "Following not allowed in 'Following'", pos)
		}
		c(*e.Sub)
	case expr.KState:
		p.fail(ctx, e, e, "State expression not allowed", pos)
	case expr.KScope:
		for _, b := range e.ScopeBindings {
			c(b)
		}
		c(*e.ScopeBody)
	case expr.KIfThenElse:
		c(*e.Cond)
		c(*e.Then)
		for _, br := range e.Elifs {
			c(br.Cond)
			c(br.Then)
		}
		c(*e.Else)
	case expr.KQuantifier:
		c(*e.QtBody)
	case expr.KLTLUnary:
		if offender := getFollowing(*e.Sub); offender != nil {
			p.fail(ctx, e, *offender, "Following not allowed in LTL formula", pos)
		}
		c(*e.Sub)
	case expr.KLTLBinary:
		offender := getFollowing(*e.Left)
		if offender == nil {
			offender = getFollowing(*e.Right)
		}
		if offender != nil {
			p.fail(ctx, e, *offender, "Following not allowed in LTL formula", pos)
		}
		c(*e.Left)
		c(*e.Right)
	}
}

// getFollowing returns the first Following node found anywhere inside
// e, or nil if none exists. A State node's subexpression is skipped:
// State is already rejected outright wherever it appears.
func getFollowing(e expr.Expr) *expr.Expr {
	switch e.Kind {
	case expr.KFollowing:
		return &e
	case expr.KPrefixUnary:
		return getFollowing(*e.Sub)
	case expr.KBinary:
		if f := getFollowing(*e.Left); f != nil {
			return f
		}
		return getFollowing(*e.Right)
	case expr.KNary:
		for _, o := range e.Operands {
			if f := getFollowing(o); f != nil {
				return f
			}
		}
		return nil
	case expr.KApply:
		if f := getFollowing(*e.Func); f != nil {
			return f
		}
		for _, a := range e.Args {
			if f := getFollowing(a); f != nil {
				return f
			}
		}
		return nil
	case expr.KAs:
		if f := getFollowing(*e.AsSub); f != nil {
			return f
		}
		return getFollowing(*e.AsDefault)
	case expr.KState:
		return getFollowing(*e.StateSub)
	case expr.KScope:
		for _, b := range e.ScopeBindings {
			if f := getFollowing(b); f != nil {
				return f
			}
		}
		return getFollowing(*e.ScopeBody)
	case expr.KIfThenElse:
		if f := getFollowing(*e.Cond); f != nil {
			return f
		}
		if f := getFollowing(*e.Then); f != nil {
			return f
		}
		for _, br := range e.Elifs {
			if f := getFollowing(br.Cond); f != nil {
				return f
			}
			if f := getFollowing(br.Then); f != nil {
				return f
			}
		}
		return getFollowing(*e.Else)
	case expr.KQuantifier:
		return getFollowing(*e.QtBody)
	case expr.KLTLUnary:
		return getFollowing(*e.Sub)
	case expr.KLTLBinary:
		if f := getFollowing(*e.Left); f != nil {
			return f
		}
		return getFollowing(*e.Right)
	default:
		return nil
	}
}
