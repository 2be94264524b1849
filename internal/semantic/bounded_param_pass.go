package semantic

import (
	"fmt"

	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/lexer"
	"github.com/davidd12/tatamgo/internal/model"
)

// BoundedParamPass requires every quantifier and aggregation parameter
// to range over a bounded type (an enumerate or a bounded integer
// interval). CombineAll expands a quantifier into one conjunct/disjunct
// per inhabitant of its parameter's type, which is only finite, and
// thus only possible, when the type is bounded. Under a path search it
// also adds a warning for every variable declaration of an unbounded type.
type BoundedParamPass struct{}

func (p *BoundedParamPass) Name() string { return "bounded-param" }

func (p *BoundedParamPass) Run(ctx *Context) {
	if ctx.Model.Search.PathType.Kind == model.PathForward {
		for _, d := range ctx.Model.Declarations {
			if !d.Constant && !d.Typ.IsBounded() {
				ctx.Warnings.Add(fmt.Sprintf("variable %q has an unbounded type", d.Name), d.Pos)
			}
		}
	}
	for _, d := range ctx.Model.Definitions {
		p.check(ctx, d.Expr, d.Pos)
	}
	for _, f := range ctx.Model.FunDefs {
		p.check(ctx, f.Expr, f.Pos)
	}
	for _, i := range ctx.Model.Initials {
		p.check(ctx, i.Expr, i.Pos)
	}
	for _, i := range ctx.Model.Invariants {
		p.check(ctx, i.Expr, i.Pos)
	}
	for _, t := range ctx.Model.Transitions {
		p.check(ctx, t.Expr, t.Pos)
	}
	if ctx.Model.Property != nil {
		p.check(ctx, *ctx.Model.Property, lexer.Position{})
	}
	if opt := ctx.Model.Search.Optimization; opt != nil {
		p.check(ctx, opt.Objective, lexer.Position{})
		if opt.Bound != nil {
			p.check(ctx, *opt.Bound, lexer.Position{})
		}
	}
}

func (p *BoundedParamPass) check(ctx *Context, e expr.Expr, pos lexer.Position) {
	c := func(sub expr.Expr) { p.check(ctx, sub, pos) }
	switch e.Kind {
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
	case expr.KAs:
		c(*e.AsSub)
		c(*e.AsDefault)
	case expr.KFollowing:
		c(*e.Sub)
	case expr.KState:
		c(*e.StateSub)
		if e.StateDefault != nil {
			c(*e.StateDefault)
		}
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
		for _, prm := range e.Params {
			if !prm.Typ.IsBounded() {
				ctx.addError(errors.NewBoundedError(prm.Name, pos, ctx.File))
			}
		}
		c(*e.QtBody)
	case expr.KLTLUnary:
		c(*e.Sub)
	case expr.KLTLBinary:
		c(*e.Left)
		c(*e.Right)
	}
}
