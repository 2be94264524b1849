package semantic

import (
	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/lexer"
	"github.com/davidd12/tatamgo/internal/types"
)

// TypeCheckPass verifies every expression in the model against the
// typing rules of the data model, grounded on DavidD12/tatam's
// Expr::check_type. Unlike the Rust original (which short-circuits on
// the first Result::Err), this walks every subexpression regardless so
// a single bad model reports all of its type errors at once.
type TypeCheckPass struct{}

func (p *TypeCheckPass) Name() string { return "type-check" }

func (p *TypeCheckPass) Run(ctx *Context) {
	for _, d := range ctx.Model.Definitions {
		p.check(ctx, d.Expr, d.Pos)
		p.checkSubtype(ctx, d.Expr, d.Pos, d.Typ)
	}
	for _, f := range ctx.Model.FunDefs {
		p.check(ctx, f.Expr, f.Pos)
		p.checkSubtype(ctx, f.Expr, f.Pos, f.ReturnType)
	}
	for _, i := range ctx.Model.Initials {
		p.check(ctx, i.Expr, i.Pos)
		p.checkBool(ctx, i.Expr, i.Pos)
	}
	for _, i := range ctx.Model.Invariants {
		p.check(ctx, i.Expr, i.Pos)
		p.checkBool(ctx, i.Expr, i.Pos)
	}
	for _, t := range ctx.Model.Transitions {
		p.check(ctx, t.Expr, t.Pos)
		p.checkBool(ctx, t.Expr, t.Pos)
	}
	if ctx.Model.Property != nil {
		p.check(ctx, *ctx.Model.Property, lexer.Position{})
		p.checkBool(ctx, *ctx.Model.Property, lexer.Position{})
	}
	if opt := ctx.Model.Search.Optimization; opt != nil {
		p.check(ctx, opt.Objective, lexer.Position{})
		p.checkNumber(ctx, opt.Objective, lexer.Position{})
		if opt.Bound != nil {
			p.check(ctx, *opt.Bound, lexer.Position{})
			p.checkNumber(ctx, *opt.Bound, lexer.Position{})
		}
	}
}

func (p *TypeCheckPass) getType(ctx *Context, e expr.Expr) types.Type {
	return e.GetType(ctx.Model)
}

func (p *TypeCheckPass) reportType(ctx *Context, e expr.Expr, pos lexer.Position, got types.Type, expected ...types.Type) {
	texts := make([]string, len(expected))
	for i, t := range expected {
		texts[i] = t.String()
	}
	ctx.addError(errors.NewTypeError(e.ToLang(ctx.Model), got.String(), texts, pos, ctx.File))
}

func (p *TypeCheckPass) checkSubtype(ctx *Context, e expr.Expr, pos lexer.Position, super types.Type) {
	got := p.getType(ctx, e)
	if !got.IsSubtypeOf(super) {
		p.reportType(ctx, e, pos, got, super)
	}
}

func (p *TypeCheckPass) checkCompatible(ctx *Context, e expr.Expr, pos lexer.Position, other types.Type) {
	got := p.getType(ctx, e)
	if !got.IsCompatibleWith(other) {
		p.reportType(ctx, e, pos, got, other)
	}
}

func (p *TypeCheckPass) checkBool(ctx *Context, e expr.Expr, pos lexer.Position) {
	p.checkSubtype(ctx, e, pos, types.T(types.Bool))
}

func (p *TypeCheckPass) checkNumber(ctx *Context, e expr.Expr, pos lexer.Position) {
	got := p.getType(ctx, e)
	if !got.IsSubtypeOf(types.T(types.Int)) && !got.IsSubtypeOf(types.T(types.Real)) {
		p.reportType(ctx, e, pos, got, types.T(types.Int), types.T(types.Real))
	}
}

func (p *TypeCheckPass) checkInteger(ctx *Context, e expr.Expr, pos lexer.Position) {
	got := p.getType(ctx, e)
	if !got.IsInteger() {
		p.reportType(ctx, e, pos, got, types.T(types.Int))
	}
}

func (p *TypeCheckPass) checkReal(ctx *Context, e expr.Expr, pos lexer.Position) {
	got := p.getType(ctx, e)
	if got.Kind != types.Real {
		p.reportType(ctx, e, pos, got, types.T(types.Real))
	}
}

func (p *TypeCheckPass) checkAllIntegerOrReal(ctx *Context, operands []expr.Expr, pos lexer.Position) {
	if len(operands) == 0 {
		return
	}
	first := p.getType(ctx, operands[0])
	isInteger := first.IsInteger()
	if !isInteger && first.Kind != types.Real {
		p.reportType(ctx, operands[0], pos, first, types.T(types.Int), types.T(types.Real))
		return
	}
	for _, e := range operands[1:] {
		if isInteger {
			p.checkInteger(ctx, e, pos)
		} else {
			p.checkReal(ctx, e, pos)
		}
	}
}

// check walks e recursively, grounded on check_type: it verifies every
// operand's own type obligations, then the node's obligations on top of
// them.
func (p *TypeCheckPass) check(ctx *Context, e expr.Expr, pos lexer.Position) {
	c := func(sub expr.Expr) { p.check(ctx, sub, pos) }
	switch e.Kind {
	case expr.KBool, expr.KInt, expr.KReal,
		expr.KEnumerateElement, expr.KDeclaration, expr.KDefinition,
		expr.KFunDec, expr.KFunDef, expr.KParameter, expr.KLTLVariable, expr.KUnresolved:
		return
	case expr.KPrefixUnary:
		c(*e.Sub)
		if e.PrefixOp == expr.Not {
			p.checkBool(ctx, *e.Sub, pos)
		} else {
			p.checkNumber(ctx, *e.Sub, pos)
		}
	case expr.KBinary:
		c(*e.Left)
		c(*e.Right)
		lt := p.getType(ctx, *e.Left)
		switch e.BinOp {
		case expr.Eq, expr.Ne:
			p.checkCompatible(ctx, *e.Right, pos, lt)
		case expr.Lt, expr.Le, expr.Ge, expr.Gt:
			p.checkNumber(ctx, *e.Left, pos)
			p.checkNumber(ctx, *e.Right, pos)
			p.checkCompatible(ctx, *e.Right, pos, lt)
		case expr.Implies:
			p.checkBool(ctx, *e.Left, pos)
			p.checkBool(ctx, *e.Right, pos)
		case expr.BinMin, expr.BinMax:
			p.checkNumber(ctx, *e.Left, pos)
			p.checkNumber(ctx, *e.Right, pos)
		}
	case expr.KNary:
		for _, o := range e.Operands {
			c(o)
		}
		switch e.NaryOp {
		case expr.And, expr.Or:
			for _, o := range e.Operands {
				p.checkBool(ctx, o, pos)
			}
		case expr.Mul, expr.Add, expr.Sub:
			p.checkAllIntegerOrReal(ctx, e.Operands, pos)
		}
	case expr.KApply:
		c(*e.Func)
		for _, a := range e.Args {
			c(a)
		}
		ft := p.getType(ctx, *e.Func)
		if ft.Kind != types.Function {
			p.reportType(ctx, *e.Func, pos, ft)
			return
		}
		for i, a := range e.Args {
			if i < len(ft.Params) {
				p.checkSubtype(ctx, a, pos, ft.Params[i])
			}
		}
	case expr.KAs:
		if e.AsType.Kind != types.IntInterval {
			p.reportType(ctx, e, pos, e.AsType, types.NewIntInterval(0, 0))
		}
		c(*e.AsSub)
		p.checkInteger(ctx, *e.AsSub, pos)
		c(*e.AsDefault)
		p.checkSubtype(ctx, *e.AsDefault, pos, e.AsType)
	case expr.KFollowing:
		c(*e.Sub)
	case expr.KState:
		c(*e.StateSub)
		if e.StateDefault != nil {
			c(*e.StateDefault)
			p.checkSubtype(ctx, *e.StateDefault, pos, p.getType(ctx, *e.StateSub))
		}
	case expr.KScope:
		for _, b := range e.ScopeBindings {
			c(b)
		}
		c(*e.ScopeBody)
		p.checkBool(ctx, *e.ScopeBody, pos)
	case expr.KIfThenElse:
		c(*e.Cond)
		p.checkBool(ctx, *e.Cond, pos)
		c(*e.Then)
		for _, br := range e.Elifs {
			c(br.Cond)
			p.checkBool(ctx, br.Cond, pos)
			c(br.Then)
		}
		c(*e.Else)
		result := p.getType(ctx, e)
		p.checkSubtype(ctx, *e.Then, pos, result)
		for _, br := range e.Elifs {
			p.checkSubtype(ctx, br.Then, pos, result)
		}
		p.checkSubtype(ctx, *e.Else, pos, result)
	case expr.KQuantifier:
		c(*e.QtBody)
		switch e.QtOp {
		case expr.Forall, expr.Exists:
			p.checkBool(ctx, *e.QtBody, pos)
		default:
			p.checkNumber(ctx, *e.QtBody, pos)
		}
	case expr.KLTLUnary:
		c(*e.Sub)
		p.checkBool(ctx, *e.Sub, pos)
	case expr.KLTLBinary:
		c(*e.Left)
		c(*e.Right)
		p.checkBool(ctx, *e.Left, pos)
		p.checkBool(ctx, *e.Right, pos)
	}
}
