package parser

import (
	"strconv"

	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/lexer"
	"github.com/davidd12/tatamgo/internal/model"
)

// parseEnum parses "enum Name { A, B, C }".
func (p *Parser) parseEnum() {
	pos := p.cur.Pos
	p.advance()
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.LBRACE)

	var elements []model.EnumerateElement
	if !p.curIs(lexer.RBRACE) {
		elements = append(elements, p.parseEnumElement())
		for p.curIs(lexer.COMMA) {
			p.advance()
			elements = append(elements, p.parseEnumElement())
		}
	}
	p.expect(lexer.RBRACE)

	p.model.AddEnumerate(model.Enumerate{Name: name.Literal, Elements: elements, Pos: pos})
}

func (p *Parser) parseEnumElement() model.EnumerateElement {
	tok, _ := p.expect(lexer.IDENT)
	return model.EnumerateElement{Name: tok.Literal, Pos: tok.Pos}
}

// parseInterval parses "interval Name [min..max];".
func (p *Parser) parseInterval() {
	pos := p.cur.Pos
	p.advance()
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.LBRACKET)
	min := p.parseSignedInt()
	p.expect(lexer.DOTDOT)
	max := p.parseSignedInt()
	p.expect(lexer.RBRACKET)
	p.expect(lexer.SEMI)

	p.model.AddInterval(model.Interval{Name: name.Literal, Min: min, Max: max, Pos: pos})
}

func (p *Parser) parseSignedInt() int64 {
	sign := int64(1)
	if p.curIs(lexer.MINUS) {
		sign = -1
		p.advance()
	}
	tok, _ := p.expect(lexer.INT)
	n, _ := strconv.ParseInt(tok.Literal, 10, 64)
	return sign * n
}

// parseDeclaration parses "cst Name : Type;" or "var Name : Type;".
func (p *Parser) parseDeclaration(constant bool) {
	pos := p.cur.Pos
	p.advance()
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	typ := p.parseType()
	p.expect(lexer.SEMI)

	p.model.AddDeclaration(model.Declaration{Constant: constant, Name: name.Literal, Typ: typ, Pos: pos})
}

// parseDefinition parses "def Name : Type := expr;".
func (p *Parser) parseDefinition() {
	pos := p.cur.Pos
	p.advance()
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	typ := p.parseType()
	if p.curIs(lexer.COLON) && p.peekIs(lexer.ASSIGN) {
		p.advance()
	}
	p.expect(lexer.ASSIGN)
	e := p.parseExpr(LOWEST)
	p.expect(lexer.SEMI)

	p.model.AddDefinition(model.Definition{Name: name.Literal, Typ: typ, Expr: e, Pos: pos})
}

// parseFunction parses "fun Name(p1: T1, p2: T2) : Ret;" (a declaration
// with no body) or "fun Name(p1: T1) : Ret := expr;" (a definition).
// A leading "cst" keyword marks a constant (time-invariant) function.
func (p *Parser) parseFunction() {
	pos := p.cur.Pos
	p.advance()
	constant := false
	if p.curIs(lexer.CST) {
		constant = true
		p.advance()
	}
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	var params []expr.Parameter
	if !p.curIs(lexer.RPAREN) {
		params = append(params, p.parseOneParameter())
		for p.curIs(lexer.COMMA) {
			p.advance()
			params = append(params, p.parseOneParameter())
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.COLON)
	ret := p.parseType()

	if p.curIs(lexer.COLON) && p.peekIs(lexer.ASSIGN) {
		p.advance()
	}
	if p.curIs(lexer.ASSIGN) {
		p.advance()
		body := p.parseExpr(LOWEST)
		p.expect(lexer.SEMI)
		p.model.AddFunDef(model.FunDef{Name: name.Literal, Params: params, ReturnType: ret, Expr: body, Pos: pos})
		return
	}
	p.expect(lexer.SEMI)
	p.model.AddFunDec(model.FunDec{Constant: constant, Name: name.Literal, Params: params, ReturnType: ret, Pos: pos})
}

func (p *Parser) parseOneParameter() expr.Parameter {
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	typ := p.parseType()
	return expr.Parameter{Name: name.Literal, Typ: typ}
}

// parseInitial parses "initial Name : expr;".
func (p *Parser) parseInitial() {
	pos := p.cur.Pos
	p.advance()
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	e := p.parseExpr(LOWEST)
	p.expect(lexer.SEMI)
	p.model.AddInitial(model.Initial{Name: name.Literal, Expr: e, Pos: pos})
}

// parseInvariant parses "invariant Name : expr;".
func (p *Parser) parseInvariant() {
	pos := p.cur.Pos
	p.advance()
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	e := p.parseExpr(LOWEST)
	p.expect(lexer.SEMI)
	p.model.AddInvariant(model.Invariant{Name: name.Literal, Expr: e, Pos: pos})
}

// parseTransition parses "transition Name : expr;".
func (p *Parser) parseTransition() {
	pos := p.cur.Pos
	p.advance()
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	e := p.parseExpr(LOWEST)
	p.expect(lexer.SEMI)
	p.model.AddTransition(model.Transition{Name: name.Literal, Expr: e, Pos: pos})
}

// parseProperty parses "property : ltl_expr;", recorded as the model's
// single property to check.
func (p *Parser) parseProperty() {
	p.advance()
	p.expect(lexer.COLON)
	e := p.parseExpr(LOWEST)
	p.expect(lexer.SEMI)
	p.model.Property = &e
}

// parseSearch parses the search configuration block:
//
//	search
//	  transitions 0..10
//	  path truncated
//	  solve;
//	end
//
// or, for an optimization run, "optimize minimize|maximize expr [bound
// expr];" in place of "solve;".
func (p *Parser) parseSearch() {
	p.advance()
	search := model.Search{Transitions: model.TransitionNumber{Min: 0, Max: -1}, PathType: model.Truncated, SearchType: model.Solve}

	if p.curIs(lexer.IDENT) && p.cur.Literal == "transitions" {
		p.advance()
		search.Transitions.Min = int(p.parseSignedInt())
		p.expect(lexer.DOTDOT)
		if p.curIs(lexer.INT) || p.curIs(lexer.MINUS) {
			search.Transitions.Max = int(p.parseSignedInt())
		} else {
			search.Transitions.Max = -1
		}
	}

	if p.curIs(lexer.IDENT) && p.cur.Literal == "path" {
		p.advance()
		search.PathType = p.parsePathType()
	}

	switch {
	case p.curIs(lexer.SOLVE):
		p.advance()
		search.SearchType = model.Solve
	case p.curIs(lexer.OPTIMIZE):
		p.advance()
		minimize := true
		if p.curIs(lexer.MAXIMIZE) {
			minimize = false
			p.advance()
		} else {
			p.expect(lexer.MINIMIZE)
		}
		objective := p.parseExpr(LOWEST)
		opt := &model.Optimization{Minimize: minimize, Objective: objective}
		if p.curIs(lexer.IDENT) && p.cur.Literal == "bound" {
			p.advance()
			bound := p.parseExpr(LOWEST)
			opt.Bound = &bound
		}
		search.SearchType = model.Optimize
		search.Optimization = opt
	}
	p.expect(lexer.SEMI)
	p.expect(lexer.END)

	p.model.Search = search
}

func (p *Parser) parsePathType() model.PathType {
	pt := model.PathType{Kind: model.PathForward}
	pt = p.orPathFlag(pt)
	for p.curIs(lexer.PLUS) {
		p.advance()
		pt = p.orPathFlag(pt)
	}
	return pt
}

func (p *Parser) orPathFlag(pt model.PathType) model.PathType {
	switch p.cur.Type {
	case lexer.TRUNCATED:
		pt.Truncated = true
	case lexer.INFINITE:
		pt.Infinite = true
	case lexer.FINITE:
		pt.Finite = true
	case lexer.COMPLETE:
		pt.Complete = true
	case lexer.INITIAL_MODE:
		pt = model.InitialOnlyPath
		p.advance()
		return pt
	default:
		p.errorf("expected a path mode, found %q", p.cur.Literal)
		return pt
	}
	p.advance()
	return pt
}
