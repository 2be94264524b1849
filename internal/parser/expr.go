package parser

import (
	"strconv"
	"strings"

	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/lexer"
)

// Precedence levels, lowest to highest. Grounded on this repository's
// internal/parser precedence table, adapted to this language's operator
// set (no assignment, no set membership; LTL binary operators sit just
// above implication, the loosest-binding of the boolean connectives).
const (
	_ int = iota
	LOWEST
	IMPLIES
	LTLBINARY
	OR
	AND
	COMPARISON
	ADDITIVE
	MULTIPLICATIVE
	PREFIX
)

var precedences = map[lexer.TokenType]int{
	lexer.IMPLIES: IMPLIES,
	lexer.LTL_U:   LTLBINARY,
	lexer.LTL_R:   LTLBINARY,
	lexer.UNTIL:   LTLBINARY,
	lexer.OR:      OR,
	lexer.AND:     AND,
	lexer.ASSIGN:  COMPARISON,
	lexer.NE:      COMPARISON,
	lexer.LT:      COMPARISON,
	lexer.LE:      COMPARISON,
	lexer.GT:      COMPARISON,
	lexer.GE:      COMPARISON,
	lexer.PLUS:    ADDITIVE,
	lexer.MINUS:   ADDITIVE,
	lexer.STAR:    MULTIPLICATIVE,
}

// curPrecedence reports the precedence of p.cur if it is an infix
// operator that parseExpr's loop can absorb, LOWEST otherwise.
func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpr is the Pratt entry point: parse a prefix production
// (leaving p.cur on the first token after it), then keep absorbing
// infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpr(minPrec int) expr.Expr {
	left := p.parsePrefix()
	left = p.parsePostfix(left)

	for !p.curIs(lexer.SEMI) && !p.curIs(lexer.EOF) && minPrec < p.curPrecedence() {
		switch p.cur.Type {
		case lexer.IMPLIES:
			p.advance()
			right := p.parseExpr(IMPLIES)
			left = expr.Binary(left, expr.Implies, right)
		case lexer.OR:
			p.advance()
			right := p.parseExpr(OR)
			left = expr.Nary(expr.Or, []expr.Expr{left, right})
		case lexer.AND:
			p.advance()
			right := p.parseExpr(AND)
			left = expr.Nary(expr.And, []expr.Expr{left, right})
		case lexer.ASSIGN, lexer.NE, lexer.LT, lexer.LE, lexer.GT, lexer.GE:
			op := binaryOpFor(p.cur.Type)
			p.advance()
			right := p.parseExpr(COMPARISON)
			left = expr.Binary(left, op, right)
		case lexer.PLUS:
			p.advance()
			right := p.parseExpr(ADDITIVE)
			left = expr.Nary(expr.Add, []expr.Expr{left, right})
		case lexer.MINUS:
			p.advance()
			right := p.parseExpr(ADDITIVE)
			left = expr.Nary(expr.Sub, []expr.Expr{left, right})
		case lexer.STAR:
			p.advance()
			right := p.parseExpr(MULTIPLICATIVE)
			left = expr.Nary(expr.Mul, []expr.Expr{left, right})
		case lexer.LTL_U, lexer.UNTIL:
			p.advance()
			right := p.parseExpr(LTLBINARY)
			left = expr.LTLBinary(left, expr.U, right)
		case lexer.LTL_R:
			p.advance()
			right := p.parseExpr(LTLBINARY)
			left = expr.LTLBinary(left, expr.R, right)
		default:
			return left
		}
		left = p.parsePostfix(left)
	}
	return left
}

func binaryOpFor(t lexer.TokenType) expr.BinaryOp {
	switch t {
	case lexer.ASSIGN:
		return expr.Eq
	case lexer.NE:
		return expr.Ne
	case lexer.LT:
		return expr.Lt
	case lexer.LE:
		return expr.Le
	case lexer.GT:
		return expr.Gt
	default:
		return expr.Ge
	}
}

// parsePrefix parses a literal, a unary/prefix operator application, or a
// grouping/compound primary (if, quantifier, scope, parenthesized).
func (p *Parser) parsePrefix() expr.Expr {
	switch p.cur.Type {
	case lexer.TRUE:
		p.advance()
		return expr.Bool(true)
	case lexer.FALSE:
		p.advance()
		return expr.Bool(false)
	case lexer.INT:
		return p.parseIntLiteral()
	case lexer.REAL:
		return p.parseRealLiteral()
	case lexer.NOT:
		p.advance()
		return expr.PrefixUnary(expr.Not, p.parseExpr(PREFIX))
	case lexer.MINUS:
		p.advance()
		return expr.PrefixUnary(expr.Neg, p.parseExpr(PREFIX))
	case lexer.LTL_X:
		p.advance()
		return expr.LTLUnary(expr.X, p.parseExpr(PREFIX))
	case lexer.LTL_F:
		p.advance()
		return expr.LTLUnary(expr.F, p.parseExpr(PREFIX))
	case lexer.LTL_G:
		p.advance()
		return expr.LTLUnary(expr.G, p.parseExpr(PREFIX))
	case lexer.LPAREN:
		p.advance()
		e := p.parseExpr(LOWEST)
		p.expect(lexer.RPAREN)
		return e
	case lexer.PIPE:
		return p.parseScope()
	case lexer.IF:
		return p.parseIfThenElse()
	case lexer.FORALL:
		p.advance()
		return p.parseQuantifier(expr.Forall)
	case lexer.EXISTS:
		p.advance()
		return p.parseQuantifier(expr.Exists)
	case lexer.SUM:
		p.advance()
		return p.parseQuantifier(expr.QtSum)
	case lexer.PROD:
		p.advance()
		return p.parseQuantifier(expr.QtProd)
	case lexer.MIN:
		return p.parseMinMax(expr.BinMin, expr.QtMin)
	case lexer.MAX:
		return p.parseMinMax(expr.BinMax, expr.QtMax)
	case lexer.IDENT:
		return p.parseIdentOrApply()
	default:
		p.errorf("expected an expression, found %q", p.cur.Literal)
		p.advance()
		return expr.Unresolved("")
	}
}

// parsePostfix absorbs the tight postfix productions that bind to any
// primary regardless of the Pratt precedence loop: following ('), state
// (at ...), and type coercion (as ... default ...). p.cur is the token
// right after the primary parsePrefix just produced.
func (p *Parser) parsePostfix(e expr.Expr) expr.Expr {
	for {
		switch p.cur.Type {
		case lexer.TICK:
			p.advance()
			e = expr.Following(e)
		case lexer.AT:
			p.advance()
			kind, shift := p.parseStateIndex()
			var def *expr.Expr
			if p.curIs(lexer.DEFAULT) {
				p.advance()
				d := p.parseExpr(PREFIX)
				def = &d
			}
			e = expr.State(e, kind, shift, def)
		case lexer.AS:
			p.advance()
			t := p.parseType()
			p.expect(lexer.DEFAULT)
			d := p.parseExpr(PREFIX)
			e = expr.As(e, t, d)
		default:
			return e
		}
	}
}

func (p *Parser) parseStateIndex() (expr.StateKind, int) {
	var kind expr.StateKind
	switch p.cur.Type {
	case lexer.FIRST:
		kind = expr.First
	case lexer.CURRENT:
		kind = expr.Current
	case lexer.LAST:
		kind = expr.Last
	default:
		p.errorf("expected first, current or last, found %q", p.cur.Literal)
		return expr.Current, 0
	}
	p.advance()
	shift := 0
	if p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		sign := 1
		if p.curIs(lexer.MINUS) {
			sign = -1
		}
		p.advance()
		if tok, ok := p.expect(lexer.INT); ok {
			n, _ := strconv.ParseInt(tok.Literal, 10, 64)
			shift = sign * int(n)
		}
	}
	return kind, shift
}

func (p *Parser) parseIntLiteral() expr.Expr {
	n, _ := strconv.ParseInt(p.cur.Literal, 10, 64)
	p.advance()
	return expr.Int(n)
}

func (p *Parser) parseRealLiteral() expr.Expr {
	lit := p.cur.Literal
	p.advance()
	parts := strings.SplitN(lit, ".", 2)
	intPart, _ := strconv.ParseInt(parts[0], 10, 64)
	if len(parts) == 1 {
		return expr.Real(intPart, 1)
	}
	frac := parts[1]
	fracVal, _ := strconv.ParseInt(frac, 10, 64)
	den := int64(1)
	for range frac {
		den *= 10
	}
	num := intPart*den + fracVal
	n, d := reduceParsed(num, den)
	return expr.Real(n, d)
}

func reduceParsed(num, den int64) (int64, int64) {
	a, b := num, den
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		a = 1
	}
	return num / a, den / a
}

// parseIdentOrApply parses a bare name reference or a function call;
// name resolution into a declaration/definition/function handle happens
// in internal/semantic, never here.
func (p *Parser) parseIdentOrApply() expr.Expr {
	name := p.cur.Literal
	p.advance()
	if !p.curIs(lexer.LPAREN) {
		return expr.Unresolved(name)
	}
	p.advance()
	var args []expr.Expr
	if !p.curIs(lexer.RPAREN) {
		args = append(args, p.parseExpr(LOWEST))
		for p.curIs(lexer.COMMA) {
			p.advance()
			args = append(args, p.parseExpr(LOWEST))
		}
	}
	p.expect(lexer.RPAREN)
	return expr.Apply(expr.Unresolved(name), args)
}

// parseMinMax disambiguates the builtin two-argument "min(a, b)"/"max(a,
// b)" binary operator from the quantified "min x: T | body end" form by
// looking at whether a parenthesis immediately follows the keyword.
func (p *Parser) parseMinMax(binOp expr.BinaryOp, qtOp expr.QtOp) expr.Expr {
	p.advance()
	if !p.curIs(lexer.LPAREN) {
		return p.parseQuantifier(qtOp)
	}
	p.advance()
	a := p.parseExpr(LOWEST)
	p.expect(lexer.COMMA)
	b := p.parseExpr(LOWEST)
	p.expect(lexer.RPAREN)
	return expr.Binary(a, binOp, b)
}

func (p *Parser) parseQuantifier(op expr.QtOp) expr.Expr {
	params := p.parseParameterList()
	p.expect(lexer.PIPE)
	body := p.parseExpr(LOWEST)
	p.expect(lexer.END)
	return expr.Quantifier(op, params, body)
}

func (p *Parser) parseParameterList() []expr.Parameter {
	var params []expr.Parameter
	name, _ := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	typ := p.parseType()
	params = append(params, expr.Parameter{Name: name.Literal, Typ: typ})
	for p.curIs(lexer.COMMA) {
		p.advance()
		name, _ := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		typ := p.parseType()
		params = append(params, expr.Parameter{Name: name.Literal, Typ: typ})
	}
	return params
}

func (p *Parser) parseScope() expr.Expr {
	p.advance()
	var bindings []expr.Expr
	if !p.curIs(lexer.PIPE) {
		bindings = append(bindings, p.parseExpr(LOWEST))
		for p.curIs(lexer.COMMA) {
			p.advance()
			bindings = append(bindings, p.parseExpr(LOWEST))
		}
	}
	p.expect(lexer.PIPE)
	body := p.parseExpr(LOWEST)
	return expr.Scope(bindings, body)
}

func (p *Parser) parseIfThenElse() expr.Expr {
	p.advance()
	cond := p.parseExpr(LOWEST)
	p.expect(lexer.THEN)
	then := p.parseExpr(LOWEST)

	var elifs []expr.ElifBranch
	for p.curIs(lexer.ELIF) {
		p.advance()
		c := p.parseExpr(LOWEST)
		p.expect(lexer.THEN)
		t := p.parseExpr(LOWEST)
		elifs = append(elifs, expr.ElifBranch{Cond: c, Then: t})
	}

	p.expect(lexer.ELSE)
	els := p.parseExpr(LOWEST)
	p.expect(lexer.END)
	return expr.IfThenElse(cond, then, elifs, els)
}
