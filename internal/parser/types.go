package parser

import (
	"github.com/davidd12/tatamgo/internal/lexer"
	"github.com/davidd12/tatamgo/internal/types"
)

// parseType consumes one type reference: a builtin (Bool/Int/Real), an
// inline integer range "min..max", or a named interval/enumerate,
// resolved later by internal/semantic.
func (p *Parser) parseType() types.Type {
	switch p.cur.Type {
	case lexer.BOOL_TYPE:
		p.advance()
		return types.T(types.Bool)
	case lexer.INT_TYPE:
		p.advance()
		return types.T(types.Int)
	case lexer.REAL_TYPE:
		p.advance()
		return types.T(types.Real)
	case lexer.IDENT:
		name, pos := p.cur.Literal, p.cur.Pos
		p.advance()
		return types.NewUnresolved(name, pos)
	case lexer.INT, lexer.MINUS:
		min := p.parseSignedInt()
		p.expect(lexer.DOTDOT)
		max := p.parseSignedInt()
		return types.NewIntInterval(min, max)
	default:
		p.errorf("expected a type, found %q", p.cur.Literal)
		return types.T(types.Undefined)
	}
}
