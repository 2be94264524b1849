// Package parser implements a Pratt parser for the textual model
// description language: enumerated types, named intervals, constant and
// variable declarations, macro definitions, function declarations and
// definitions, initial/invariant/transition predicates, the property
// under search and its search configuration. It is grounded on the
// teacher repository's internal/parser (DWScript's Pratt parser: prefix/infix
// function tables keyed by token type, a two-token cursor, and an
// accumulated error list rather than panicking on the first mistake).
//
// The parser never resolves a name to a handle: every identifier
// occurrence becomes an expr.Unresolved(name) and every named type
// becomes a types.NewUnresolved(name, pos). internal/semantic's
// resolve pass turns those into ids.*Handle references once every
// declaration in the file is known, so forward references (a
// transition naming a declaration declared later in the file) parse
// without a two-pass grammar.
package parser

import (
	"fmt"

	goerrors "github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/lexer"
	"github.com/davidd12/tatamgo/internal/model"
)

// Parser holds the token stream and the model under construction.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  lexer.Token
	peek lexer.Token

	model  *model.Model
	errors []goerrors.ModelError
}

// New creates a Parser over source, attributing diagnostics to file.
func New(source, file string) *Parser {
	p := &Parser{l: lexer.New(source, file), file: file, model: model.New()}
	p.advance()
	p.advance()
	return p
}

// Parse consumes the entire token stream and returns the constructed
// (unresolved) model plus any parse errors accumulated along the way.
// Parsing never stops at the first error: it resynchronizes at the next
// top-level keyword so a single mistake does not hide the rest of the
// file's diagnostics.
func Parse(source, file string) (*model.Model, []goerrors.ModelError) {
	p := New(source, file)
	p.parseFile()
	return p.model, p.errors
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) expect(t lexer.TokenType) (lexer.Token, bool) {
	if p.curIs(t) {
		tok := p.cur
		p.advance()
		return tok, true
	}
	p.errorf("expected %s, found %q", t, p.cur.Literal)
	return p.cur, false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, goerrors.NewParseError(p.cur.Pos, p.file, msg, p.cur.Literal, nil))
}

// synchronize skips tokens until the next top-level keyword or EOF, so a
// malformed declaration does not cascade into bogus downstream errors.
func (p *Parser) synchronize() {
	for !p.atTopLevelKeyword() && !p.curIs(lexer.EOF) {
		p.advance()
	}
}

func (p *Parser) atTopLevelKeyword() bool {
	switch p.cur.Type {
	case lexer.ENUM, lexer.INTERVAL, lexer.CST, lexer.VAR, lexer.DEF, lexer.FUN,
		lexer.INITIAL, lexer.INVARIANT, lexer.TRANSITION, lexer.PROPERTY, lexer.SEARCH:
		return true
	default:
		return false
	}
}

func (p *Parser) parseFile() {
	for !p.curIs(lexer.EOF) {
		before := p.cur
		p.parseTopLevel()
		if p.cur == before {
			// parseTopLevel made no progress; avoid an infinite loop.
			p.advance()
		}
	}
}

func (p *Parser) parseTopLevel() {
	switch p.cur.Type {
	case lexer.ENUM:
		p.parseEnum()
	case lexer.INTERVAL:
		p.parseInterval()
	case lexer.CST:
		p.parseDeclaration(true)
	case lexer.VAR:
		p.parseDeclaration(false)
	case lexer.DEF:
		p.parseDefinition()
	case lexer.FUN:
		p.parseFunction()
	case lexer.INITIAL:
		p.parseInitial()
	case lexer.INVARIANT:
		p.parseInvariant()
	case lexer.TRANSITION:
		p.parseTransition()
	case lexer.PROPERTY:
		p.parseProperty()
	case lexer.SEARCH:
		p.parseSearch()
	default:
		p.errorf("expected a top-level declaration, found %q", p.cur.Literal)
		p.advance()
		p.synchronize()
	}
}
