package semantic

import (
	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/lexer"
)

// UniquenessPass rejects a name declared more than once across every
// namespace that identifier resolution draws from: enumerate elements,
// intervals, declarations, definitions, and functions all share one
// flat namespace, since an expression referencing a bare name must
// resolve to exactly one entity.
type UniquenessPass struct{}

func (p *UniquenessPass) Name() string { return "uniqueness" }

func (p *UniquenessPass) Run(ctx *Context) {
	seen := map[string]lexer.Position{}
	check := func(name string, pos lexer.Position) {
		if first, ok := seen[name]; ok {
			ctx.addError(errors.NewDuplicateError(name, first, pos, ctx.File))
			return
		}
		seen[name] = pos
	}

	m := ctx.Model
	for _, en := range m.Enumerates {
		check(en.Name, en.Pos)
		for _, el := range en.Elements {
			check(el.Name, el.Pos)
		}
	}
	for _, iv := range m.Intervals {
		check(iv.Name, iv.Pos)
	}
	for _, d := range m.Declarations {
		check(d.Name, d.Pos)
	}
	for _, d := range m.Definitions {
		check(d.Name, d.Pos)
	}
	for _, f := range m.FunDecs {
		check(f.Name, f.Pos)
	}
	for _, f := range m.FunDefs {
		check(f.Name, f.Pos)
	}
}
