package semantic

import (
	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/ids"
	"github.com/davidd12/tatamgo/internal/model"
)

// entryKind tags which sort of name an entry binds, mirroring
// DavidD12/tatam's EntryRef enum.
type entryKind int

const (
	entryEnumerateElement entryKind = iota
	entryDeclaration
	entryDefinition
	entryFunDec
	entryFunDef
	entryParameter
)

// entry is one name binding visible at some point of the resolve walk:
// a model-level declaration, or a quantifier/scope parameter local to
// the expression currently being resolved.
type entry struct {
	name  string
	kind  entryKind
	enum  ids.EnumerateElementHandle
	decl  ids.DeclarationHandle
	def   ids.DefinitionHandle
	fdec  ids.FunDecHandle
	fdef  ids.FunDefHandle
	param expr.Parameter
}

// toExpr converts an entry back into the Expr node it stands for, used
// once an Unresolved name is matched during resolution.
func (e entry) toExpr() expr.Expr {
	switch e.kind {
	case entryEnumerateElement:
		return expr.EnumerateElement(e.enum)
	case entryDeclaration:
		return expr.Declaration(e.decl)
	case entryDefinition:
		return expr.Definition(e.def)
	case entryFunDec:
		return expr.FunDec(e.fdec)
	case entryFunDef:
		return expr.FunDef(e.fdef)
	default:
		return expr.ParameterRef(e.param)
	}
}

// globalEntries builds the model-wide symbol table: every enumerate
// element, declaration, definition, and function name, in declaration
// order. Quantifier and scope bodies push additional entries onto a
// copy of this slice for the duration of their own resolution.
func globalEntries(m *model.Model) []entry {
	var out []entry
	for _, en := range m.Enumerates {
		for i, el := range en.Elements {
			out = append(out, entry{name: el.Name, kind: entryEnumerateElement, enum: ids.EnumerateElementHandle{Enum: en.ID, Index: i}})
		}
	}
	for _, d := range m.Declarations {
		out = append(out, entry{name: d.Name, kind: entryDeclaration, decl: d.ID})
	}
	for _, d := range m.Definitions {
		out = append(out, entry{name: d.Name, kind: entryDefinition, def: d.ID})
	}
	for _, f := range m.FunDecs {
		out = append(out, entry{name: f.Name, kind: entryFunDec, fdec: f.ID})
	}
	for _, f := range m.FunDefs {
		out = append(out, entry{name: f.Name, kind: entryFunDef, fdef: f.ID})
	}
	return out
}

// lookupEntry searches entries from the end, so a quantifier parameter
// that shadows an outer declaration is found before it, matching
// DavidD12/tatam's get_entry (which walks entries.iter().rev()).
func lookupEntry(name string, entries []entry) (entry, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].name == name {
			return entries[i], true
		}
	}
	return entry{}, false
}
