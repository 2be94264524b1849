package model

import (
	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/ids"
	"github.com/davidd12/tatamgo/internal/types"
)

// The methods below satisfy types.Lookup and expr.ModelLookup, letting
// internal/types and internal/expr resolve handles without importing this
// package (which imports both of them).

func (m *Model) IntervalBounds(h ids.IntervalHandle) (int64, int64) {
	iv := m.Intervals[h]
	return iv.Min, iv.Max
}

func (m *Model) EnumerateElementType(h ids.EnumerateElementHandle) types.Type {
	return types.NewEnumerate(h.Enum)
}

func (m *Model) DeclarationType(h ids.DeclarationHandle) types.Type {
	return m.Declarations[h].Typ.Resolve(m)
}

func (m *Model) DefinitionType(h ids.DefinitionHandle) types.Type {
	return m.Definitions[h].Typ.Resolve(m)
}

func (m *Model) DefinitionExpr(h ids.DefinitionHandle) expr.Expr {
	return m.Definitions[h].Expr
}

func (m *Model) FunDecType(h ids.FunDecHandle) types.Type {
	f := m.FunDecs[h]
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Typ
	}
	return types.NewFunction(params, f.ReturnType).Resolve(m)
}

func (m *Model) FunDefType(h ids.FunDefHandle) types.Type {
	f := m.FunDefs[h]
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Typ
	}
	return types.NewFunction(params, f.ReturnType).Resolve(m)
}

func (m *Model) FunDefExpr(h ids.FunDefHandle) expr.Expr {
	return m.FunDefs[h].Expr
}

func (m *Model) FunDefParams(h ids.FunDefHandle) []expr.Parameter {
	return m.FunDefs[h].Params
}

func (m *Model) EnumerateElementName(h ids.EnumerateElementHandle) string {
	return m.Enumerates[h.Enum].Elements[h.Index].Name
}

func (m *Model) DeclarationName(h ids.DeclarationHandle) string { return m.Declarations[h].Name }
func (m *Model) DefinitionName(h ids.DefinitionHandle) string   { return m.Definitions[h].Name }
func (m *Model) FunDecName(h ids.FunDecHandle) string           { return m.FunDecs[h].Name }
func (m *Model) FunDefName(h ids.FunDefHandle) string           { return m.FunDefs[h].Name }
func (m *Model) LTLVariableName(h ids.LTLVariableHandle) string { return m.LTLVariables[h].Name() }

// EnumerateElements lists every element of an Enumerate type as an
// expr.Expr, satisfying expr.EnumerateLister for quantifier expansion.
func (m *Model) EnumerateElements(t types.Type) []expr.Expr {
	if t.Kind != types.Enumerate {
		return nil
	}
	en := m.Enumerates[t.EnumID]
	out := make([]expr.Expr, len(en.Elements))
	for i := range en.Elements {
		out[i] = expr.EnumerateElement(ids.EnumerateElementHandle{Enum: t.EnumID, Index: i})
	}
	return out
}
