package expr

import (
	"github.com/davidd12/tatamgo/internal/ids"
	"github.com/davidd12/tatamgo/internal/types"
)

// ModelLookup is the dependency-inversion seam that lets this package
// compute types, propagate constants, and re-emit names without importing
// internal/model (which itself imports internal/expr). model.Model
// implements every method below.
type ModelLookup interface {
	types.Lookup

	EnumerateElementType(ids.EnumerateElementHandle) types.Type
	DeclarationType(ids.DeclarationHandle) types.Type
	DefinitionType(ids.DefinitionHandle) types.Type
	DefinitionExpr(ids.DefinitionHandle) Expr
	FunDecType(ids.FunDecHandle) types.Type
	FunDefType(ids.FunDefHandle) types.Type
	FunDefExpr(ids.FunDefHandle) Expr
	FunDefParams(ids.FunDefHandle) []Parameter

	NameLookup
}
