package expr

import (
	"fmt"
	"strings"

	"github.com/davidd12/tatamgo/internal/ids"
)

// NameLookup resolves the display name of a referenced entity. Implemented
// by model.Model.
type NameLookup interface {
	EnumerateElementName(ids.EnumerateElementHandle) string
	DeclarationName(ids.DeclarationHandle) string
	DefinitionName(ids.DefinitionHandle) string
	FunDecName(ids.FunDecHandle) string
	FunDefName(ids.FunDefHandle) string
	LTLVariableName(ids.LTLVariableHandle) string
}

// ToLang re-emits e in the textual model description language, matching
// DavidD12/tatam's Expression::to_lang. Used for --verbose dumps and for
// quoting expressions in diagnostics.
func (e Expr) ToLang(m NameLookup) string {
	switch e.Kind {
	case KBool:
		return fmt.Sprintf("%t", e.BoolVal)
	case KInt:
		return fmt.Sprintf("%d", e.IntVal)
	case KReal:
		if e.RealDen == 1 {
			return fmt.Sprintf("%d", e.RealNum)
		}
		return fmt.Sprintf("%d/%d", e.RealNum, e.RealDen)
	case KPrefixUnary:
		return fmt.Sprintf("(%s %s)", e.PrefixOp, e.Sub.ToLang(m))
	case KBinary:
		return fmt.Sprintf("(%s %s %s)", e.Left.ToLang(m), e.BinOp, e.Right.ToLang(m))
	case KNary:
		parts := make([]string, len(e.Operands))
		for i, o := range e.Operands {
			parts[i] = o.ToLang(m)
		}
		return "(" + strings.Join(parts, " "+e.NaryOp.String()+" ") + ")"
	case KEnumerateElement:
		return m.EnumerateElementName(e.EnumElem)
	case KDeclaration:
		return m.DeclarationName(e.Decl)
	case KDefinition:
		return m.DefinitionName(e.Def)
	case KFunDec:
		return m.FunDecName(e.FunDecRef)
	case KFunDef:
		return m.FunDefName(e.FunDefRef)
	case KParameter:
		return e.Param.Name
	case KApply:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.ToLang(m)
		}
		return fmt.Sprintf("%s(%s)", e.Func.ToLang(m), strings.Join(args, ", "))
	case KAs:
		return fmt.Sprintf("%s as %s default %s", e.AsSub.ToLang(m), e.AsType, e.AsDefault.ToLang(m))
	case KFollowing:
		return e.Sub.ToLang(m) + "'"
	case KState:
		if e.StateDefault != nil {
			return fmt.Sprintf("(%s at %s default %s)", e.StateSub.ToLang(m), stateIndexText(e.StateKind, e.Shift), e.StateDefault.ToLang(m))
		}
		return fmt.Sprintf("(%s at %s)", e.StateSub.ToLang(m), stateIndexText(e.StateKind, e.Shift))
	case KScope:
		parts := make([]string, len(e.ScopeBindings))
		for i, b := range e.ScopeBindings {
			parts[i] = b.ToLang(m)
		}
		return fmt.Sprintf("|%s|%s", strings.Join(parts, ", "), e.ScopeBody.ToLang(m))
	case KIfThenElse:
		var b strings.Builder
		fmt.Fprintf(&b, "if %s then %s", e.Cond.ToLang(m), e.Then.ToLang(m))
		for _, br := range e.Elifs {
			fmt.Fprintf(&b, " elif %s then %s", br.Cond.ToLang(m), br.Then.ToLang(m))
		}
		fmt.Fprintf(&b, " else %s end", e.Else.ToLang(m))
		return b.String()
	case KQuantifier:
		parts := make([]string, len(e.Params))
		for i, p := range e.Params {
			parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Typ)
		}
		return fmt.Sprintf("%s %s | %s end", e.QtOp, strings.Join(parts, ", "), e.QtBody.ToLang(m))
	case KLTLUnary:
		return fmt.Sprintf("(%s %s)", e.LTLUOp, e.Sub.ToLang(m))
	case KLTLBinary:
		return fmt.Sprintf("(%s %s %s)", e.Left.ToLang(m), e.LTLBOp, e.Right.ToLang(m))
	case KLTLVariable:
		return m.LTLVariableName(e.LTLVar)
	case KUnresolved:
		return "?" + e.UnresolvedName
	default:
		return "?"
	}
}

func stateIndexText(k StateKind, shift int) string {
	switch {
	case shift < 0:
		return fmt.Sprintf("%s - %d", k, -shift)
	case shift == 0:
		return k.String()
	default:
		return fmt.Sprintf("%s + %d", k, shift)
	}
}
