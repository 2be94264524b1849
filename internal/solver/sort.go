// Package solver turns a flattened, type-checked model.Model into
// SMT-LIB 2 text for a bounded unrolling of its transition relation,
// grounded on DavidD12/tatam's src/solve package. Where the original
// builds z3 ASTs directly through the z3 crate's typed builders, this
// emits plain SMT-LIB text consumed by internal/smt's line-oriented
// solver process, since no equivalent in-process Go z3 binding exists
// in the surrounding corpus.
package solver

import (
	"fmt"
	"strings"

	"github.com/davidd12/tatamgo/internal/model"
	"github.com/davidd12/tatamgo/internal/types"
)

// SortName returns the SMT-LIB sort text for a ground type. Enumerate
// types must already have been declared via DeclareSorts.
func SortName(t types.Type) string {
	switch t.Kind {
	case types.Bool:
		return "Bool"
	case types.Int, types.IntInterval:
		return "Int"
	case types.Real:
		return "Real"
	case types.Enumerate:
		return fmt.Sprintf("Enum%d", t.EnumID)
	default:
		return "Int"
	}
}

// DeclareSorts emits one declare-datatypes command per enumerate type
// in the model, one constructor per element.
func DeclareSorts(m *model.Model) []string {
	out := make([]string, 0, len(m.Enumerates))
	for _, en := range m.Enumerates {
		var ctors strings.Builder
		for i, el := range en.Elements {
			if i > 0 {
				ctors.WriteByte(' ')
			}
			ctors.WriteString(fmt.Sprintf("(%s)", elementSymbol(en.Name, el.Name)))
		}
		out = append(out, fmt.Sprintf("(declare-datatypes ((Enum%d 0)) ((%s)))", en.ID, ctors.String()))
	}
	return out
}

func elementSymbol(enumName, elementName string) string {
	return fmt.Sprintf("%s!%s", enumName, elementName)
}
