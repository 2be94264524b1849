package expr

import (
	"testing"

	"github.com/davidd12/tatamgo/internal/ids"
	"github.com/davidd12/tatamgo/internal/types"
)

// fakeModel is a minimal ModelLookup for exercising GetType/Propagate
// without pulling in internal/model's full registry.
type fakeModel struct {
	declTypes map[ids.DeclarationHandle]types.Type
	defTypes  map[ids.DefinitionHandle]types.Type
	defExprs  map[ids.DefinitionHandle]Expr
}

func (m *fakeModel) IntervalBounds(ids.IntervalHandle) (int64, int64)           { return 0, 0 }
func (m *fakeModel) EnumerateElementType(ids.EnumerateElementHandle) types.Type { return types.T(types.Undefined) }
func (m *fakeModel) DeclarationType(h ids.DeclarationHandle) types.Type        { return m.declTypes[h] }
func (m *fakeModel) DefinitionType(h ids.DefinitionHandle) types.Type          { return m.defTypes[h] }
func (m *fakeModel) DefinitionExpr(h ids.DefinitionHandle) Expr                { return m.defExprs[h] }
func (m *fakeModel) FunDecType(ids.FunDecHandle) types.Type                    { return types.T(types.Undefined) }
func (m *fakeModel) FunDefType(ids.FunDefHandle) types.Type                    { return types.T(types.Undefined) }
func (m *fakeModel) FunDefExpr(ids.FunDefHandle) Expr                          { return Expr{} }
func (m *fakeModel) FunDefParams(ids.FunDefHandle) []Parameter                 { return nil }
func (m *fakeModel) EnumerateElementName(ids.EnumerateElementHandle) string    { return "" }
func (m *fakeModel) DeclarationName(ids.DeclarationHandle) string              { return "x" }
func (m *fakeModel) DefinitionName(ids.DefinitionHandle) string                { return "d" }
func (m *fakeModel) FunDecName(ids.FunDecHandle) string                        { return "" }
func (m *fakeModel) FunDefName(ids.FunDefHandle) string                        { return "" }
func (m *fakeModel) LTLVariableName(ids.LTLVariableHandle) string              { return "" }

func TestIsSame(t *testing.T) {
	a := Binary(Int(1), Eq, Int(2))
	b := Binary(Int(1), Eq, Int(2))
	if !a.IsSame(b) {
		t.Fatalf("expected structurally identical trees to be IsSame")
	}

	c := Binary(Int(1), Eq, Int(3))
	if a.IsSame(c) {
		t.Fatalf("did not expect differing literals to be IsSame")
	}
}

func TestGetTypeArithmetic(t *testing.T) {
	m := &fakeModel{}
	sum := Nary(Add, []Expr{Int(2), Int(3)})
	got := sum.GetType(m)
	want := types.NewIntInterval(5, 5)
	if !got.Equal(want) {
		t.Fatalf("GetType(2+3) = %v, want %v", got, want)
	}
}

func TestPropagateConstantFolding(t *testing.T) {
	m := &fakeModel{}
	e := Nary(Add, []Expr{Int(2), Int(3), Int(4)})
	got := e.Propagate(m)
	if got.Kind != KInt || got.IntVal != 9 {
		t.Fatalf("Propagate(2+3+4) = %+v, want Int(9)", got)
	}

	and := Nary(And, []Expr{Bool(true), Binary(Declaration(1), Eq, Int(0))})
	got = and.Propagate(m)
	if got.Kind != KBinary {
		t.Fatalf("expected And with one true operand to collapse to the other operand, got %+v", got)
	}

	or := Nary(Or, []Expr{Bool(false), Bool(true)})
	if got := or.Propagate(m); got.Kind != KBool || !got.BoolVal {
		t.Fatalf("Propagate(false or true) = %+v, want Bool(true)", got)
	}
}

func TestPropagateIfThenElseStaticGuard(t *testing.T) {
	m := &fakeModel{}
	ite := IfThenElse(Bool(true), Int(1), nil, Int(2))
	got := ite.Propagate(m)
	if got.Kind != KInt || got.IntVal != 1 {
		t.Fatalf("Propagate(if true then 1 else 2) = %+v, want Int(1)", got)
	}
}

func TestSubstitute(t *testing.T) {
	decl := Declaration(1)
	body := Binary(decl, Eq, Int(0))
	got := body.Substitute(decl, Int(5))
	want := Binary(Int(5), Eq, Int(0))
	if !got.IsSame(want) {
		t.Fatalf("Substitute() = %v, want %v", got.ToLang(&fakeModel{}), want.ToLang(&fakeModel{}))
	}
}

func TestCombiner(t *testing.T) {
	columns := [][]Expr{{Int(0), Int(1)}, {Bool(false), Bool(true)}}
	c := NewCombiner(columns)
	count := 1
	for c.Step() {
		count++
	}
	if count != 4 {
		t.Fatalf("expected 4 combinations for a 2x2 product, got %d", count)
	}
}
