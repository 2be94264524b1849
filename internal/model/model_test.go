package model

import (
	"testing"

	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/types"
)

func TestAddDeclarationAssignsSequentialHandles(t *testing.T) {
	m := New()
	a := m.AddDeclaration(Declaration{Name: "x", Typ: types.NewIntInterval(0, 2)})
	b := m.AddDeclaration(Declaration{Name: "y", Typ: types.T(types.Bool)})
	if a != 0 || b != 1 {
		t.Fatalf("expected sequential handles 0,1, got %d,%d", a, b)
	}
	if len(m.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(m.Declarations))
	}
}

func TestInternLTLVariableDedups(t *testing.T) {
	m := New()
	e := expr.LTLUnary(expr.F, expr.Declaration(0))
	h1 := m.InternLTLVariable(e)
	h2 := m.InternLTLVariable(expr.LTLUnary(expr.F, expr.Declaration(0)))
	if h1 != h2 {
		t.Fatalf("expected structurally identical LTL subformulas to share a variable, got %d and %d", h1, h2)
	}
	if len(m.LTLVariables) != 1 {
		t.Fatalf("expected exactly one interned LTL variable, got %d", len(m.LTLVariables))
	}
}

func TestCstAndVarDeclarationHandles(t *testing.T) {
	m := New()
	m.AddDeclaration(Declaration{Name: "c", Constant: true, Typ: types.T(types.Bool)})
	m.AddDeclaration(Declaration{Name: "v", Constant: false, Typ: types.T(types.Bool)})

	if got := m.CstDeclarationHandles(); len(got) != 1 {
		t.Fatalf("expected 1 constant declaration, got %d", len(got))
	}
	if got := m.VarDeclarationHandles(); len(got) != 1 {
		t.Fatalf("expected 1 variable declaration, got %d", len(got))
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	m := New()
	m.AddDeclaration(Declaration{Name: "x", Typ: types.T(types.Bool)})

	snap := m.Snapshot()
	snap.AddDeclaration(Declaration{Name: "y", Typ: types.T(types.Bool)})

	if len(m.Declarations) != 1 {
		t.Fatalf("expected original model to be unaffected by snapshot mutation, got %d declarations", len(m.Declarations))
	}
	if len(snap.Declarations) != 2 {
		t.Fatalf("expected snapshot to carry the new declaration, got %d", len(snap.Declarations))
	}
}
