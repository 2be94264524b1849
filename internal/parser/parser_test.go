package parser

import (
	"testing"

	"github.com/davidd12/tatamgo/internal/expr"
)

func TestParseDeclarationsAndExpressions(t *testing.T) {
	src := `
enum Color { Red, Green, Blue }
interval Range [0..10];
cst n : Int;
var x : Range;
var running : Bool;
def half : Int := x * 2;
fun cst bound() : Int;
fun square(a: Int) : Int := a * a;
initial init1 : x = 0 and running;
invariant inv1 : x >= 0 and x <= 10;
transition t1 : x' = x + 1;
property : G(x >= 0);
search
  transitions 0..20
  path truncated
  solve;
end
`
	m, errs := Parse(src, "model.tat")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(m.Enumerates) != 1 || len(m.Enumerates[0].Elements) != 3 {
		t.Fatalf("expected 1 enum with 3 elements, got %+v", m.Enumerates)
	}
	if len(m.Intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(m.Intervals))
	}
	if len(m.Declarations) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(m.Declarations))
	}
	if len(m.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(m.Definitions))
	}
	if len(m.FunDecs) != 1 || len(m.FunDefs) != 1 {
		t.Fatalf("expected 1 fun dec and 1 fun def, got %d/%d", len(m.FunDecs), len(m.FunDefs))
	}
	if len(m.Initials) != 1 || len(m.Invariants) != 1 || len(m.Transitions) != 1 {
		t.Fatalf("expected 1 each of initial/invariant/transition")
	}
	if m.Property == nil || m.Property.Kind != expr.KLTLUnary {
		t.Fatalf("expected property to be an LTL unary expression, got %+v", m.Property)
	}
	if m.Search.Transitions.Min != 0 || m.Search.Transitions.Max != 20 {
		t.Fatalf("unexpected transitions bound: %+v", m.Search.Transitions)
	}
	if !m.Search.PathType.Truncated {
		t.Fatalf("expected truncated path type, got %+v", m.Search.PathType)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	src := `def r : Int := 1 + 2 * 3 - 4;`
	m, errs := Parse(src, "model.tat")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	e := m.Definitions[0].Expr
	if e.Kind != expr.KNary || e.NaryOp != expr.Sub {
		t.Fatalf("expected top-level Sub, got %+v", e)
	}
	left := e.Operands[0]
	if left.Kind != expr.KNary || left.NaryOp != expr.Add {
		t.Fatalf("expected left operand to be Add, got %+v", left)
	}
	rightOfAdd := left.Operands[1]
	if rightOfAdd.Kind != expr.KNary || rightOfAdd.NaryOp != expr.Mul {
		t.Fatalf("expected 2*3 grouped tighter than +, got %+v", rightOfAdd)
	}
}

func TestParseQuantifierAndIfThenElse(t *testing.T) {
	src := `def allPos : Bool := forall i: Int | i >= 0 end;
invariant inv : if n > 0 then n >= 1 elif n = 0 then true else false end;`
	m, errs := Parse(src, "model.tat")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if m.Definitions[0].Expr.Kind != expr.KQuantifier {
		t.Fatalf("expected quantifier expression, got %+v", m.Definitions[0].Expr)
	}
	ite := m.Invariants[0].Expr
	if ite.Kind != expr.KIfThenElse || len(ite.Elifs) != 1 {
		t.Fatalf("expected if-then-elif-else, got %+v", ite)
	}
}

func TestParseFollowingAndStateAnchors(t *testing.T) {
	src := `transition t : x' = (x at first) + 1;`
	m, errs := Parse(src, "model.tat")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	e := m.Transitions[0].Expr
	if e.Kind != expr.KBinary {
		t.Fatalf("expected top-level binary eq, got %+v", e)
	}
	if e.Left.Kind != expr.KFollowing {
		t.Fatalf("expected left side to be Following(x), got %+v", e.Left)
	}
}

func TestParseErrorRecoverySkipsToNextDeclaration(t *testing.T) {
	src := `cst x : ;
cst y : Int;`
	m, errs := Parse(src, "model.tat")
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	found := false
	for _, d := range m.Declarations {
		if d.Name == "y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parser to recover and still parse the y declaration, got %+v", m.Declarations)
	}
}
