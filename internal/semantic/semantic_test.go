package semantic

import (
	"testing"

	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/parser"
)

func TestAnalyzeAcceptsWellFormedModel(t *testing.T) {
	src := `
enum Color { Red, Green, Blue }
interval Range [0..10];
var x : Range;
var c : Color;
def doubled : Int := x * 2;
initial init1 : x = 0 and c = Red;
invariant inv1 : x >= 0 and x <= 10;
transition t1 : x' = x + 1 and c' = c;
property : G(x >= 0);
`
	m, perrs := parser.Parse(src, "ok.tat")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := Analyze(m, "ok.tat")
	if len(errs) != 0 {
		t.Fatalf("expected no semantic errors, got %v", errs)
	}
	if m.Property.Kind.String() == "" {
		t.Fatalf("property should have a kind")
	}
}

func TestIntervalPassRejectsInvertedBounds(t *testing.T) {
	src := `
interval Bad [10..0];
var x : Bad;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x;
property : G(x >= 0);
`
	m, perrs := parser.Parse(src, "bad.tat")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := Analyze(m, "bad.tat")
	if !hasKind(errs, "interval") {
		t.Fatalf("expected an interval error, got %v", errs)
	}
}

func TestUniquenessPassRejectsDuplicateNames(t *testing.T) {
	src := `
var x : Int;
var x : Bool;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x;
property : G(true);
`
	m, perrs := parser.Parse(src, "dup.tat")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := Analyze(m, "dup.tat")
	if !hasKind(errs, "duplicate") {
		t.Fatalf("expected a duplicate-name error, got %v", errs)
	}
}

func TestResolvePassRejectsUnknownName(t *testing.T) {
	src := `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x + unknownName;
property : G(true);
`
	m, perrs := parser.Parse(src, "unresolved.tat")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := Analyze(m, "unresolved.tat")
	if !hasKind(errs, "resolve") {
		t.Fatalf("expected a resolve error, got %v", errs)
	}
}

func TestTypeCheckPassRejectsNonBoolInvariant(t *testing.T) {
	src := `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x + 1;
transition t1 : x' = x;
property : G(true);
`
	m, perrs := parser.Parse(src, "badtype.tat")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := Analyze(m, "badtype.tat")
	if !hasKind(errs, "type") {
		t.Fatalf("expected a type error, got %v", errs)
	}
}

func TestTimeCheckPassRejectsStateExpression(t *testing.T) {
	src := `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x;
property : G((x at first) >= 0);
`
	m, perrs := parser.Parse(src, "state.tat")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := Analyze(m, "state.tat")
	if !hasKind(errs, "time") {
		t.Fatalf("expected a time error for the State expression, got %v", errs)
	}
}

func TestTimeCheckPassRejectsNestedFollowing(t *testing.T) {
	src := `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x'' = x;
property : G(true);
`
	m, perrs := parser.Parse(src, "nested.tat")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := Analyze(m, "nested.tat")
	if !hasKind(errs, "time") {
		t.Fatalf("expected a time error for nested Following, got %v", errs)
	}
}

func TestBoundedParamPassRejectsUnboundedQuantifier(t *testing.T) {
	src := `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x;
property : G(forall y:Int | y >= x end);
`
	m, perrs := parser.Parse(src, "unbounded.tat")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := Analyze(m, "unbounded.tat")
	if !hasKind(errs, "bounded") {
		t.Fatalf("expected a bounded-parameter error, got %v", errs)
	}
}

func TestFlattenPassInternsLTLVariables(t *testing.T) {
	src := `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x;
property : G(x >= 0) and F(x = 10);
`
	m, perrs := parser.Parse(src, "ltl.tat")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := Analyze(m, "ltl.tat")
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	if len(m.LTLVariables) != 4 {
		t.Fatalf("expected the two LTL operator nodes plus their two loop variants interned as variables, got %d", len(m.LTLVariables))
	}
}

func hasKind(errs []errors.ModelError, want string) bool {
	for _, e := range errs {
		if e.Kind().String() == want {
			return true
		}
	}
	return false
}
