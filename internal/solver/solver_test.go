package solver

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/davidd12/tatamgo/internal/parser"
	"github.com/davidd12/tatamgo/internal/semantic"
)

func analyzeOrFatal(t *testing.T, src, file string) *Encoder {
	t.Helper()
	m, perrs := parser.Parse(src, file)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := semantic.Analyze(m, file)
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	return &Encoder{M: m}
}

func TestEncodeDeclaresEnumerateSort(t *testing.T) {
	enc := analyzeOrFatal(t, `
enum Color { Red, Green, Blue }
var c : Color;
initial init1 : c = Red;
invariant inv1 : true;
transition t1 : c' = c;
property : G(true);
`, "enum.tat")
	check := enc.Encode(2)
	found := false
	for _, d := range check.Declarations {
		if strings.Contains(d, "declare-datatypes") && strings.Contains(d, "Color!Red") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an enumerate sort declaration, got %v", check.Declarations)
	}
}

func TestEncodeDeclaresStateVarsPerDepth(t *testing.T) {
	enc := analyzeOrFatal(t, `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x + 1;
property : G(x >= 0);
`, "depth.tat")
	check := enc.Encode(3)
	for _, want := range []string{"x!0", "x!1", "x!2", "x!3"} {
		seen := false
		for _, d := range check.Declarations {
			if strings.Contains(d, want) {
				seen = true
			}
		}
		if !seen {
			t.Fatalf("expected a declaration naming %s, got %v", want, check.Declarations)
		}
	}
}

func TestEncodeKeepsConstantDeclarationDepthFree(t *testing.T) {
	enc := analyzeOrFatal(t, `
cst n : Int;
var x : Int;
initial init1 : x = 0 and n = 5;
invariant inv1 : x >= 0;
transition t1 : x' = x + n;
property : G(true);
`, "const.tat")
	check := enc.Encode(2)
	for _, d := range check.Declarations {
		if strings.Contains(d, "n!") {
			t.Fatalf("constant declaration should not be depth-suffixed, got %q", d)
		}
	}
}

func TestEncodeAssertsTransitionDisjunctionBetweenDepths(t *testing.T) {
	enc := analyzeOrFatal(t, `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition up : x' = x + 1;
transition down : x' = x - 1 and x >= 1;
property : G(true);
`, "disjoint.tat")
	check := enc.Encode(2)
	joined := strings.Join(check.Assertions, "\n")
	if strings.Count(joined, "(or") == 0 {
		t.Fatalf("expected the two transitions combined with or, got %v", check.Assertions)
	}
	if !strings.Contains(joined, "x!1") || !strings.Contains(joined, "x!2") {
		t.Fatalf("expected transition assertions to reference x!1 and x!2, got %v", check.Assertions)
	}
}

func TestEncodeFunDefCallIsBetaReduced(t *testing.T) {
	enc := analyzeOrFatal(t, `
var x : Int;
fun double(n : Int) : Int := n * 2;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = double(x);
property : G(true);
`, "fundef.tat")
	check := enc.Encode(1)
	joined := strings.Join(check.Assertions, "\n")
	if strings.Contains(joined, "double") {
		t.Fatalf("expected the fundef call to be inlined rather than named, got %v", check.Assertions)
	}
	if !strings.Contains(joined, "(* x!0 2)") {
		t.Fatalf("expected the beta-reduced body referencing x!0, got %v", check.Assertions)
	}
}

func TestBuildLTLDefinitionsGAndFHonorBound(t *testing.T) {
	enc := analyzeOrFatal(t, `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x + 1;
property : G(x >= 0) and F(x = 10);
`, "ltl.tat")
	check := enc.Encode(2)
	joined := strings.Join(check.Assertions, "\n")
	if !strings.Contains(joined, "ltl!0!2") || !strings.Contains(joined, "ltl!1!2") {
		t.Fatalf("expected LTL definitional assertions at the bound, got %v", check.Assertions)
	}
	if strings.Count(joined, "(assert (= ltl!0!") != 3 {
		t.Fatalf("expected one G definitional assertion per depth 0..2, got %v", check.Assertions)
	}
}

func TestEncodeFollowingShiftsDepth(t *testing.T) {
	enc := analyzeOrFatal(t, `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x + 1;
property : G(true);
`, "following.tat")
	check := enc.Encode(2)
	joined := strings.Join(check.Assertions, "\n")
	if !strings.Contains(joined, "(= x!1 (+ x!0 1))") {
		t.Fatalf("expected the transition between depth 0 and 1 to reference x!0 and x!1, got %v", check.Assertions)
	}
}

// TestEncodeSnapshot locks down the full SMT-LIB text generated for a
// small but representative model, so an unintended change to the
// encoder's output shape is caught even when it does not trip one of
// the more targeted substring checks above.
func TestEncodeSnapshot(t *testing.T) {
	enc := analyzeOrFatal(t, `
enum Color { Red, Green }
var x : Int;
var c : Color;
initial init1 : x = 0 and c = Red;
invariant inv1 : x >= 0;
transition t1 : x' = x + 1 and c' = c;
property : G(x >= 0) and F(x = 2);
`, "snapshot.tat")
	check := enc.Encode(2)
	snaps.MatchSnapshot(t, "declarations", strings.Join(check.Declarations, "\n"))
	snaps.MatchSnapshot(t, "assertions", strings.Join(check.Assertions, "\n"))
}
