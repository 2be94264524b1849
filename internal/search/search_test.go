package search

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/davidd12/tatamgo/internal/model"
	"github.com/davidd12/tatamgo/internal/parser"
	"github.com/davidd12/tatamgo/internal/semantic"
)

func requireZ3(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("z3"); err != nil {
		t.Skip("z3 not installed")
	}
}

func parseModel(t *testing.T, src, file string) *model.Model {
	t.Helper()
	m, perrs := parser.Parse(src, file)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	errs, _ := semantic.Analyze(m, file)
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	return m
}

func runCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRunFindsSatisfyingBound(t *testing.T) {
	requireZ3(t)

	m := parseModel(t, `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x + 1;
property : F(x = 3);
`, "run.tat")
	m.Search.Transitions.Max = 5

	result, err := Run(runCtx(t), m, "z3", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeSolution {
		t.Fatalf("expected a solution, got %s at bound %d", result.Outcome, result.Bound)
	}
	if result.Solution.Values["x"][result.Solution.Bound] == "" {
		t.Fatalf("expected a value for x at the found bound")
	}
}

func TestRunReportsBoundReachedWhenUnsatisfiable(t *testing.T) {
	requireZ3(t)

	m := parseModel(t, `
var x : Int;
initial init1 : x = 0;
invariant inv1 : x >= 0;
transition t1 : x' = x + 1;
property : F(x = -1);
`, "unsat.tat")
	m.Search.Transitions.Max = 3

	result, err := Run(runCtx(t), m, "z3", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeBoundReached {
		t.Fatalf("expected bound reached, got %s at bound %d", result.Outcome, result.Bound)
	}
}

// TestRunInitialFindsInitialState exercises search scenario 1 (spec
// §8): a single-step counter with an "initial solve" search should
// report its initial state as the solution, ignoring the transition
// relation entirely.
func TestRunInitialFindsInitialState(t *testing.T) {
	requireZ3(t)

	m := parseModel(t, `
var x : 0..2;
initial init1 : x = 0;
transition t1 : x' = x + 1 or x' = x;
`, "initial.tat")
	m.Search.PathType = model.InitialOnlyPath

	result, err := Run(runCtx(t), m, "z3", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeSolution {
		t.Fatalf("expected a solution, got %s", result.Outcome)
	}
	if result.Solution.Values["x"][0] != "0" {
		t.Fatalf("expected x = 0 at the initial state, got %v", result.Solution.Values["x"])
	}
}

// TestRunTruncatedFindsEventuallyWitness exercises search scenario 2:
// F(x=2) under a truncated search should be satisfiable at depth 2.
func TestRunTruncatedFindsEventuallyWitness(t *testing.T) {
	requireZ3(t)

	m := parseModel(t, `
var x : 0..2;
initial init1 : x = 0;
transition t1 : x' = x + 1 or x' = x;
property : F(x = 2);
`, "truncated.tat")
	m.Search.PathType = model.Truncated
	m.Search.Transitions.Max = 3

	result, err := Run(runCtx(t), m, "z3", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeSolution {
		t.Fatalf("expected a solution, got %s", result.Outcome)
	}
	if result.Bound > 2 {
		t.Fatalf("expected a witness by depth 2, got bound %d", result.Bound)
	}
}

// TestRunCompleteReportsNoSolutionWhenStateSpaceExhausted exercises
// search scenario 3: a model whose only reachable state is x=0 must
// report NoSolution(1) under a complete search.
func TestRunCompleteReportsNoSolutionWhenStateSpaceExhausted(t *testing.T) {
	requireZ3(t)

	m := parseModel(t, `
var x : 0..2;
initial init1 : x = 0;
transition t1 : x' = x;
`, "complete.tat")
	m.Search.PathType = model.Complete
	m.Search.Transitions.Max = 5

	result, err := Run(runCtx(t), m, "z3", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeNoSolution {
		t.Fatalf("expected no solution, got %s at bound %d", result.Outcome, result.Bound)
	}
	if result.Bound != 1 {
		t.Fatalf("expected the state space to be shown exhausted at depth 1, got %d", result.Bound)
	}
}

// TestRunInfiniteFindsLassoWitness exercises search scenario 4: two
// booleans alternating every step satisfy G(p = not q) over a lasso
// of period 1 or 2, with some loop indicator true.
func TestRunInfiniteFindsLassoWitness(t *testing.T) {
	requireZ3(t)

	m := parseModel(t, `
var p : Bool;
var q : Bool;
initial init1 : p and not q;
transition t1 : p' = not p and q' = not q;
property : G(p = not q);
`, "infinite.tat")
	m.Search.PathType = model.Infinite
	m.Search.Transitions.Max = 4

	result, err := Run(runCtx(t), m, "z3", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeSolution {
		t.Fatalf("expected a solution, got %s", result.Outcome)
	}
	if result.Solution.LoopIndex < 0 {
		t.Fatalf("expected a loop index to be reported for an infinite witness")
	}
}

// TestRunFiniteReportsBoundReachedForAnInfiniteOnlyModel exercises
// search scenario 5: a counter cycling mod 4 has no finite path, so
// every depth up to the max is unsat and the driver exhausts the bound.
func TestRunFiniteReportsBoundReachedForAnInfiniteOnlyModel(t *testing.T) {
	requireZ3(t)

	m := parseModel(t, `
var x : 0..3;
initial init1 : x = 0;
transition t1 : if x = 3 then x' = 0 else x' = x + 1 end;
property : true;
`, "finite.tat")
	m.Search.PathType = model.Finite
	m.Search.Transitions.Max = 6

	result, err := Run(runCtx(t), m, "z3", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeBoundReached {
		t.Fatalf("expected bound reached, got %s at bound %d", result.Outcome, result.Bound)
	}
}

// TestRunOptimizeFindsBestSolutionAtSmallestBound exercises search
// scenario 6: minimizing x with a floor of 0 should settle on x=0 at
// depth 0, the cheapest reachable state.
func TestRunOptimizeFindsBestSolutionAtSmallestBound(t *testing.T) {
	requireZ3(t)

	m := parseModel(t, `
var x : 0..10;
initial init1 : x = 0;
transition t1 : x' = x + 1 or x' = x;
search transitions 0..5 path truncated optimize minimize x bound 0; end
`, "optimize.tat")

	result, err := Run(runCtx(t), m, "z3", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome != OutcomeBestSolution {
		t.Fatalf("expected a best solution, got %s", result.Outcome)
	}
	if result.Solution.Objective != "0" {
		t.Fatalf("expected the minimal objective 0, got %s", result.Solution.Objective)
	}
}
