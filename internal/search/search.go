// Package search drives a bounded model check end to end: for each
// candidate depth it asks internal/solver to encode the check implied
// by the model's path type, hands the SMT-LIB 2 text to an
// internal/smt.Process, and on a positive answer reads back a Solution
// by querying the value of every state variable at every depth.
// Grounded on DavidD12/tatam's src/solve::resolve_sequence /
// resolve_sequence_optimize driving loops, simplified to independent
// solver processes per depth rather than the original's incremental
// push/pop reuse (see DESIGN.md).
package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/davidd12/tatamgo/internal/expr"
	"github.com/davidd12/tatamgo/internal/model"
	"github.com/davidd12/tatamgo/internal/smt"
	"github.com/davidd12/tatamgo/internal/solver"
)

// defaultMaxDepth bounds an otherwise-unbounded search (Transitions.Max
// < 0) so a model with no solution still terminates.
const defaultMaxDepth = 50

// defaultThreads is used when the caller passes threads <= 0 (the CLI's
// "0 = all cores" convention is resolved by the caller before Run).
const defaultThreads = 4

// Solution is one satisfying path: Values[name][depth] is the solver's
// raw printed value for declaration name at that depth. Constant
// declarations only ever populate depth 0. LoopIndex is the index of
// the lasso's loop-entry state for an Infinite-mode witness, or -1 for
// every other mode. Objective holds the raw printed value of the
// search's optimization objective, when one is configured.
type Solution struct {
	Bound     int
	LoopIndex int
	Values    map[string]map[int]string
	Objective string
}

// Outcome is the shape of a finished search, grounded on
// DavidD12/tatam's src/solve/response.rs Response enum. BestSolution
// refines the original's plain Solution-at-bound-reached case into its
// own tag, since a solution found while optimizing is not necessarily
// the best a deeper search could still find.
type Outcome int

const (
	OutcomeSolution Outcome = iota
	OutcomeNoSolution
	OutcomeBoundReached
	OutcomeBestSolution
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSolution:
		return "solution"
	case OutcomeNoSolution:
		return "no solution"
	case OutcomeBoundReached:
		return "bound reached"
	case OutcomeBestSolution:
		return "best solution"
	default:
		return "unknown"
	}
}

// Result is the outcome of a full search.
type Result struct {
	Outcome  Outcome
	Solution *Solution
	Bound    int
}

// Options configures one Run: Threads bounds how many depths are
// checked concurrently in the Truncated-only fast path (0 falls back
// to defaultThreads); LogFolder, when non-empty, mirrors every check's
// SMT-LIB 2 text to a file under that folder, grounded on
// DavidD12/tatam's log_file/log_file_n naming.
type Options struct {
	Threads   int
	LogFolder string
}

// Run drives the solver binary (e.g. "z3") against m's search over its
// declared transition range, returning the first satisfying path found
// or a report of why none was.
func Run(ctx context.Context, m *model.Model, binary string, opts Options) (*Result, error) {
	if opts.Threads <= 0 {
		opts.Threads = defaultThreads
	}
	d := &driver{m: m, binary: binary, opts: opts}
	if m.Search.PathType.Kind == model.PathInitial {
		return d.runInitial(ctx)
	}
	if m.Search.SearchType == model.Optimize {
		return d.runOptimize(ctx)
	}
	return d.runSolve(ctx)
}

func maxDepth(m *model.Model) int {
	if m.Search.Transitions.Max >= 0 {
		return m.Search.Transitions.Max
	}
	return defaultMaxDepth
}

type driver struct {
	m      *model.Model
	binary string
	opts   Options
}

// runInitial checks only whether a state satisfying the initial
// predicate and every invariant exists, ignoring the transition range
// entirely (spec 4.7's Initial path kind, grounded on
// DavidD12/tatam's resolve_initial: Unsat there is a plain NoSolution,
// never BoundReached, since there is no depth left to grow).
func (d *driver) runInitial(ctx context.Context) (*Result, error) {
	enc := &solver.Encoder{M: d.m}
	check := d.withOptimizationLimit(enc, enc.Encode(0))
	verdict, sol, err := d.runCheck(ctx, "initial", check, 0, d.objective(), false)
	if err != nil {
		return nil, err
	}
	switch verdict {
	case "sat":
		return &Result{Outcome: OutcomeSolution, Solution: sol, Bound: 0}, nil
	case "unsat":
		return &Result{Outcome: OutcomeNoSolution, Bound: 0}, nil
	default:
		return &Result{Outcome: OutcomeUnknown, Bound: 0}, nil
	}
}

// runSolve drives the plain (non-optimize) search: at each depth it
// tries every requested mode in the fixed order Truncated, Infinite,
// Finite, Complete (spec 4.7), mirroring DavidD12/tatam's
// resolve_sequence.
func (d *driver) runSolve(ctx context.Context) (*Result, error) {
	pt := d.m.Search.PathType
	min := d.m.Search.Transitions.Min
	max := maxDepth(d.m)

	// The common case - Truncated alone - checks several depths
	// concurrently, since each depth is an independent solver process
	// with no shared state (spec 4.7's parallel driver, simplified to
	// batches of independent processes; see DESIGN.md).
	if pt.Truncated && !pt.Infinite && !pt.Finite && !pt.Complete {
		return d.runTruncatedBatch(ctx, min, max)
	}

	for k := min; k <= max; k++ {
		if pt.Truncated {
			res, stop, err := d.tryWitness(ctx, "truncated", k, (*solver.Encoder).Encode, false, nil)
			if err != nil || stop {
				return res, err
			}
		}
		if pt.Infinite && k > 0 {
			res, stop, err := d.tryWitness(ctx, "infinite", k, (*solver.Encoder).EncodeInfinite, true, nil)
			if err != nil || stop {
				return res, err
			}
		}
		if pt.Finite {
			res, stop, err := d.runFiniteAtDepth(ctx, k, nil)
			if err != nil || stop {
				return res, err
			}
		}
		if pt.Complete {
			res, stop, err := d.tryComplete(ctx, k, nil)
			if err != nil || stop {
				return res, err
			}
		}
	}
	return &Result{Outcome: OutcomeBoundReached, Bound: max}, nil
}

// runOptimize carries a current best solution across depths, trying
// every requested mode at each depth with a strict-improvement cut
// over the best objective found so far (spec 4.7 "Optimization"),
// mirroring DavidD12/tatam's resolve_sequence_optimize /
// initial_optimize.
func (d *driver) runOptimize(ctx context.Context) (*Result, error) {
	pt := d.m.Search.PathType
	min := d.m.Search.Transitions.Min
	max := maxDepth(d.m)
	var best *Solution

	for k := min; k <= max; k++ {
		if pt.Truncated {
			res, stop, err := d.tryWitness(ctx, "truncated", k, (*solver.Encoder).Encode, false, best)
			if err != nil {
				return nil, err
			}
			if stop && res.Outcome != OutcomeSolution {
				return d.finishOptimize(res, best)
			}
			if res != nil {
				best = res.Solution
			}
		}
		if pt.Infinite && k > 0 {
			res, stop, err := d.tryWitness(ctx, "infinite", k, (*solver.Encoder).EncodeInfinite, true, best)
			if err != nil {
				return nil, err
			}
			if stop && res.Outcome != OutcomeSolution {
				return d.finishOptimize(res, best)
			}
			if res != nil {
				best = res.Solution
			}
		}
		if pt.Finite {
			res, stop, err := d.runFiniteAtDepth(ctx, k, best)
			if err != nil {
				return nil, err
			}
			if stop && res.Outcome != OutcomeSolution {
				return d.finishOptimize(res, best)
			}
			if res != nil {
				best = res.Solution
			}
		}
		if pt.Complete {
			res, stop, err := d.tryComplete(ctx, k, best)
			if err != nil {
				return nil, err
			}
			if stop {
				return d.finishOptimize(res, best)
			}
		}
	}
	if best != nil {
		return &Result{Outcome: OutcomeBestSolution, Solution: best, Bound: max}, nil
	}
	return &Result{Outcome: OutcomeBoundReached, Bound: max}, nil
}

// finishOptimize adapts a witness-mode or Complete-mode stopping
// result to the optimize driver's vocabulary: a plain Solution found
// while a best was already tracked is itself the new best (Optimize
// never stops early on a witness-mode Sat, so this only triggers on
// Unknown or Complete's NoSolution).
func (d *driver) finishOptimize(res *Result, best *Solution) (*Result, error) {
	if res.Outcome == OutcomeNoSolution && best != nil {
		return &Result{Outcome: OutcomeBestSolution, Solution: best, Bound: res.Bound}, nil
	}
	if res.Outcome == OutcomeNoSolution {
		return &Result{Outcome: OutcomeBoundReached, Bound: res.Bound}, nil
	}
	return res, nil
}

// runTruncatedBatch checks several depths concurrently and returns the
// smallest satisfying one, preserving the same "first satisfying bound
// wins" semantics a sequential loop would have within the batch.
func (d *driver) runTruncatedBatch(ctx context.Context, min, max int) (*Result, error) {
	for lo := min; lo <= max; lo += d.opts.Threads {
		hi := lo + d.opts.Threads - 1
		if hi > max {
			hi = max
		}
		verdict, sol, err := d.checkTruncatedBatch(ctx, lo, hi)
		if err != nil {
			return nil, err
		}
		switch verdict {
		case "sat":
			return &Result{Outcome: OutcomeSolution, Solution: sol, Bound: sol.Bound}, nil
		case "unknown":
			return &Result{Outcome: OutcomeUnknown, Bound: hi}, nil
		}
	}
	return &Result{Outcome: OutcomeBoundReached, Bound: max}, nil
}

func (d *driver) checkTruncatedBatch(ctx context.Context, lo, hi int) (string, *Solution, error) {
	g, gctx := errgroup.WithContext(ctx)
	verdicts := make([]string, hi-lo+1)
	sols := make([]*Solution, hi-lo+1)
	for depth := lo; depth <= hi; depth++ {
		depth := depth
		g.Go(func() error {
			enc := &solver.Encoder{M: d.m}
			check := d.withOptimizationLimit(enc, enc.Encode(depth))
			verdict, sol, err := d.runCheck(gctx, fmt.Sprintf("truncated_%d", depth), check, depth, d.objective(), false)
			if err != nil {
				return err
			}
			verdicts[depth-lo] = verdict
			sols[depth-lo] = sol
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	for i, v := range verdicts {
		switch v {
		case "sat":
			return "sat", sols[i], nil
		case "unsat":
			continue
		default:
			return "unknown", nil, nil
		}
	}
	return "unsat", nil, nil
}

// tryWitness runs one witness-style check (Truncated or Infinite) at
// depth k: Sat reports a Solution with stop set (runSolve returns it,
// runOptimize records it as the new best and goes on), Unsat lets the
// caller move on to the next mode or depth, Unknown stops the driver
// (spec 4.7's table). best, when present, adds the strict-improvement
// cut.
func (d *driver) tryWitness(ctx context.Context, label string, k int, mk func(*solver.Encoder, int) solver.Check, readLoopIndex bool, best *Solution) (*Result, bool, error) {
	enc := &solver.Encoder{M: d.m}
	check := d.withBestCut(enc, d.withOptimizationLimit(enc, mk(enc, k)), best)
	verdict, sol, err := d.runCheck(ctx, fmt.Sprintf("%s_%d", label, k), check, k, d.objective(), readLoopIndex)
	if err != nil {
		return nil, true, err
	}
	switch verdict {
	case "sat":
		return &Result{Outcome: OutcomeSolution, Solution: sol, Bound: k}, true, nil
	case "unsat":
		return nil, false, nil
	default:
		return &Result{Outcome: OutcomeUnknown, Bound: k}, true, nil
	}
}

// tryComplete runs the Completeness check at depth k: Sat means the
// state space has not yet been shown exhausted (progress, continue);
// Unsat means it has (spec 4.7, "Soundness of Complete"); Unknown
// stops the driver. best, when present, still gets the strict-
// improvement cut applied so Optimize's Complete-mode pass cannot
// silently accept a worse witness as "progress".
func (d *driver) tryComplete(ctx context.Context, k int, best *Solution) (*Result, bool, error) {
	enc := &solver.Encoder{M: d.m}
	check := d.withBestCut(enc, enc.EncodeComplete(k), best)
	verdict, _, err := d.runCheck(ctx, fmt.Sprintf("complete_%d", k), check, k, nil, false)
	if err != nil {
		return nil, true, err
	}
	switch verdict {
	case "sat":
		return nil, false, nil
	case "unsat":
		return &Result{Outcome: OutcomeNoSolution, Bound: k}, true, nil
	default:
		return &Result{Outcome: OutcomeUnknown, Bound: k}, true, nil
	}
}

// runFiniteAtDepth drives the Finite "bag of distinct witnesses" inner
// loop at depth k (spec 4.7's Finite inner loop, grounded on
// DavidD12/tatam's finite/is_finite solver pair): repeatedly find a
// candidate among the unseen, confirm it cannot be extended by a depth
// k+1 instance pinning its values, and either return the confirmed
// witness or record it as seen and retry. An outer Unsat lets the
// caller move on to the next mode or depth.
func (d *driver) runFiniteAtDepth(ctx context.Context, k int, best *Solution) (*Result, bool, error) {
	var seen []solver.Witness
	for n := 0; ; n++ {
		enc := &solver.Encoder{M: d.m}
		check := d.withBestCut(enc, d.withOptimizationLimit(enc, enc.EncodeFinite(k, seen)), best)
		verdict, sol, err := d.runCheck(ctx, fmt.Sprintf("finite_%d_%d", k, n), check, k, d.objective(), false)
		if err != nil {
			return nil, true, err
		}
		switch verdict {
		case "sat":
			w := solver.Witness{Bound: k, Values: sol.Values}
			confEnc := &solver.Encoder{M: d.m}
			confCheck := confEnc.EncodeFiniteConfirmation(w)
			confVerdict, _, err := d.runCheck(ctx, fmt.Sprintf("is_finite_%d_%d", k, n), confCheck, k+1, nil, false)
			if err != nil {
				return nil, true, err
			}
			switch confVerdict {
			case "unsat":
				return &Result{Outcome: OutcomeSolution, Solution: sol, Bound: k}, true, nil
			case "sat":
				seen = append(seen, w)
				continue
			default:
				return &Result{Outcome: OutcomeUnknown, Bound: k}, true, nil
			}
		case "unsat":
			return nil, false, nil
		default:
			return &Result{Outcome: OutcomeUnknown, Bound: k}, true, nil
		}
	}
}

func (d *driver) objective() *expr.Expr {
	if opt := d.m.Search.Optimization; opt != nil {
		return &opt.Objective
	}
	return nil
}

// withOptimizationLimit asserts the optimization's feasibility limit
// ("bound" clause) when one is configured: the objective may not cross
// past bound in the direction away from minimize/maximize.
func (d *driver) withOptimizationLimit(enc *solver.Encoder, check solver.Check) solver.Check {
	opt := d.m.Search.Optimization
	if opt == nil || opt.Bound == nil {
		return check
	}
	op := "<="
	if !opt.Minimize {
		op = ">="
	}
	limit := fmt.Sprintf("(assert (%s %s %s))", op, enc.Term(opt.Objective, 0), enc.Term(*opt.Bound, 0))
	check.Assertions = append(check.Assertions, limit)
	return check
}

// withBestCut asserts the strict-improvement cut over an already-found
// best solution's objective (spec 4.7 "Optimization"): a witness found
// from here on must beat best, not merely match it.
func (d *driver) withBestCut(enc *solver.Encoder, check solver.Check, best *Solution) solver.Check {
	opt := d.m.Search.Optimization
	if opt == nil || best == nil {
		return check
	}
	op := "<"
	if !opt.Minimize {
		op = ">"
	}
	cut := fmt.Sprintf("(assert (%s %s %s))", op, enc.Term(opt.Objective, 0), best.Objective)
	check.Assertions = append(check.Assertions, cut)
	return check
}

// runCheck sends one complete set of declarations and assertions to a
// fresh solver process and, if sat, reads back every state variable's
// value at every depth, plus the objective and/or loop index when
// asked for.
func (d *driver) runCheck(ctx context.Context, label string, check solver.Check, bound int, objective *expr.Expr, readLoopIndex bool) (string, *Solution, error) {
	d.logCheck(label, check)

	proc, err := smt.Start(ctx, d.binary, "-in")
	if err != nil {
		return "", nil, fmt.Errorf("search: starting %s: %w", d.binary, err)
	}
	defer proc.Close()

	for _, decl := range check.Declarations {
		if err := proc.Send(decl); err != nil {
			return "", nil, err
		}
	}
	for _, a := range check.Assertions {
		if err := proc.Send(a); err != nil {
			return "", nil, err
		}
	}
	verdict, err := proc.CheckSat()
	if err != nil {
		return "", nil, err
	}
	if verdict != "sat" {
		return verdict, nil, nil
	}

	// A get-value reply reads "((term value))"; only value is kept.
	valueOf := func(reply, term string) string {
		return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(reply), "(("+term+" "), "))")
	}
	enc := &solver.Encoder{M: d.m, Last: bound}
	values := make(map[string]map[int]string)
	for _, decl := range d.m.Declarations {
		perDepth := make(map[int]string)
		if decl.Constant {
			v, err := proc.GetValue(decl.Name)
			if err != nil {
				return "", nil, err
			}
			perDepth[0] = valueOf(v, decl.Name)
		} else {
			for depth := 0; depth <= bound; depth++ {
				name := enc.StateVar(decl.Name, false, depth)
				v, err := proc.GetValue(name)
				if err != nil {
					return "", nil, err
				}
				perDepth[depth] = valueOf(v, name)
			}
		}
		values[decl.Name] = perDepth
	}

	sol := &Solution{Bound: bound, Values: values, LoopIndex: -1}
	if objective != nil {
		term := enc.Term(*objective, 0)
		v, err := proc.GetValue(term)
		if err != nil {
			return "", nil, err
		}
		sol.Objective = valueOf(v, term)
	}
	if readLoopIndex {
		idx, err := getLoopIndex(proc, bound)
		if err != nil {
			return "", nil, err
		}
		sol.LoopIndex = idx
	}
	return "sat", sol, nil
}

// getLoopIndex reads back which loop indicator is true, the Go
// equivalent of DavidD12/tatam's Solver::get_loop_index.
func getLoopIndex(proc *smt.Process, bound int) (int, error) {
	for i := 0; i <= bound; i++ {
		v, err := proc.GetValue(solver.LoopIndicatorName(i))
		if err != nil {
			return -1, err
		}
		if containsTrue(v) {
			return i, nil
		}
	}
	return -1, nil
}

// containsTrue reports whether a get-value reply such as "((_l_0
// true))" affirms its term, without fully parsing the s-expression.
func containsTrue(reply string) bool {
	for i := 0; i+4 <= len(reply); i++ {
		if reply[i:i+4] == "true" {
			return true
		}
	}
	return false
}

// logCheck mirrors one check's SMT-LIB 2 text to <LogFolder>/<label>.smt,
// grounded on DavidD12/tatam's log_file/log_file_n naming. Best-effort:
// a logging failure never aborts the search.
func (d *driver) logCheck(label string, check solver.Check) {
	if d.opts.LogFolder == "" {
		return
	}
	if err := os.MkdirAll(d.opts.LogFolder, 0o755); err != nil {
		return
	}
	path := filepath.Join(d.opts.LogFolder, label+".smt")
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	for _, decl := range check.Declarations {
		fmt.Fprintln(f, decl)
	}
	for _, a := range check.Assertions {
		fmt.Fprintln(f, a)
	}
	fmt.Fprintln(f, "(check-sat)")
}
