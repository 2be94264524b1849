package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/maruel/natural"

	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/model"
	"github.com/davidd12/tatamgo/internal/parser"
	"github.com/davidd12/tatamgo/internal/search"
	"github.com/davidd12/tatamgo/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	solverBinary string
	maxDepth     int
	noColor      bool
	timeout      time.Duration
	threads      int
	logFolder    string
	incremental  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse, semantically check, and bounded-model-check a model file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&solverBinary, "solver", "z3", "SMT solver binary to drive (must accept -in)")
	checkCmd.Flags().IntVar(&maxDepth, "max-depth", -1, "override the model's search upper bound")
	checkCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored diagnostic output")
	checkCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout for the solver search")
	checkCmd.Flags().IntVar(&threads, "threads", 1, "depths checked concurrently (0 = all cores)")
	checkCmd.Flags().StringVar(&logFolder, "log-folder", "", "mirror every solver check's SMT-LIB 2 text under this folder")
	checkCmd.Flags().BoolVar(&incremental, "incremental", false, "reuse solver state across depths instead of a fresh process per check (not yet implemented, accepted for CLI compatibility)")
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	source := string(content)

	m, perrs := parser.Parse(source, filename)
	if len(perrs) != 0 {
		reportErrors(source, perrs)
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	errs, warnings := semantic.Analyze(m, filename)
	for _, w := range warnings.Items() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
	}
	if len(errs) != 0 {
		reportErrors(source, errs)
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(errs))
	}

	if maxDepth >= 0 {
		m.Search.Transitions.Max = maxDepth
	}

	if verbose >= 2 {
		dumpModel(m)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose >= 1 {
		fmt.Fprintf(os.Stderr, "searching with %s over transitions %s (%s)\n", solverBinary, m.Search.Transitions, m.Search.PathType)
	}

	if threads == 0 {
		threads = runtime.NumCPU()
	}
	opts := search.Options{Threads: threads, LogFolder: logFolder}
	if verbose >= 3 && opts.LogFolder == "" {
		opts.LogFolder = os.TempDir() + "/tatam-verbose"
	}

	result, err := search.Run(ctx, m, solverBinary, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	printResult(result)
	return nil
}

func reportErrors(source string, errs []errors.ModelError) {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Format(source, !noColor))
	}
}

// dumpModel re-emits the flattened model's initials, invariants,
// transitions, and property via expr.ToLang at --verbose 2, matching
// DavidD12/tatam's model dump. Entries print in declaration order.
func dumpModel(m *model.Model) {
	for _, in := range m.Initials {
		fmt.Fprintf(os.Stderr, "initial %s: %s\n", in.Name, in.Expr.ToLang(m))
	}
	for _, inv := range m.Invariants {
		fmt.Fprintf(os.Stderr, "invariant %s: %s\n", inv.Name, inv.Expr.ToLang(m))
	}
	for _, tr := range m.Transitions {
		fmt.Fprintf(os.Stderr, "transition %s: %s\n", tr.Name, tr.Expr.ToLang(m))
	}
	if m.Property != nil {
		fmt.Fprintf(os.Stderr, "property: %s\n", m.Property.ToLang(m))
	}
}

func printResult(result *search.Result) {
	switch result.Outcome {
	case search.OutcomeSolution, search.OutcomeBestSolution:
		fmt.Printf("%s found at bound %d\n", result.Outcome, result.Bound)
		printSolution(result.Solution)
	case search.OutcomeNoSolution:
		fmt.Printf("no solution: state space exhausted at bound %d\n", result.Bound)
	case search.OutcomeBoundReached:
		fmt.Printf("bound reached at %d without a solution\n", result.Bound)
	default:
		fmt.Printf("unknown: solver could not decide at bound %d\n", result.Bound)
	}
}

func printSolution(sol *search.Solution) {
	for depth := 0; depth <= sol.Bound; depth++ {
		fmt.Printf("state %d:\n", depth)
		names := make([]string, 0, len(sol.Values))
		for name := range sol.Values {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
		for _, name := range names {
			if v, ok := sol.Values[name][depth]; ok {
				fmt.Printf("  %s = %s\n", name, v)
			}
		}
	}
	if sol.LoopIndex >= 0 {
		fmt.Printf("loop at state %d\n", sol.LoopIndex)
	}
	if sol.Objective != "" {
		fmt.Printf("objective = %s\n", sol.Objective)
	}
}
