package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// verbose is a level, not a flag: 0 is silent, 1 (default) prints the
// search summary, 2 additionally dumps the flattened model via
// expr.ToLang, 3 mirrors every solver check (see --log-folder).
var verbose int

var rootCmd = &cobra.Command{
	Use:   "tatam",
	Short: "A bounded model checker for finite-state transition systems",
	Long: `tatam loads a model description of declarations, an initial
predicate, invariants, a transition relation, and an LTL property, then
searches for a path of bounded length satisfying (or violating) that
property by encoding each candidate depth as an SMT-LIB 2 query and
handing it to an external solver such as z3.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 1, "verbosity level: 0 silent, 1 summary, 2 model dump, 3 solver transcript")
}
