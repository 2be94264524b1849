// Command tatam parses, checks, and bounded-model-checks a transition
// system description, grounded on DavidD12/tatam's own CLI entry point
// and laid out the way this module's teacher repo separates a thin
// main.go from the cobra command tree in cmd/tatam/cmd.
package main

import (
	"fmt"
	"os"

	"github.com/davidd12/tatamgo/cmd/tatam/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
