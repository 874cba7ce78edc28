// dyadt ("Did You Actually Do That?") verifies claimed actions against
// reality: files, processes, git state, and the environment.
//
// Usage:
//
//	dyadt check <claim-file>     verify a claim from a JSON or YAML file
//	dyadt verify <path>          quick check that a file or directory exists
//	dyadt hash <file>            print a file's SHA-256 for evidence specs
//	dyadt report <claims-file>   verify multiple claims and fold the outcome
//	dyadt validate <claim-file>  structural checks without touching the world
//	dyadt watch <claim-file>     re-verify whenever referenced files change
//
// Exit codes: 0 all claims confirmed, 1 refuted, 2 inconclusive or
// unverifiable, 3 invalid input.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}
	return 0
}

// exitError carries a process exit code derived from a verdict. The report
// has already been printed when one of these is returned.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
