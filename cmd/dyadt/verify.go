package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Quick check that a file or directory exists",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	c := claim.New(fmt.Sprintf("Path exists: %s", args[0])).
		WithEvidence(claim.FileExists{Path: args[0]}).
		WithSource("dyadt-cli")

	report := newVerifier().Verify(cmd.Context(), c)

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		printReport(out, newStyles(!noColor), report)
	}

	return verdictExit(report.OverallVerdict)
}
