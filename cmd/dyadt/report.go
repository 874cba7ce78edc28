package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

var reportSave bool

var reportCmd = &cobra.Command{
	Use:   "report <claims-file>",
	Short: "Verify multiple claims and generate a report",
	Long:  "Load an array of claims, verify each one, and print a combined report. The exit code reflects the worst verdict across all claims.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportSave, "save", false, "Save every report to verification history")
}

func runReport(cmd *cobra.Command, args []string) error {
	claims, err := claim.LoadAll(args[0])
	if err != nil {
		return err
	}

	v := newVerifier()
	reports := make([]claim.VerificationReport, len(claims))

	limit := cfg.Verify.Parallel
	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(limit)
	for i, c := range claims {
		i, c := i, c
		g.Go(func() error {
			reports[i] = v.Verify(gctx, c)
			return nil
		})
	}
	_ = g.Wait()

	worst := claim.VerdictConfirmed
	for _, r := range reports {
		worst = worst.Worse(r.OverallVerdict)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(out, reports); err != nil {
			return err
		}
	} else {
		s := newStyles(!noColor)
		fmt.Fprintln(out, "Verification Report")
		fmt.Fprintln(out, "===================")
		fmt.Fprintln(out)
		for _, r := range reports {
			printReport(out, s, r)
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, "-------------------")
		fmt.Fprintf(out, "Overall: %s\n", worst)
	}

	if reportSave {
		if err := saveReports(reports...); err != nil {
			return err
		}
	}

	return verdictExit(worst)
}
