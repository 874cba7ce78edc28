package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

var validateCmd = &cobra.Command{
	Use:   "validate <claim-file>",
	Short: "Check a claim file for structural problems",
	Long: `Parse a claim file (single claim or array) and report structural problems:
missing descriptions, evidence without required fields, digests or patterns
or timestamps that can never match. Nothing is checked against the machine.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	claims, err := loadClaims(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, c := range claims {
		result := claim.Validate(c)
		if result.Valid() {
			continue
		}
		failed = true
		fmt.Fprintf(out, "%s:\n", c.Description)
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  %s: %s\n", e.Field, e.Message)
		}
	}

	if failed {
		return &exitError{code: 3}
	}

	if !quiet {
		fmt.Fprintf(out, "%d claim(s) structurally valid\n", len(claims))
	}
	return nil
}

// loadClaims accepts both claim-file shapes: a single claim object or an
// array of claims. On failure it returns the single-claim parse error, which
// names the offending field.
func loadClaims(path string) ([]claim.Claim, error) {
	if claims, err := claim.LoadAll(path); err == nil {
		return claims, nil
	}
	c, err := claim.Load(path)
	if err != nil {
		return nil, err
	}
	return []claim.Claim{c}, nil
}
