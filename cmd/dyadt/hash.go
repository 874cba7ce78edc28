package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

var hashCmd = &cobra.Command{
	Use:   "hash <file>",
	Short: "Compute the SHA-256 hash of a file for evidence specs",
	Long:  "Print a file's SHA-256 digest together with a ready-to-paste FileWithHash evidence spec.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHash,
}

func runHash(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	spec, err := claim.MarshalEvidence(claim.FileWithHash{Path: args[0], SHA256: digest})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		fmt.Fprintf(out, "%s\n", spec)
		return nil
	}

	fmt.Fprintln(out, digest)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Evidence spec:")
	fmt.Fprintf(out, "%s\n", spec)
	return nil
}
