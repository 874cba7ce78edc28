package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/history"
)

var (
	historyLimit int
	pruneOlder   string
	pruneKeep    int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved verification reports",
	Long:  "List reports saved with --save or by watch mode, newest first.",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <claim-id>",
	Short: "Show every saved report for one claim",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old reports from history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum reports to list (0 for all)")
	historyPruneCmd.Flags().StringVar(&pruneOlder, "older-than", "", "Delete reports older than this duration (e.g. 720h)")
	historyPruneCmd.Flags().IntVar(&pruneKeep, "keep", 0, "Keep only the newest N reports")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(cfg.History.Path); os.IsNotExist(err) {
		fmt.Fprintf(out, "No verification history at %s\n", cfg.History.Path)
		return nil
	}

	s, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	reports, err := s.Recent(historyLimit)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(out, reports)
	}

	if len(reports) == 0 {
		fmt.Fprintln(out, "No reports saved")
		return nil
	}
	for _, r := range reports {
		fmt.Fprintf(out, "%s  %s  %s\n", r.VerifiedAt.Format(time.RFC3339), r.Claim.ID, r.Summary())
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	reports, err := s.ForClaim(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(out, reports)
	}

	if len(reports) == 0 {
		fmt.Fprintf(out, "No reports for claim %s\n", args[0])
		return nil
	}
	styles := newStyles(!noColor)
	for _, r := range reports {
		fmt.Fprintf(out, "Verified at %s\n", r.VerifiedAt.Format(time.RFC3339))
		printReport(out, styles, r)
		fmt.Fprintln(out)
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	if pruneOlder == "" && pruneKeep <= 0 {
		return fmt.Errorf("prune needs --older-than or --keep")
	}

	s, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	removed := 0
	if pruneOlder != "" {
		d, err := time.ParseDuration(pruneOlder)
		if err != nil {
			return fmt.Errorf("parse --older-than: %w", err)
		}
		n, err := s.Prune(time.Now().Add(-d))
		if err != nil {
			return err
		}
		removed += n
	}
	if pruneKeep > 0 {
		n, err := s.Trim(pruneKeep)
		if err != nil {
			return err
		}
		removed += n
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d report(s)\n", removed)
	return nil
}

// saveReports appends reports to the history database, creating it on first
// use, and enforces the configured size cap.
func saveReports(reports ...claim.VerificationReport) error {
	s, err := openHistory()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, r := range reports {
		if err := s.Append(r); err != nil {
			return err
		}
	}
	if _, err := s.Trim(cfg.History.MaxEntries); err != nil {
		return err
	}
	return nil
}

func openHistory() (*history.Store, error) {
	if dir := filepath.Dir(cfg.History.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	return history.Open(cfg.History.Path)
}
