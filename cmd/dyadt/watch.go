package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/events"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/history"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/watch"
)

var watchInterval string

var watchCmd = &cobra.Command{
	Use:   "watch <claim-file>",
	Short: "Re-verify claims whenever their referenced files change",
	Long: `Verify the claims once, then poll the files and repositories their evidence
references and re-verify on every change. Runs until interrupted; the exit
code reflects the worst verdict of the latest verification per claim.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Polling interval (default from config, e.g. 2s)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	claims, err := loadClaims(args[0])
	if err != nil {
		return err
	}

	ivl := cfg.Watch.Interval
	if watchInterval != "" {
		ivl = watchInterval
	}
	interval, err := time.ParseDuration(ivl)
	if err != nil {
		return fmt.Errorf("parse interval %q: %w", ivl, err)
	}

	out := cmd.OutOrStdout()
	styles := newStyles(!noColor)

	var store *history.Store
	if cfg.History.Persist {
		store, err = openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
	}

	// Latest verdict per claim; folded into the exit code on shutdown.
	latest := make(map[string]claim.Verdict)
	onReport := func(r claim.VerificationReport) {
		latest[r.Claim.ID] = r.OverallVerdict
		if jsonOutput {
			_ = json.NewEncoder(out).Encode(r)
		} else {
			printReport(out, styles, r)
		}
		if store != nil {
			if err := store.Append(r); err != nil {
				fmt.Fprintf(os.Stderr, "save report: %v\n", err)
			}
		}
	}

	bus := events.NewBus()
	if !jsonOutput {
		changes := bus.Subscribe(events.EventWatchChange)
		defer bus.Unsubscribe(changes)
		go func() {
			for range changes {
				fmt.Fprintln(out, "--- change detected ---")
			}
		}()
	}

	w := watch.New(newVerifier(), claims,
		watch.WithInterval(interval),
		watch.WithEvents(bus),
		watch.WithReportFunc(onReport),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if store != nil {
		if _, err := store.Trim(cfg.History.MaxEntries); err != nil {
			fmt.Fprintf(os.Stderr, "trim history: %v\n", err)
		}
	}

	worst := claim.VerdictConfirmed
	for _, v := range latest {
		worst = worst.Worse(v)
	}
	return verdictExit(worst)
}
