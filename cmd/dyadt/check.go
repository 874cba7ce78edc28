package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/events"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/verify"
)

var checkSave bool

var checkCmd = &cobra.Command{
	Use:   "check <claim-file>",
	Short: "Verify a claim from a JSON or YAML file",
	Long:  "Load a single claim, check every evidence item against the machine, and print the report. The exit code reflects the overall verdict.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkSave, "save", false, "Save the report to verification history")
}

func runCheck(cmd *cobra.Command, args []string) error {
	c, err := claim.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	var opts []verify.Option
	var finish func()
	if verbose && !jsonOutput {
		bus := events.NewBus()
		finish = streamEvidenceEvents(out, bus)
		opts = append(opts, verify.WithEvents(bus))
	}

	v := newVerifier(opts...)
	report := v.Verify(cmd.Context(), c)
	if finish != nil {
		finish()
	}

	if jsonOutput {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		printReport(out, newStyles(!noColor), report)
	}

	if checkSave {
		if err := saveReports(report); err != nil {
			return err
		}
	}

	return verdictExit(report.OverallVerdict)
}

// streamEvidenceEvents prints one line per checked evidence item as events
// arrive. The returned function flushes and detaches the subscriber; call it
// after Verify returns.
func streamEvidenceEvents(out io.Writer, bus *events.Bus) func() {
	ch := bus.Subscribe(events.EventVerifyEvidence)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range ch {
			data, _ := ev.Data.(map[string]any)
			fmt.Fprintf(out, "checking evidence[%d] %v: %v\n", ev.StepIndex, data["kind"], data["verdict"])
		}
	}()

	return func() {
		bus.Unsubscribe(ch)
		wg.Wait()
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
