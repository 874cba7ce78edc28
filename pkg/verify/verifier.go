// Package verify checks claims against the machine they describe. A
// Verifier turns each evidence item into a verdict by observing the
// filesystem, processes, version control, and the process environment,
// then folds the per-item verdicts into one outcome for the claim.
//
// Checking is total: CheckEvidence and Verify never return errors. Every
// failure mode, from a missing file to an uninstalled tool, is encoded in
// the verdict and its details.
package verify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/events"
	"golang.org/x/sync/errgroup"
)

// CheckerFunc is a named custom predicate consulted for Custom evidence.
// It receives the evidence's parameter map and returns a verdict, or an
// error when the check itself cannot run.
type CheckerFunc func(params map[string]string) (claim.Verdict, error)

// Verifier checks claims against the local machine. The zero configuration
// checks sequentially and finds the version-control tool on PATH. A
// Verifier is safe to share across goroutines; register custom checkers
// before verification begins rather than during it.
type Verifier struct {
	mu       sync.RWMutex
	checkers map[string]CheckerFunc

	gitTool  string
	parallel int
	bus      *events.Bus
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithParallel bounds how many evidence items are checked at once during
// Verify. Values below two keep checking sequential.
func WithParallel(n int) Option {
	return func(v *Verifier) {
		v.parallel = n
	}
}

// WithGitTool overrides the executable used for version-control checks.
func WithGitTool(name string) Option {
	return func(v *Verifier) {
		v.gitTool = name
	}
}

// WithEvents attaches a bus that receives progress events while a claim is
// verified.
func WithEvents(bus *events.Bus) Option {
	return func(v *Verifier) {
		v.bus = bus
	}
}

// New creates a Verifier with the given options.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		checkers: make(map[string]CheckerFunc),
		gitTool:  "git",
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// RegisterChecker installs a named predicate for Custom evidence.
// Re-registering a name replaces the previous checker.
func (v *Verifier) RegisterChecker(name string, fn CheckerFunc) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.checkers[name] = fn
}

func (v *Verifier) lookupChecker(name string) (CheckerFunc, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	fn, ok := v.checkers[name]
	return fn, ok
}

// CheckEvidence checks a single evidence item and echoes the spec back in
// the result. The context is passed to external commands; the verifier
// itself sets no deadline.
func (v *Verifier) CheckEvidence(ctx context.Context, spec claim.EvidenceSpec) claim.EvidenceResult {
	verdict, details := v.check(ctx, spec)
	return claim.EvidenceResult{Spec: spec, Verdict: verdict, Details: details}
}

// check dispatches on the evidence kind. The switch covers the whole
// closed kind set; a new kind must be handled here before it can decode.
func (v *Verifier) check(ctx context.Context, spec claim.EvidenceSpec) (claim.Verdict, string) {
	switch s := spec.(type) {
	case claim.FileExists:
		return checkFileExists(s)
	case claim.FileWithHash:
		return checkFileWithHash(s)
	case claim.FileContains:
		return checkFileContains(s)
	case claim.FileMatchesRegex:
		return checkFileMatchesRegex(s)
	case claim.JSONPathEquals:
		return checkJSONPath(s)
	case claim.FileModifiedAfter:
		return checkFileModifiedAfter(s)
	case claim.DirectoryExists:
		return checkDirectoryExists(s)
	case claim.CommandSucceeds:
		return checkCommand(ctx, s)
	case claim.GitClean:
		return v.checkGitClean(ctx, s)
	case claim.GitCommitExists:
		return v.checkGitCommit(ctx, s)
	case claim.GitBranchExists:
		return v.checkGitBranch(ctx, s)
	case claim.EnvVarEquals:
		return checkEnvVar(s)
	case claim.Custom:
		return v.checkCustom(s)
	default:
		return claim.VerdictUnverifiable, fmt.Sprintf("unhandled evidence kind %T", spec)
	}
}

// checkCustom looks the checker up at check time, so registration order
// against claim loading does not matter.
func (v *Verifier) checkCustom(s claim.Custom) (claim.Verdict, string) {
	checker, ok := v.lookupChecker(s.Name)
	if !ok {
		return claim.VerdictUnverifiable, fmt.Sprintf("No checker for: %s", s.Name)
	}
	verdict, err := checker(s.Params)
	if err != nil {
		return claim.VerdictUnverifiable, err.Error()
	}
	return verdict, ""
}

// Verify checks every evidence item of a claim, in declaration order in
// the report, and folds the outcomes into an overall verdict. A claim with
// no evidence is Unverifiable.
func (v *Verifier) Verify(ctx context.Context, c claim.Claim) claim.VerificationReport {
	started := time.Now()
	v.publish(events.NewEvent(events.EventVerifyStart, map[string]any{
		"claim_id":    c.ID,
		"description": c.Description,
		"evidence":    len(c.Evidence),
	}))

	results := make([]claim.EvidenceResult, len(c.Evidence))
	if v.parallel > 1 && len(c.Evidence) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(v.parallel)
		for i, spec := range c.Evidence {
			i, spec := i, spec
			g.Go(func() error {
				results[i] = v.CheckEvidence(gctx, spec)
				v.publishEvidence(c.ID, i, results[i])
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, spec := range c.Evidence {
			results[i] = v.CheckEvidence(ctx, spec)
			v.publishEvidence(c.ID, i, results[i])
		}
	}

	report := claim.VerificationReport{
		Claim:           c,
		EvidenceResults: results,
		OverallVerdict:  Aggregate(results),
		VerifiedAt:      time.Now().UTC(),
	}

	end := events.NewEvent(events.EventVerifyEnd, map[string]any{
		"claim_id": c.ID,
		"verdict":  report.OverallVerdict,
	})
	end.Duration = time.Since(started)
	v.publish(end)

	return report
}

func (v *Verifier) publish(event events.Event) {
	if v.bus != nil {
		v.bus.Publish(event)
	}
}

func (v *Verifier) publishEvidence(claimID string, index int, result claim.EvidenceResult) {
	if v.bus == nil {
		return
	}
	event := events.NewEvent(events.EventVerifyEvidence, map[string]any{
		"claim_id": claimID,
		"kind":     result.Spec.Kind(),
		"verdict":  result.Verdict,
	})
	event.StepIndex = index
	v.bus.Publish(event)
}
