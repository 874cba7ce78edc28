// Package watch re-runs verification when the files referenced by a set of
// claims change on disk.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hyperpolymath/did-you-actually-do-that/internal/logging"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/events"
	"github.com/hyperpolymath/did-you-actually-do-that/pkg/verify"
)

// Watcher polls the filesystem paths referenced by a set of claims and
// re-verifies all claims whenever any of those paths change.
type Watcher struct {
	verifier *verify.Verifier
	claims   []claim.Claim
	interval time.Duration
	bus      *events.Bus
	logger   *slog.Logger
	onReport func(claim.VerificationReport)
	paths    []string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the polling interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithEvents attaches an event bus; a watch.change event is published each
// time a change is detected.
func WithEvents(bus *events.Bus) Option {
	return func(w *Watcher) {
		w.bus = bus
	}
}

// WithLogger overrides the default component logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithReportFunc registers a callback invoked with every verification report
// the watcher produces, including the initial run.
func WithReportFunc(fn func(claim.VerificationReport)) Option {
	return func(w *Watcher) {
		w.onReport = fn
	}
}

// New builds a watcher over the given claims. The watched path set is derived
// from the claims' evidence: file evidence contributes its path, git evidence
// contributes its repository directory. Command, environment, and custom
// evidence have no filesystem footprint and are only re-checked when some
// watched path changes.
func New(verifier *verify.Verifier, claims []claim.Claim, opts ...Option) *Watcher {
	w := &Watcher{
		verifier: verifier,
		claims:   claims,
		interval: 2 * time.Second,
		logger:   logging.New("watch"),
		paths:    collectPaths(claims),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Paths returns the watched filesystem paths, sorted and deduplicated.
func (w *Watcher) Paths() []string {
	out := make([]string, len(w.paths))
	copy(out, w.paths)
	return out
}

// Run verifies all claims once, then polls for changes until ctx is
// cancelled. It always returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.paths) == 0 {
		w.logger.Warn("no watchable paths in claims; changes will not trigger re-verification")
	}

	last := w.fingerprint()
	w.verifyAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fp := w.fingerprint()
			if fp == last {
				continue
			}
			last = fp
			w.logger.Info("change detected", "paths", len(w.paths))
			w.publishChange()
			w.verifyAll(ctx)
		}
	}
}

func (w *Watcher) verifyAll(ctx context.Context) {
	for _, c := range w.claims {
		report := w.verifier.Verify(ctx, c)
		w.logger.Info("verified claim",
			"claim_id", c.ID,
			"verdict", report.OverallVerdict)
		if w.onReport != nil {
			w.onReport(report)
		}
	}
}

func (w *Watcher) publishChange() {
	if w.bus == nil {
		return
	}
	w.bus.Publish(events.NewEvent(events.EventWatchChange, map[string]any{
		"watched_paths": len(w.paths),
	}))
}

// fingerprint hashes the stat metadata of every watched path. Any change in
// size or modification time, or a path appearing or disappearing, produces a
// different fingerprint.
func (w *Watcher) fingerprint() string {
	h := sha256.New()
	for _, p := range w.paths {
		hashPath(h, p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashPath(h io.Writer, path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(h, "%s:absent\n", path)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(h, "%s:%d:%d\n", path, info.Size(), info.ModTime().UnixNano())
		return
	}
	filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if fi.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(path, p)
		if relErr != nil {
			rel = p
		}
		fmt.Fprintf(h, "%s:%d:%d\n", rel, fi.Size(), fi.ModTime().UnixNano())
		return nil
	})
}

func collectPaths(claims []claim.Claim) []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, c := range claims {
		for _, spec := range c.Evidence {
			for _, p := range specPaths(spec) {
				if _, ok := seen[p]; ok {
					continue
				}
				seen[p] = struct{}{}
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)
	return paths
}

func specPaths(spec claim.EvidenceSpec) []string {
	switch s := spec.(type) {
	case claim.FileExists:
		return []string{s.Path}
	case claim.FileWithHash:
		return []string{s.Path}
	case claim.FileContains:
		return []string{s.Path}
	case claim.FileMatchesRegex:
		return []string{s.Path}
	case claim.JSONPathEquals:
		return []string{s.Path}
	case claim.FileModifiedAfter:
		return []string{s.Path}
	case claim.DirectoryExists:
		return []string{s.Path}
	case claim.GitClean:
		return []string{repoDir(s.RepoPath)}
	case claim.GitCommitExists:
		return []string{repoDir(s.RepoPath)}
	case claim.GitBranchExists:
		return []string{repoDir(s.RepoPath)}
	default:
		return nil
	}
}

func repoDir(p string) string {
	if p == "" {
		return "."
	}
	return p
}
