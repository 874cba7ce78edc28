package verify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

// repoOrDefault falls back to the current directory when the evidence
// names no repository.
func repoOrDefault(path string) string {
	if path == "" {
		return "."
	}
	return path
}

// gitAvailable reports whether the configured tool can be invoked at all.
// A missing tool is the one genuine "cannot observe" case for these
// checks.
func (v *Verifier) gitAvailable() (claim.Verdict, string, bool) {
	if _, err := exec.LookPath(v.gitTool); err != nil {
		return claim.VerdictUnverifiable, fmt.Sprintf("Git not available: %v", err), false
	}
	return "", "", true
}

func (v *Verifier) checkGitClean(ctx context.Context, s claim.GitClean) (claim.Verdict, string) {
	if verdict, details, ok := v.gitAvailable(); !ok {
		return verdict, details
	}
	cmd := exec.CommandContext(ctx, v.gitTool, "-C", repoOrDefault(s.RepoPath), "status", "--porcelain")
	out, err := cmd.Output()
	if err != nil {
		return gitFailure("Git status failed", err)
	}
	if strings.TrimSpace(string(out)) != "" {
		return claim.VerdictRefuted, "Working tree not clean"
	}
	return claim.VerdictConfirmed, "Working tree clean"
}

func (v *Verifier) checkGitCommit(ctx context.Context, s claim.GitCommitExists) (claim.Verdict, string) {
	if verdict, details, ok := v.gitAvailable(); !ok {
		return verdict, details
	}
	cmd := exec.CommandContext(ctx, v.gitTool, "-C", repoOrDefault(s.RepoPath), "cat-file", "-e", s.Commit+"^{commit}")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return claim.VerdictRefuted, fmt.Sprintf("Commit not found: %s", s.Commit)
		}
		return claim.VerdictUnverifiable, fmt.Sprintf("Git error: %v", err)
	}
	return claim.VerdictConfirmed, fmt.Sprintf("Commit found: %s", s.Commit)
}

func (v *Verifier) checkGitBranch(ctx context.Context, s claim.GitBranchExists) (claim.Verdict, string) {
	if verdict, details, ok := v.gitAvailable(); !ok {
		return verdict, details
	}
	cmd := exec.CommandContext(ctx, v.gitTool, "-C", repoOrDefault(s.RepoPath), "show-ref", "--verify", "--quiet", "refs/heads/"+s.Branch)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return claim.VerdictRefuted, fmt.Sprintf("Branch not found: %s", s.Branch)
		}
		return claim.VerdictUnverifiable, fmt.Sprintf("Git error: %v", err)
	}
	return claim.VerdictConfirmed, fmt.Sprintf("Branch found: %s", s.Branch)
}

// gitFailure maps an invocation error: the tool running and exiting
// non-zero refutes the evidence, anything else means the observation could
// not be made.
func gitFailure(what string, err error) (claim.Verdict, string) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(string(exitErr.Stderr))
		if msg == "" {
			msg = exitErr.String()
		}
		return claim.VerdictRefuted, fmt.Sprintf("%s: %s", what, msg)
	}
	return claim.VerdictUnverifiable, fmt.Sprintf("%s: %v", what, err)
}
