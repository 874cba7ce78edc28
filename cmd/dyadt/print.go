package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

// styles holds color formatters for verdict rendering.
type styles struct {
	confirmed    *color.Color
	refuted      *color.Color
	inconclusive *color.Color
	unverifiable *color.Color
	detail       *color.Color
}

// newStyles creates color formatters. enabled=false respects --no-color and
// the NO_COLOR convention.
func newStyles(enabled bool) *styles {
	s := &styles{
		confirmed:    color.New(color.FgGreen),
		refuted:      color.New(color.Bold, color.FgRed),
		inconclusive: color.New(color.FgYellow),
		unverifiable: color.New(color.FgHiBlack),
		detail:       color.New(color.Faint),
	}

	if !enabled {
		s.confirmed.DisableColor()
		s.refuted.DisableColor()
		s.inconclusive.DisableColor()
		s.unverifiable.DisableColor()
		s.detail.DisableColor()
	}

	return s
}

func (s *styles) forVerdict(v claim.Verdict) *color.Color {
	switch v {
	case claim.VerdictConfirmed:
		return s.confirmed
	case claim.VerdictRefuted:
		return s.refuted
	case claim.VerdictInconclusive:
		return s.inconclusive
	default:
		return s.unverifiable
	}
}

// printReport renders one verification report: a summary line, the claim
// source if present, then one line per evidence item with its verdict icon
// and details.
func printReport(out io.Writer, s *styles, report claim.VerificationReport) {
	fmt.Fprintf(out, "[%s] %s - %s\n",
		s.forVerdict(report.OverallVerdict).Sprint(report.OverallVerdict.Icon()),
		report.Claim.Description,
		report.OverallVerdict)

	if report.Claim.Source != "" {
		fmt.Fprintf(out, "  Source: %s\n", report.Claim.Source)
	}

	for _, result := range report.EvidenceResults {
		fmt.Fprintf(out, "  %s %s\n",
			s.forVerdict(result.Verdict).Sprint(result.Verdict.Icon()),
			describeEvidence(result.Spec))
		if result.Details != "" {
			fmt.Fprintf(out, "      %s\n", s.detail.Sprint(result.Details))
		}
	}
}

// describeEvidence renders an evidence spec as one human-readable line.
func describeEvidence(spec claim.EvidenceSpec) string {
	switch s := spec.(type) {
	case claim.FileExists:
		return fmt.Sprintf("File exists: %s", s.Path)
	case claim.FileWithHash:
		return fmt.Sprintf("File hash: %s", s.Path)
	case claim.FileContains:
		return fmt.Sprintf("File contains '%s': %s", s.Substring, s.Path)
	case claim.FileMatchesRegex:
		return fmt.Sprintf("File matches '%s': %s", s.Pattern, s.Path)
	case claim.JSONPathEquals:
		return fmt.Sprintf("JSON path '%s': %s", s.JSONPath, s.Path)
	case claim.FileModifiedAfter:
		return fmt.Sprintf("Modified after %s: %s", s.After, s.Path)
	case claim.DirectoryExists:
		return fmt.Sprintf("Directory exists: %s", s.Path)
	case claim.CommandSucceeds:
		return fmt.Sprintf("Command succeeds: %s", s.Command)
	case claim.GitClean:
		return fmt.Sprintf("Git tree clean: %s", displayRepo(s.RepoPath))
	case claim.GitCommitExists:
		return fmt.Sprintf("Git commit exists: %s", s.Commit)
	case claim.GitBranchExists:
		return fmt.Sprintf("Git branch exists: %s", s.Branch)
	case claim.EnvVarEquals:
		return fmt.Sprintf("Env var %s = '%s'", s.Name, s.Value)
	case claim.Custom:
		return fmt.Sprintf("Custom check: %s", s.Name)
	default:
		return spec.Kind()
	}
}

func displayRepo(repoPath string) string {
	if repoPath == "" {
		return "."
	}
	return repoPath
}

// verdictExit maps a verdict to the documented process exit code. Confirmed
// exits zero; the caller has already printed the report.
func verdictExit(v claim.Verdict) error {
	switch v {
	case claim.VerdictConfirmed:
		return nil
	case claim.VerdictRefuted:
		return &exitError{code: 1}
	default:
		return &exitError{code: 2}
	}
}
