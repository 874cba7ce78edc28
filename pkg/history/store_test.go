package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeReport(claimID string, verdict claim.Verdict, verifiedAt time.Time) claim.VerificationReport {
	return claim.VerificationReport{
		Claim: claim.Claim{
			ID:          claimID,
			Description: "report for " + claimID,
			Timestamp:   verifiedAt.Add(-time.Minute),
			Evidence:    []claim.EvidenceSpec{claim.FileExists{Path: "/tmp/out"}},
		},
		EvidenceResults: []claim.EvidenceResult{
			{Spec: claim.FileExists{Path: "/tmp/out"}, Verdict: verdict, Details: "File exists: /tmp/out"},
		},
		OverallVerdict: verdict,
		VerifiedAt:     verifiedAt,
	}
}

func TestAppendAndRecent(t *testing.T) {
	s := openStore(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"aaaa", "bbbb", "cccc"} {
		report := makeReport(id, claim.VerdictConfirmed, base.Add(time.Duration(i)*time.Minute))
		if err := s.Append(report); err != nil {
			t.Fatalf("Append %s: %v", id, err)
		}
	}

	reports, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	// Newest first.
	wantOrder := []string{"cccc", "bbbb", "aaaa"}
	for i, want := range wantOrder {
		if reports[i].Claim.ID != want {
			t.Errorf("reports[%d].Claim.ID = %q, want %q", i, reports[i].Claim.ID, want)
		}
	}

	limited, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent(2): %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("got %d reports, want 2", len(limited))
	}
	if limited[0].Claim.ID != "cccc" || limited[1].Claim.ID != "bbbb" {
		t.Errorf("limited order = %q, %q, want cccc, bbbb", limited[0].Claim.ID, limited[1].Claim.ID)
	}
}

func TestRecentEmpty(t *testing.T) {
	s := openStore(t)
	reports, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("got %d reports from empty store, want 0", len(reports))
	}
}

func TestForClaim(t *testing.T) {
	s := openStore(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	appends := []struct {
		id      string
		verdict claim.Verdict
		at      time.Time
	}{
		{"aaaa", claim.VerdictRefuted, base},
		{"bbbb", claim.VerdictConfirmed, base.Add(time.Minute)},
		{"aaaa", claim.VerdictConfirmed, base.Add(2 * time.Minute)},
	}
	for _, a := range appends {
		if err := s.Append(makeReport(a.id, a.verdict, a.at)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	reports, err := s.ForClaim("aaaa")
	if err != nil {
		t.Fatalf("ForClaim: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports for claim aaaa, want 2", len(reports))
	}
	if reports[0].OverallVerdict != claim.VerdictConfirmed {
		t.Errorf("newest verdict = %s, want Confirmed", reports[0].OverallVerdict)
	}
	if reports[1].OverallVerdict != claim.VerdictRefuted {
		t.Errorf("oldest verdict = %s, want Refuted", reports[1].OverallVerdict)
	}

	none, err := s.ForClaim("no-such-claim")
	if err != nil {
		t.Fatalf("ForClaim: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d reports for unknown claim, want 0", len(none))
	}
}

func TestPrune(t *testing.T) {
	s := openStore(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"aaaa", "bbbb", "cccc"} {
		if err := s.Append(makeReport(id, claim.VerdictConfirmed, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	removed, err := s.Prune(base.Add(time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d reports, want 1", removed)
	}

	reports, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports after prune, want 2", len(reports))
	}
	for _, r := range reports {
		if r.Claim.ID == "aaaa" {
			t.Error("pruned report still present")
		}
	}
}

func TestTrim(t *testing.T) {
	s := openStore(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"aaaa", "bbbb", "cccc", "dddd"} {
		if err := s.Append(makeReport(id, claim.VerdictConfirmed, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	removed, err := s.Trim(2)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if removed != 2 {
		t.Errorf("Trim removed %d reports, want 2", removed)
	}

	reports, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports after trim, want 2", len(reports))
	}
	// The two newest survive.
	if reports[0].Claim.ID != "dddd" || reports[1].Claim.ID != "cccc" {
		t.Errorf("surviving reports = %s, %s, want dddd, cccc", reports[0].Claim.ID, reports[1].Claim.ID)
	}

	// Trimming below the cap is a no-op.
	removed, err = s.Trim(10)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if removed != 0 {
		t.Errorf("Trim removed %d reports under cap, want 0", removed)
	}
}

func TestTrimUnlimited(t *testing.T) {
	s := openStore(t)
	if err := s.Append(makeReport("aaaa", claim.VerdictConfirmed, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("Append: %v", err)
	}

	removed, err := s.Trim(0)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if removed != 0 {
		t.Errorf("Trim(0) removed %d reports, want 0", removed)
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	report := makeReport("aaaa", claim.VerdictConfirmed, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	if err := s.Append(report); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	reports, err := reopened.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports after reopen, want 1", len(reports))
	}
	if reports[0].Claim.ID != "aaaa" {
		t.Errorf("Claim.ID = %q, want aaaa", reports[0].Claim.ID)
	}
	if len(reports[0].EvidenceResults) != 1 {
		t.Errorf("EvidenceResults lost across reopen: %d items", len(reports[0].EvidenceResults))
	}
}
