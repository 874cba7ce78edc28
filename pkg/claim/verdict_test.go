package claim

import "testing"

func TestIsTrustworthy(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    bool
	}{
		{VerdictConfirmed, true},
		{VerdictRefuted, false},
		{VerdictInconclusive, false},
		{VerdictUnverifiable, false},
	}

	for _, tt := range tests {
		if got := tt.verdict.IsTrustworthy(); got != tt.want {
			t.Errorf("%s.IsTrustworthy() = %v, want %v", tt.verdict, got, tt.want)
		}
	}
}

func TestWorse(t *testing.T) {
	tests := []struct {
		a, b Verdict
		want Verdict
	}{
		{VerdictConfirmed, VerdictConfirmed, VerdictConfirmed},
		{VerdictConfirmed, VerdictUnverifiable, VerdictUnverifiable},
		{VerdictConfirmed, VerdictInconclusive, VerdictInconclusive},
		{VerdictConfirmed, VerdictRefuted, VerdictRefuted},
		{VerdictUnverifiable, VerdictInconclusive, VerdictInconclusive},
		{VerdictInconclusive, VerdictRefuted, VerdictRefuted},
		{VerdictRefuted, VerdictConfirmed, VerdictRefuted},
		{VerdictInconclusive, VerdictUnverifiable, VerdictInconclusive},
	}

	for _, tt := range tests {
		if got := tt.a.Worse(tt.b); got != tt.want {
			t.Errorf("%s.Worse(%s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIcon(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    string
	}{
		{VerdictConfirmed, "✓"},
		{VerdictRefuted, "✗"},
		{VerdictInconclusive, "?"},
		{VerdictUnverifiable, "⊘"},
	}

	for _, tt := range tests {
		if got := tt.verdict.Icon(); got != tt.want {
			t.Errorf("%s.Icon() = %q, want %q", tt.verdict, got, tt.want)
		}
	}
}
