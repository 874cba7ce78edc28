package claim

// Verdict is the outcome of checking evidence against reality.
type Verdict string

const (
	// VerdictConfirmed means every check agreed with the claim.
	VerdictConfirmed Verdict = "Confirmed"

	// VerdictRefuted means at least one check contradicted the claim.
	VerdictRefuted Verdict = "Refuted"

	// VerdictInconclusive means the evidence was mixed: some items
	// confirmed, some could not be checked, none refuted.
	VerdictInconclusive Verdict = "Inconclusive"

	// VerdictUnverifiable means the check itself could not be performed,
	// so the claim is neither supported nor contradicted.
	VerdictUnverifiable Verdict = "Unverifiable"
)

// IsTrustworthy reports whether the verdict is strong enough to act on.
// Only a full confirmation qualifies; everything else leaves doubt.
func (v Verdict) IsTrustworthy() bool {
	return v == VerdictConfirmed
}

// Icon returns the single-character marker used when rendering reports.
func (v Verdict) Icon() string {
	switch v {
	case VerdictConfirmed:
		return "✓"
	case VerdictRefuted:
		return "✗"
	case VerdictInconclusive:
		return "?"
	default:
		return "⊘"
	}
}

// severity ranks verdicts for worst-of folding: a refutation outranks an
// inconclusive outcome, which outranks an unverifiable one.
var severity = map[Verdict]int{
	VerdictConfirmed:    0,
	VerdictUnverifiable: 1,
	VerdictInconclusive: 2,
	VerdictRefuted:      3,
}

// Worse returns the more severe of the two verdicts.
func (v Verdict) Worse(other Verdict) Verdict {
	if severity[other] > severity[v] {
		return other
	}
	return v
}
