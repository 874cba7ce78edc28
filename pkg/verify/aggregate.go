package verify

import "github.com/hyperpolymath/did-you-actually-do-that/pkg/claim"

// Aggregate folds per-item results into a claim-level verdict. The rule is
// commutative over the result multiset: one Refuted refutes the claim, all
// Confirmed confirms it, all Unverifiable leaves it Unverifiable, and any
// other mix is Inconclusive. No evidence at all is Unverifiable.
func Aggregate(results []claim.EvidenceResult) claim.Verdict {
	if len(results) == 0 {
		return claim.VerdictUnverifiable
	}

	var confirmed, refuted, unverifiable int
	for _, r := range results {
		switch r.Verdict {
		case claim.VerdictConfirmed:
			confirmed++
		case claim.VerdictRefuted:
			refuted++
		case claim.VerdictUnverifiable:
			unverifiable++
		}
	}

	switch {
	case refuted > 0:
		return claim.VerdictRefuted
	case confirmed == len(results):
		return claim.VerdictConfirmed
	case unverifiable == len(results):
		return claim.VerdictUnverifiable
	default:
		return claim.VerdictInconclusive
	}
}
