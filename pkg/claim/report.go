package claim

import (
	"encoding/json"
	"fmt"
	"time"
)

// EvidenceResult is the outcome of checking a single evidence item. The
// spec is echoed from the claim so a result is meaningful on its own.
type EvidenceResult struct {
	Spec    EvidenceSpec
	Verdict Verdict
	Details string
}

// resultWire mirrors EvidenceResult with the spec in tagged wire form.
type resultWire struct {
	Spec    json.RawMessage `json:"spec"`
	Verdict Verdict         `json:"verdict"`
	Details string          `json:"details,omitempty"`
}

// MarshalJSON encodes the result with its spec in tagged wire form.
func (r EvidenceResult) MarshalJSON() ([]byte, error) {
	spec, err := MarshalEvidence(r.Spec)
	if err != nil {
		return nil, fmt.Errorf("result spec: %w", err)
	}
	return json.Marshal(resultWire{
		Spec:    spec,
		Verdict: r.Verdict,
		Details: r.Details,
	})
}

// UnmarshalJSON decodes a result, including its tagged spec.
func (r *EvidenceResult) UnmarshalJSON(data []byte) error {
	var w resultWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("parse result: %w", err)
	}
	spec, err := UnmarshalEvidence(w.Spec)
	if err != nil {
		return fmt.Errorf("result spec: %w", err)
	}
	*r = EvidenceResult{Spec: spec, Verdict: w.Verdict, Details: w.Details}
	return nil
}

// VerificationReport is the complete outcome of verifying one claim: the
// claim itself, a result per evidence item in declaration order, and the
// folded overall verdict.
type VerificationReport struct {
	Claim           Claim            `json:"claim"`
	EvidenceResults []EvidenceResult `json:"evidence_results"`
	OverallVerdict  Verdict          `json:"overall_verdict"`
	VerifiedAt      time.Time        `json:"verified_at"`
}

// Summary renders the one-line outcome shown in listings.
func (r VerificationReport) Summary() string {
	return fmt.Sprintf("[%s] %s - %s", r.OverallVerdict.Icon(), r.Claim.Description, r.OverallVerdict)
}
